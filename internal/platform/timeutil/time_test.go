package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMarshalJSONFixedMillis(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	ts := NewTime(time.Date(2024, 1, 15, 12, 30, 0, 0, loc))

	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15T10:30:00.000Z"` {
		t.Fatalf("unexpected output: %s", b)
	}
}

func TestMarshalJSONTruncatesNanos(t *testing.T) {
	ts := NewTime(time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC))

	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15T10:30:00.123Z"` {
		t.Fatalf("unexpected output: %s", b)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-01-15T10:30:00Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{`"2024-01-15T10:30:00.250Z"`, time.Date(2024, 1, 15, 10, 30, 0, 250000000, time.UTC)},
		{`"2024-01-15T12:30:00+02:00"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var got Time
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.in, tt.want, got.Time)
		}
	}
}

func TestUnmarshalJSONNullKeepsValue(t *testing.T) {
	orig := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	got := NewTime(orig)
	if err := json.Unmarshal([]byte("null"), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(orig) {
		t.Fatalf("expected value to be preserved, got %v", got.Time)
	}
}

func TestUnmarshalJSONInvalid(t *testing.T) {
	var got Time
	if err := json.Unmarshal([]byte(`"yesterday"`), &got); err == nil {
		t.Fatal("expected error")
	}
}
