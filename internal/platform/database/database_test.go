package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAdminDSN(t *testing.T) {
	tests := []struct {
		name      string
		dsn       string
		wantAdmin string
		wantDB    string
		wantOK    bool
	}{
		{
			name:      "url form",
			dsn:       "postgres://app:secret@db:5432/teefour?sslmode=disable",
			wantAdmin: "postgres://app:secret@db:5432/postgres?sslmode=disable",
			wantDB:    "teefour",
			wantOK:    true,
		},
		{
			name:      "postgresql scheme",
			dsn:       "postgresql://db/teefour",
			wantAdmin: "postgresql://db/postgres",
			wantDB:    "teefour",
			wantOK:    true,
		},
		{name: "maintenance database", dsn: "postgres://db/postgres"},
		{name: "no database", dsn: "postgres://db"},
		{name: "key value form", dsn: "host=db user=app dbname=teefour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin, db, ok := adminDSN(tt.dsn)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if admin != tt.wantAdmin {
				t.Errorf("expected admin %q, got %q", tt.wantAdmin, admin)
			}
			if db != tt.wantDB {
				t.Errorf("expected database %q, got %q", tt.wantDB, db)
			}
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := quoteIdentifier(`tee"four`); got != `"tee""four"` {
		t.Fatalf("unexpected quoting: %s", got)
	}
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), Config{DSN: "  "})
	if err == nil || !strings.Contains(err.Error(), "DSN is empty") {
		t.Fatalf("expected empty DSN error, got %v", err)
	}
}

func TestRetryContextSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := RetryContext(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryContextReturnsLastError(t *testing.T) {
	sentinel := errors.New("connection refused")
	calls := 0
	err := RetryContext(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestRetryContextStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryContext(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("down")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}
