package pagination

import (
	"errors"
	"net/url"
	"slices"
	"strconv"
)

// ErrCursorMismatch indicates a cursor minted for another resource type or
// pointing at an item that is no longer in the result set.
var ErrCursorMismatch = errors.New("cursor does not match this listing")

// Result holds one page and its navigation metadata.
type Result[T any] struct {
	Items      []T
	Total      int
	LinkHeader string
	NextCursor string
	PrevCursor string
}

// Page describes a pagination request over an already ordered slice.
type Page[T any] struct {
	Cursor     Cursor
	Limit      int
	CursorType string
	ID         func(T) string
	// BaseURL and Query build the RFC 8288 Link header; Query is not modified.
	BaseURL string
	Query   url.Values
}

// Paginate returns the page of items following p.Cursor.
func Paginate[T any](items []T, p Page[T]) (Result[T], error) {
	if p.Cursor.Type != "" && p.Cursor.Type != p.CursorType {
		return Result[T]{}, ErrCursorMismatch
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	total := len(items)

	start := 0
	if p.Cursor.Value != "" {
		idx := slices.IndexFunc(items, func(item T) bool { return p.ID(item) == p.Cursor.Value })
		if idx == -1 {
			return Result[T]{}, ErrCursorMismatch
		}
		start = idx + 1
	}
	end := min(start+limit, total)
	page := items[start:end]

	var next, prev string
	if end < total && len(page) > 0 {
		next = Cursor{Type: p.CursorType, Value: p.ID(page[len(page)-1])}.Encode()
	}
	if start > 0 {
		// the previous page ends right before start
		prevValue := ""
		if start > limit {
			prevValue = p.ID(items[start-limit-1])
		}
		prev = Cursor{Type: p.CursorType, Value: prevValue}.Encode()
	}

	q := cloneValues(p.Query)
	q.Set("limit", strconv.Itoa(limit))

	return Result[T]{
		Items:      page,
		Total:      total,
		LinkHeader: BuildLinkHeader(p.BaseURL, q, next, prev),
		NextCursor: next,
		PrevCursor: prev,
	}, nil
}
