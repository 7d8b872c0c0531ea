package pagination

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildLinkHeader constructs an RFC 8288 Link header with next/prev relations,
// preserving the given query parameters. Returns "" when there is nowhere to go.
func BuildLinkHeader(baseURL string, query url.Values, nextCursor, prevCursor string) string {
	var links []string
	for _, rel := range []struct{ name, cursor string }{{"next", nextCursor}, {"prev", prevCursor}} {
		if rel.cursor == "" {
			continue
		}
		q := cloneValues(query)
		q.Set("cursor", rel.cursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=%q", baseURL, q.Encode(), rel.name))
	}
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
