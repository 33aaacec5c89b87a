package bitvavo

import (
	"net/url"
	"strconv"
	"strings"
)

// query is an ordered query string. url.Values sorts keys on Encode, but the
// exchange documents a parameter order per endpoint and the signature covers
// the query exactly as sent.
type query struct {
	parts []string
}

func newQuery() *query { return &query{} }

// set appends key=value unconditionally.
func (q *query) set(key, value string) *query {
	q.parts = append(q.parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
	return q
}

// optString appends key=value when value is non-empty.
func (q *query) optString(key, value string) *query {
	if value != "" {
		q.set(key, value)
	}
	return q
}

// optInt appends key=value when value is positive.
func (q *query) optInt(key string, value int64) *query {
	if value > 0 {
		q.set(key, strconv.FormatInt(value, 10))
	}
	return q
}

// Encode returns "" or "?k=v&k2=v2".
func (q *query) Encode() string {
	if q == nil || len(q.parts) == 0 {
		return ""
	}
	return "?" + strings.Join(q.parts, "&")
}
