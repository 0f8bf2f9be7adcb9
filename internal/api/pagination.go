package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/phrazzld/todo-api/internal/store"
)

// PageResponse is the limit-offset envelope returned by list endpoints.
type PageResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// newPageResponse wraps one page of results with absolute links to the
// neighbouring pages. Other query parameters, filters included, are kept.
func newPageResponse[T any](r *http.Request, page store.Page, count int, results []T) PageResponse[T] {
	if results == nil {
		results = []T{}
	}
	resp := PageResponse[T]{Count: count, Results: results}

	if page.Offset+page.Limit < count {
		next := pageURL(r, page.Limit, page.Offset+page.Limit)
		resp.Next = &next
	}
	if page.Offset > 0 {
		prevOffset := page.Offset - page.Limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		prev := pageURL(r, page.Limit, prevOffset)
		resp.Previous = &prev
	}
	return resp
}

// pageURL rebuilds the request URL as an absolute URL with the given window.
// A zero offset is omitted.
func pageURL(r *http.Request, limit, offset int) string {
	q := r.URL.Query()
	q.Set(limitParam, strconv.Itoa(limit))
	if offset > 0 {
		q.Set(offsetParam, strconv.Itoa(offset))
	} else {
		q.Del(offsetParam)
	}

	u := url.URL{
		Scheme:   requestScheme(r),
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
