// Package api implements the blogon read-only REST API using chi.
package api

import (
	"net/http"
)

// CacheControl returns middleware that sets the Cache-Control header.
// Outside production every response must be revalidated so that edits show
// up on the next request.
func CacheControl(production bool) func(http.Handler) http.Handler {
	value := "no-cache"
	if production {
		value = "public, max-age=60"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
