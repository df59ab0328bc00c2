// Package testutil provides testing utilities for the qrguard application
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

// RedirectChain starts a test server whose paths /hop/0 .. /hop/n-1 redirect
// in sequence, ending on a 200 at /final. Useful for exercising redirect
// resolution with a known hop count. The server is torn down with the test.
func RedirectChain(t *testing.T, hops int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for i := 0; i < hops; i++ {
		next := "/final"
		if i+1 < hops {
			next = hopPath(i + 1)
		}
		target := next
		mux.HandleFunc(hopPath(i), func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, srv.URL+target, http.StatusFound)
		})
	}

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func hopPath(i int) string {
	return "/hop/" + strconv.Itoa(i)
}

// SlowServer starts a test server that stalls every request for delay,
// letting tests provoke client timeouts deterministically.
func SlowServer(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// WithTimeout creates a context with timeout for tests
func WithTimeout(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}
