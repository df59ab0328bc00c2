package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qrguard/internal/models"
	"qrguard/pkg/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestResolver(timeout time.Duration) *Resolver {
	return NewResolver(timeout, 10, "QRGuard-Scanner/1.0")
}

func TestResolveFollowsRedirectChain(t *testing.T) {
	srv := testutil.RedirectChain(t, 3)
	r := newTestResolver(5 * time.Second)

	resolved := r.Resolve(context.Background(), srv.URL+"/hop/0")

	assert.Equal(t, models.ResolveOK, resolved.Outcome)
	assert.Equal(t, srv.URL+"/final", resolved.Final)
	assert.Equal(t, 3, resolved.RedirectCount)
	assert.Equal(t, "http", resolved.Scheme)
}

func TestResolveNoRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	r := newTestResolver(5 * time.Second)

	resolved := r.Resolve(context.Background(), srv.URL+"/page")

	assert.Equal(t, models.ResolveOK, resolved.Outcome)
	assert.Equal(t, srv.URL+"/page", resolved.Final)
	assert.Equal(t, 0, resolved.RedirectCount)
}

func TestResolveErrorStatusStillResolves(t *testing.T) {
	// A 404 destination resolved fine; the HTTP exchange itself worked.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	r := newTestResolver(5 * time.Second)

	resolved := r.Resolve(context.Background(), srv.URL)

	assert.Equal(t, models.ResolveOK, resolved.Outcome)
	assert.Equal(t, srv.URL, resolved.Final)
}

func TestResolveTimeoutFallsBackToOriginal(t *testing.T) {
	srv := testutil.SlowServer(t, 2*time.Second)
	r := newTestResolver(100 * time.Millisecond)

	resolved := r.Resolve(context.Background(), srv.URL+"/slow")

	assert.Equal(t, models.ResolveTimeout, resolved.Outcome)
	assert.Equal(t, srv.URL+"/slow", resolved.Final)
	assert.Equal(t, 0, resolved.RedirectCount)
}

func TestResolveConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	r := newTestResolver(5 * time.Second)
	resolved := r.Resolve(context.Background(), target+"/gone")

	assert.Equal(t, models.ResolveFailed, resolved.Outcome)
	assert.Equal(t, target+"/gone", resolved.Final)
	assert.Equal(t, 0, resolved.RedirectCount)
}

func TestResolveHeadRejectedFallsBackToGet(t *testing.T) {
	var sawGet bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sawGet = true
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	r := newTestResolver(5 * time.Second)

	resolved := r.Resolve(context.Background(), srv.URL)

	assert.Equal(t, models.ResolveOK, resolved.Outcome)
	assert.True(t, sawGet)
}

func TestResolveTooManyRedirectsFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(5*time.Second, 3, "QRGuard-Scanner/1.0")
	resolved := r.Resolve(context.Background(), srv.URL+"/loop")

	assert.Equal(t, models.ResolveFailed, resolved.Outcome)
	assert.Equal(t, srv.URL+"/loop", resolved.Final)
	assert.Equal(t, 0, resolved.RedirectCount)
}
