package reputation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qrerrors "qrguard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLID(t *testing.T) {
	// URL-safe base64 with padding stripped.
	assert.Equal(t, "aHR0cDovL2V4YW1wbGUuY29t", urlID("http://example.com"))
	assert.NotContains(t, urlID("https://example.com/a?b=c&d=e"), "=")
}

func newVTServer(t *testing.T, handler http.HandlerFunc) *VirusTotalClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewVirusTotalClient("test-key", 2*time.Second)
	c.baseURL = srv.URL
	return c
}

func TestVirusTotalLookupDetections(t *testing.T) {
	c := newVTServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-apikey"))
		assert.Equal(t, http.MethodGet, r.Method)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"attributes": map[string]interface{}{
					"last_analysis_stats": map[string]int{
						"malicious":  3,
						"suspicious": 1,
						"harmless":   60,
					},
				},
			},
		})
	})

	verdict := c.Lookup(context.Background(), "https://bad.example")

	assert.Equal(t, StatusOK, verdict.Status)
	assert.True(t, verdict.Detected)
	assert.Equal(t, 4, verdict.Score)
}

func TestVirusTotalLookupClean(t *testing.T) {
	c := newVTServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"attributes": map[string]interface{}{
					"last_analysis_stats": map[string]int{"malicious": 0, "suspicious": 0},
				},
			},
		})
	})

	verdict := c.Lookup(context.Background(), "https://good.example")

	assert.Equal(t, StatusOK, verdict.Status)
	assert.False(t, verdict.Detected)
	assert.Equal(t, 0, verdict.Score)
}

func TestVirusTotalUnknownURLSubmits(t *testing.T) {
	var submitted bool
	c := newVTServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			submitted = true
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "https://new.example", r.PostForm.Get("url"))
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	verdict := c.Lookup(context.Background(), "https://new.example")

	assert.True(t, submitted)
	assert.Equal(t, StatusOK, verdict.Status, "submission still counts as checked")
	assert.False(t, verdict.Detected)
	assert.Equal(t, 0, verdict.Score)
}

func TestVirusTotalServerErrorFails(t *testing.T) {
	c := newVTServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	verdict := c.Lookup(context.Background(), "https://any.example")

	assert.Equal(t, StatusFailed, verdict.Status)
	assert.False(t, verdict.Detected)
}

func TestVirusTotalMalformedPayloadFails(t *testing.T) {
	c := newVTServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	})

	verdict := c.Lookup(context.Background(), "https://any.example")

	assert.Equal(t, StatusFailed, verdict.Status)
}

func TestVirusTotalMissingKeyNotConfigured(t *testing.T) {
	c := NewVirusTotalClient("", 2*time.Second)

	verdict := c.Lookup(context.Background(), "https://any.example")

	assert.Equal(t, StatusNotConfigured, verdict.Status)
}

func newSBServer(t *testing.T, handler http.HandlerFunc) *SafeBrowsingClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewSafeBrowsingClient("sb-key", 2*time.Second)
	c.baseURL = srv.URL
	return c
}

func TestSafeBrowsingFindMatches(t *testing.T) {
	c := newSBServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "sb-key", r.URL.Query().Get("key"))

		var req sbFindRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.ThreatInfo.ThreatEntries, 1)
		assert.Equal(t, "https://bad.example", req.ThreatInfo.ThreatEntries[0].URL)
		assert.Contains(t, req.ThreatInfo.ThreatTypes, "SOCIAL_ENGINEERING")
		assert.Equal(t, []string{"ANY_PLATFORM"}, req.ThreatInfo.PlatformTypes)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"matches":[{"threatType":"SOCIAL_ENGINEERING"},{"threatType":"MALWARE"}]}`))
	})

	match := c.Find(context.Background(), "https://bad.example")

	assert.Equal(t, StatusOK, match.Status)
	assert.True(t, match.Detected)
	assert.Equal(t, []string{"SOCIAL_ENGINEERING", "MALWARE"}, match.ThreatTypes,
		"threat types keep response order")
}

func TestSafeBrowsingNoMatches(t *testing.T) {
	c := newSBServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	match := c.Find(context.Background(), "https://good.example")

	assert.Equal(t, StatusOK, match.Status)
	assert.False(t, match.Detected)
	assert.Empty(t, match.ThreatTypes)
}

func TestSafeBrowsingErrorFails(t *testing.T) {
	c := newSBServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	match := c.Find(context.Background(), "https://any.example")

	assert.Equal(t, StatusFailed, match.Status)
}

func TestSafeBrowsingMissingKeyNotConfigured(t *testing.T) {
	c := NewSafeBrowsingClient("", 2*time.Second)

	match := c.Find(context.Background(), "https://any.example")

	assert.Equal(t, StatusNotConfigured, match.Status)
}

func TestCheckCombinesProviders(t *testing.T) {
	vtSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{"attributes":{"last_analysis_stats":{"malicious":2,"suspicious":0}}}}`))
	}))
	t.Cleanup(vtSrv.Close)
	sbSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"matches":[{"threatType":"MALWARE"}]}`))
	}))
	t.Cleanup(sbSrv.Close)

	c := NewClient("vt-key", "sb-key", 2*time.Second)
	c.virusTotal.baseURL = vtSrv.URL
	c.safeBrowsing.baseURL = sbSrv.URL

	result := c.Check(context.Background(), "https://bad.example")

	assert.True(t, result.VirusTotalDetected)
	assert.Equal(t, 2, result.VirusTotalScore)
	assert.True(t, result.SafeBrowsingThreat)
	assert.Equal(t, []string{"MALWARE"}, result.ThreatTypes)
	assert.Equal(t, []string{ProviderVirusTotal, ProviderSafeBrowsing}, result.CheckedBy)
}

func TestCheckFailuresAreIsolated(t *testing.T) {
	// VirusTotal is unreachable while Safe Browsing answers; only the
	// healthy provider lands in checked_by.
	sbSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(sbSrv.Close)

	c := NewClient("vt-key", "sb-key", 500*time.Millisecond)
	c.virusTotal.baseURL = "http://127.0.0.1:1"
	c.safeBrowsing.baseURL = sbSrv.URL

	result := c.Check(context.Background(), "https://any.example")

	assert.False(t, result.VirusTotalDetected)
	assert.Equal(t, 0, result.VirusTotalScore)
	assert.False(t, result.SafeBrowsingThreat)
	assert.Equal(t, []string{ProviderSafeBrowsing}, result.CheckedBy)
}

func TestCheckNothingConfigured(t *testing.T) {
	c := NewClient("", "", 2*time.Second)

	result := c.Check(context.Background(), "https://any.example")

	assert.False(t, result.VirusTotalDetected)
	assert.False(t, result.SafeBrowsingThreat)
	assert.Empty(t, result.CheckedBy)
	assert.NotNil(t, result.ThreatTypes)
}

func TestMissingKeyVerdictCarriesSentinel(t *testing.T) {
	vt := NewVirusTotalClient("", 2*time.Second)
	verdict := vt.Lookup(context.Background(), "https://any.example")
	assert.ErrorIs(t, verdict.Err, qrerrors.ErrProviderNotConfigured)

	sb := NewSafeBrowsingClient("", 2*time.Second)
	match := sb.Find(context.Background(), "https://any.example")
	assert.ErrorIs(t, match.Err, qrerrors.ErrProviderNotConfigured)
}

func TestVirusTotalFailureWrapsProviderError(t *testing.T) {
	c := NewVirusTotalClient("vt-key", 2*time.Second)
	c.baseURL = "http://127.0.0.1:1"

	verdict := c.Lookup(context.Background(), "https://any.example")

	require.NotEqual(t, StatusOK, verdict.Status)
	var provErr *qrerrors.ProviderError
	require.ErrorAs(t, verdict.Err, &provErr)
	assert.Equal(t, ProviderVirusTotal, provErr.Provider)
}

func TestSafeBrowsingFailureWrapsProviderError(t *testing.T) {
	c := newSBServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	match := c.Find(context.Background(), "https://any.example")

	require.Equal(t, StatusFailed, match.Status)
	var provErr *qrerrors.ProviderError
	require.ErrorAs(t, match.Err, &provErr)
	assert.Equal(t, ProviderSafeBrowsing, provErr.Provider)
}
