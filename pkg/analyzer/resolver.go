package analyzer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"qrguard/internal/models"
	qrerrors "qrguard/pkg/errors"
	"qrguard/pkg/logger"

	"github.com/sirupsen/logrus"
)

// URLResolver follows redirects from a normalized URL to its final
// destination. Implementations never fail the pipeline: on any error the
// returned ResolvedURL falls back to the input URL with hop count 0.
type URLResolver interface {
	Resolve(ctx context.Context, rawURL string) models.ResolvedURL
}

// Resolver resolves URLs with lightweight HEAD requests. The body is never
// downloaded; only the final location and the hop count are of interest.
type Resolver struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	userAgent    string
	logger       *logger.Logger
}

// NewResolver creates a Resolver with the given per-resolution timeout,
// redirect cap and identifying user agent.
func NewResolver(timeout time.Duration, maxRedirects int, userAgent string) *Resolver {
	return &Resolver{
		client: &http.Client{
			// Redirects are followed manually so hops can be counted.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Transport: &http.Transport{
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				ForceAttemptHTTP2:     true,
			},
		},
		timeout:      timeout,
		maxRedirects: maxRedirects,
		userAgent:    userAgent,
		logger:       logger.NewLogger(logrus.InfoLevel),
	}
}

// Resolve follows redirects from rawURL and reports the final URL, the hop
// count and the outcome. Timeouts and network failures degrade to the input
// URL unchanged with hop count 0; a dead or blocking destination is a signal
// for the scorer, not a fatal error.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) models.ResolvedURL {
	resolved := models.ResolvedURL{
		Original: rawURL,
		Final:    rawURL,
		Scheme:   schemeOf(rawURL),
		Domain:   hostOf(rawURL),
		Outcome:  models.ResolveOK,
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	currentURL := rawURL
	hops := 0

	for {
		resp, err := r.do(ctx, http.MethodHead, currentURL)
		if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
			// Some servers reject HEAD outright; retry with GET.
			resp.Body.Close()
			resp, err = r.do(ctx, http.MethodGet, currentURL)
		}
		if err != nil {
			resolved.Outcome = classifyResolveError(err)
			r.logger.WithError(qrerrors.NewResolveError(rawURL, err)).
				WithFields(logrus.Fields{"outcome": resolved.Outcome}).
				Debug("Redirect resolution did not complete")
			return resolved
		}

		location := resp.Header.Get("Location")
		resp.Body.Close()

		if resp.StatusCode < 300 || resp.StatusCode >= 400 || location == "" {
			break
		}

		hops++
		if hops > r.maxRedirects {
			resolved.Outcome = models.ResolveFailed
			return resolved
		}

		locationURL, err := url.Parse(location)
		if err != nil {
			resolved.Outcome = models.ResolveFailed
			return resolved
		}

		// Location may be relative; resolve against the current URL.
		currentParsed, err := url.Parse(currentURL)
		if err != nil {
			resolved.Outcome = models.ResolveFailed
			return resolved
		}
		currentURL = currentParsed.ResolveReference(locationURL).String()
	}

	resolved.Final = currentURL
	resolved.Scheme = schemeOf(currentURL)
	resolved.Domain = hostOf(currentURL)
	resolved.RedirectCount = hops
	return resolved
}

func (r *Resolver) do(ctx context.Context, method, targetURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)
	return r.client.Do(req)
}

// classifyResolveError separates timeouts from other network or protocol
// failures so the orchestrator can record the right checked-item label.
func classifyResolveError(err error) models.ResolveOutcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.ResolveTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.ResolveTimeout
	}
	return models.ResolveFailed
}
