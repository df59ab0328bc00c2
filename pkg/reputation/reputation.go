// Package reputation queries external threat-intelligence providers for
// prior verdicts on a URL. Every call degrades gracefully: a missing
// credential, timeout or malformed payload yields a "not checked" outcome
// and never surfaces an error to the scan pipeline.
package reputation

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"qrguard/internal/models"
	"qrguard/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Provider names as they appear in checked_by.
const (
	ProviderVirusTotal   = "VirusTotal"
	ProviderSafeBrowsing = "Google Safe Browsing"
)

// Status is the explicit outcome kind of one external call.
type Status string

const (
	StatusOK            Status = "ok"
	StatusTimeout       Status = "timeout"
	StatusFailed        Status = "failed"
	StatusNotConfigured Status = "not_configured"
)

// URLVerdict is the outcome of the threat-database URL lookup. Err carries
// the underlying failure for every status other than ok.
type URLVerdict struct {
	Status   Status
	Detected bool
	Score    int
	Err      error
}

// ThreatMatch is the outcome of the safe-browsing threat-match lookup. Err
// carries the underlying failure for every status other than ok.
type ThreatMatch struct {
	Status      Status
	Detected    bool
	ThreatTypes []string
	Err         error
}

// Client fans a URL out to both providers and folds their verdicts into a
// single ReputationResult. The two sub-checks are independent, so they run
// concurrently; a failure in one never affects the other.
type Client struct {
	virusTotal   *VirusTotalClient
	safeBrowsing *SafeBrowsingClient
	logger       *logger.Logger
}

// NewClient builds a reputation client. Either API key may be empty, in
// which case that provider is a no-op reporting not_configured.
func NewClient(virusTotalKey, safeBrowsingKey string, timeout time.Duration) *Client {
	return &Client{
		virusTotal:   NewVirusTotalClient(virusTotalKey, timeout),
		safeBrowsing: NewSafeBrowsingClient(safeBrowsingKey, timeout),
		logger:       logger.NewLogger(logrus.InfoLevel),
	}
}

// Check queries both providers for targetURL. A provider lands in CheckedBy
// only when its call returned a parseable response; detection fields from
// failed calls are never used.
func (c *Client) Check(ctx context.Context, targetURL string) models.ReputationResult {
	var (
		wg      sync.WaitGroup
		verdict URLVerdict
		match   ThreatMatch
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		verdict = c.virusTotal.Lookup(ctx, targetURL)
	}()
	go func() {
		defer wg.Done()
		match = c.safeBrowsing.Find(ctx, targetURL)
	}()
	wg.Wait()

	result := models.ReputationResult{
		ThreatTypes: []string{},
		CheckedBy:   []string{},
	}

	if verdict.Status == StatusOK {
		result.VirusTotalDetected = verdict.Detected
		result.VirusTotalScore = verdict.Score
		result.CheckedBy = append(result.CheckedBy, ProviderVirusTotal)
	} else if verdict.Status != StatusNotConfigured {
		c.logger.WithProvider(ProviderVirusTotal).WithField("status", verdict.Status).
			WithError(verdict.Err).Debug("Reputation lookup skipped")
	}

	if match.Status == StatusOK {
		result.SafeBrowsingThreat = match.Detected
		result.ThreatTypes = append(result.ThreatTypes, match.ThreatTypes...)
		result.CheckedBy = append(result.CheckedBy, ProviderSafeBrowsing)
	} else if match.Status != StatusNotConfigured {
		c.logger.WithProvider(ProviderSafeBrowsing).WithField("status", match.Status).
			WithError(match.Err).Debug("Reputation lookup skipped")
	}

	return result
}

// classifyStatus separates timeouts from other call failures.
func classifyStatus(err error) Status {
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusTimeout
	}
	return StatusFailed
}
