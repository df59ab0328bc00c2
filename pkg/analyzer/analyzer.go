// Package analyzer implements the heuristic risk-scoring engine: it takes a
// raw QR payload, resolves the destination, extracts threat signals,
// cross-references reputation providers and produces a structured assessment.
package analyzer

import (
	"context"
	"strings"
	"time"

	"qrguard/internal/models"
	"qrguard/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Checked-item labels recorded in the audit trail, in pipeline order.
const (
	checkShortener        = "URL shortener check"
	checkRedirect         = "Redirect behavior"
	checkRedirectTimeout  = "Redirect behavior (timeout)"
	checkRedirectFailed   = "Redirect behavior (failed)"
	checkHTTPS            = "HTTPS encryption"
	checkBrand            = "Brand impersonation"
	checkPayment          = "Payment requests"
	checkDownloads        = "File downloads"
	checkDomainReputation = "Domain reputation"
	checkScamDatabases    = "Known scam databases"
	checkURLStructure     = "URL structure analysis"
	checkDestination      = "Destination validation"
)

// ReputationChecker cross-references a URL against external threat feeds.
type ReputationChecker interface {
	Check(ctx context.Context, targetURL string) models.ReputationResult
}

// Analyzer runs the scan pipeline for a single URL. It holds no per-scan
// state, so one Analyzer serves concurrent requests.
type Analyzer struct {
	resolver   URLResolver
	reputation ReputationChecker
	tables     *Tables
	logger     *logger.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithResolver overrides the redirect resolver.
func WithResolver(r URLResolver) Option {
	return func(a *Analyzer) { a.resolver = r }
}

// WithReputation overrides the reputation checker.
func WithReputation(r ReputationChecker) Option {
	return func(a *Analyzer) { a.reputation = r }
}

// WithTables overrides the static lookup tables.
func WithTables(t *Tables) Option {
	return func(a *Analyzer) { a.tables = t }
}

// WithLogger overrides the logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// New creates an Analyzer with default tables, a 10 second resolver and no
// reputation providers; options override each piece.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		resolver:   NewResolver(10*time.Second, 10, "QRGuard-Scanner/1.0"),
		reputation: noReputation{},
		tables:     DefaultTables(),
		logger:     logger.NewLogger(logrus.InfoLevel),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// noReputation is the checker used when no provider is wired in.
type noReputation struct{}

func (noReputation) Check(context.Context, string) models.ReputationResult {
	return models.ReputationResult{ThreatTypes: []string{}, CheckedBy: []string{}}
}

// Scan runs the full pipeline for one raw payload: normalize, resolve,
// extract signals, query reputation, score, classify intent and assemble the
// result with its audit trail. It never fails: the worst case is a result
// with all signals false and intent unknown.
func (a *Analyzer) Scan(ctx context.Context, raw string) *models.ScanResult {
	checkedItems := make([]string, 0, 12)

	normalized := NormalizeURL(raw)

	// The shortener signal is read off the original domain; resolution
	// replaces it with the destination the shortener hides.
	originalDomain := hostOf(normalized)
	shortURL := a.isShortener(originalDomain)
	checkedItems = append(checkedItems, checkShortener)

	resolved := a.resolver.Resolve(ctx, normalized)
	switch resolved.Outcome {
	case models.ResolveTimeout:
		checkedItems = append(checkedItems, checkRedirectTimeout)
	case models.ResolveFailed:
		checkedItems = append(checkedItems, checkRedirectFailed)
	default:
		checkedItems = append(checkedItems, checkRedirect)
	}

	finalURL := resolved.Final
	finalDomain := resolved.Domain

	httpOnly := resolved.Scheme == "http"
	checkedItems = append(checkedItems, checkHTTPS)

	brand := a.hasBrandImpersonation(finalURL, finalDomain)
	checkedItems = append(checkedItems, checkBrand)

	payment := a.hasPaymentRequest(finalURL)
	checkedItems = append(checkedItems, checkPayment)

	apk := a.isAPKDownload(finalURL)
	fileDownload := a.isFileDownload(finalURL)
	checkedItems = append(checkedItems, checkDownloads)

	age := a.domainAgeDays(finalDomain)
	checkedItems = append(checkedItems, checkDomainReputation)

	signals := models.SignalSet{
		ShortURL:           shortURL,
		BrandImpersonation: brand,
		PaymentRequest:     payment,
		APKDownload:        apk,
		HTTPOnly:           httpOnly,
		RawIPHost:          isRawIPHost(finalDomain),
		LongURL:            isLongURL(finalURL),
		DomainAgeDays:      age,
		RedirectCount:      resolved.RedirectCount,
	}

	rep := a.reputation.Check(ctx, finalURL)

	risk := ScoreSignals(signals, rep)
	intent := ClassifyIntent(signals, finalURL)

	preview := models.SafePreview{
		FinalDomain:  finalDomain,
		HTTPS:        resolved.Scheme == "https",
		ContentType:  a.guessContentType(finalURL),
		Country:      "Unknown",
		FileDownload: fileDownload,
	}

	checkedItems = append(checkedItems, checkScamDatabases, checkURLStructure, checkDestination)
	if len(rep.CheckedBy) > 0 {
		checkedItems = append(checkedItems, "Threat intelligence: "+strings.Join(rep.CheckedBy, ", "))
	}

	a.logger.WithFields(logger.Fields{
		"url":    raw,
		"score":  risk.Score,
		"level":  risk.Level,
		"intent": intent.Code,
	}).Info("Scan completed")

	return &models.ScanResult{
		Status:       "completed",
		OriginalURL:  raw,
		FinalURL:     finalURL,
		Risk:         risk,
		Intent:       intent,
		Signals:      signals,
		Reputation:   rep,
		Preview:      preview,
		CheckedItems: checkedItems,
	}
}
