package services

import (
	"context"
	"strings"

	"qrguard/internal/models"
	qrerrors "qrguard/pkg/errors"
	"qrguard/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// URLAnalyzer is the scan pipeline the service drives.
type URLAnalyzer interface {
	Scan(ctx context.Context, raw string) *models.ScanResult
}

// ScanAlerter pushes an alert for a flagged scan result.
type ScanAlerter interface {
	SendScanAlert(result *models.ScanResult) error
}

type ScanServiceMethods interface {
	Scan(ctx context.Context, rawURL string) (*models.ScanResult, error)
}

type scanService struct {
	analyzer URLAnalyzer
	alerter  ScanAlerter
	logger   *logger.Logger
}

// NewScanService wraps the analyzer with input validation, scan ids and
// optional alerting. alerter may be nil.
func NewScanService(analyzer URLAnalyzer, alerter ScanAlerter) ScanServiceMethods {
	return &scanService{
		analyzer: analyzer,
		alerter:  alerter,
		logger:   logger.NewLogger(logrus.InfoLevel),
	}
}

func (s *scanService) Scan(ctx context.Context, rawURL string) (*models.ScanResult, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, qrerrors.ErrEmptyInput
	}

	result := s.analyzer.Scan(ctx, rawURL)
	result.ScanID = uuid.New().String()

	if result.Risk.Level == models.RiskDanger && s.alerter != nil {
		// Alerting is best effort and must never delay or fail the scan.
		go func(r *models.ScanResult) {
			defer func() {
				if rec := recover(); rec != nil {
					s.logger.Error("panic in scan alert", logger.Fields{"scan_id": r.ScanID, "panic": rec})
				}
			}()
			if err := s.alerter.SendScanAlert(r); err != nil {
				s.logger.Error("Failed to send scan alert", logger.Fields{"scan_id": r.ScanID, "error": err})
			}
		}(result)
	}

	return result, nil
}
