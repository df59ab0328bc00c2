package handlers

import (
	"errors"

	"qrguard/internal/services"
	qrerrors "qrguard/pkg/errors"
	"qrguard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ScanHandler struct {
	scanService services.ScanServiceMethods
	logger      *logger.Logger
}

func NewScanHandler(scanService services.ScanServiceMethods) *ScanHandler {
	return &ScanHandler{scanService: scanService, logger: logger.NewLogger(logrus.InfoLevel)}
}

// Scan analyzes a single URL and returns the structured risk assessment.
func (h *ScanHandler) Scan(c *gin.Context) {
	var scanRequest ScanRequest
	if err := c.ShouldBindJSON(&scanRequest); err != nil {
		h.logger.Error("Failed to bind JSON:", logger.Fields{"error": err})
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), scanRequest.URL)
	if err != nil {
		if errors.Is(err, qrerrors.ErrEmptyInput) {
			c.JSON(400, gin.H{"error": "No URL provided"})
			return
		}
		h.logger.Error("Scan failed:", logger.Fields{"error": err})
		c.JSON(500, gin.H{"error": "Failed to scan URL"})
		return
	}

	c.JSON(200, result)
}

// Health reports service liveness; the client frontend polls it to keep
// the instance warm.
func (h *ScanHandler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// Decode is a placeholder: QR image decoding happens on the client, the
// server only ever receives the decoded string.
func (h *ScanHandler) Decode(c *gin.Context) {
	c.JSON(501, gin.H{"error": "Image decoding is not implemented; decode the QR code client-side and POST the URL to /api/scan"})
}
