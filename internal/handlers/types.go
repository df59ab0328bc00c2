package handlers

// ScanRequest is the inbound payload: the raw string read from a QR code.
type ScanRequest struct {
	URL string `json:"url" binding:"required"`
}
