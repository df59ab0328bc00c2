package reputation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	qrerrors "qrguard/pkg/errors"
)

const virusTotalBaseURL = "https://www.virustotal.com/api/v3"

// VirusTotalClient looks URLs up in the VirusTotal threat database.
type VirusTotalClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// vtURLObject mirrors the slice of the v3 URL object the scorer needs.
type vtURLObject struct {
	Data struct {
		Attributes struct {
			LastAnalysisStats struct {
				Malicious  int `json:"malicious"`
				Suspicious int `json:"suspicious"`
			} `json:"last_analysis_stats"`
		} `json:"attributes"`
	} `json:"data"`
}

// NewVirusTotalClient creates a client. An empty apiKey makes Lookup a
// no-op that reports not_configured.
func NewVirusTotalClient(apiKey string, timeout time.Duration) *VirusTotalClient {
	return &VirusTotalClient{
		baseURL: virusTotalBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// urlID computes the stable VirusTotal identifier for a URL: URL-safe
// base64 of the raw bytes with padding stripped.
func urlID(targetURL string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(targetURL))
}

// Lookup fetches the prior verdict for targetURL. A 200 extracts the
// malicious and suspicious counts from the latest analysis statistics. A 404
// means the URL is unknown; it is submitted for future analysis and the call
// still counts as checked since the provider answered. Anything else leaves
// the verdict unused.
func (c *VirusTotalClient) Lookup(ctx context.Context, targetURL string) URLVerdict {
	if c.apiKey == "" {
		return URLVerdict{Status: StatusNotConfigured, Err: qrerrors.ErrProviderNotConfigured}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/urls/"+urlID(targetURL), nil)
	if err != nil {
		return URLVerdict{Status: StatusFailed, Err: qrerrors.NewProviderError(ProviderVirusTotal, err)}
	}
	req.Header.Set("x-apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return URLVerdict{Status: classifyStatus(err), Err: qrerrors.NewProviderError(ProviderVirusTotal, err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var obj vtURLObject
		if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
			return URLVerdict{Status: StatusFailed, Err: qrerrors.NewProviderError(ProviderVirusTotal, err)}
		}
		detections := obj.Data.Attributes.LastAnalysisStats.Malicious +
			obj.Data.Attributes.LastAnalysisStats.Suspicious
		return URLVerdict{
			Status:   StatusOK,
			Detected: detections > 0,
			Score:    detections,
		}
	case http.StatusNotFound:
		// Unknown URL: submit it so a future scan has a verdict. The
		// submission is fire-and-forget; no detection data exists yet.
		if err := c.submit(ctx, targetURL); err != nil {
			return URLVerdict{Status: classifyStatus(err), Err: qrerrors.NewProviderError(ProviderVirusTotal, err)}
		}
		return URLVerdict{Status: StatusOK}
	default:
		return URLVerdict{
			Status: StatusFailed,
			Err:    qrerrors.NewProviderError(ProviderVirusTotal, fmt.Errorf("unexpected status %d", resp.StatusCode)),
		}
	}
}

func (c *VirusTotalClient) submit(ctx context.Context, targetURL string) error {
	form := url.Values{}
	form.Set("url", targetURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/urls",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("x-apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
