package reputation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	qrerrors "qrguard/pkg/errors"
)

const safeBrowsingBaseURL = "https://safebrowsing.googleapis.com/v4"

// SafeBrowsingClient queries the Safe Browsing threat-match API.
type SafeBrowsingClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type sbThreatEntry struct {
	URL string `json:"url"`
}

type sbFindRequest struct {
	Client struct {
		ClientID      string `json:"clientId"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
	ThreatInfo struct {
		ThreatTypes      []string        `json:"threatTypes"`
		PlatformTypes    []string        `json:"platformTypes"`
		ThreatEntryTypes []string        `json:"threatEntryTypes"`
		ThreatEntries    []sbThreatEntry `json:"threatEntries"`
	} `json:"threatInfo"`
}

type sbFindResponse struct {
	Matches []struct {
		ThreatType string `json:"threatType"`
	} `json:"matches"`
}

// NewSafeBrowsingClient creates a client. An empty apiKey makes Find a
// no-op that reports not_configured.
func NewSafeBrowsingClient(apiKey string, timeout time.Duration) *SafeBrowsingClient {
	return &SafeBrowsingClient{
		baseURL: safeBrowsingBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Find posts a threat-match query for the single URL across the malware,
// social-engineering, unwanted-software and potentially-harmful-application
// threat types on any platform. Matched threat-type codes are collected in
// response order.
func (c *SafeBrowsingClient) Find(ctx context.Context, targetURL string) ThreatMatch {
	if c.apiKey == "" {
		return ThreatMatch{Status: StatusNotConfigured, Err: qrerrors.ErrProviderNotConfigured}
	}

	var findReq sbFindRequest
	findReq.Client.ClientID = "qrguard"
	findReq.Client.ClientVersion = "1.0"
	findReq.ThreatInfo.ThreatTypes = []string{
		"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE", "POTENTIALLY_HARMFUL_APPLICATION",
	}
	findReq.ThreatInfo.PlatformTypes = []string{"ANY_PLATFORM"}
	findReq.ThreatInfo.ThreatEntryTypes = []string{"URL"}
	findReq.ThreatInfo.ThreatEntries = []sbThreatEntry{{URL: targetURL}}

	body, err := json.Marshal(findReq)
	if err != nil {
		return ThreatMatch{Status: StatusFailed, Err: qrerrors.NewProviderError(ProviderSafeBrowsing, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/threatMatches:find?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return ThreatMatch{Status: StatusFailed, Err: qrerrors.NewProviderError(ProviderSafeBrowsing, err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ThreatMatch{Status: classifyStatus(err), Err: qrerrors.NewProviderError(ProviderSafeBrowsing, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ThreatMatch{
			Status: StatusFailed,
			Err:    qrerrors.NewProviderError(ProviderSafeBrowsing, fmt.Errorf("unexpected status %d", resp.StatusCode)),
		}
	}

	var findResp sbFindResponse
	if err := json.NewDecoder(resp.Body).Decode(&findResp); err != nil {
		return ThreatMatch{Status: StatusFailed, Err: qrerrors.NewProviderError(ProviderSafeBrowsing, err)}
	}

	match := ThreatMatch{Status: StatusOK, ThreatTypes: []string{}}
	for _, m := range findResp.Matches {
		match.ThreatTypes = append(match.ThreatTypes, m.ThreatType)
	}
	match.Detected = len(match.ThreatTypes) > 0
	return match
}
