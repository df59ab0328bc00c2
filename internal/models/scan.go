package models

// ResolveOutcome describes how redirect resolution ended for a URL.
type ResolveOutcome string

const (
	ResolveOK      ResolveOutcome = "ok"
	ResolveTimeout ResolveOutcome = "timeout"
	ResolveFailed  ResolveOutcome = "failed"
)

// ResolvedURL is the destination of a scanned URL after following redirects.
// Final is always set: on timeout or failure it falls back to the normalized
// original URL and RedirectCount is 0.
type ResolvedURL struct {
	Original      string         `json:"original"`
	Final         string         `json:"final"`
	Scheme        string         `json:"scheme"`
	Domain        string         `json:"domain"`
	RedirectCount int            `json:"redirect_count"`
	Outcome       ResolveOutcome `json:"outcome"`
}

// SignalSet holds the boolean/optional signals extracted from a resolved URL.
// Every flag is derived from the resolved URL plus static lookup tables only.
type SignalSet struct {
	ShortURL           bool `json:"short_url"`
	BrandImpersonation bool `json:"brand_impersonation"`
	PaymentRequest     bool `json:"payment_request"`
	APKDownload        bool `json:"apk_download"`
	HTTPOnly           bool `json:"http_only"`
	RawIPHost          bool `json:"raw_ip_host"`
	LongURL            bool `json:"long_url"`
	DomainAgeDays      *int `json:"domain_age_days,omitempty"`
	RedirectCount      int  `json:"redirect_count"`
}

// ReputationResult aggregates the external threat-intelligence verdicts.
// A provider appears in CheckedBy only when its query returned a parseable
// response; failed calls contribute nothing.
type ReputationResult struct {
	VirusTotalDetected bool     `json:"virustotal_detected"`
	VirusTotalScore    int      `json:"virustotal_score"`
	SafeBrowsingThreat bool     `json:"safe_browsing_threat"`
	ThreatTypes        []string `json:"threat_types"`
	CheckedBy          []string `json:"checked_by"`
}

// ContentType classifies what the destination URL most likely serves.
type ContentType string

const (
	ContentWebpage            ContentType = "webpage"
	ContentExecutableDownload ContentType = "executable_download"
	ContentArchiveDownload    ContentType = "archive_download"
	ContentDocument           ContentType = "document"
	ContentLoginPage          ContentType = "login_page"
	ContentPaymentPage        ContentType = "payment_page"
	ContentFormPage           ContentType = "form_page"
)

// SafePreview is a sanitized description of the destination shown to the
// user before they decide to open the link.
type SafePreview struct {
	FinalDomain  string      `json:"final_domain"`
	HTTPS        bool        `json:"https"`
	ContentType  ContentType `json:"content_type"`
	Country      string      `json:"country"`
	FileDownload bool        `json:"file_download"`
}

// RiskLevel is the categorical band a risk score falls into.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskCaution RiskLevel = "caution"
	RiskDanger  RiskLevel = "danger"
)

// RiskAssessment is the combined numeric and categorical verdict.
// Score is always clamped to [0, 100].
type RiskAssessment struct {
	Score int       `json:"score"`
	Level RiskLevel `json:"level"`
}

// IntentCode identifies the inferred attacker goal for a URL.
type IntentCode string

const (
	IntentMalwareDistribution IntentCode = "malware_distribution"
	IntentCredentialTheft     IntentCode = "credential_theft"
	IntentFinancialFraud      IntentCode = "financial_fraud"
	IntentDataHarvesting      IntentCode = "data_harvesting"
	IntentPhishing            IntentCode = "phishing"
	IntentLegitimate          IntentCode = "legitimate"
	IntentUnknown             IntentCode = "unknown"
)

// Intent pairs an intent code with its human-readable label.
type Intent struct {
	Code  IntentCode `json:"code"`
	Label string     `json:"label"`
}

// ScanResult is the full assessment returned for a single scan. Everything
// is built fresh per request; nothing is persisted.
type ScanResult struct {
	ScanID       string           `json:"scan_id"`
	Status       string           `json:"status"`
	OriginalURL  string           `json:"original_url"`
	FinalURL     string           `json:"final_url"`
	Risk         RiskAssessment   `json:"risk"`
	Intent       Intent           `json:"intent"`
	Signals      SignalSet        `json:"signals"`
	Reputation   ReputationResult `json:"reputation"`
	Preview      SafePreview      `json:"safe_preview"`
	CheckedItems []string         `json:"checked_items"`
}
