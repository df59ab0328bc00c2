package analyzer

import "qrguard/internal/models"

// scoreRule is one additive contribution to the risk score. Rules are
// independent; each fires at most once per scan.
type scoreRule struct {
	name   string
	points int
	match  func(s models.SignalSet) bool
}

var scoreRules = []scoreRule{
	{"apk_download", 40, func(s models.SignalSet) bool { return s.APKDownload }},
	{"brand_impersonation", 30, func(s models.SignalSet) bool { return s.BrandImpersonation }},
	{"payment_request", 20, func(s models.SignalSet) bool { return s.PaymentRequest }},
	{"http_only", 15, func(s models.SignalSet) bool { return s.HTTPOnly }},
	{"short_url", 10, func(s models.SignalSet) bool { return s.ShortURL }},
	{"young_domain", 20, func(s models.SignalSet) bool { return s.DomainAgeDays != nil && *s.DomainAgeDays < 30 }},
	{"redirects", 10, func(s models.SignalSet) bool { return s.RedirectCount > 2 }},
	{"redirects_excessive", 10, func(s models.SignalSet) bool { return s.RedirectCount > 5 }},
}

const (
	virusTotalWeight = 3
	virusTotalCap    = 30
	safeBrowsingFlat = 35
	cautionThreshold = 20
	dangerThreshold  = 50
)

// ScoreSignals combines the extracted signals and the reputation verdicts
// into a bounded score and risk level. The clamp to [0, 100] is applied once
// at the end, after all additions.
func ScoreSignals(signals models.SignalSet, rep models.ReputationResult) models.RiskAssessment {
	score := 0
	for _, rule := range scoreRules {
		if rule.match(signals) {
			score += rule.points
		}
	}

	if rep.VirusTotalDetected {
		score += min(rep.VirusTotalScore*virusTotalWeight, virusTotalCap)
	}
	if rep.SafeBrowsingThreat {
		score += safeBrowsingFlat
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return models.RiskAssessment{
		Score: score,
		Level: levelFor(score),
	}
}

// levelFor maps a clamped score to its risk band. Bands are inclusive-low,
// exclusive-high; the top band is open-ended.
func levelFor(score int) models.RiskLevel {
	switch {
	case score < cautionThreshold:
		return models.RiskSafe
	case score < dangerThreshold:
		return models.RiskCaution
	default:
		return models.RiskDanger
	}
}
