package analyzer

import (
	"strings"

	"qrguard/internal/models"
)

// intentRule pairs a predicate with the intent it implies. The rule list is
// evaluated top-down with first-match-wins semantics, so ordering encodes
// priority: an APK that also impersonates a brand is malware distribution,
// never data harvesting.
type intentRule struct {
	code  models.IntentCode
	match func(s models.SignalSet, lowerURL string) bool
}

var intentRules = []intentRule{
	{models.IntentMalwareDistribution, func(s models.SignalSet, _ string) bool {
		return s.APKDownload
	}},
	{models.IntentCredentialTheft, func(s models.SignalSet, lowerURL string) bool {
		return s.BrandImpersonation && strings.Contains(lowerURL, "login")
	}},
	{models.IntentFinancialFraud, func(s models.SignalSet, _ string) bool {
		return s.PaymentRequest
	}},
	{models.IntentDataHarvesting, func(s models.SignalSet, _ string) bool {
		return s.BrandImpersonation
	}},
	{models.IntentPhishing, func(s models.SignalSet, _ string) bool {
		return s.ShortURL && s.HTTPOnly
	}},
	{models.IntentLegitimate, func(s models.SignalSet, _ string) bool {
		return !s.ShortURL && !s.HTTPOnly && s.RedirectCount <= 2
	}},
}

var intentLabels = map[models.IntentCode]string{
	models.IntentMalwareDistribution: "Tries to install an application on your device",
	models.IntentCredentialTheft:     "Designed to steal login credentials",
	models.IntentFinancialFraud:      "Attempts to solicit a payment or financial details",
	models.IntentDataHarvesting:      "Impersonates a known brand to collect personal data",
	models.IntentPhishing:            "Shows common phishing characteristics",
	models.IntentLegitimate:          "No signs of malicious intent",
	models.IntentUnknown:             "Intent could not be determined",
}

// ClassifyIntent assigns the attacker-intent category for the signal set.
func ClassifyIntent(signals models.SignalSet, finalURL string) models.Intent {
	lowerURL := strings.ToLower(finalURL)
	for _, rule := range intentRules {
		if rule.match(signals, lowerURL) {
			return models.Intent{Code: rule.code, Label: intentLabels[rule.code]}
		}
	}
	return models.Intent{Code: models.IntentUnknown, Label: intentLabels[models.IntentUnknown]}
}
