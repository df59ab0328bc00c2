package analyzer

import (
	"testing"

	"qrguard/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name     string
		signals  models.SignalSet
		finalURL string
		expected models.IntentCode
	}{
		{
			name:     "APK download",
			signals:  models.SignalSet{APKDownload: true},
			finalURL: "https://example.com/app.apk",
			expected: models.IntentMalwareDistribution,
		},
		{
			name:     "APK wins over brand impersonation",
			signals:  models.SignalSet{APKDownload: true, BrandImpersonation: true},
			finalURL: "https://paypal-app.xyz/app.apk",
			expected: models.IntentMalwareDistribution,
		},
		{
			name:     "Brand plus login substring",
			signals:  models.SignalSet{BrandImpersonation: true},
			finalURL: "https://paypal-secure-login.xyz/signin",
			expected: models.IntentCredentialTheft,
		},
		{
			name:     "Login match is case insensitive",
			signals:  models.SignalSet{BrandImpersonation: true},
			finalURL: "https://facebook-help.net/LOGIN",
			expected: models.IntentCredentialTheft,
		},
		{
			name:     "Payment request",
			signals:  models.SignalSet{PaymentRequest: true},
			finalURL: "https://example.com/invoice",
			expected: models.IntentFinancialFraud,
		},
		{
			name:     "Payment wins over brand without login",
			signals:  models.SignalSet{PaymentRequest: true, BrandImpersonation: true},
			finalURL: "https://amazon-rewards.net/claim",
			expected: models.IntentFinancialFraud,
		},
		{
			name:     "Brand alone without login",
			signals:  models.SignalSet{BrandImpersonation: true},
			finalURL: "https://netflix-prizes.net/win",
			expected: models.IntentDataHarvesting,
		},
		{
			name:     "Shortener over plain HTTP",
			signals:  models.SignalSet{ShortURL: true, HTTPOnly: true},
			finalURL: "http://example.com",
			expected: models.IntentPhishing,
		},
		{
			name:     "Clean URL is legitimate",
			signals:  models.SignalSet{},
			finalURL: "https://example.com/blog",
			expected: models.IntentLegitimate,
		},
		{
			name:     "Two redirects still legitimate",
			signals:  models.SignalSet{RedirectCount: 2},
			finalURL: "https://example.com",
			expected: models.IntentLegitimate,
		},
		{
			name:     "Shortener alone over HTTPS is unknown",
			signals:  models.SignalSet{ShortURL: true},
			finalURL: "https://example.com",
			expected: models.IntentUnknown,
		},
		{
			name:     "HTTP only alone is unknown",
			signals:  models.SignalSet{HTTPOnly: true},
			finalURL: "http://example.com",
			expected: models.IntentUnknown,
		},
		{
			name:     "Many redirects alone is unknown",
			signals:  models.SignalSet{RedirectCount: 3},
			finalURL: "https://example.com",
			expected: models.IntentUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ClassifyIntent(tt.signals, tt.finalURL)
			assert.Equal(t, tt.expected, intent.Code)
			assert.Equal(t, intentLabels[tt.expected], intent.Label)
			assert.NotEmpty(t, intent.Label)
		})
	}
}
