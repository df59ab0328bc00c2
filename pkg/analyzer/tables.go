package analyzer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables holds the static lookup lists the signal extractors match against.
// A Tables value is built once at startup and never mutated afterwards, so it
// is safe to share across concurrent scans without locking.
type Tables struct {
	Shorteners      []string `yaml:"shorteners"`
	BrandKeywords   []string `yaml:"brand_keywords"`
	TrustedDomains  []string `yaml:"trusted_domains"`
	PaymentKeywords []string `yaml:"payment_keywords"`
	ExecutableExts  []string `yaml:"executable_extensions"`
	ArchiveExts     []string `yaml:"archive_extensions"`
	DocumentExts    []string `yaml:"document_extensions"`
	SuspiciousTLDs  []string `yaml:"suspicious_tlds"`
}

// DefaultTables returns the built-in lookup lists.
func DefaultTables() *Tables {
	return &Tables{
		Shorteners: []string{
			"bit.ly", "tinyurl.com", "t.co", "goo.gl", "is.gd", "buff.ly",
			"ow.ly", "rebrand.ly", "cutt.ly", "short.io", "rb.gy", "tiny.cc",
			"shorturl.at", "v.gd", "qr.ae", "s.id",
		},
		BrandKeywords: []string{
			"paypal", "google", "facebook", "apple", "amazon", "microsoft",
			"netflix", "instagram", "whatsapp", "linkedin", "binance", "coinbase",
		},
		TrustedDomains: []string{
			"paypal.com", "google.com", "facebook.com", "apple.com",
			"amazon.com", "microsoft.com", "netflix.com", "instagram.com",
			"whatsapp.com", "linkedin.com", "binance.com", "coinbase.com",
		},
		PaymentKeywords: []string{
			"pay", "payment", "invoice", "billing", "btc", "bitcoin",
			"crypto", "wallet", "transfer", "upi",
		},
		ExecutableExts: []string{".apk", ".exe", ".msi", ".dmg", ".bat", ".scr"},
		ArchiveExts:    []string{".zip", ".rar", ".7z", ".tar.gz"},
		DocumentExts:   []string{".pdf", ".doc", ".docx", ".xls", ".xlsx"},
		SuspiciousTLDs: []string{
			".xyz", ".top", ".club", ".zip", ".review",
			".tk", ".ml", ".ga", ".cf", ".gq", ".buzz",
		},
	}
}

// LoadTables reads a YAML override file and merges it over the defaults.
// Only lists present in the file replace their default; the rest stay
// built-in. An empty path returns the defaults unchanged.
func LoadTables(path string) (*Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file %s: %w", path, err)
	}

	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse tables file %s: %w", path, err)
	}

	if len(overrides.Shorteners) > 0 {
		tables.Shorteners = overrides.Shorteners
	}
	if len(overrides.BrandKeywords) > 0 {
		tables.BrandKeywords = overrides.BrandKeywords
	}
	if len(overrides.TrustedDomains) > 0 {
		tables.TrustedDomains = overrides.TrustedDomains
	}
	if len(overrides.PaymentKeywords) > 0 {
		tables.PaymentKeywords = overrides.PaymentKeywords
	}
	if len(overrides.ExecutableExts) > 0 {
		tables.ExecutableExts = overrides.ExecutableExts
	}
	if len(overrides.ArchiveExts) > 0 {
		tables.ArchiveExts = overrides.ArchiveExts
	}
	if len(overrides.DocumentExts) > 0 {
		tables.DocumentExts = overrides.DocumentExts
	}
	if len(overrides.SuspiciousTLDs) > 0 {
		tables.SuspiciousTLDs = overrides.SuspiciousTLDs
	}

	return tables, nil
}

// fileExts returns the extensions counted as file downloads.
func (t *Tables) fileExts() []string {
	exts := make([]string, 0, len(t.ExecutableExts)+len(t.ArchiveExts))
	exts = append(exts, t.ExecutableExts...)
	exts = append(exts, t.ArchiveExts...)
	return exts
}
