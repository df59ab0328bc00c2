package analyzer

import (
	"regexp"
	"strings"

	"qrguard/internal/models"
)

// Each extractor below is a pure function of the resolved URL and domain
// plus the static lookup tables; none depends on another extractor's output.

var ipv4HostPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// lookalikeReplacer folds the digit substitutions attackers use to sneak
// brand names past naive matching (g00gle, paypa1).
var lookalikeReplacer = strings.NewReplacer("0", "o", "1", "l")

// matchesDomain reports whether domain equals entry or is a subdomain of it.
// Matching is anchored at the dot boundary: "evil-bit.ly.com" does not match
// "bit.ly" while "x.bit.ly" does.
func matchesDomain(domain, entry string) bool {
	return domain == entry || strings.HasSuffix(domain, "."+entry)
}

// isShortener reports whether the domain belongs to a known URL shortener.
func (a *Analyzer) isShortener(domain string) bool {
	for _, s := range a.tables.Shorteners {
		if matchesDomain(domain, s) {
			return true
		}
	}
	return false
}

// isTrustedDomain reports whether the domain is (a subdomain of) a known
// legitimate brand domain.
func (a *Analyzer) isTrustedDomain(domain string) bool {
	for _, d := range a.tables.TrustedDomains {
		if matchesDomain(domain, d) {
			return true
		}
	}
	return false
}

// hasBrandImpersonation reports whether the URL poses as a known brand
// without being hosted on that brand's real domain. The trusted-domain
// allow-list short-circuits first, then brand keywords are matched against
// the domain and against the lookalike-normalized full URL. The brand list
// is a slice so evaluation order is the same every run.
func (a *Analyzer) hasBrandImpersonation(finalURL, domain string) bool {
	if a.isTrustedDomain(domain) {
		return false
	}

	lowerDomain := strings.ToLower(domain)
	normalizedURL := lookalikeReplacer.Replace(strings.ToLower(finalURL))

	for _, brand := range a.tables.BrandKeywords {
		if strings.Contains(lowerDomain, brand) {
			return true
		}
		if strings.Contains(normalizedURL, brand) {
			return true
		}
	}
	return false
}

// hasPaymentRequest reports whether the URL carries payment-related keywords.
func (a *Analyzer) hasPaymentRequest(finalURL string) bool {
	lower := strings.ToLower(finalURL)
	for _, kw := range a.tables.PaymentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isAPKDownload reports whether the URL points at an Android package.
func (a *Analyzer) isAPKDownload(finalURL string) bool {
	lower := strings.ToLower(finalURL)
	return strings.HasSuffix(lower, ".apk") || strings.Contains(lower, ".apk?")
}

// isFileDownload reports whether the URL points at an executable or archive.
func (a *Analyzer) isFileDownload(finalURL string) bool {
	lower := strings.ToLower(finalURL)
	for _, ext := range a.tables.fileExts() {
		if strings.HasSuffix(lower, ext) || strings.Contains(lower, ext+"?") {
			return true
		}
	}
	return false
}

// domainAgeDays is the documented TLD heuristic, not a WHOIS lookup: a
// suspicious TLD is assumed to be 10 days old, anything else is unknown.
func (a *Analyzer) domainAgeDays(domain string) *int {
	for _, tld := range a.tables.SuspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			age := assumedSuspiciousTLDAge
			return &age
		}
	}
	return nil
}

const assumedSuspiciousTLDAge = 10

// isRawIPHost reports whether the host is an IPv4 literal instead of a
// domain name, a common trait of throwaway malware hosting.
func isRawIPHost(domain string) bool {
	return ipv4HostPattern.MatchString(domain)
}

const longURLThreshold = 75

// isLongURL reports whether the URL is long enough to suggest obfuscation
// (encoded payloads, stuffed tracking parameters).
func isLongURL(finalURL string) bool {
	return len(finalURL) > longURLThreshold
}

// contentRule maps a URL predicate to a content-type guess. Rules are
// evaluated top-down, first match wins.
type contentRule struct {
	contentType models.ContentType
	keywords    []string
	extensions  []string
}

// guessContentType classifies what the destination likely serves based on
// extension and path keywords. The cascade checks downloads before page
// types so "invoice.exe" never reads as a payment page.
func (a *Analyzer) guessContentType(finalURL string) models.ContentType {
	lower := strings.ToLower(finalURL)

	rules := []contentRule{
		{contentType: models.ContentExecutableDownload, extensions: a.tables.ExecutableExts},
		{contentType: models.ContentArchiveDownload, extensions: a.tables.ArchiveExts},
		{contentType: models.ContentDocument, extensions: a.tables.DocumentExts},
		{contentType: models.ContentLoginPage, keywords: []string{"login", "signin", "sign-in", "account", "verify"}},
		{contentType: models.ContentPaymentPage, keywords: []string{"pay", "checkout", "billing", "invoice"}},
		{contentType: models.ContentFormPage, keywords: []string{"form", "survey", "register"}},
	}

	for _, rule := range rules {
		for _, ext := range rule.extensions {
			if strings.HasSuffix(lower, ext) || strings.Contains(lower, ext+"?") {
				return rule.contentType
			}
		}
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.contentType
			}
		}
	}
	return models.ContentWebpage
}
