package classification

import (
	"strings"

	"github.com/sisifus/jobflow/internal/model"
)

// DefaultGenericProviders returns consumer webmail domains that never
// identify a hiring company.
func DefaultGenericProviders() []string {
	return []string{
		"gmail.com", "googlemail.com", "yahoo.com", "yahoo.com.br",
		"outlook.com", "hotmail.com", "live.com", "msn.com",
		"icloud.com", "me.com", "aol.com", "mail.com", "gmx.com",
		"proton.me", "protonmail.com", "uol.com.br", "bol.com.br",
	}
}

// CompanyExtractor derives a display-ready organization name from
// sender identity. Best effort: third-party recruiting services may
// yield the recruiter's domain rather than the hiring company.
type CompanyExtractor struct {
	genericProviders map[string]bool
	platforms        *RelevanceFilter
}

// NewCompanyExtractor creates an extractor. The filter supplies the
// job-platform domain list so relay senders fall through to the
// display-name heuristic.
func NewCompanyExtractor(genericProviders []string, platforms *RelevanceFilter) *CompanyExtractor {
	generic := make(map[string]bool, len(genericProviders))
	for _, d := range genericProviders {
		generic[strings.ToLower(d)] = true
	}
	return &CompanyExtractor{genericProviders: generic, platforms: platforms}
}

// Extract returns the organization name for the email's sender, or
// model.UnknownCompany. Never fails: unparseable senders degrade to
// the sentinel.
func (e *CompanyExtractor) Extract(email model.Email) string {
	domain := email.Sender.Domain()

	if domain != "" && !e.genericProviders[domain] && !e.platforms.IsPlatformDomain(domain) {
		if name := companyFromDomain(domain); name != "" {
			return name
		}
	}

	// Generic provider, job-platform relay, or no usable domain: fall
	// back to the display name.
	if name := companyFromDisplayName(email.Sender.Name); name != "" {
		return name
	}
	return model.UnknownCompany
}

// secondLevelSuffixes are registry labels that precede a country TLD
// (acme.com.br, acme.co.uk) and carry no company signal.
var secondLevelSuffixes = map[string]bool{
	"com": true, "co": true, "org": true, "net": true, "gov": true, "edu": true,
}

// companyFromDomain normalizes the registrable segment of a domain
// into a display name: mail.acme-corp.com -> "Acme Corp".
func companyFromDomain(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return ""
	}
	candidate := labels[len(labels)-2]
	if secondLevelSuffixes[candidate] && len(labels) >= 3 {
		candidate = labels[len(labels)-3]
	}
	return titleWords(strings.NewReplacer("-", " ", "_", " ").Replace(candidate))
}

// companyFromDisplayName accepts an organization-like display name:
// non-empty, reasonably short, not an address, and containing at least
// one letter.
func companyFromDisplayName(name string) string {
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	if name == "" || len(name) >= 100 || strings.ContainsAny(name, "@<>") {
		return ""
	}
	hasLetter := false
	for _, r := range name {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return ""
	}
	return name
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
