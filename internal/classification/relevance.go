package classification

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sisifus/jobflow/internal/model"
)

// RelevanceConfig configures the job-relatedness gate.
type RelevanceConfig struct {
	// PlatformDomains are job-board and professional-network domains
	// whose mail is unconditionally in scope.
	PlatformDomains []string
	// Keywords mark a message as job-related when any one matches the
	// subject or bounded body. Case-insensitive regexes.
	Keywords []string
	// Exclusions are strong non-job signals (newsletters, shipping,
	// social). They only reinforce a negative: a message with two or
	// more exclusion hits and zero keyword hits is out of scope, which
	// is the same verdict the keyword scan alone would reach.
	Exclusions []string
	// BodyScanLimit bounds how many body characters any matcher sees.
	BodyScanLimit int
}

// DefaultRelevanceConfig returns the built-in gate configuration.
func DefaultRelevanceConfig() RelevanceConfig {
	return RelevanceConfig{
		PlatformDomains: DefaultPlatformDomains(),
		Keywords: []string{
			`job`, `application`, `interview`, `recruiter`, `hiring`,
			`position`, `candidate`, `opportunity`, `apply`, `career`,
			`resume`, `cv`, `employment`, `vacancy`, `role`,
			`offer`, `rejection`, `withdraw.*application`,
			`ats`, `applicant.*tracking`, `job.*board`,
			// Portuguese
			`vaga`, `vagas`, `emprego`, `trabalho`, `candidate-se`, `aplicar`,
		},
		Exclusions: []string{
			`newsletter`, `unsubscribe`, `subscription`, `promo`, `promotion`,
			`black.*friday`, `cyber.*monday`, `sale`, `discount`, `coupon`,
			`receipt`, `invoice`, `payment.*received`, `order.*confirmation`,
			`flight.*confirmation`, `hotel.*booking`, `airbnb.*reservation`,
			`shipping.*confirmation`, `package.*delivered`, `tracking.*number`,
			`password.*reset`, `verify.*email.*address`, `account.*security`,
			`instagram.*follow`, `facebook.*friend`, `twitter.*notification`,
		},
		BodyScanLimit: DefaultBodyScanLimit,
	}
}

// DefaultPlatformDomains returns the built-in job-platform domain list.
func DefaultPlatformDomains() []string {
	return []string{
		"linkedin.com", "indeed.com", "glassdoor.com", "monster.com",
		"ziprecruiter.com", "flexjobs.com", "hired.com", "wellfound.com",
		"myworkday.com", "greenhouse.io", "lever.co", "smartrecruiters.com",
		"ashbyhq.com", "workable.com", "icims.com", "gupy.io",
	}
}

// DefaultBodyScanLimit is the bounded-scan limit: the maximum number
// of body characters considered by any pattern match.
const DefaultBodyScanLimit = 5000

// RelevanceFilter decides whether a message is in scope for
// job-application tracking at all.
type RelevanceFilter struct {
	platformDomains map[string]bool
	keywords        []*regexp.Regexp
	exclusions      []*regexp.Regexp
	bodyLimit       int
}

// NewRelevanceFilter compiles the gate from its configuration. A
// malformed pattern is a fatal configuration error.
func NewRelevanceFilter(cfg RelevanceConfig) (*RelevanceFilter, error) {
	keywords, err := compileAll(cfg.Keywords)
	if err != nil {
		return nil, fmt.Errorf("relevance keywords: %w", err)
	}
	exclusions, err := compileAll(cfg.Exclusions)
	if err != nil {
		return nil, fmt.Errorf("relevance exclusions: %w", err)
	}

	domains := make(map[string]bool, len(cfg.PlatformDomains))
	for _, d := range cfg.PlatformDomains {
		domains[strings.ToLower(d)] = true
	}

	limit := cfg.BodyScanLimit
	if limit <= 0 {
		limit = DefaultBodyScanLimit
	}

	return &RelevanceFilter{
		platformDomains: domains,
		keywords:        keywords,
		exclusions:      exclusions,
		bodyLimit:       limit,
	}, nil
}

// IsRelevant reports whether the email enters lifecycle
// classification. Platform-domain senders are always relevant;
// otherwise any single keyword hit in subject or bounded body is
// enough.
func (f *RelevanceFilter) IsRelevant(email model.Email) bool {
	if f.IsPlatformDomain(email.Sender.Domain()) {
		return true
	}

	text := strings.ToLower(email.Subject + " " + boundedBody(email.Body, f.bodyLimit))

	matches := 0
	for _, re := range f.keywords {
		if re.MatchString(text) {
			matches++
			break // One hit marks relevance
		}
	}
	if matches > 0 {
		return true
	}

	// No keyword hit. Exclusion signals are informational only here;
	// the verdict is already negative.
	return false
}

// IsPlatformDomain reports whether the domain (or a parent of it)
// belongs to a known job platform.
func (f *RelevanceFilter) IsPlatformDomain(domain string) bool {
	if domain == "" {
		return false
	}
	if f.platformDomains[domain] {
		return true
	}
	for candidate := domain; ; {
		dot := strings.Index(candidate, ".")
		if dot < 0 {
			return false
		}
		candidate = candidate[dot+1:]
		if f.platformDomains[candidate] {
			return true
		}
	}
}

// ExclusionHits counts strong non-job signals in the message, used for
// diagnostics.
func (f *RelevanceFilter) ExclusionHits(email model.Email) int {
	text := strings.ToLower(email.Subject + " " + boundedBody(email.Body, f.bodyLimit))
	hits := 0
	for _, re := range f.exclusions {
		if re.MatchString(text) {
			hits++
		}
	}
	return hits
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		regexStr := p
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}
		re, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func boundedBody(body string, limit int) string {
	if len(body) > limit {
		return body[:limit]
	}
	return body
}
