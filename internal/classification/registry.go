// Package classification implements the job-application lifecycle
// classification engine: an immutable pattern registry, a relevance
// gate, per-status rule evaluation, priority resolution, confidence
// scoring and company extraction.
package classification

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sisifus/jobflow/internal/model"
)

// Language tags the keyword set a rule targets.
type Language string

// Supported rule languages.
const (
	LangEnglish    Language = "en"
	LangPortuguese Language = "pt"
)

// Target selects which email fields a rule is evaluated against.
type Target string

// Rule targets.
const (
	TargetSubject Target = "subject"
	TargetBody    Target = "body"
	TargetBoth    Target = "both"
)

// PatternRule is a single keyword/regex rule inside a status
// definition. Regex is compiled case-insensitively at registry build.
// Weight scales the rule's confidence contribution and must be
// positive.
type PatternRule struct {
	Regex  string
	Lang   Language
	Target Target
	Weight float64
}

// StatusDefinition is the ordered rule set for one lifecycle status.
type StatusDefinition struct {
	Status model.Status
	Rules  []PatternRule
}

type compiledRule struct {
	re *regexp.Regexp
	PatternRule
}

type compiledDefinition struct {
	status model.Status
	rank   int
	rules  []compiledRule
}

// Registry is the process-wide table of status definitions. Built once
// at startup, never mutated afterwards, safe for concurrent reads.
type Registry struct {
	defs []compiledDefinition
}

// NewRegistry compiles the given definitions into a registry. Any rule
// that fails to compile, any unknown status, and any duplicate status
// abort construction: partial rule sets are never accepted.
func NewRegistry(defs []StatusDefinition) (*Registry, error) {
	compiled := make([]compiledDefinition, 0, len(defs))
	seen := make(map[model.Status]bool, len(defs))

	for _, def := range defs {
		rank, err := def.Status.Rank()
		if err != nil {
			return nil, fmt.Errorf("invalid status definition: %w", err)
		}
		if def.Status == model.StatusNoReply {
			return nil, fmt.Errorf("status %q is the absence of evidence and cannot carry rules", def.Status)
		}
		if seen[def.Status] {
			return nil, fmt.Errorf("duplicate definition for status %q", def.Status)
		}
		seen[def.Status] = true

		rules := make([]compiledRule, 0, len(def.Rules))
		for _, r := range def.Rules {
			if r.Weight <= 0 {
				return nil, fmt.Errorf("rule %q for status %q: weight must be positive", r.Regex, def.Status)
			}
			regexStr := r.Regex
			if !strings.HasPrefix(regexStr, "(?i)") {
				regexStr = "(?i)" + regexStr // Case-insensitive by default
			}
			re, err := regexp.Compile(regexStr)
			if err != nil {
				return nil, fmt.Errorf("failed to compile rule %q for status %q: %w", r.Regex, def.Status, err)
			}
			if r.Target == "" {
				r.Target = TargetBoth
			}
			rules = append(rules, compiledRule{re: re, PatternRule: r})
		}

		compiled = append(compiled, compiledDefinition{
			status: def.Status,
			rank:   rank,
			rules:  rules,
		})
	}

	// Highest precedence first, so evaluation can stop as soon as the
	// top of the ladder has matched.
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].rank < compiled[j].rank
	})

	return &Registry{defs: compiled}, nil
}

// DefinitionCount returns the number of status definitions loaded.
func (r *Registry) DefinitionCount() int {
	return len(r.defs)
}

// RuleCount returns the number of rules loaded for the given status.
func (r *Registry) RuleCount(status model.Status) int {
	for _, def := range r.defs {
		if def.status == status {
			return len(def.rules)
		}
	}
	return 0
}

// DefinitionInfo is a read-only summary of one loaded definition,
// used by the patterns command for auditing.
type DefinitionInfo struct {
	Languages []Language
	Patterns  []string
	Status    model.Status
	Rank      int
	RuleCount int
}

// Definitions returns summaries of all loaded definitions in
// precedence order.
func (r *Registry) Definitions() []DefinitionInfo {
	infos := make([]DefinitionInfo, 0, len(r.defs))
	for _, def := range r.defs {
		langs := make([]Language, 0, 2)
		seen := make(map[Language]bool)
		patterns := make([]string, 0, len(def.rules))
		for _, rule := range def.rules {
			lang := rule.Lang
			if lang == "" {
				lang = LangEnglish
			}
			if !seen[lang] {
				seen[lang] = true
				langs = append(langs, lang)
			}
			patterns = append(patterns, rule.Regex)
		}
		infos = append(infos, DefinitionInfo{
			Status:    def.status,
			Rank:      def.rank,
			RuleCount: len(def.rules),
			Languages: langs,
			Patterns:  patterns,
		})
	}
	return infos
}
