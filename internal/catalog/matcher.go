// Package catalog scores free-text catalog candidates against grocery
// ingredient names and selects the best match per item. Matching is a
// pure computation: candidate retrieval lives behind the Searcher
// interface so the scoring logic never touches the network.
package catalog

import (
	"log"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Config holds the tunable matching tables. Values are injected rather
// than embedded so tests can pin controlled fixtures.
type Config struct {
	// Stopwords are brand or filler tokens that carry little signal
	// ("bio", "naturaplan"). They are down-weighted, not removed.
	Stopwords []string
	// Qualifiers are the disallow rules; any hit disqualifies a
	// candidate regardless of textual overlap.
	Qualifiers []QualifierRule
	// Threshold is the minimum accepted composite score, in (0, 1].
	Threshold float64
}

const (
	stopwordWeight = 0.3
	packagingBonus = 0.05
)

// DefaultConfig returns the built-in tables tuned for coop.ch listings.
func DefaultConfig() Config {
	return Config{
		Stopwords: []string{
			"bio", "naturaplan", "coop", "qualite", "prix", "garantie",
			"suisse", "ip", "extra", "fin", "gros",
		},
		Qualifiers: []QualifierRule{
			{Base: "lait", Modifier: "coco"},
			{Base: "lait", Modifier: "soja"},
			{Base: "lait", Modifier: "amande"},
			{Base: "lait", Modifier: "avoine"},
			{Base: "lait", Modifier: "riz"},
			{Base: "creme", Modifier: "soja"},
			{Base: "fromage", Modifier: "chevre"},
			{Base: "fromage", Modifier: "brebis"},
			{Base: "farine", Modifier: "chataigne"},
		},
		Threshold: 0.5,
	}
}

// Matcher scores candidates for one ingredient at a time. It holds no
// cross-item state, so items can be matched in any order and
// incrementally as lookups complete.
type Matcher struct {
	stopwords  map[string]struct{}
	qualifiers []qualifierRule
	threshold  float64
}

type qualifierRule struct {
	base     []string
	modifier []string
}

// NewMatcher builds a matcher from the given config.
func NewMatcher(cfg Config) *Matcher {
	stopwords := make(map[string]struct{}, len(cfg.Stopwords))
	for _, w := range cfg.Stopwords {
		stopwords[fold(w)] = struct{}{}
	}
	qualifiers := make([]qualifierRule, 0, len(cfg.Qualifiers))
	for _, q := range cfg.Qualifiers {
		qualifiers = append(qualifiers, qualifierRule{
			base:     tokenize(q.Base),
			modifier: tokenize(q.Modifier),
		})
	}
	threshold := cfg.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConfig().Threshold
	}
	return &Matcher{stopwords: stopwords, qualifiers: qualifiers, threshold: threshold}
}

// Match scores every candidate against the ingredient name and returns
// the winner, or an explicit no-match when the set is empty or nothing
// clears the threshold. Candidates without a name are skipped with a
// warning. Match never fails on well-formed input.
func (m *Matcher) Match(ingredientName string, candidates []Candidate) Result {
	ingTokens := tokenize(ingredientName)
	if len(ingTokens) == 0 {
		return Result{}
	}
	ingSet := tokenSet(ingTokens)

	totalWeight := 0.0
	for _, t := range ingTokens {
		totalWeight += m.weight(t)
	}

	var best *Candidate
	bestScore := 0.0

	for i := range candidates {
		c := &candidates[i]
		if strings.TrimSpace(c.Name) == "" {
			log.Printf("Warning: skipping malformed catalog candidate (no name, id=%q)", c.ID)
			continue
		}

		candTokens := tokenize(c.Name)
		candSet := tokenSet(candTokens)

		if m.disqualified(ingSet, candSet) {
			continue
		}

		shared := 0.0
		for t := range ingSet {
			if _, ok := candSet[t]; ok {
				shared += m.weight(t)
			}
		}
		score := shared / totalWeight
		if score > 0 && hasPackagingHint(c.Name) {
			score += packagingBonus
			if score > 1 {
				score = 1
			}
		}

		// Deterministic tie-break: smallest candidate identifier wins.
		if best == nil || score > bestScore || (score == bestScore && c.ID < best.ID) {
			best = c
			bestScore = score
		}
	}

	if best == nil || bestScore < m.threshold {
		return Result{}
	}
	return Result{Candidate: best, Score: bestScore, Matched: true}
}

// disqualified reports whether a qualifier rule fires: the ingredient
// names the base but not the modifier, and the candidate carries the
// modifier.
func (m *Matcher) disqualified(ing, cand map[string]struct{}) bool {
	for _, rule := range m.qualifiers {
		if !containsAll(ing, rule.base) {
			continue
		}
		if containsAll(ing, rule.modifier) {
			continue
		}
		if containsAll(cand, rule.modifier) {
			return true
		}
	}
	return false
}

func (m *Matcher) weight(token string) float64 {
	if _, ok := m.stopwords[token]; ok {
		return stopwordWeight
	}
	return 1.0
}

var packagingRe = regexp.MustCompile(`\d+\s*(x\s*)?(g|kg|ml|cl|dl|l)\b`)

// hasPackagingHint reports whether the candidate text carries a
// quantity/unit hint ("2x200g", "500 ml"). Used as a small tie-break
// bonus only.
func hasPackagingHint(name string) bool {
	return packagingRe.MatchString(fold(name))
}

// fold lowercases and strips combining accents so "Protéines" and
// "proteines" compare equal.
func fold(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tokenize splits folded text into letter/digit runs, dropping short
// glue words ("de", "a", "d").
func tokenize(s string) []string {
	fields := strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if f == "de" || f == "du" || f == "la" || f == "le" || f == "les" || f == "au" || f == "aux" || f == "en" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func containsAll(set map[string]struct{}, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
