// Package metadata derives lightweight retrieval metadata from chunk
// text: salient keywords and cross-references to other parts of the
// document. Everything here is deterministic and pure.
package metadata

import (
	"regexp"
	"sort"
	"strings"
)

// MaxKeywords caps the keyword list attached to a chunk.
const MaxKeywords = 15

// minKeywordLength filters out short function words that survive the
// stopword list.
const minKeywordLength = 3

var wordPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9_-]*`)

// stopwords are common English words that carry no retrieval signal.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "have": {}, "this": {},
	"that": {}, "with": {}, "from": {}, "they": {}, "will": {}, "would": {},
	"there": {}, "their": {}, "what": {}, "which": {}, "when": {}, "where": {},
	"than": {}, "then": {}, "them": {}, "these": {}, "those": {}, "into": {},
	"only": {}, "over": {}, "such": {}, "also": {}, "each": {}, "other": {},
	"more": {}, "most": {}, "some": {}, "very": {}, "must": {}, "shall": {},
	"should": {}, "could": {}, "may": {}, "might": {}, "been": {}, "being": {},
	"were": {}, "does": {}, "about": {}, "after": {}, "before": {}, "between": {},
	"during": {}, "under": {}, "above": {}, "below": {}, "both": {}, "any": {},
	"its": {}, "his": {}, "she": {}, "him": {}, "who": {}, "how": {}, "why": {},
	"use": {}, "used": {}, "using": {},
}

// Keywords extracts up to MaxKeywords salient terms from text, ranked
// by frequency with ties broken alphabetically so the result is stable.
// Acronyms keep their casing; everything else is lowercased.
func Keywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	counts := make(map[string]int)
	for _, raw := range wordPattern.FindAllString(text, -1) {
		word := normaliseWord(raw)
		if word == "" {
			continue
		}
		counts[word]++
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}

	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > MaxKeywords {
		terms = terms[:MaxKeywords]
	}
	return terms
}

// normaliseWord lowercases a candidate term and drops stopwords and
// short words. All-caps acronyms of 2+ letters are kept verbatim.
func normaliseWord(raw string) string {
	if len(raw) >= 2 && raw == strings.ToUpper(raw) && strings.IndexFunc(raw, isASCIILetter) >= 0 {
		return raw
	}
	word := strings.ToLower(raw)
	if len(word) < minKeywordLength {
		return ""
	}
	if _, ok := stopwords[word]; ok {
		return ""
	}
	return word
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
