package metadata

import (
	"regexp"
	"strings"
)

// referencePatterns match cross-references to other parts of the same
// document. Each capture yields the canonical reference text.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(section|chapter|part|appendix)\s+(\d+(?:\.\d+)*|[A-Z])\b`),
	regexp.MustCompile(`(?i)\b(figure|fig\.?|table|diagram)\s+(\d+(?:[.-]\d+)*)`),
	regexp.MustCompile(`(?i)\bsee\s+(?:also\s+)?(?:page|p\.)\s+(\d+)`),
}

// References detects cross-references to sections, figures, tables,
// and pages within text. The result is de-duplicated and preserves
// first-occurrence order.
func References(text string) []string {
	if text == "" {
		return nil
	}

	var refs []string
	seen := make(map[string]struct{})

	for _, pattern := range referencePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			ref := canonicalRef(match)
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}

	return refs
}

// canonicalRef normalises whitespace and casing so "TABLE  3" and
// "Table 3" de-duplicate to the same reference.
func canonicalRef(match string) string {
	fields := strings.Fields(match)
	for i, f := range fields {
		f = strings.TrimSuffix(strings.ToLower(f), ".")
		if f != "" {
			f = strings.ToUpper(f[:1]) + f[1:]
		}
		fields[i] = f
	}
	return strings.Join(fields, " ")
}
