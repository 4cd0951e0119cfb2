// Package analysis classifies a document's structure to decide which
// chunking strategy applies. Detection is heuristic and approximate by
// design: detectors return confidence scores and the analyzer applies
// tunable thresholds, so individual heuristics can be tested and tuned
// without touching the orchestrator.
//
// The analyzer is deterministic, synchronous, and side-effect free.
// Its output is never persisted.
package analysis

import (
	"regexp"
	"strings"

	"github.com/quarry-labs/passage/internal/core/domain"
)

// DefaultThreshold converts a detector confidence into a boolean.
const DefaultThreshold = 0.5

// Complexity scoring cutoffs. The additive score counts text length,
// structural richness, and vocabulary size.
const (
	complexityHighCutoff   = 5
	complexityMediumCutoff = 2

	longTextChars = 20000
	someTextChars = 5000

	richVocabulary = 1000
	someVocabulary = 500
)

// Analyzer classifies document structure through its detector set.
type Analyzer struct {
	detectors  []Detector
	thresholds map[string]float64
}

// Option configures the analyzer.
type Option func(*Analyzer)

// WithDetector replaces or adds a detector.
func WithDetector(d Detector) Option {
	return func(a *Analyzer) {
		for i, existing := range a.detectors {
			if existing.Name() == d.Name() {
				a.detectors[i] = d
				return
			}
		}
		a.detectors = append(a.detectors, d)
	}
}

// WithThreshold overrides the boolean cutoff for one detector.
func WithThreshold(name string, threshold float64) Option {
	return func(a *Analyzer) {
		a.thresholds[name] = threshold
	}
}

// New creates an analyzer with the standard detector set.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		detectors: []Detector{
			HeadingDetector{},
			TableDetector{},
			ListDetector{},
			TechnicalManualDetector{},
		},
		thresholds: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Scores runs every detector and returns the raw confidence scores
// keyed by detector name.
func (a *Analyzer) Scores(text string) map[string]float64 {
	scores := make(map[string]float64, len(a.detectors))
	for _, d := range a.detectors {
		scores[d.Name()] = d.Detect(text)
	}
	return scores
}

// Analyze classifies the text's structure. The optional fileType hint
// marks declared tabular formats as table-bearing even when the text
// itself renders without delimiters.
func (a *Analyzer) Analyze(text string, fileType string) domain.StructureAnalysis {
	scores := a.Scores(text)

	result := domain.StructureAnalysis{
		HasHeadings:       a.passes(scores, DetectorHeadings),
		HasTables:         a.passes(scores, DetectorTables),
		HasLists:          a.passes(scores, DetectorLists),
		IsTechnicalManual: a.passes(scores, DetectorTechnicalManual),
	}

	switch strings.ToLower(fileType) {
	case "csv", "tsv", "xlsx", "xls":
		result.HasTables = true
	}

	result.Complexity = a.complexity(text, result)
	result.DocumentType = a.documentType(text, result)

	return result
}

// passes converts a detector score to a boolean using the configured
// threshold. Scores exactly at the threshold pass.
func (a *Analyzer) passes(scores map[string]float64, name string) bool {
	threshold, ok := a.thresholds[name]
	if !ok {
		threshold = DefaultThreshold
	}
	return scores[name] >= threshold
}

// complexity computes the additive complexity grade from text length,
// structural richness, and vocabulary size.
func (a *Analyzer) complexity(text string, s domain.StructureAnalysis) domain.Complexity {
	score := 0

	switch {
	case len(text) > longTextChars:
		score += 2
	case len(text) > someTextChars:
		score++
	}

	if s.HasHeadings {
		score++
	}
	if s.HasTables {
		score += 2
	}
	if s.HasLists {
		score++
	}

	switch vocab := uniqueWordCount(text); {
	case vocab > richVocabulary:
		score += 2
	case vocab > someVocabulary:
		score++
	}

	switch {
	case score >= complexityHighCutoff:
		return domain.ComplexityHigh
	case score >= complexityMediumCutoff:
		return domain.ComplexityMedium
	default:
		return domain.ComplexityLow
	}
}

var nonWordPattern = regexp.MustCompile(`[^a-z0-9]+`)

// uniqueWordCount counts distinct lowercase words in the text.
func uniqueWordCount(text string) int {
	seen := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(text)) {
		word := nonWordPattern.ReplaceAllString(field, "")
		if word != "" {
			seen[word] = struct{}{}
		}
	}
	return len(seen)
}

// typeKeywords maps document types to their signature vocabulary.
// Technical-manual detection takes precedence and is handled by its
// dedicated detector, not this table.
var typeKeywords = map[domain.DocumentType][]string{
	domain.TypeTrainingMaterial: {"training", "lesson", "exercise", "learning objective", "quiz", "instructor", "student"},
	domain.TypeReport:           {"report", "findings", "executive summary", "analysis", "methodology", "conclusion"},
	domain.TypePresentation:     {"slide", "agenda", "presentation", "speaker notes"},
	domain.TypePolicy:           {"policy", "compliance", "regulation", "directive", "shall not", "prohibited"},
}

// documentType classifies the document genre by keyword frequency.
// Technical-manual structure wins over any keyword-based class.
func (a *Analyzer) documentType(text string, s domain.StructureAnalysis) domain.DocumentType {
	if s.IsTechnicalManual {
		return domain.TypeTechnicalManual
	}

	lower := strings.ToLower(text)
	best := domain.TypeGeneral
	bestCount := 0

	// Iterate in a fixed order so ties resolve deterministically.
	for _, docType := range []domain.DocumentType{
		domain.TypeTrainingMaterial,
		domain.TypeReport,
		domain.TypePresentation,
		domain.TypePolicy,
	} {
		count := 0
		for _, keyword := range typeKeywords[docType] {
			count += strings.Count(lower, keyword)
		}
		if count > bestCount {
			best = docType
			bestCount = count
		}
	}

	// A single keyword hit is noise, not a classification.
	if bestCount < 2 {
		return domain.TypeGeneral
	}
	return best
}
