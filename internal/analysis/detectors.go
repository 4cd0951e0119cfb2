package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

// Detector examines raw text and reports a confidence score in [0, 1].
// Scores let thresholds be tuned and tested independently of the
// orchestrator; the analyzer converts them to booleans.
type Detector interface {
	// Name identifies the detector for threshold configuration.
	Name() string

	// Detect returns a confidence score for the detector's feature.
	Detect(text string) float64
}

// Detector names, used as threshold keys.
const (
	DetectorHeadings        = "headings"
	DetectorTables          = "tables"
	DetectorLists           = "lists"
	DetectorTechnicalManual = "technical_manual"
)

// maxHeadingLength bounds what a heading line may look like. Longer
// lines are body text regardless of shape.
const maxHeadingLength = 80

var (
	numberedHeadingPattern = regexp.MustCompile(`^\s*\d+(\.\d+)*[.)]?\s+\S`)
	colonHeadingPattern    = regexp.MustCompile(`^[A-Za-z][^.!?]{1,58}:$`)

	bulletPattern   = regexp.MustCompile(`^\s*[-*•]\s+\S`)
	numberedPattern = regexp.MustCompile(`^\s*\d+[.)]\s+\S`)
	letteredPattern = regexp.MustCompile(`^\s*[a-zA-Z][.)]\s+\S`)

	boxSeparatorPattern = regexp.MustCompile(`\+-{3,}\+`)

	subNumberedPattern  = regexp.MustCompile(`^\s*\d+\.\d+(\.\d+)*\s+\S`)
	stepPattern         = regexp.MustCompile(`(?i)\bstep\s+\d+\s*:`)
	advisoryPattern     = regexp.MustCompile(`(?m)^\s*(WARNING|CAUTION|NOTE)\b`)
	abbreviationPattern = regexp.MustCompile(`\b[A-Z]{2,}(?:-[A-Z0-9]+)+\b`)
)

// HeadingDetector recognises numbered-section lines, all-caps short
// lines, and colon-terminated short lines.
type HeadingDetector struct{}

func (HeadingDetector) Name() string { return DetectorHeadings }

// Detect returns 1.0 when any heading-shaped line is present, scaled
// down when only a single weak candidate exists.
func (HeadingDetector) Detect(text string) float64 {
	strong := 0
	weak := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) > maxHeadingLength {
			continue
		}
		switch {
		case numberedHeadingPattern.MatchString(trimmed):
			strong++
		case isAllCapsLine(trimmed):
			strong++
		case colonHeadingPattern.MatchString(trimmed):
			weak++
		}
	}
	if strong > 0 {
		return 1.0
	}
	if weak > 0 {
		return 0.5
	}
	return 0
}

// isAllCapsLine reports whether a short line is entirely uppercase
// letters, a common heading style in PDFs and scanned manuals.
func isAllCapsLine(line string) bool {
	letters := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters >= 3
}

// TableDetector recognises runs of pipe- or tab-delimited lines and
// ASCII box-drawing separators.
type TableDetector struct{}

func (TableDetector) Name() string { return DetectorTables }

// Detect scores the longest run of consecutive table-shaped lines
// against the three-line minimum a real table needs.
func (TableDetector) Detect(text string) float64 {
	if boxSeparatorPattern.MatchString(text) {
		return 1.0
	}

	longest, run := 0, 0
	for _, line := range strings.Split(text, "\n") {
		if looksLikeTableRow(line) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	score := float64(longest) / 3.0
	if score > 1 {
		score = 1
	}
	return score
}

// looksLikeTableRow reports whether a line has enough delimiters to be
// a table row.
func looksLikeTableRow(line string) bool {
	if strings.Count(line, "|") >= 2 {
		return true
	}
	return strings.Count(line, "\t") >= 2
}

// ListDetector recognises bullet, numbered, and lettered markers at
// line start.
type ListDetector struct{}

func (ListDetector) Name() string { return DetectorLists }

func (ListDetector) Detect(text string) float64 {
	items := 0
	for _, line := range strings.Split(text, "\n") {
		if bulletPattern.MatchString(line) || numberedPattern.MatchString(line) || letteredPattern.MatchString(line) {
			items++
			if items >= 2 {
				return 1.0
			}
		}
	}
	if items == 1 {
		return 0.5
	}
	return 0
}

// TechnicalManualDetector recognises procedural and technical-manual
// markers: numbered technical sections, STEP markers, advisory blocks,
// and dense hyphenated all-caps abbreviations.
type TechnicalManualDetector struct{}

func (TechnicalManualDetector) Name() string { return DetectorTechnicalManual }

func (TechnicalManualDetector) Detect(text string) float64 {
	score := 0.0

	if stepPattern.MatchString(text) {
		score += 0.5
	}
	if advisoryPattern.MatchString(text) {
		score += 0.4
	}
	if hasNumberedTechnicalSections(text) {
		score += 0.4
	}
	if len(abbreviationPattern.FindAllString(text, 6)) > 5 {
		score += 0.4
	}

	if score > 1 {
		score = 1
	}
	return score
}

// hasNumberedTechnicalSections looks for at least two numbered section
// lines with sub-numbering (e.g. "3.4.2 Fuel System"), the signature of
// formal technical documentation.
func hasNumberedTechnicalSections(text string) bool {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if subNumberedPattern.MatchString(line) {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}
