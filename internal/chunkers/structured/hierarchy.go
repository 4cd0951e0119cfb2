package structured

import (
	"regexp"
	"sort"
	"strings"

	"github.com/quarry-labs/passage/internal/core/domain"
)

var sectionNumberPattern = regexp.MustCompile(`(?i)^(?:section|chapter|part)?\s*(\d+(?:\.\d+)*)`)

// ParseSectionNumber extracts a dotted section number (e.g. "3.4.2")
// from a heading. Returns the empty string when the heading carries
// no number.
func ParseSectionNumber(heading string) string {
	m := sectionNumberPattern.FindStringSubmatch(strings.TrimSpace(heading))
	if m == nil {
		return ""
	}
	return m[1]
}

// flatNode pairs a built tree node with its document order and the
// level the extractor reported, which may be inconsistent.
type flatNode struct {
	order int
	level int
	node  *domain.DocumentSection
}

// BuildHierarchy reconstructs an ancestor tree from flat sections with
// possibly inconsistent heading levels.
//
// The minimum level present becomes the root tier. Each section at a
// deeper level is assigned to the closest preceding section (by
// document order) at the nearest shallower level present; a section
// with no resolvable parent is attached at the root so no content is
// lost. This greedy rule is a deliberate simplification: it will
// mis-attach sections in documents with irregular numbering and is
// best-effort, not ground truth.
func BuildHierarchy(sections []domain.Section) ([]*domain.DocumentSection, error) {
	if len(sections) == 0 {
		return nil, domain.ErrInvalidInput
	}

	nodes := make([]flatNode, 0, len(sections))
	levelSet := make(map[int]struct{})
	for i, s := range sections {
		nodes = append(nodes, flatNode{
			order: i,
			level: s.Level,
			node: &domain.DocumentSection{
				Heading:       s.Title,
				SectionNumber: ParseSectionNumber(s.Title),
				Content:       s.Content,
				PageNumber:    s.PageNumber,
				Table:         s.Table,
			},
		})
		levelSet[s.Level] = struct{}{}
	}

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	// tier maps an extractor level to its position in the sorted level
	// list; tier 0 is the root tier.
	tier := make(map[int]int, len(levels))
	for i, level := range levels {
		tier[level] = i
	}

	var roots []*domain.DocumentSection
	for i := range nodes {
		n := &nodes[i]
		t := tier[n.level]
		n.node.Level = t
		if t == 0 {
			roots = append(roots, n.node)
			continue
		}

		parent := nearestPreceding(nodes, n.order, levels[t-1])
		if parent == nil {
			// Orphan: no preceding section at the parent tier. Attach
			// at the root to avoid data loss.
			n.node.Level = 0
			roots = append(roots, n.node)
			continue
		}
		n.node.Level = parent.node.Level + 1
		parent.node.Children = append(parent.node.Children, n.node)
	}

	return roots, nil
}

// nearestPreceding finds the latest section before order at exactly
// the given extractor level.
func nearestPreceding(nodes []flatNode, order int, level int) *flatNode {
	for i := order - 1; i >= 0; i-- {
		if nodes[i].level == level {
			return &nodes[i]
		}
	}
	return nil
}
