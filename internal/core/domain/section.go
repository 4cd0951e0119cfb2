package domain

// DocumentSection is a reconstructed hierarchy node. It is built
// transiently per chunking call from flat extracted sections and is
// never persisted.
type DocumentSection struct {
	// Level is the depth in the reconstructed tree (0 = root tier).
	Level int

	// Heading is the section heading text.
	Heading string

	// SectionNumber is the parsed number from the heading (e.g. "3.4.2").
	// Empty when the heading carries no number.
	SectionNumber string

	// Content is the section body text.
	Content string

	// PageNumber is the page the section starts on (0 if unknown).
	PageNumber int

	// Table holds the section's table, when present.
	Table *TableData

	// Children are the sections attached beneath this one, in
	// document order.
	Children []*DocumentSection
}

// Walk visits the section and all descendants depth-first in document
// order, passing the ancestor heading chain (root → parent) to each
// visit. Walking stops early when visit returns false.
func (s *DocumentSection) Walk(ancestors []string, visit func(sec *DocumentSection, ancestors []string) bool) bool {
	if !visit(s, ancestors) {
		return false
	}
	childAncestors := ancestors
	if s.Heading != "" {
		childAncestors = append(append([]string{}, ancestors...), s.Heading)
	}
	for _, child := range s.Children {
		if !child.Walk(childAncestors, visit) {
			return false
		}
	}
	return true
}
