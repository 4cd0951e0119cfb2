// Package extract implements the driven.Extractor port for local file
// formats. Extractors are deliberately thin: they surface structure
// (sections, tables, flags) and leave all splitting decisions to the
// chunking core.
//
// Document IDs are derived from the source URI so re-extracting the
// same file always yields the same identity.
package extract
