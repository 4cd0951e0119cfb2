package domain

// Complexity grades how structurally and lexically rich a document is.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// DocumentType is a coarse classification of the document's genre.
type DocumentType string

const (
	TypeTechnicalManual  DocumentType = "technical_manual"
	TypeTrainingMaterial DocumentType = "training_material"
	TypeReport           DocumentType = "report"
	TypePresentation     DocumentType = "presentation"
	TypePolicy           DocumentType = "policy"
	TypeGeneral          DocumentType = "general"
)

// ChunkingStrategy names the strategy the orchestrator selected.
type ChunkingStrategy string

const (
	StrategyStructured ChunkingStrategy = "structured"
	StrategyTableHeavy ChunkingStrategy = "table_heavy"
	StrategyTableOnly  ChunkingStrategy = "table_only"
	StrategyPlainText  ChunkingStrategy = "plain_text"
)

// StructureAnalysis is the analyzer's classification of a document.
// It exists purely to pick a chunking strategy and is never persisted.
type StructureAnalysis struct {
	HasHeadings       bool
	HasTables         bool
	HasLists          bool
	IsTechnicalManual bool
	Complexity        Complexity
	DocumentType      DocumentType
}
