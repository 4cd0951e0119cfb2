package text

import (
	"context"
	"strings"
	"testing"

	"github.com/quarry-labs/passage/internal/core/domain"
)

func testOptions() domain.ChunkingOptions {
	return domain.ChunkingOptions{
		TargetChunkSize: 200,
		MinChunkSize:    50,
		MaxChunkSize:    300,
		OverlapSize:     40,
	}
}

func TestChunk_EmptyContent(t *testing.T) {
	c := New()
	chunks, err := c.Chunk(context.Background(), &domain.Document{ID: "doc-1"}, &domain.ExtractedContent{}, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}

func TestChunk_WhitespaceOnly(t *testing.T) {
	c := New()
	content := &domain.ExtractedContent{FullText: "   \n\n\t  \n"}
	chunks, err := c.Chunk(context.Background(), &domain.Document{ID: "doc-1"}, content, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestChunk_SmallDocumentSingleChunk(t *testing.T) {
	c := New()
	content := &domain.ExtractedContent{FullText: "A short note about nothing in particular."}
	chunks, err := c.Chunk(context.Background(), &domain.Document{ID: "doc-1"}, content, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "A short note about nothing in particular." {
		t.Errorf("content altered: %q", chunks[0].Content)
	}
	if chunks[0].Type != domain.ChunkText {
		t.Errorf("expected text type, got %s", chunks[0].Type)
	}
}

func TestChunk_IndicesContiguousAndBounded(t *testing.T) {
	paragraph := strings.Repeat("Some filler sentence with several words in it. ", 8)
	var parts []string
	for i := 0; i < 12; i++ {
		parts = append(parts, paragraph)
	}
	content := &domain.ExtractedContent{FullText: strings.Join(parts, "\n\n")}

	opts := testOptions()
	c := New()
	chunks, err := c.Chunk(context.Background(), &domain.Document{ID: "doc-1"}, content, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, chunk.ChunkIndex)
		}
		if chunk.TotalChunks != len(chunks) {
			t.Errorf("chunk %d has total %d, want %d", i, chunk.TotalChunks, len(chunks))
		}
		if chunk.ID != domain.ChunkID("doc-1", i) {
			t.Errorf("chunk %d has ID %q", i, chunk.ID)
		}
		if len(chunk.Content) > opts.MaxChunkSize {
			t.Errorf("chunk %d exceeds max size: %d > %d", i, len(chunk.Content), opts.MaxChunkSize)
		}
	}
}

func TestSplitText_OverlapCarriedForward(t *testing.T) {
	paragraph := strings.Repeat("alpha beta gamma delta epsilon zeta. ", 6)
	text := paragraph + "\n\n" + paragraph + "\n\n" + paragraph

	opts := testOptions()
	pieces := SplitText(text, opts)
	if len(pieces) < 2 {
		t.Fatalf("expected multiple pieces, got %d", len(pieces))
	}

	for i := 1; i < len(pieces); i++ {
		tail := OverlapTail(pieces[i-1], opts.OverlapSize)
		if tail == "" {
			continue
		}
		if !strings.HasPrefix(pieces[i], tail) {
			t.Errorf("piece %d does not start with previous tail %q: %q", i, tail, pieces[i][:min(len(pieces[i]), 80)])
		}
	}
}

func TestSplitText_ZeroOverlapNeverExceedsMax(t *testing.T) {
	// A paragraph below MinChunkSize followed by one just under
	// MaxChunkSize: the undersized buffer must not absorb the second
	// paragraph whole.
	opts := domain.ChunkingOptions{
		TargetChunkSize: 1000,
		MinChunkSize:    100,
		MaxChunkSize:    1500,
		OverlapSize:     0,
	}
	short := strings.TrimSpace(strings.Repeat("ab ", 33))
	long := strings.TrimSpace(strings.Repeat("word ", 290))
	text := short + "\n\n" + long

	pieces := SplitText(text, opts)
	if len(pieces) < 2 {
		t.Fatalf("expected the oversized pair to split, got %d pieces", len(pieces))
	}
	for i, p := range pieces {
		if len(p) > opts.MaxChunkSize {
			t.Errorf("piece %d length %d exceeds max %d", i, len(p), opts.MaxChunkSize)
		}
	}

	// With zero overlap every input word must survive exactly once.
	var words []string
	for _, p := range pieces {
		words = append(words, strings.Fields(p)...)
	}
	if want := 33 + 290; len(words) != want {
		t.Errorf("got %d words across pieces, want %d", len(words), want)
	}
}

func TestSplitText_PacksTowardTarget(t *testing.T) {
	opts := domain.ChunkingOptions{
		TargetChunkSize: 200,
		MinChunkSize:    50,
		MaxChunkSize:    600,
		OverlapSize:     0,
	}
	paragraph := strings.TrimSpace(strings.Repeat("filler words here ", 9)) // ~160 chars
	var parts []string
	for i := 0; i < 4; i++ {
		parts = append(parts, paragraph)
	}

	pieces := SplitText(strings.Join(parts, "\n\n"), opts)
	if len(pieces) != 4 {
		t.Fatalf("expected one piece per paragraph near the target, got %d", len(pieces))
	}
	for i, p := range pieces {
		if len(p) > opts.TargetChunkSize {
			t.Errorf("piece %d length %d overshoots target %d", i, len(p), opts.TargetChunkSize)
		}
	}
}

func TestSplitText_GiantUnbrokenWordTerminates(t *testing.T) {
	text := strings.Repeat("x", 5000)
	opts := testOptions()
	pieces := SplitText(text, opts)
	if len(pieces) == 0 {
		t.Fatal("expected pieces for giant word")
	}
	var rebuilt strings.Builder
	for _, p := range pieces {
		if len(p) > opts.MaxChunkSize {
			t.Errorf("piece exceeds max size: %d", len(p))
		}
		rebuilt.WriteString(strings.ReplaceAll(p, " ", ""))
	}
	// Every original character must survive, duplicates from overlap aside.
	if !strings.Contains(rebuilt.String(), strings.Repeat("x", 1000)) {
		t.Error("giant word content lost")
	}
}

func TestOverlapTail(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		overlapSize int
		want        string
	}{
		{"zero overlap", "one two three", 0, ""},
		{"short text returned whole", "one two", 40, "one two"},
		{"tail approximates size", "aaaa bbbb cccc dddd eeee", 10, "dddd eeee"},
		{"first word longer than overlap", strings.Repeat("y", 50) + " tail", 6, "tail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapTail(tt.text, tt.overlapSize)
			if got != tt.want {
				t.Errorf("OverlapTail(%q, %d) = %q, want %q", tt.text, tt.overlapSize, got, tt.want)
			}
		})
	}
}

func TestChunk_SectionTitleBecomesHeading(t *testing.T) {
	content := &domain.ExtractedContent{
		Sections: []domain.Section{
			{Title: "Introduction", Content: "Welcome to the manual.", PageNumber: 3},
		},
	}
	c := New()
	chunks, err := c.Chunk(context.Background(), &domain.Document{ID: "doc-1"}, content, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Heading != "Introduction" {
		t.Errorf("heading = %q, want Introduction", chunks[0].Heading)
	}
	if chunks[0].PageNumber != 3 {
		t.Errorf("page = %d, want 3", chunks[0].PageNumber)
	}
	if !strings.Contains(chunks[0].Content, "Introduction") {
		t.Errorf("title not prepended to body: %q", chunks[0].Content)
	}
}

func TestSplitSentences_TerminatorStays(t *testing.T) {
	sentences := splitSentences("First one. Second one! Third one? Trailing")
	want := []string{"First one.", "Second one!", "Third one?", "Trailing"}
	if len(sentences) != len(want) {
		t.Fatalf("got %d sentences, want %d: %v", len(sentences), len(want), sentences)
	}
	for i := range want {
		if sentences[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, sentences[i], want[i])
		}
	}
}
