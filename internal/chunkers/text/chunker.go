// Package text implements the plain-text chunking strategy: greedy
// paragraph accumulation with a sentence and word cascade for oversized
// input, and a word-approximated overlap carried across chunk
// boundaries. Every other strategy degrades to this one on failure.
package text

import (
	"context"
	"regexp"
	"strings"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// maxTentativeHeading is the longest first line that may serve as a
// chunk's tentative heading.
const maxTentativeHeading = 100

// paragraphSeparator joins paragraphs inside an accumulated chunk.
const paragraphSeparator = "\n\n"

var (
	blankLinePattern = regexp.MustCompile(`\n\s*\n`)
	sentenceEnd      = regexp.MustCompile(`([.!?])\s+`)
)

// Chunker is the universal plain-text strategy. It is stateless; all
// behaviour comes from the per-call options.
type Chunker struct{}

// New creates a new plain-text chunker.
func New() *Chunker {
	return &Chunker{}
}

// Name returns the strategy name.
func (c *Chunker) Name() string {
	return string(domain.StrategyPlainText)
}

// Chunk splits each section (or the whole document when no sections
// exist) into size-bounded chunks. Empty input yields no chunks and no
// error; whitespace-only sections are skipped silently.
func (c *Chunker) Chunk(_ context.Context, doc *domain.Document, content *domain.ExtractedContent, opts domain.ChunkingOptions) ([]domain.Chunk, error) {
	if content.IsEmpty() {
		return nil, nil
	}
	opts = opts.Normalized()

	sections := content.Sections
	if len(sections) == 0 {
		sections = []domain.Section{{Content: content.FullText}}
	}

	var chunks []domain.Chunk
	for _, section := range sections {
		body := section.Content
		if section.Title != "" && !strings.Contains(body, section.Title) {
			body = section.Title + "\n\n" + body
		}
		if strings.TrimSpace(body) == "" {
			continue
		}

		for _, piece := range SplitText(body, opts) {
			chunk := domain.Chunk{
				DocumentID: doc.ID,
				Content:    piece,
				ChunkIndex: len(chunks),
				Type:       domain.ChunkText,
				Heading:    section.Title,
				PageNumber: section.PageNumber,
			}
			if chunk.Heading == "" {
				chunk.Heading = tentativeHeading(piece)
			}
			chunk.ID = domain.ChunkID(doc.ID, chunk.ChunkIndex)
			chunks = append(chunks, chunk)
		}
	}

	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks, nil
}

// SplitText splits flat text into size-bounded pieces along
// paragraph → sentence → word boundaries, seeding each new piece with
// the trailing words of the previous one. The word-boundary fallback
// guarantees termination even for a single enormous unbroken sentence.
func SplitText(text string, opts domain.ChunkingOptions) []string {
	opts = opts.Normalized()

	// Units are bounded so that an overlap-seeded buffer plus one unit
	// never exceeds MaxChunkSize.
	unitLimit := opts.MaxChunkSize - opts.OverlapSize - len(paragraphSeparator)
	if unitLimit < 1 {
		unitLimit = opts.MaxChunkSize
	}

	target := opts.TargetChunkSize
	if target > opts.MaxChunkSize {
		target = opts.MaxChunkSize
	}

	var pieces []string
	var buf strings.Builder
	unitsInBuf := 0

	flush := func() {
		piece := strings.TrimSpace(buf.String())
		buf.Reset()
		unitsInBuf = 0
		if piece == "" {
			return
		}
		pieces = append(pieces, piece)
		if seed := OverlapTail(piece, opts.OverlapSize); seed != "" {
			buf.WriteString(seed)
		}
	}

	// A buffer holding only the overlap seed is never flushed: the
	// seed exists to prefix real content, not to become a chunk.
	// Pieces pack toward the target size; MaxChunkSize is a hard
	// bound enforced even when the buffer is too small to flush.
	appendUnit := func(unit, sep string) {
		for {
			if unitsInBuf == 0 || buf.Len()+len(sep)+len(unit) <= target {
				break
			}
			if buf.Len() >= opts.MinChunkSize {
				flush()
				continue
			}
			if buf.Len()+len(sep)+len(unit) <= opts.MaxChunkSize {
				// Past the target but within the bound, and the
				// buffer is too small to stand on its own.
				break
			}
			room := opts.MaxChunkSize - buf.Len() - len(sep)
			if room < 1 {
				flush()
				continue
			}
			// Fill the undersized buffer up to the bound and carry
			// the rest of the unit into the next piece.
			spans := splitWords(unit, room)
			buf.WriteString(sep)
			buf.WriteString(spans[0])
			unitsInBuf++
			flush()
			if len(spans) < 2 {
				return
			}
			unit = strings.Join(spans[1:], " ")
			sep = " "
		}
		if buf.Len() > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(unit)
		unitsInBuf++
	}

	for _, paragraph := range splitParagraphs(text) {
		if len(paragraph) <= unitLimit {
			appendUnit(paragraph, paragraphSeparator)
			continue
		}
		// Oversized paragraph: cascade to sentences, then words.
		first := true
		for _, sentence := range splitSentences(paragraph) {
			sep := " "
			if first {
				sep = paragraphSeparator
				first = false
			}
			if len(sentence) <= unitLimit {
				appendUnit(sentence, sep)
				continue
			}
			for _, span := range splitWords(sentence, unitLimit) {
				appendUnit(span, sep)
				sep = " "
			}
		}
	}

	// The trailing remainder may be below MinChunkSize, but only as
	// the final piece. A leftover that is pure overlap seed is dropped.
	if unitsInBuf > 0 {
		if piece := strings.TrimSpace(buf.String()); piece != "" {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

// OverlapTail returns the trailing words of text whose combined length
// approximates overlapSize characters.
func OverlapTail(text string, overlapSize int) string {
	if overlapSize <= 0 {
		return ""
	}
	if len(text) <= overlapSize {
		return text
	}

	words := strings.Fields(text)
	total := 0
	start := len(words)
	for start > 0 {
		next := total + len(words[start-1])
		if total > 0 {
			next++ // joining space
		}
		if next > overlapSize {
			break
		}
		total = next
		start--
	}
	if start == len(words) {
		return ""
	}
	return strings.Join(words[start:], " ")
}

// splitParagraphs splits on blank-line boundaries and drops empty
// segments.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range blankLinePattern.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitSentences splits a paragraph at sentence-ending punctuation
// followed by whitespace. The terminator stays with its sentence.
func splitSentences(paragraph string) []string {
	marked := sentenceEnd.ReplaceAllString(paragraph, "$1\x00")
	var sentences []string
	for _, s := range strings.Split(marked, "\x00") {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// splitWords breaks a single oversized sentence into spans of at most
// limit characters without splitting individual words unless a single
// word itself exceeds the limit.
func splitWords(sentence string, limit int) []string {
	var spans []string
	var span strings.Builder

	for _, word := range strings.Fields(sentence) {
		if span.Len() > 0 && span.Len()+1+len(word) > limit {
			spans = append(spans, span.String())
			span.Reset()
		}
		for len(word) > limit {
			// Pathological single word longer than the limit.
			spans = append(spans, word[:limit])
			word = word[limit:]
		}
		if word == "" {
			continue
		}
		if span.Len() > 0 {
			span.WriteByte(' ')
		}
		span.WriteString(word)
	}
	if span.Len() > 0 {
		spans = append(spans, span.String())
	}
	return spans
}

// tentativeHeading promotes a short first line to a heading.
func tentativeHeading(piece string) string {
	line, _, _ := strings.Cut(piece, "\n")
	line = strings.TrimSpace(line)
	if line != "" && len(line) < maxTentativeHeading {
		return line
	}
	return ""
}
