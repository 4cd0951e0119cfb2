package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/passage/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDocument(id string) *domain.Document {
	return &domain.Document{
		ID:       id,
		Title:    "Pump Manual",
		CourseID: "course-1",
		FileType: "md",
		URI:      "/docs/manual.md",
		Status:   domain.StatusComplete,
		Metadata: map[string]any{"source": "import"},
	}
}

func testBatch(documentID string, n int) []domain.Chunk {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:               domain.ChunkID(documentID, i),
			DocumentID:       documentID,
			Content:          "chunk body",
			ChunkIndex:       i,
			TotalChunks:      n,
			Type:             domain.ChunkText,
			Heading:          "Overview",
			SectionHierarchy: []string{"Manual", "Overview"},
			SectionNumber:    "1.1",
			HierarchyLevel:   1,
			PageNumber:       i + 1,
			Keywords:         []string{"pump", "seal"},
			References:       []string{"Section 3"},
			ContentHash:      domain.HashContent("chunk body"),
			CreatedAt:        created,
			Metadata:         map[string]any{"strategy": "structured"},
		}
	}
	return chunks
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Contains(t, store.Path(), "passage.db")
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveDocument(context.Background(), testDocument("doc-1")))
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations or lose data.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Pump Manual", got.Title)
}

func TestStore_SaveDocument_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, store.SaveDocument(ctx, doc))
	firstCreated := doc.CreatedAt
	require.False(t, firstCreated.IsZero())

	doc.Title = "Updated Manual"
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated Manual", got.Title)
	assert.Equal(t, "import", got.Metadata["source"])
}

func TestStore_SaveDocument_Invalid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveDocument(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveDocument(ctx, &domain.Document{}), domain.ErrInvalidInput)
}

func TestStore_GetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDocument(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveChunks_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))
	batch := testBatch("doc-1", 3)
	require.NoError(t, store.SaveChunks(ctx, batch))

	got, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, batch[0].ID, first.ID)
	assert.Equal(t, batch[0].Content, first.Content)
	assert.Equal(t, domain.ChunkText, first.Type)
	assert.Equal(t, []string{"Manual", "Overview"}, first.SectionHierarchy)
	assert.Equal(t, "1.1", first.SectionNumber)
	assert.Equal(t, []string{"pump", "seal"}, first.Keywords)
	assert.Equal(t, []string{"Section 3"}, first.References)
	assert.Equal(t, batch[0].ContentHash, first.ContentHash)
	assert.Equal(t, "structured", first.Metadata["strategy"])
}

func TestStore_SaveChunks_ReplacesBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))
	require.NoError(t, store.SaveChunks(ctx, testBatch("doc-1", 5)))
	require.NoError(t, store.SaveChunks(ctx, testBatch("doc-1", 2)))

	got, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, got, 2, "re-save must replace the whole batch")
}

func TestStore_SaveChunks_MixedDocuments(t *testing.T) {
	store := newTestStore(t)

	mixed := []domain.Chunk{
		{ID: "a-chunk-0", DocumentID: "a"},
		{ID: "b-chunk-0", DocumentID: "b"},
	}
	assert.ErrorIs(t, store.SaveChunks(context.Background(), mixed), domain.ErrInvalidInput)
}

func TestStore_GetChunk(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))
	require.NoError(t, store.SaveChunks(ctx, testBatch("doc-1", 2)))

	got, err := store.GetChunk(ctx, "doc-1-chunk-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ChunkIndex)

	_, err = store.GetChunk(ctx, "doc-1-chunk-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ChunkHashes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))
	batch := testBatch("doc-1", 3)
	require.NoError(t, store.SaveChunks(ctx, batch))

	hashes, err := store.ChunkHashes(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, hashes, 3)
	for i, h := range hashes {
		assert.Equal(t, batch[i].ContentHash, h)
	}
}

func TestStore_DeleteDocument_CascadesChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1")))
	require.NoError(t, store.SaveChunks(ctx, testBatch("doc-1", 2)))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks, "chunks must cascade on document delete")

	assert.ErrorIs(t, store.DeleteDocument(ctx, "doc-1"), domain.ErrNotFound)
}

func TestStore_ListDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docA := testDocument("doc-a")
	docA.Title = "Alpha Manual"
	docB := testDocument("doc-b")
	docB.Title = "Beta Manual"
	docB.CourseID = "course-2"

	require.NoError(t, store.SaveDocument(ctx, docB))
	require.NoError(t, store.SaveDocument(ctx, docA))

	all, err := store.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha Manual", all[0].Title)
	assert.Equal(t, "Beta Manual", all[1].Title)

	filtered, err := store.ListDocuments(ctx, "course-2")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "doc-b", filtered[0].ID)
}
