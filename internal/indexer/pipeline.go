package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/extract"
	"notebook-ai/internal/llm"
	"notebook-ai/internal/notebook"
	"notebook-ai/internal/storage"
	"notebook-ai/internal/vectorstore"
)

// TextExtractor reads the text layer of a PDF on disk.
type TextExtractor interface {
	ExtractFile(ctx context.Context, path string) (extract.Result, error)
}

// Pipeline orchestrates the indexing of PDF files into SQLite and the vector store.
type Pipeline struct {
	notebooks    *notebook.Manager
	documentRepo storage.DocumentStore
	chunkRepo    storage.ChunkStore
	artifactRepo storage.ArtifactStore
	extractor    TextExtractor
	embedder     llm.Embedder
	vectorStore  vectorstore.VectorStore
	collection   string
	chunker      *RecursiveChunker
	workers      int
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	notebooks *notebook.Manager,
	documentRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	artifactRepo storage.ArtifactStore,
	extractor TextExtractor,
	embedder llm.Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	chunker *RecursiveChunker,
) *Pipeline {
	if chunker == nil {
		chunker = NewRecursiveChunker(DefaultChunkSize, DefaultChunkOverlap)
	}
	return &Pipeline{
		notebooks:    notebooks,
		documentRepo: documentRepo,
		chunkRepo:    chunkRepo,
		artifactRepo: artifactRepo,
		extractor:    extractor,
		embedder:     embedder,
		vectorStore:  vectorStore,
		collection:   collection,
		chunker:      chunker,
		workers:      min(4, runtime.NumCPU()),
	}
}

// sourceFile is a PDF already stored in the notebook directory.
type sourceFile struct {
	source string
	path   string
}

// pendingFile is a changed or new document waiting to be indexed.
type pendingFile struct {
	sourceFile
	hash     string
	existing *storage.DocumentRecord
	result   extract.Result
	err      error
}

// IndexFiles stores the uploads in the notebook directory and merges them into the
// notebook's index. Non-PDF uploads and unreadable PDFs are reported as skipped.
func (p *Pipeline) IndexFiles(ctx context.Context, nb *storage.NotebookRecord, files []UploadedFile) (*IndexReport, error) {
	logger := contextutil.LoggerFromContext(ctx)
	report := newReport(nb.Name)

	refs := make([]sourceFile, 0, len(files))
	for _, f := range files {
		source, path, err := p.notebooks.SaveUpload(ctx, nb.Name, f.Filename, f.Content)
		if err != nil {
			if errors.Is(err, notebook.ErrInvalidFile) {
				logger.WarnContext(ctx, "skipping upload", "filename", f.Filename, "error", err)
				report.Skipped = append(report.Skipped, SkippedFile{Source: f.Filename, Reason: err.Error()})
				continue
			}
			return nil, fmt.Errorf("failed to save %s: %w", f.Filename, err)
		}
		refs = append(refs, sourceFile{source: source, path: path})
	}

	if err := p.indexSources(ctx, nb, refs, report); err != nil {
		return nil, err
	}
	return report, nil
}

// IndexNotebook indexes every PDF currently stored in the notebook directory.
func (p *Pipeline) IndexNotebook(ctx context.Context, nb *storage.NotebookRecord) (*IndexReport, error) {
	files, err := p.notebooks.ScanNotebook(nb.Name)
	if err != nil {
		return nil, err
	}
	refs := make([]sourceFile, 0, len(files))
	for _, f := range files {
		refs = append(refs, sourceFile{source: f.Source, path: f.AbsPath})
	}

	report := newReport(nb.Name)
	if err := p.indexSources(ctx, nb, refs, report); err != nil {
		return nil, err
	}
	return report, nil
}

// IndexAll scans every notebook directory and indexes all PDF files found.
// Errors for individual notebooks are logged but don't stop the indexing process.
func (p *Pipeline) IndexAll(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	scannedFiles, err := p.notebooks.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan notebooks: %w", err)
	}

	var order []string
	byNotebook := make(map[string][]sourceFile)
	for _, f := range scannedFiles {
		if _, ok := byNotebook[f.Notebook]; !ok {
			order = append(order, f.Notebook)
		}
		byNotebook[f.Notebook] = append(byNotebook[f.Notebook], sourceFile{source: f.Source, path: f.AbsPath})
	}

	logger.InfoContext(ctx, "starting indexing", "total_files", len(scannedFiles), "notebooks", len(order))

	var successCount, errorCount int
	for _, name := range order {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		nb, err := p.notebooks.GetOrCreate(ctx, name)
		if err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to resolve notebook", "notebook", name, "error", err)
			continue
		}

		report := newReport(name)
		if err := p.indexSources(ctx, nb, byNotebook[name], report); err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to index notebook", "notebook", name, "error", err)
			continue
		}
		successCount++
	}

	logger.InfoContext(ctx, "indexing completed", "notebooks", len(order), "success", successCount, "errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("indexing completed with %d errors", errorCount)
	}
	return nil
}

// Sources returns the sorted source filenames indexed in the notebook.
// An unknown notebook has no sources.
func (p *Pipeline) Sources(ctx context.Context, name string) ([]string, error) {
	nb, err := p.notebooks.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, notebook.ErrInvalidName) {
			return []string{}, nil
		}
		return nil, err
	}
	return p.documentRepo.ListSources(ctx, nb.ID)
}

// DeleteNotebook removes the notebook's vectors, rows and stored files.
func (p *Pipeline) DeleteNotebook(ctx context.Context, nb *storage.NotebookRecord) error {
	if err := p.deleteVectors(ctx, nb); err != nil {
		return err
	}
	return p.notebooks.Delete(ctx, nb)
}

// ClearAll drops every indexed document, vector and cached artifact while keeping
// notebooks and files, so that IndexAll rebuilds the index from scratch.
func (p *Pipeline) ClearAll(ctx context.Context) error {
	notebooks, err := p.notebooks.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notebooks: %w", err)
	}
	for i := range notebooks {
		nb := &notebooks[i]
		if err := p.deleteVectors(ctx, nb); err != nil {
			return err
		}
		if err := p.documentRepo.DeleteByNotebook(ctx, nb.ID); err != nil {
			return fmt.Errorf("failed to clear notebook %s: %w", nb.Name, err)
		}
		if err := p.clearArtifacts(ctx, nb); err != nil {
			return err
		}
	}
	return nil
}

// clearArtifacts drops summaries and study guides generated from an older document set.
func (p *Pipeline) clearArtifacts(ctx context.Context, nb *storage.NotebookRecord) error {
	if p.artifactRepo == nil {
		return nil
	}
	if err := p.artifactRepo.DeleteByNotebook(ctx, nb.ID); err != nil {
		return fmt.Errorf("failed to clear cached artifacts of notebook %s: %w", nb.Name, err)
	}
	return nil
}

func (p *Pipeline) deleteVectors(ctx context.Context, nb *storage.NotebookRecord) error {
	ids, err := p.chunkRepo.ListIDsByNotebook(ctx, nb.ID)
	if err != nil {
		return fmt.Errorf("failed to list chunks of notebook %s: %w", nb.Name, err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := p.vectorStore.Delete(ctx, p.collection, ids); err != nil {
		return fmt.Errorf("failed to delete vectors of notebook %s: %w", nb.Name, err)
	}
	return nil
}

func (p *Pipeline) indexSources(ctx context.Context, nb *storage.NotebookRecord, refs []sourceFile, report *IndexReport) error {
	logger := contextutil.LoggerFromContext(ctx).With("notebook", nb.Name)

	// Hash and compare first so unchanged files are not parsed again.
	pending := make([]*pendingFile, 0, len(refs))
	for _, ref := range refs {
		content, err := os.ReadFile(ref.path)
		if err != nil {
			logger.WarnContext(ctx, "failed to read file", "source", ref.source, "error", err)
			report.Skipped = append(report.Skipped, SkippedFile{Source: ref.source, Reason: "cannot read file"})
			continue
		}
		sum := sha256.Sum256(content)
		hash := hex.EncodeToString(sum[:])

		existing, err := p.documentRepo.GetByNotebookAndSource(ctx, nb.ID, ref.source)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to check existing document: %w", err)
		}
		if existing != nil && existing.Hash == hash {
			logger.DebugContext(ctx, "skipping unchanged file", "source", ref.source, "hash", hash)
			report.Unchanged = append(report.Unchanged, ref.source)
			continue
		}
		pending = append(pending, &pendingFile{sourceFile: ref, hash: hash, existing: existing})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.workers))
	for _, pf := range pending {
		g.Go(func() error {
			pf.result, pf.err = p.extractor.ExtractFile(gctx, pf.path)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, pf := range pending {
		if pf.err != nil {
			logger.WarnContext(ctx, "failed to read pdf", "source", pf.source, "error", pf.err)
			report.Skipped = append(report.Skipped, SkippedFile{Source: pf.source, Reason: pf.err.Error()})
			continue
		}

		n, err := p.indexDocument(ctx, nb, pf)
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", pf.source, err)
		}
		if n == 0 {
			report.Skipped = append(report.Skipped, SkippedFile{Source: pf.source, Reason: "no chunks generated"})
			continue
		}
		report.Indexed = append(report.Indexed, pf.source)
		report.Chunks += n
	}

	if len(report.Indexed) > 0 {
		if err := p.clearArtifacts(ctx, nb); err != nil {
			return err
		}
	}
	if len(report.Indexed) == 0 && len(report.Unchanged) == 0 {
		logger.WarnContext(ctx, "no valid documents to index", "files", len(refs))
	}
	return nil
}

// indexDocument chunks, embeds and stores one extracted document, replacing any
// chunks stored for a previous version. Returns the number of chunks written.
func (p *Pipeline) indexDocument(ctx context.Context, nb *storage.NotebookRecord, pf *pendingFile) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chunks := p.chunker.Chunk(pf.result.Text, pf.source)
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "source", pf.source)
		return 0, nil
	}

	chunkTexts := make([]string, len(chunks))
	for i, chunk := range chunks {
		chunkTexts[i] = chunk.Text
	}

	// Embed before touching the stored version so a failure leaves the old index intact.
	embeddings, err := p.embedder.EmbedTexts(ctx, chunkTexts)
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	var docID string
	if pf.existing != nil {
		docID = pf.existing.ID

		oldChunkIDs, err := p.chunkRepo.ListIDsByDocument(ctx, docID)
		if err != nil {
			return 0, fmt.Errorf("failed to list old chunk IDs: %w", err)
		}
		if len(oldChunkIDs) > 0 {
			if err := p.vectorStore.Delete(ctx, p.collection, oldChunkIDs); err != nil {
				logger.WarnContext(ctx, "failed to delete old vectors", "error", err, "count", len(oldChunkIDs))
			}
			if err := p.chunkRepo.DeleteByDocument(ctx, docID); err != nil {
				return 0, fmt.Errorf("failed to delete old chunks: %w", err)
			}
		}
	} else {
		docID = uuid.New().String()
	}

	// The hash is recorded only once chunks and vectors are stored, so a failed
	// write is retried on the next upload instead of being reported as unchanged.
	doc := &storage.DocumentRecord{
		ID:         docID,
		NotebookID: nb.ID,
		Source:     pf.source,
		Path:       pf.path,
		PageCount:  pf.result.TotalPages,
		Content:    pf.result.Text,
	}
	if err := p.documentRepo.Upsert(ctx, doc); err != nil {
		return 0, fmt.Errorf("failed to upsert document: %w", err)
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		chunkID := generateStableChunkID(docID, chunk.Index)

		if err := p.chunkRepo.Insert(ctx, &storage.ChunkRecord{
			ID:         chunkID,
			DocumentID: docID,
			ChunkIndex: chunk.Index,
			Text:       chunk.Text,
		}); err != nil {
			return 0, fmt.Errorf("failed to insert chunk: %w", err)
		}

		points[i] = vectorstore.Point{
			ID:  chunkID,
			Vec: embeddings[i],
			Meta: map[string]any{
				vectorstore.MetaNotebookID: nb.ID,
				vectorstore.MetaNotebook:   nb.Name,
				vectorstore.MetaDocumentID: docID,
				vectorstore.MetaSource:     chunk.Source,
				vectorstore.MetaChunkIndex: chunk.Index,
			},
		}
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return 0, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	doc.Hash = pf.hash
	if err := p.documentRepo.Upsert(ctx, doc); err != nil {
		return 0, fmt.Errorf("failed to record document hash: %w", err)
	}

	logger.InfoContext(ctx, "indexed document",
		"source", pf.source,
		"chunks", len(chunks),
		"pages", pf.result.TotalPages,
		"skipped_pages", pf.result.SkippedPages,
	)
	return len(chunks), nil
}

var chunkIDNamespace = uuid.MustParse("6f1c1a7e-3b7d-4d8e-9a51-0c2f4b6d8e10")

// generateStableChunkID derives the chunk/point ID from the document ID and chunk index.
// Vector stores need UUIDs, so the ID is a name-based (SHA-1) UUID.
func generateStableChunkID(documentID string, index int) string {
	return uuid.NewSHA1(chunkIDNamespace, []byte(documentID+"#"+strconv.Itoa(index))).String()
}

func newReport(name string) *IndexReport {
	return &IndexReport{
		Notebook:  name,
		Indexed:   []string{},
		Unchanged: []string{},
		Skipped:   []SkippedFile{},
	}
}
