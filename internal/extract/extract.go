// Package extract pulls plain text out of uploaded PDF documents.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"notebook-ai/internal/contextutil"
)

var (
	// ErrUnreadablePDF is returned when the file is not a PDF the parser can open.
	ErrUnreadablePDF = errors.New("unreadable PDF")
	// ErrNoText is returned when no page of the PDF yields any text (scanned or image-only documents).
	ErrNoText = errors.New("no text content found in PDF")
)

// Result is the text extracted from one PDF.
type Result struct {
	// Text is the concatenation of every page's text, in page order.
	Text string
	// TotalPages is the number of pages in the document.
	TotalPages int
	// ExtractedPages is the number of pages that yielded text.
	ExtractedPages int
	// SkippedPages is the number of pages that were empty or failed to decode.
	SkippedPages int
}

// Extractor extracts text from PDF files.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile opens the PDF at path and extracts its text.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return e.Extract(ctx, f, info.Size())
}

// Extract reads a PDF of the given size from r.
// Pages are joined without a separator; a page that cannot be decoded contributes nothing.
func (e *Extractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (result Result, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			result = Result{}
			err = fmt.Errorf("%w: parser panic: %v", ErrUnreadablePDF, rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	result.TotalPages = reader.NumPage()

	var sb strings.Builder
	for i := 1; i <= result.TotalPages; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		text, ok := pageText(reader, i)
		if !ok {
			logger.Debug("skipping unreadable page", "page", i)
			result.SkippedPages++
			continue
		}
		if strings.TrimSpace(text) == "" {
			result.SkippedPages++
			continue
		}
		result.ExtractedPages++
		sb.WriteString(text)
	}

	result.Text = sb.String()
	if strings.TrimSpace(result.Text) == "" {
		return result, ErrNoText
	}
	return result, nil
}

// pageText returns the plain text of page i (1-indexed). ok is false when the page cannot be decoded.
func pageText(r *pdf.Reader, i int) (text string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			text, ok = "", false
		}
	}()

	page := r.Page(i)
	if page.V.IsNull() {
		return "", true
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return text, true
}
