package indexer

import "io"

// Chunk represents a window of text from a PDF document.
type Chunk struct {
	Index  int    // Chunk index within the document (starts at 0)
	Source string // Base filename of the document
	Text   string
}

// UploadedFile is a file received for indexing.
type UploadedFile struct {
	Filename string
	Content  io.Reader
}

// SkippedFile records a file that could not be indexed and why.
type SkippedFile struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// IndexReport summarizes one indexing run over a notebook.
type IndexReport struct {
	Notebook  string        `json:"notebook"`
	Indexed   []string      `json:"indexed"`
	Unchanged []string      `json:"unchanged"`
	Skipped   []SkippedFile `json:"skipped"`
	Chunks    int           `json:"chunks"`
}
