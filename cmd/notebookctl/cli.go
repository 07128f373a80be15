package main

import (
	"context"
	"errors"
	"io"

	"notebook-ai/internal/service"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Notebooks service.NotebookService
	Chat      service.ChatService
	Tools     service.ToolsService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Create     CreateCmd     `cmd:"" help:"Create an empty notebook"`
	List       ListCmd       `cmd:"" help:"List notebooks"`
	Delete     DeleteCmd     `cmd:"" help:"Delete a notebook, its files and its index"`
	Ingest     IngestCmd     `cmd:"" help:"Add PDF files to a notebook and index them"`
	Reindex    ReindexCmd    `cmd:"" help:"Re-index every notebook from the files on disk"`
	Sources    SourcesCmd    `cmd:"" help:"List the documents of a notebook"`
	Ask        AskCmd        `cmd:"" help:"Ask a question; starts an interactive chat when no question is given"`
	Summarize  SummarizeCmd  `cmd:"" help:"Summarize a notebook or one of its documents"`
	StudyGuide StudyGuideCmd `cmd:"" name:"study-guide" help:"Build question and answer pairs for studying"`
	Speak      SpeakCmd      `cmd:"" help:"Read the notebook summary or a text aloud into a WAV file"`
}

// CreateCmd is the "create" subcommand.
type CreateCmd struct {
	Name string `arg:"" help:"Notebook name"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Notebook name"`
	Force bool   `help:"Confirm deletion"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Name  string   `arg:"" help:"Notebook name (created if missing)"`
	Files []string `arg:"" type:"existingfile" help:"PDF files to add"`
}

// ReindexCmd is the "reindex" subcommand.
type ReindexCmd struct {
	Force bool `help:"Drop the current index first"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct {
	Name string `arg:"" help:"Notebook name"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Name     string `arg:"" help:"Notebook name"`
	Question string `arg:"" optional:"" help:"Question to ask"`
	Source   string `short:"s" help:"Only search this document"`
	Session  string `help:"Continue an existing chat session"`
	Debug    bool   `help:"Print the retrieved passages and their scores"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	Name   string `arg:"" help:"Notebook name"`
	Source string `short:"s" help:"Only summarize this document"`
}

// StudyGuideCmd is the "study-guide" subcommand.
type StudyGuideCmd struct {
	Name   string `arg:"" help:"Notebook name"`
	Source string `short:"s" help:"Only use this document"`
}

// SpeakCmd is the "speak" subcommand.
type SpeakCmd struct {
	Name   string `arg:"" optional:"" help:"Notebook whose summary is read"`
	Source string `short:"s" help:"Read the summary of this document"`
	Text   string `short:"t" help:"Read this text instead of a summary"`
	Output string `short:"o" default:"speech.wav" help:"Where to write the WAV file"`
}

// errorMessage turns service errors into a message for the terminal.
func errorMessage(err error) string {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Field + " " + validationErr.Message
	case errors.Is(err, service.ErrNotFound):
		return "not found. Use 'notebookctl list' to see available notebooks"
	case errors.Is(err, service.ErrConflict):
		return "a notebook with that name already exists"
	case errors.Is(err, service.ErrExternalService):
		return "the language model service failed: " + err.Error()
	default:
		return err.Error()
	}
}
