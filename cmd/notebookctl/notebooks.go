package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"notebook-ai/internal/indexer"
)

// Run executes the create command.
func (c *CreateCmd) Run(deps *Dependencies) error {
	nb, err := deps.Notebooks.Create(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Created notebook %q\n", nb.Name)
	return nil
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	notebooks, err := deps.Notebooks.List(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	if len(notebooks) == 0 {
		fmt.Fprintln(deps.Stdout, "No notebooks. Create one with 'notebookctl create <name>'.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCREATED")
	for _, nb := range notebooks {
		fmt.Fprintf(w, "%s\t%s\n", nb.Name, nb.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return fmt.Errorf("use --force to confirm deletion")
	}
	if err := deps.Notebooks.Delete(deps.Ctx, c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted notebook %q\n", c.Name)
	return nil
}

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	files := make([]indexer.UploadedFile, 0, len(c.Files))
	for _, path := range c.Files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() {
			_ = f.Close()
		}()
		files = append(files, indexer.UploadedFile{Filename: filepath.Base(path), Content: f})
	}

	report, err := deps.Notebooks.Upload(deps.Ctx, c.Name, files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	for _, source := range report.Indexed {
		fmt.Fprintf(deps.Stdout, "indexed    %s\n", source)
	}
	for _, source := range report.Unchanged {
		fmt.Fprintf(deps.Stdout, "unchanged  %s\n", source)
	}
	for _, skipped := range report.Skipped {
		fmt.Fprintf(deps.Stdout, "skipped    %s (%s)\n", skipped.Source, skipped.Reason)
	}
	fmt.Fprintf(deps.Stdout, "%d chunks added to %q\n", report.Chunks, report.Notebook)
	return nil
}

// Run executes the reindex command.
func (c *ReindexCmd) Run(deps *Dependencies) error {
	if err := deps.Notebooks.Reindex(deps.Ctx, c.Force); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Re-indexing completed")
	return nil
}

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	sources, err := deps.Notebooks.Sources(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintf(deps.Stdout, "Notebook %q has no documents\n", c.Name)
		return nil
	}
	for _, source := range sources {
		fmt.Fprintln(deps.Stdout, source)
	}
	return nil
}
