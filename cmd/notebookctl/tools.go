package main

import (
	"fmt"
	"os"

	"notebook-ai/internal/service"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	summary, err := deps.Tools.Summarize(deps.Ctx, service.ToolRequest{Notebook: c.Name, Source: c.Source})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, summary)
	return nil
}

// Run executes the study-guide command.
func (c *StudyGuideCmd) Run(deps *Dependencies) error {
	guide, err := deps.Tools.StudyGuide(deps.Ctx, service.ToolRequest{Notebook: c.Name, Source: c.Source})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, guide)
	return nil
}

// Run executes the speak command.
func (c *SpeakCmd) Run(deps *Dependencies) error {
	var (
		audio service.Audio
		err   error
	)
	switch {
	case c.Text != "":
		audio, err = deps.Tools.Speech(deps.Ctx, c.Text)
	case c.Name != "":
		audio, err = deps.Tools.SummarySpeech(deps.Ctx, service.ToolRequest{Notebook: c.Name, Source: c.Source})
	default:
		fmt.Fprintln(deps.Stderr, "error: give a notebook name or --text")
		return fmt.Errorf("nothing to speak")
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if err := os.WriteFile(c.Output, audio.WAV, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s (%d bytes)\n", c.Output, len(audio.WAV))
	return nil
}
