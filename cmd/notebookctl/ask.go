package main

import (
	"bufio"
	"fmt"
	"strings"

	"notebook-ai/internal/rag"
	"notebook-ai/internal/service"
)

const (
	commandExit  = "/exit"
	commandReset = "/reset"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if strings.TrimSpace(c.Question) != "" {
		_, err := c.ask(deps, c.Session, c.Question)
		return err
	}
	return c.interactive(deps)
}

// interactive reads questions from stdin until EOF or /exit, keeping one session.
func (c *AskCmd) interactive(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Chatting with %q. Type %s to start over, %s to quit.\n", c.Name, commandReset, commandExit)

	sessionID := c.Session
	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case commandExit, "exit", "quit":
			return nil
		case commandReset:
			if sessionID != "" {
				if err := deps.Chat.Reset(deps.Ctx, sessionID); err != nil {
					fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
				}
			}
			sessionID = ""
			fmt.Fprintln(deps.Stdout, "Conversation cleared.")
			continue
		}

		id, err := c.ask(deps, sessionID, line)
		if err != nil {
			continue
		}
		sessionID = id
	}
}

func (c *AskCmd) ask(deps *Dependencies, sessionID, question string) (string, error) {
	resp, err := deps.Chat.Ask(deps.Ctx, service.AskRequest{
		Notebook:  c.Name,
		SessionID: sessionID,
		Question:  question,
		Source:    c.Source,
		Debug:     c.Debug,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return sessionID, err
	}

	fmt.Fprintln(deps.Stdout, resp.Answer)
	if len(resp.Sources) > 0 {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Sources:")
		for _, s := range resp.Sources {
			fmt.Fprintf(deps.Stdout, "  [%s] %s\n", s.Source, s.Snippet)
		}
	}
	if resp.Debug != nil {
		printDebug(deps, resp.Debug)
	}
	if c.Session == "" && sessionID == "" {
		fmt.Fprintf(deps.Stderr, "session: %s\n", resp.SessionID)
	}
	return resp.SessionID, nil
}

func printDebug(deps *Dependencies, info *rag.DebugInfo) {
	fmt.Fprintln(deps.Stderr, "--- debug ---")
	fmt.Fprintf(deps.Stderr, "standalone question: %s\n", info.StandaloneQuestion)
	fmt.Fprintf(deps.Stderr, "history messages: %d\n", info.HistoryMessages)
	for _, chunk := range info.RetrievedChunks {
		marker := " "
		if chunk.Used {
			marker = "*"
		}
		fmt.Fprintf(deps.Stderr, "%s %2d %-30s #%d vec=%.3f lex=%.3f final=%.3f\n",
			marker, chunk.Rank, chunk.Source, chunk.ChunkIndex, chunk.ScoreVector, chunk.ScoreLexical, chunk.ScoreFinal)
	}
}
