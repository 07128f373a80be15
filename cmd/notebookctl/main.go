package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"notebook-ai/internal/app"
	"notebook-ai/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		_ = m.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = m.Close()
}

// Main represents the program.
type Main struct {
	// LoadConfig reads the configuration. Replaced in tests.
	LoadConfig func() (*config.Config, error)

	App *app.App
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{LoadConfig: config.Load}
}

// Close releases the database and vector store.
func (m *Main) Close() error {
	if m.App != nil {
		err := m.App.Close()
		m.App = nil
		return err
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("notebookctl"),
		kong.Description("Manage PDF notebooks and ask questions about them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'notebookctl --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: configuration is read from the environment and an optional .env file")
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	models, err := app.NewModels(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create model clients: %w", err)
	}
	m.App, err = app.New(ctx, cfg, models)
	if err != nil {
		return err
	}

	deps.Notebooks = m.App.Notebooks
	deps.Chat = m.App.Chat
	deps.Tools = m.App.Tools

	return kongCtx.Run(deps)
}
