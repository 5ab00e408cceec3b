package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/epidoc"
	"github.com/fwojciec/epidoc/exec"
	"github.com/fwojciec/epidoc/fs"
	"github.com/fwojciec/epidoc/goquery"
	"github.com/fwojciec/epidoc/htmltomarkdown"
	epislog "github.com/fwojciec/epidoc/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Factory overrides engine construction. Set before calling Run() for
	// end-to-end testing.
	Factory epidoc.EngineFactory

	// NewWriter overrides how --out destinations are written.
	NewWriter func(dir string) epidoc.FragmentWriter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("epidoc"),
		kong.Description("Render EpiDoc XML inscriptions as HTML fragments."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"stylesheet": epidoc.DefaultStylesheet,
			"dtd":        epidoc.DefaultDTD,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'epidoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Config = cli.config()
	if err := deps.Config.Validate(); err != nil {
		return err
	}

	deps.Factory = m.Factory
	if deps.Factory == nil {
		deps.Factory, err = engineFactory(cli, deps.Config, deps.Logger)
		if err != nil {
			return err
		}
	}
	deps.Extractor = epislog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)
	deps.Markdown = htmltomarkdown.NewConverter()
	deps.NewWriter = m.NewWriter
	if deps.NewWriter == nil {
		deps.NewWriter = func(dir string) epidoc.FragmentWriter { return fs.NewWriter(dir) }
	}

	return kongCtx.Run(deps)
}

// engineFactory returns a factory for the engine selected on the command
// line. Every engine is wrapped with logging.
func engineFactory(cli *CLI, cfg epidoc.Config, logger *slog.Logger) (epidoc.EngineFactory, error) {
	switch cli.Engine {
	case "xsltproc":
		searchPath := []string{filepath.Dir(cfg.DTDFile())}
		return func(dir string) (epidoc.Engine, error) {
			return epislog.NewLoggingEngine(exec.NewXsltprocEngine(dir, searchPath...), logger), nil
		}, nil
	case "saxon":
		if cli.SaxonJar == "" {
			return nil, epidoc.Errorf(epidoc.EINVALID, "--saxon-jar (or EPIDOC_SAXON_JAR) is required for the saxon engine")
		}
		jar := cli.SaxonJar
		return func(dir string) (epidoc.Engine, error) {
			return epislog.NewLoggingEngine(exec.NewSaxonEngine(dir, jar), logger), nil
		}, nil
	}
	return nil, epidoc.Errorf(epidoc.EINVALID, "unknown engine %q", cli.Engine)
}
