package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/asciidoc"
	"github.com/fwojciec/docview/bluemonday"
	"github.com/fwojciec/docview/fs"
	"github.com/fwojciec/docview/goldmark"
	"github.com/fwojciec/docview/goquery"
	"github.com/fwojciec/docview/htmltomarkdown"
	docprom "github.com/fwojciec/docview/prometheus"
	"github.com/fwojciec/docview/render"
	docslog "github.com/fwojciec/docview/slog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// maxprocs.Set only fails on an invalid GOMAXPROCS value, in which case
	// the runtime default stays in effect.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// YAML files consulted for flag values. Missing files are skipped.
	ConfigPaths []string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: defaultConfigPaths(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docview"),
		kong.Description("Browse, search and render AsciiDoc documents under a directory."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(yamlConfig, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docview --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose, cmd == "serve")

	filter := docview.NewDocumentFilter(cli.Ext...)
	if cli.Markdown {
		filter.Extensions = append(filter.Extensions, goldmark.Extensions...)
	}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("invalid --ext: %s", docview.ErrorMessage(err))
	}

	root, err := filepath.Abs(cli.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %q: %w", cli.Root, err)
	}
	if err := docview.CheckRoot(root); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}
	deps.Root = root
	deps.Filter = filter

	pipeline := &render.Pipeline{
		Filter:     filter,
		Converters: converters(filter, cli.Converter, cli.Markdown),
		Processor:  goquery.NewProcessor(),
		Timeout:    cli.Timeout,
		Logger:     deps.Logger,
	}

	var searchOpts []fs.Option
	if cli.SkipHidden {
		searchOpts = append(searchOpts, fs.WithSkipHiddenDirs())
	}
	deps.Search = docslog.NewLoggingSearchService(fs.NewSearchService(filter, searchOpts...), deps.Logger)
	deps.Renderer = docslog.NewLoggingRenderer(pipeline, deps.Logger)

	switch cmd {
	case "serve":
		if cli.Serve.Sanitize {
			pipeline.Sanitizer = bluemonday.NewSanitizer()
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := docprom.NewMetrics(reg)
		deps.Search = docprom.NewSearchService(deps.Search, metrics)
		deps.Renderer = docprom.NewRenderer(deps.Renderer, metrics)
		deps.Registry = reg
	case "render":
		deps.Markdown = htmltomarkdown.NewConverter()
	}

	return kongCtx.Run(deps)
}

// converters maps every eligible extension to the converter that renders it.
func converters(filter *docview.DocumentFilter, command string, markdown bool) map[string]docview.Converter {
	ascii := asciidoc.NewConverter(asciidoc.WithCommand(command))
	m := make(map[string]docview.Converter, len(filter.Extensions))
	for _, ext := range filter.Extensions {
		m[strings.ToLower(ext)] = ascii
	}
	if markdown {
		md := goldmark.NewConverter()
		for _, ext := range goldmark.Extensions {
			m[ext] = md
		}
	}
	return m
}

func newLogger(w io.Writer, verbose, serving bool) *slog.Logger {
	level := slog.LevelWarn
	if serving {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
