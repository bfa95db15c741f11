package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/goquery"
	pmhttp "github.com/fwojciec/pagemeta/http"
	pmslog "github.com/fwojciec/pagemeta/slog"
	"github.com/fwojciec/pagemeta/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" input.
	Stdin io.Reader

	// Fetcher overrides the HTTP fetcher for URL inputs. Used in tests.
	Fetcher pagemeta.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemeta"),
		kong.Description("Extract page metadata from HTML files, stdin, or URLs."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no input specified. Run 'pagemeta --help' for usage")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	table, err := loadTable(cli.Rules, cli.Replace)
	if err != nil {
		return err
	}

	extractor := goquery.NewPageExtractor(
		goquery.WithTable(table),
		goquery.WithErrorHandler(pmslog.FieldErrorLogger(logger)),
	)

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = pmhttp.NewFetcher(
			pmhttp.WithTimeout(cli.Timeout),
			pmhttp.WithRateLimit(cli.Rate),
		)
	}
	fetcher = pmslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	deps := &Dependencies{
		Ctx:       ctx,
		Stdin:     m.Stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		Extractor: pmslog.NewLoggingPageExtractor(extractor, logger),
		Fetcher:   fetcher,
	}

	return cli.Run(deps)
}

// loadTable returns the rule table selected by the flags.
func loadTable(rulesPath string, replace bool) (pagemeta.Table, error) {
	if rulesPath == "" {
		if replace {
			return nil, fmt.Errorf("--replace requires --rules")
		}
		return pagemeta.DefaultTable(), nil
	}

	rules, err := yaml.LoadTable(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	if replace {
		return rules, nil
	}
	return pagemeta.DefaultTable().With(rules...), nil
}
