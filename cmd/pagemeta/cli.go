package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pagemeta"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor pagemeta.PageExtractor
	Fetcher   pagemeta.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Inputs      []string      `arg:"" help:"HTML file, '-' for stdin, or http(s) URL"`
	URL         string        `short:"u" env:"PAGEMETA_URL" help:"Page URL for file and stdin inputs"`
	Rules       string        `short:"r" env:"PAGEMETA_RULES" type:"path" help:"YAML rule file extending the default rules"`
	Replace     bool          `help:"Use only the rule file instead of extending the defaults"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent input limit"`
	Timeout     time.Duration `short:"t" default:"10s" help:"HTTP fetch timeout"`
	Rate        float64       `default:"1" help:"Requests per second per host (0 disables)"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}
