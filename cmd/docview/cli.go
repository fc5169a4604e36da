package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docview"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Root     string
	Filter   *docview.DocumentFilter
	Search   docview.SearchService
	Renderer docview.Renderer
	Markdown docview.MarkdownConverter
	Registry *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Root       string        `short:"r" env:"DOCVIEW_ROOT" default:"." help:"Directory containing the documents"`
	Ext        []string      `name:"ext" default:".adoc,.asciidoc,.asc" help:"Document extension (repeatable)"`
	Markdown   bool          `help:"Also render .md and .markdown documents"`
	Converter  string        `env:"DOCVIEW_CONVERTER" default:"asciidoc" help:"AsciiDoc converter command"`
	Timeout    time.Duration `default:"30s" help:"Maximum time for a single conversion"`
	Verbose    bool          `short:"v" help:"Enable debug logging"`
	SkipHidden bool          `name:"skip-hidden-dirs" help:"Do not search inside hidden directories such as .git"`

	Serve  ServeCmd  `cmd:"" help:"Serve the document viewer over HTTP"`
	Search SearchCmd `cmd:"" help:"Search documents by name and content"`
	Tree   TreeCmd   `cmd:"" help:"List every document under the root"`
	Render RenderCmd `cmd:"" help:"Render a document to standard output"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr       string  `default:":2959" help:"Address to listen on"`
	Name       string  `default:"AsciiDoc Viewer" help:"Title shown on every page"`
	HomePage   string  `name:"home-page" default:"home.adoc" help:"Document linked from the index page"`
	Sanitize   bool    `help:"Sanitize rendered document bodies"`
	SearchRPS  float64 `name:"search-rps" default:"5" help:"Searches allowed per second, 0 disables the limit"`
	TrustProxy bool    `name:"trust-proxy" help:"Take the client address from X-Forwarded-For when sent by a private-network proxy"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Term          string `arg:"" help:"Text to look for"`
	Mode          string `short:"m" enum:"all,name,content" default:"all" help:"Search names, contents or both (all is case-insensitive)"`
	CaseSensitive bool   `short:"c" name:"case-sensitive" help:"Match case exactly in name and content modes"`
}

// TreeCmd is the "tree" subcommand.
type TreeCmd struct{}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Name   string `arg:"" help:"Document path relative to the root"`
	Format string `short:"f" enum:"html,body,head,markdown" default:"html" help:"Output format"`
	Dark   bool   `help:"Use the dark theme"`
}
