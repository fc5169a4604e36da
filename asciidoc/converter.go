// Package asciidoc implements docview.Converter by running an external
// AsciiDoc converter process.
package asciidoc

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/fwojciec/docview"
)

// DefaultCommand is the converter executable used when none is configured.
const DefaultCommand = "asciidoc"

// DefaultWaitDelay bounds how long a canceled conversion waits for output
// pipes held open by processes the converter spawned.
const DefaultWaitDelay = 2 * time.Second

// DefaultThemeArgs select the bundled stylesheets of the asciidoc tool.
var DefaultThemeArgs = map[docview.Theme][]string{
	docview.ThemeLight: {"--theme", "asciidoc-light.css"},
	docview.ThemeDark:  {"--theme", "asciidoc-dark.css"},
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	// Run executes name with args until it exits. A process that ran and
	// exited with a non-zero status is not an error: its code is returned.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, exitCode int, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct {
	// WaitDelay is passed to exec.Cmd. Zero means DefaultWaitDelay.
	WaitDelay time.Duration
}

// Run starts name and waits for it to exit. When ctx ends the process is
// killed and Run returns ctx.Err() within WaitDelay, even if descendants
// still hold its stdout or stderr open.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), stderr.String(), -1, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return stdout.String(), stderr.String(), -1, err
	}
	return stdout.String(), stderr.String(), 0, nil
}

// Ensure Converter implements docview.Converter at compile time.
var _ docview.Converter = (*Converter)(nil)

// Converter converts AsciiDoc documents to HTML by invoking a converter CLI
// as "<command> <theme args> -o <dst> <src>".
type Converter struct {
	Runner    CommandRunner
	Command   string
	ThemeArgs map[docview.Theme][]string
}

// Option configures a Converter.
type Option func(*Converter)

// WithCommand sets the converter executable.
// Defaults to DefaultCommand if not specified.
func WithCommand(name string) Option {
	return func(c *Converter) {
		c.Command = name
	}
}

// WithThemeArgs sets the arguments passed for each theme.
// Defaults to DefaultThemeArgs if not specified.
func WithThemeArgs(args map[docview.Theme][]string) Option {
	return func(c *Converter) {
		c.ThemeArgs = args
	}
}

// WithRunner sets the CommandRunner used to start the converter.
func WithRunner(r CommandRunner) Option {
	return func(c *Converter) {
		c.Runner = r
	}
}

// NewConverter creates a Converter that runs real processes.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		Runner:    &ExecRunner{},
		Command:   DefaultCommand,
		ThemeArgs: DefaultThemeArgs,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs the converter on src, writing HTML to dst.
func (c *Converter) Convert(ctx context.Context, src, dst string, opts docview.RenderOptions) (*docview.ConvertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	theme := opts.Theme
	if theme == "" {
		theme = docview.ThemeLight
	}
	args := append([]string(nil), c.ThemeArgs[theme]...)
	args = append(args, "-o", dst, src)

	stdout, stderr, code, err := c.Runner.Run(ctx, c.Command, args...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, docview.Errorf(docview.ERENDER, "%s timed out", c.Command)
		}
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, docview.Errorf(docview.ERENDER, "failed to run %s: %v", c.Command, err)
	}

	return &docview.ConvertResult{
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
	}, nil
}
