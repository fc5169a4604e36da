package main

import (
	"fmt"

	"github.com/fwojciec/docview"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	var (
		matches docview.MatchSet
		err     error
	)
	switch c.Mode {
	case "name":
		matches, err = deps.Search.SearchByName(deps.Ctx, deps.Root, c.Term, c.CaseSensitive)
	case "content":
		matches, err = deps.Search.SearchByContent(deps.Ctx, deps.Root, c.Term, c.CaseSensitive)
	default:
		matches, err = deps.Search.Search(deps.Ctx, deps.Root, c.Term)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	if matches.Len() == 0 {
		fmt.Fprintf(deps.Stderr, "No documents match %q.\n", c.Term)
		return nil
	}
	for _, p := range matches.Paths() {
		fmt.Fprintln(deps.Stdout, p)
	}
	return nil
}
