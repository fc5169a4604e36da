package main

import (
	"fmt"

	"github.com/fwojciec/docview"
)

// Run executes the tree command.
func (c *TreeCmd) Run(deps *Dependencies) error {
	matches, err := deps.Search.Tree(deps.Ctx, deps.Root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	if matches.Len() == 0 {
		fmt.Fprintf(deps.Stderr, "No documents found in %s.\n", deps.Root)
		return nil
	}
	for _, p := range matches.Paths() {
		fmt.Fprintln(deps.Stdout, p)
	}
	return nil
}
