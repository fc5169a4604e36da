package main

import (
	"fmt"

	dochttp "github.com/fwojciec/docview/http"
	"github.com/labstack/echo/v4"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	opts := []dochttp.Option{
		dochttp.WithName(c.Name),
		dochttp.WithHomePage(c.HomePage),
		dochttp.WithSearchLimit(c.SearchRPS, max(1, int(c.SearchRPS))),
		dochttp.WithLogger(deps.Logger),
	}
	if c.TrustProxy {
		opts = append(opts, dochttp.WithIPExtractor(echo.ExtractIPFromXFFHeader()))
	}
	if deps.Registry != nil {
		opts = append(opts, dochttp.WithGatherer(deps.Registry))
	}
	srv := dochttp.NewServer(deps.Root, deps.Search, deps.Renderer, opts...)

	fmt.Fprintf(deps.Stdout, "Serving %s on %s\n", deps.Root, c.Addr)
	return srv.ListenAndServe(deps.Ctx, c.Addr)
}
