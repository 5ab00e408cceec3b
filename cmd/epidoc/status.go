package main

import (
	"fmt"

	"github.com/fwojciec/epidoc"
	"github.com/fwojciec/epidoc/convert"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	cfg.SkipIfUnavailable = true

	s, err := convert.Open(deps.Ctx, cfg, deps.Factory, deps.Extractor)
	if err != nil {
		return err
	}

	status, err := s.Status(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epidoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, status)
	fmt.Fprintf(deps.Stdout, "stylesheet: %s\n", cfg.StylesheetPath())
	fmt.Fprintf(deps.Stdout, "dtd: %s\n", cfg.DTDFile())
	fmt.Fprintf(deps.Stdout, "css: %s\n", cfg.CSSPath())
	return nil
}
