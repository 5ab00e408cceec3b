package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fwojciec/epidoc"
	"github.com/fwojciec/epidoc/convert"
	"golang.org/x/sync/errgroup"
)

// convertResult holds the outcome of converting a single file.
type convertResult struct {
	file    string
	content string
	err     error
}

// Run executes the convert command. Each file is converted in its own
// session so engine error logs are never shared between files.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]convertResult, len(c.Files))

	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, file := range c.Files {
		g.Go(func() error {
			content, err := c.convertFile(gctx, deps, file)
			results[i] = convertResult{file: file, content: content, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var writer epidoc.FragmentWriter
	if c.Out != "" {
		writer = deps.NewWriter(c.Out)
	}

	ext := ".html"
	if c.Format == "markdown" {
		ext = ".md"
	}

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			c.printError(deps, r.file, r.err)
			continue
		}

		if writer == nil {
			fmt.Fprintln(deps.Stdout, r.content)
			continue
		}

		f := &epidoc.Fragment{Source: r.file, Content: r.content, Extension: ext}
		if err := writer.WriteFragment(deps.Ctx, f); err != nil {
			failed++
			c.printError(deps, r.file, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Files))
	}
	return nil
}

// convertFile runs one file through a fresh session.
func (c *ConvertCmd) convertFile(ctx context.Context, deps *Dependencies, file string) (string, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	s, err := convert.Open(ctx, deps.Config, deps.Factory, deps.Extractor)
	if err != nil {
		return "", err
	}
	s.Logger = deps.Logger.With("file", file, "session", s.ID)

	if err := s.ImportString(string(raw)); err != nil {
		return "", err
	}

	out, err := s.Convert(ctx, c.Full)
	if err != nil {
		return "", err
	}

	if c.Format == "markdown" {
		return deps.Markdown.Convert(out)
	}
	return out, nil
}

// printError reports a failed file with its processor diagnostics.
func (c *ConvertCmd) printError(deps *Dependencies, file string, err error) {
	fmt.Fprintf(deps.Stderr, "%s: %s\n", file, epidoc.ErrorMessage(err))
	report := epidoc.ErrorReportOf(err)
	if len(report) == 0 {
		if epidoc.ErrorCode(err) == epidoc.EINTERNAL {
			fmt.Fprintf(deps.Stderr, "  %v\n", err)
		}
		return
	}
	if c.HTMLErrors {
		fmt.Fprintln(deps.Stderr, report.HTML())
		return
	}
	for _, d := range report {
		fmt.Fprintf(deps.Stderr, "  %s\n", d)
	}
}
