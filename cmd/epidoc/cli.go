package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/epidoc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    epidoc.Config
	Factory   epidoc.EngineFactory
	Extractor epidoc.Extractor
	Markdown  epidoc.Converter
	NewWriter func(dir string) epidoc.FragmentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	WorkDir    string            `name:"workdir" short:"w" env:"EPIDOC_WORKDIR" default:"." help:"Directory holding the stylesheets and DTD"`
	Stylesheet string            `env:"EPIDOC_STYLESHEET" default:"${stylesheet}" help:"XSLT entry point, relative to the working directory"`
	DTD        string            `name:"dtd" env:"EPIDOC_DTD" default:"${dtd}" help:"EpiDoc DTD, relative to the working directory"`
	Engine     string            `short:"e" env:"EPIDOC_ENGINE" enum:"xsltproc,saxon" default:"xsltproc" help:"XSLT processor (xsltproc, saxon)"`
	SaxonJar   string            `name:"saxon-jar" env:"EPIDOC_SAXON_JAR" help:"Path to the Saxon HE jar"`
	Param      map[string]string `short:"P" help:"Stylesheet parameter as name=value, overrides defaults (repeatable)"`
	Timeout    time.Duration     `default:"0s" help:"Deadline for a single transform (0 disables)"`
	Verbose    bool              `short:"v" help:"Log parses and transforms to stderr"`

	Convert ConvertCmd `cmd:"" help:"Convert EpiDoc files to HTML fragments"`
	Status  StatusCmd  `cmd:"" help:"Show the XSLT processor version"`
	Params  ParamsCmd  `cmd:"" help:"List the stylesheet parameters that will be used"`
}

// config builds the session configuration from the parsed flags.
func (c *CLI) config() epidoc.Config {
	cfg := epidoc.DefaultConfig(c.WorkDir)
	cfg.Stylesheet = c.Stylesheet
	cfg.DTDPath = c.DTD
	cfg.Timeout = c.Timeout
	for name, value := range c.Param {
		cfg.Options.Set(name, value)
	}
	return cfg
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Files       []string `arg:"" type:"existingfile" help:"EpiDoc XML files"`
	Full        bool     `help:"Output the whole HTML document instead of the body fragment"`
	Format      string   `short:"f" enum:"html,markdown" default:"html" help:"Output format (html, markdown)"`
	Out         string   `short:"o" type:"path" help:"Write results to this directory instead of stdout"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent conversions"`
	HTMLErrors  bool     `name:"html-errors" help:"Print processor diagnostics as an HTML list"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// ParamsCmd is the "params" subcommand.
type ParamsCmd struct{}
