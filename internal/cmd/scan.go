package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/Alia5/bindgen/internal/codegen/collect"
	"github.com/Alia5/bindgen/internal/config"
	"github.com/Alia5/bindgen/internal/log"
	"github.com/Alia5/bindgen/internal/report"
)

// Scan resolves the annotations of Go declarations and prints a report.
type Scan struct {
	Paths         []string          `arg:"" name:"path" help:"Go files or package directories" type:"path"`
	Lang          config.Language   `help:"Target language: c, c++ (cxx, cpp) or cython" default:"c" env:"BINDGEN_LANG"`
	Format        string            `help:"Report format. auto prints a table on a terminal and JSON otherwise" default:"auto" enum:"auto,table,json,yaml,toml" env:"BINDGEN_FORMAT"`
	Output        string            `help:"Write the report to this file instead of stdout" type:"path"`
	Jobs          int               `help:"Files scanned in parallel (0 = number of CPUs)" default:"0" env:"BINDGEN_JOBS"`
	FailFast      bool              `help:"Stop at the first declaration with malformed annotations"`
	OnlyAnnotated bool              `help:"Only report declarations that carry annotations"`
	DefaultsFile  string            `help:"YAML, TOML or JSON file with declaration defaults" type:"path" env:"BINDGEN_DEFAULTS_FILE"`
	Default       map[string]string `help:"Generator-wide default annotation (name=value), lowest precedence"`
}

// Run is called by Kong when the scan command is executed.
func (s *Scan) Run(logger *slog.Logger, tracer log.LineTracer) error {
	var (
		defaults config.Defaults
		err      error
	)
	if s.DefaultsFile != "" {
		if defaults, err = config.LoadDefaults(s.DefaultsFile); err != nil {
			return err
		}
		logger.Debug("Loaded declaration defaults", "file", s.DefaultsFile)
	}
	defaults = defaults.WithGlobal(s.Default)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := collect.New(logger, collect.Options{
		Language: s.Lang,
		Jobs:     s.Jobs,
		FailFast: s.FailFast,
		Defaults: defaults,
		Tracer:   tracer,
	})
	md, err := c.Collect(ctx, s.Paths)
	if err != nil {
		return err
	}

	items := md.Items
	if s.OnlyAnnotated {
		items = md.Annotated()
	}
	entries := report.Build(md, items)

	var out io.Writer = os.Stdout
	if s.Output != "" {
		f, err := os.Create(s.Output)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.Write(out, resolveFormat(s.Format, out), entries); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if n := len(md.Faults()); n > 0 {
		return fmt.Errorf("%d declaration(s) with malformed annotations", n)
	}
	return nil
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "table"
	}
	return "json"
}
