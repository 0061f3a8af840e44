// Package collect resolves the annotations of every declaration in a set of
// Go files.
package collect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Alia5/bindgen/internal/annotation"
	"github.com/Alia5/bindgen/internal/codegen/meta"
	"github.com/Alia5/bindgen/internal/codegen/scanner"
	"github.com/Alia5/bindgen/internal/config"
	"github.com/Alia5/bindgen/internal/log"
)

// Options configures a Collector.
type Options struct {
	Language config.Language
	// Jobs bounds the number of files scanned at once. <= 0 means GOMAXPROCS.
	Jobs int
	// FailFast stops the run at the first declaration fault.
	FailFast bool
	Defaults config.Defaults
	// Tracer receives every doc comment line. Nil disables tracing.
	Tracer log.LineTracer
}

// Collector scans files and builds one annotation set per declaration.
type Collector struct {
	opts   Options
	logger *slog.Logger
}

func New(logger *slog.Logger, opts Options) *Collector {
	if opts.Tracer == nil {
		opts.Tracer = log.NewTracer(nil)
	}
	return &Collector{opts: opts, logger: logger}
}

// Collect scans paths (files or package directories). Declaration faults are
// recorded on their items; the returned error is set for I/O and syntax errors,
// and for the first fault when FailFast is enabled.
func (c *Collector) Collect(ctx context.Context, paths []string) (*meta.Metadata, error) {
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Scanning Go sources", "files", len(files), "language", c.opts.Language)

	jobs := c.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one index.
	results := make([][]meta.Item, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items, err := c.collectFile(file)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	md := &meta.Metadata{Language: c.opts.Language}
	for _, items := range results {
		md.Items = append(md.Items, items...)
	}
	sort.SliceStable(md.Items, func(i, j int) bool {
		a, b := md.Items[i].Decl, md.Items[j].Decl
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})

	faults := md.Faults()
	c.logger.Info("Resolved annotations",
		"declarations", len(md.Items),
		"annotated", len(md.Annotated()),
		"faults", len(faults))
	return md, nil
}

func (c *Collector) collectFile(file string) ([]meta.Item, error) {
	c.logger.Debug("Scanning file", "file", file)
	decls, err := scanner.ScanFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	items := make([]meta.Item, 0, len(decls))
	for _, d := range decls {
		set, err := c.Resolve(d)
		if err != nil {
			c.logger.Warn("Malformed annotations", "file", d.File, "line", d.Line, "decl", d.Name, "error", err)
			if c.opts.FailFast {
				return nil, fmt.Errorf("%s:%d: %s: %w", d.File, d.Line, d.Name, err)
			}
		}
		items = append(items, meta.Item{Decl: d, Set: set, Err: err})
	}
	return items, nil
}

// deprecatedAttr is resolved by the annotation package, malformed or not.
const deprecatedAttr = "deprecated"

// Resolve builds the annotation set of one declaration and applies the
// configured defaults: kind defaults first, then global ones. Attributes that
// could not be parsed are skipped, except deprecated, which faults in Load.
func (c *Collector) Resolve(d scanner.Decl) (*annotation.Set, error) {
	for _, line := range d.Comments {
		c.opts.Tracer.Trace(d.File, d.Line, line, annotation.IsDirective(line))
	}
	for _, a := range d.Attrs.Invalid() {
		if a.Name == deprecatedAttr {
			continue
		}
		c.logger.Warn("Ignoring malformed attribute", "file", d.File, "line", d.Line, "decl", d.Name, "error", a.Err)
	}

	set, err := annotation.Load(d.Comments, d.Attrs)
	if err != nil {
		return nil, err
	}
	for _, def := range c.opts.Defaults.For(string(d.Kind)) {
		set.AddDefault(def.Name, DefaultValue(def.Value))
	}
	return set, nil
}

// DefaultValue converts a decoded defaults file value into an annotation value.
// Strings go through directive value inference; lists become ListValue.
func DefaultValue(v any) annotation.Value {
	switch v := v.(type) {
	case nil:
		return annotation.AtomValue{}
	case string:
		return annotation.ParseValue(v)
	case bool:
		return annotation.BoolValue(v)
	case []string:
		return annotation.ListValue(append([]string(nil), v...))
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return annotation.ListValue(items)
	default:
		return annotation.Atom(fmt.Sprint(v))
	}
}

func expand(paths []string) ([]string, error) {
	var (
		files []string
		errs  []error
	)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		dirFiles, err := scanner.GoFiles(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, dirFiles...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return files, nil
}
