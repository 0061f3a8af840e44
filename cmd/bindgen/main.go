package main

import (
	"io"
	"os"
	"strings"

	"github.com/Alia5/bindgen/internal/cmd"
	"github.com/Alia5/bindgen/internal/configpaths"
	"github.com/Alia5/bindgen/internal/log"
	"github.com/Alia5/bindgen/internal/version"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("bindgen"),
		kong.Description("Resolve header generator annotations from Go doc comments and attributes"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	// The scan report owns stdout unless it is written to a file.
	var console io.Writer = os.Stderr
	if cli.Scan.Output != "" {
		console = os.Stdout
	}
	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, console)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var traceOut io.Writer
	if cli.Log.TraceFile != "" {
		f, err := os.OpenFile(cli.Log.TraceFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open trace file", "file", cli.Log.TraceFile, "error", err)
		} else {
			traceOut = f
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		traceOut = os.Stderr
	}

	ctx.Bind(logger)
	ctx.BindTo(log.NewTracer(traceOut), (*log.LineTracer)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("BINDGEN_CONFIG")
}
