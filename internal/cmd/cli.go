package cmd

import "github.com/alecthomas/kong"

// CLI is the root command line of bindgen.
type CLI struct {
	Version    kong.VersionFlag `help:"Print the version and exit"`
	ConfigFile string           `name:"config" help:"Configuration file (json, yaml or toml). Flags and env override its values" type:"path" env:"BINDGEN_CONFIG"`
	Log        Log              `embed:"" prefix:"log."`

	Scan   Scan          `cmd:"" help:"Resolve annotations of Go declarations and print them"`
	Config ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

// Log holds the logging flags shared by all commands.
type Log struct {
	Level     string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"BINDGEN_LOG_LEVEL"`
	File      string `help:"Also write logs to this file" env:"BINDGEN_LOG_FILE"`
	TraceFile string `help:"Write one line per scanned doc comment line to this file" env:"BINDGEN_LOG_TRACE_FILE"`
}
