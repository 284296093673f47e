// Package cli contains the command line interface for utcalc.
//
// # Usage
//
//	utcalc [flags] [line ...]          evaluate lines (the default command)
//	utcalc eval -o json --source doc   evaluate a document file as JSON
//	utcalc edit [line ...]             edit a document interactively
//	utcalc init --format toml          write the current flags to a config file
//
// With no lines and no --source, eval reads a document from a piped stdin.
// The --now flag pins "now" for reproducible output:
//
//	utcalc --now 1700000000 'now + 1d'
//
// # Configuration
//
// Flags may be set in config.json, config.yaml (or config.yml) or
// config.toml in the user configuration directory, for example
// ~/.config/utcalc. Keys are flag names with '-' or '_' separators, or
// nested tables whose keys join with '-'. When several files set a flag,
// TOML wins over YAML, which wins over JSON. Command-line flags override
// every file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// Then --pprof-mode selects a profile (allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread, trace) and --pprof-dir its output directory
// (default: the pprof directory under the user cache directory).
package cli
