// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("document evaluated", slog.Int("lines", 3))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Call sites pass [log/slog.Attr] values only; the loosely typed key/value
// form of [log/slog] is intentionally not exposed.
//
// # Package Logger
//
// The package-level functions ([Info], [Debug], ...) write through a default
// logger that can be reconfigured with [Config]. The CLI configures it while
// parsing flags so that even flag errors honor --log-format.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-line evaluation
// detail in the expression engine.
//
// # Output Formats
//
// Two formats are supported: [FormatJSON] (default) and [FormatText].
// [WithPretty] colorizes text output and indents JSON output.
package log
