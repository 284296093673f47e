// Package cmd implements the utcalc subcommands: eval, edit and init.
//
// Commands receive their collaborators through [context.Context]. The cli
// package stores the parsed [kong.Context], the source files, the clock and
// the standard streams with the With* functions defined here.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path,
	// without extension, of the configuration file written by init.
	ConfigIdentifier = "config"
)
