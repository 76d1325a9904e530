// Package main hosts the dialogedit CLI entrypoint and command graph.
//
// Without a subcommand dialogedit opens the interactive menu editor. The
// subcommands expose the same document operations non-interactively so
// dialogue files can be scripted, checked in CI, and exported to SQLite.
// Configuration resolution and logger setup live in the command context so
// each subcommand only deals with its own flags.
package main
