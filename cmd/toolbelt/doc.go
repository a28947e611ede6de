// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for toolbelt.
//
// Every subcommand wraps one or two external tools: it validates its
// arguments, builds the tool's command line and hands it to the App's
// runner, which either executes it or, with --dry-run, prints it.
package cmd
