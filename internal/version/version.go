// Package version contains information on the current version of the
// program. It is split from the main program for easy use by both the CLI
// and the HTTP front end.
package version

// Current is the string representing the current version of cfgkit.
const Current = "0.1.0"
