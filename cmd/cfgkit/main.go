/*
Cfgkit processes one or more context-free-grammar input files and runs the
actions declared in each file's meta lines (spec.md §6), using
package-level pflag flags and a defer+recover+os.Exit wrapper around the
run loop.

Usage:

	cfgkit [flags] FILE [FILE...]

The flags are:

	-v, --version
		Give the current version of cfgkit and then exit.

	-c, --config FILE
		Use the given cfgkit.toml run-configuration file instead of the
		default "cfgkit.toml" in the current working directory.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading interactive-mode input, even if
		launched in a tty.

Every positional argument is processed in turn; a meta error or parse error
in one file is reported and that file is skipped, but the run continues with
the remaining files.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/cfgkit"
	"github.com/dekarrin/cfgkit/internal/runconfig"
	"github.com/dekarrin/cfgkit/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates every input file was processed with no fatal
	// error.
	ExitSuccess = iota

	// ExitParseError indicates at least one input file could not be
	// processed due to a meta error or parse error.
	ExitParseError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue reading the run-configuration file, or to no grammar file being
	// given.
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  *string = pflag.StringP("config", "c", "cfgkit.toml", "The run-configuration file to load defaults from, if present")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := runconfig.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	paths := pflag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "ERROR: at least one grammar file must be given")
		returnCode = ExitInitError
		return
	}

	r := cfgkit.New(os.Stdout)
	r.ForceDirect = *forceDirect && !cfg.Interactive
	r.SortTieBreaks = cfg.SortTieBreaks
	r.OutputDir = cfg.OutputDir

	for _, path := range paths {
		fmt.Printf("=== %s ===\n", path)
		if err := r.ProcessFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitParseError
			continue
		}
	}
}
