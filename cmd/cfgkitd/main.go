/*
Cfgkitd starts the cfgkit HTTP front end and begins listening for new
connections, using the same package-level pflag flags as cfgkit.

Usage:

	cfgkitd [flags]
	cfgkitd [flags] -l [[ADDRESS]:PORT]

Once started, cfgkitd listens for HTTP requests and runs the same CNF/CYK/PDA
operations the cfgkit CLI runs, over a small JSON route set (spec.md §6's
core operations, SPEC_FULL.md §11). By default it listens on localhost:8080;
this can be changed with the --listen/-l flag or the CFGKITD_LISTEN_ADDRESS
environment variable.

The flags are:

	-v, --version
		Give the current version of cfgkitd and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		CFGKITD_LISTEN_ADDRESS, and if that is not given, defaults to
		localhost:8080.
*/
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/dekarrin/cfgkit/internal/version"
	"github.com/dekarrin/cfgkit/server"
	"github.com/spf13/pflag"
)

const EnvListen = "CFGKITD_LISTEN_ADDRESS"

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of cfgkitd and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("cfgkitd (cfgkit v%s)\n", version.Current)
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr := "localhost:8080"
	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		if strings.HasPrefix(listenAddr, ":") {
			addr = "localhost" + listenAddr
		} else {
			addr = listenAddr
		}
	}

	s := server.New()
	log.Printf("INFO  Starting cfgkitd %s on %s...", version.Current, addr)
	if err := http.ListenAndServe(addr, s); err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
}
