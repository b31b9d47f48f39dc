// Package runconfig loads the toolkit's optional TOML run-configuration
// file, using a scan-then-parse idiom: a small Header struct is decoded
// first to confirm the file is actually a cfgkit config before a full parse
// is attempted.
package runconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Header is the minimal information any cfgkit.toml file must declare,
// read first so malformed or unrelated TOML files fail fast with a useful
// message before the full Config is parsed.
type Header struct {
	Kind string `toml:"kind"`
}

// Config holds defaults that CLI flags override when explicitly given, with
// one exception: Interactive overrides the -d/--direct flag.
type Config struct {
	Kind string `toml:"kind"`

	// OutputDir is the default directory output files are written to,
	// relative to each input file's own directory if not absolute.
	OutputDir string `toml:"output_dir"`

	// Interactive forces the interactive action to use the readline-based
	// reader, overriding a -d/--direct flag given on the command line.
	Interactive bool `toml:"interactive"`

	// SortTieBreaks enables the deterministic CellSorted tie-break order
	// for CYK witness reconstruction recommended by spec.md §9. It
	// defaults to true; set to false only to reproduce an
	// iteration-order-dependent witness for debugging.
	SortTieBreaks bool `toml:"sort_tie_breaks"`
}

// Default returns the toolkit's built-in defaults, used when no
// cfgkit.toml file is present.
func Default() Config {
	return Config{Kind: "cfgkit-run-config", SortTieBreaks: true}
}

// ScanHeader decodes just the "kind" field out of data, without decoding
// the rest of the document into a Config, so a config loader can reject an
// unrelated TOML file before the full decode. Malformed TOML anywhere in
// data is still an error.
func ScanHeader(data []byte) (Header, error) {
	var h Header
	err := toml.Unmarshal(data, &h)
	return h, err
}

// Load reads and parses a cfgkit.toml file at path, starting from
// Default() so any field the file omits keeps its built-in value. If path
// does not exist, Load returns Default() with no error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	h, err := ScanHeader(data)
	if err != nil {
		return cfg, err
	}
	if h.Kind != cfg.Kind {
		return cfg, fmt.Errorf("%s: not a cfgkit run-config file (kind is %q, want %q)", path, h.Kind, cfg.Kind)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
