// Package cfgfile implements the external input-file interface of
// spec.md §6: separating meta lines from rule lines, collapsing repeated
// meta keywords with last-wins semantics, and parsing rule lines in each of
// the three surface syntaxes into a cfg.Grammar.
package cfgfile

import (
	"strings"

	"github.com/dekarrin/cfgkit/internal/cfgerrors"
)

// MetaKeywords are the recognized first-tokens of a meta line.
var MetaKeywords = []string{"mode", "format", "action", "#"}

func isMetaKeyword(tok string) bool {
	for _, k := range MetaKeywords {
		if tok == k {
			return true
		}
	}
	return false
}

// SplitLines separates text into parse lines and meta lines, per spec.md
// §6: blank lines are ignored, and a non-blank line whose first
// whitespace-separated token is a recognized meta keyword is a meta line;
// all other non-blank lines are parse lines.
func SplitLines(text string) (parseLines, metaLines []string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 && isMetaKeyword(fields[0]) {
			metaLines = append(metaLines, line)
		} else {
			parseLines = append(parseLines, line)
		}
	}
	return parseLines, metaLines
}

// MetaData is the collapsed meta information of an input file: for each
// keyword, the token list (minus the keyword itself) of the last meta line
// with that keyword, per spec.md §6's last-wins contract (spec.md §9:
// "not a bug").
type MetaData struct {
	Mode   []string
	Format []string
	Action []string
}

// ParseMetaLines collapses metaLines into a MetaData, keeping only the last
// occurrence of each keyword.
func ParseMetaLines(metaLines []string) MetaData {
	var md MetaData
	for _, line := range metaLines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		keyword, rest := fields[0], fields[1:]
		switch keyword {
		case "mode":
			md.Mode = rest
		case "format":
			md.Format = rest
		case "action":
			md.Action = rest
		case "#":
			// comment; ignored.
		}
	}
	return md
}

// RequireFormat returns the declared format value, or a MetaError if format
// was never declared, per spec.md §6: "Required: format must be present,
// else the program terminates with a diagnostic."
func (md MetaData) RequireFormat() (string, error) {
	if len(md.Format) == 0 {
		return "", cfgerrors.NewMeta("format is unspecified! include `format xxx` in the input file")
	}
	return md.Format[0], nil
}

// ModeOrDefault returns the declared mode value, defaulting to "cfg" if none was
// declared (spec.md §6 only enumerates "cfg" and the placeholder "pda"
// mode; an absent mode line is treated as "cfg" since every worked example
// and scenario in spec.md is cfg-mode).
func (md MetaData) ModeOrDefault() string {
	if len(md.Mode) == 0 {
		return "cfg"
	}
	return md.Mode[0]
}
