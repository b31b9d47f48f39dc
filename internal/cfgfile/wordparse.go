package cfgfile

import (
	"strings"
	"unicode"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/cfgkit/internal/cfgerrors"
)

// WordParser converts a rule line's output-side text into a Word, per the
// active MinFormat's rules (spec.md §6).
type WordParser func(string) (cfg.Word, error)

var epsilonSpellings = map[string]bool{"ε": true, "e": true}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// CharWordParser implements the "char" word parser: each character is a
// letter, uppercase denotes a variable, and spaces are rejected.
func CharWordParser(s string) (cfg.Word, error) {
	s = strings.TrimSpace(s)
	if epsilonSpellings[s] {
		return cfg.Epsilon, nil
	}
	if strings.Contains(s, " ") {
		return nil, cfgerrors.NewParse(0, "spaces within a letter are disallowed by the char format: %q", s)
	}
	w := make(cfg.Word, 0, len(s))
	for _, r := range s {
		name := string(r)
		w = append(w, cfg.Letter{Name: name, Variable: unicode.IsUpper(r)})
	}
	return w, nil
}

// SpacedWordParser implements the "spaced" word parser: whitespace
// separates letters, and a token containing any uppercase character is a
// variable.
func SpacedWordParser(s string) (cfg.Word, error) {
	s = strings.TrimSpace(s)
	if epsilonSpellings[s] {
		return cfg.Epsilon, nil
	}
	tokens := strings.Fields(s)
	w := make(cfg.Word, 0, len(tokens))
	for _, tok := range tokens {
		w = append(w, cfg.Letter{Name: tok, Variable: hasUpper(tok)})
	}
	return w, nil
}

// SpacedExclaimWordParser implements the "spaced!" word parser:
// whitespace separates letters, and a token ending in "!" is a variable
// named by the token minus the trailing "!".
func SpacedExclaimWordParser(s string) (cfg.Word, error) {
	s = strings.TrimSpace(s)
	if epsilonSpellings[s] {
		return cfg.Epsilon, nil
	}
	tokens := strings.Fields(s)
	w := make(cfg.Word, 0, len(tokens))
	for _, tok := range tokens {
		if strings.HasSuffix(tok, "!") {
			w = append(w, cfg.Letter{Name: strings.TrimSuffix(tok, "!"), Variable: true})
		} else {
			w = append(w, cfg.Letter{Name: tok})
		}
	}
	return w, nil
}

// ParserFor returns the WordParser for the given MinFormat name.
func ParserFor(format string) (WordParser, error) {
	switch format {
	case "char":
		return CharWordParser, nil
	case "spaced":
		return SpacedWordParser, nil
	case "spaced!":
		return SpacedExclaimWordParser, nil
	default:
		return nil, cfgerrors.NewMeta("unknown format %q", format)
	}
}
