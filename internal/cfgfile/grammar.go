package cfgfile

import (
	"strings"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/cfgkit/internal/cfgerrors"
)

var arrows = []string{"->", "→"}

func determineArrow(line string) (string, bool) {
	for _, a := range arrows {
		if strings.Contains(line, a) {
			return a, true
		}
	}
	return "", false
}

// ParseGrammar converts parseLines into a cfg.Grammar using the given word
// parser, per spec.md §6's rule-line syntax: a `start X` line declares the
// start variable, and every other line is `input -> out1 | out2 | ...`.
func ParseGrammar(parseLines []string, wordParser WordParser) (*cfg.Grammar, error) {
	g := cfg.New()

	for i, line := range parseLines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if fields := strings.Fields(trimmed); len(fields) >= 2 && fields[0] == "start" {
			word, err := wordParser(fields[1])
			if err != nil {
				return nil, err
			}
			if len(word) != 1 {
				return nil, cfgerrors.NewParse(lineNum, "start declaration must name exactly one letter: %q", trimmed)
			}
			start := word[0]
			if !start.Variable {
				start.Variable = true
			}
			g.SetStart(start)
			continue
		}

		rules, err := lineToRules(trimmed, lineNum, wordParser)
		if err != nil {
			return nil, err
		}
		for _, r := range rules {
			g.AddRule(r)
		}
	}

	return g, nil
}

func lineToRules(line string, lineNum int, wordParser WordParser) ([]cfg.Rule, error) {
	arrow, ok := determineArrow(line)
	if !ok {
		return nil, cfgerrors.NewParse(lineNum, "rule line has no arrow (-> or →): %q", line)
	}

	parts := strings.SplitN(line, arrow, 2)
	inputStr := strings.TrimSpace(parts[0])
	if inputStr == "" {
		return nil, cfgerrors.NewParse(lineNum, "rule line has no input letter: %q", line)
	}
	input := cfg.NewVariable(inputStr)

	outputStrs := strings.Split(parts[1], "|")
	rules := make([]cfg.Rule, 0, len(outputStrs))
	for _, outStr := range outputStrs {
		word, err := wordParser(outStr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, cfg.NewRule(input, word))
	}
	return rules, nil
}
