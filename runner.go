// Package cfgkit ties the symbol model, CNF normalizer, CYK recognizer, PDA
// compiler, and interactive driver together into the batch file-processing
// loop the CLI drives. The HTTP front end in package server calls the core
// packages directly and does not use this loop.
package cfgkit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/cfgkit/internal/cfg/cnf"
	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/dekarrin/cfgkit/internal/cfgfile"
	"github.com/dekarrin/cfgkit/internal/cyk"
	"github.com/dekarrin/cfgkit/internal/interactive"
	"github.com/dekarrin/cfgkit/internal/pda"
	"github.com/google/uuid"
)

// Runner processes input files per spec.md §6: it reads a file, tokenizes
// it into meta lines and parse lines, parses the grammar, and runs each
// declared action in order, writing its output files next to the input (or
// into OutputDir, if set).
type Runner struct {
	Out         io.Writer
	ForceDirect bool

	// SortTieBreaks selects CYK witness reconstruction's tie-break order;
	// see cyk.WitnessOrdered. Defaults to false (Go zero value), so callers
	// that want the recommended deterministic order (runconfig.Default())
	// must set it explicitly.
	SortTieBreaks bool

	// OutputDir, if non-empty, redirects every action's output files into
	// this directory (relative paths are resolved against each input
	// file's own directory) instead of writing next to the input. When a
	// batch of input files share a stem, a colliding output name is
	// disambiguated with a short uuid suffix rather than silently
	// overwriting the earlier file's output.
	OutputDir string

	seenNames map[string]bool
}

// New creates a Runner that writes diagnostics to out.
func New(out io.Writer) *Runner {
	return &Runner{Out: out}
}

// ProcessFile runs every action declared in path's meta lines against the
// grammar parsed from path, in order. A meta error (missing/unknown
// mode/format) or a parse error aborts processing of this file entirely
// and is returned. An action-prerequisite error or an unknown action is
// printed as a diagnostic and skipped; subsequent actions still run
// (spec.md §7).
func (r *Runner) ProcessFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parseLines, metaLines := cfgfile.SplitLines(string(data))
	md := cfgfile.ParseMetaLines(metaLines)

	formatName, err := md.RequireFormat()
	if err != nil {
		return err
	}

	if md.ModeOrDefault() != "cfg" {
		return cfgerrors.NewMeta("mode %q has no handlers defined", md.ModeOrDefault())
	}

	wordParser, err := cfgfile.ParserFor(formatName)
	if err != nil {
		return err
	}
	format, _ := cfg.ParseMinFormat(formatName)

	fmt.Fprintln(r.Out, "Parsing input file...")
	g, err := cfgfile.ParseGrammar(parseLines, wordParser)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, "Parsing success!")

	for _, action := range md.Action {
		action = strings.ToLower(action)
		fmt.Fprintf(r.Out, "%s: Starting...\n", strings.Title(action))
		if err := r.runAction(action, g, format, path); err != nil {
			fmt.Fprintf(r.Out, "%s: %s\n", strings.Title(action), err)
			continue
		}
		fmt.Fprintf(r.Out, "%s: Success!\n", strings.Title(action))
	}

	return nil
}

func (r *Runner) runAction(action string, g *cfg.Grammar, format cfg.MinFormat, path string) error {
	switch action {
	case "clone":
		return r.write(path, "clone", g.ToFormat(format))
	case "clone_char":
		return r.write(path, "clone", g.ToFormat(cfg.FormatChar))
	case "clone_spaced":
		return r.write(path, "clone", g.ToFormat(cfg.FormatSpaced))
	case "clone_spaced!":
		return r.write(path, "clone", g.ToFormat(cfg.FormatSpacedExclaim))
	case "latex":
		return r.write(path, "latex", g.ToLatex())
	case "cnf":
		return r.runCNF(g, path)
	case "pda":
		return r.runPDA(g, path)
	case "cyk":
		return r.runCYK(g, path)
	case "interactive":
		return r.runInteractive(g, path)
	default:
		return cfgerrors.NewAction(action, "unknown action for mode cfg")
	}
}

func (r *Runner) runCNF(g *cfg.Grammar, path string) error {
	if _, ok := g.StartVariable(); !ok {
		return cfgerrors.NewAction("cnf", "start variable required for this action; define `start xxx` in the input file")
	}

	final, trace := cnf.Normalize(g)

	var sb strings.Builder
	for _, snap := range trace {
		sb.WriteString(snap.Phase)
		sb.WriteString("\n```\n")
		sb.WriteString(snap.Grammar.ToFormat(snap.Grammar.MinFormat()))
		sb.WriteString("\n```\n\n")
	}
	if err := r.write(path, "cnf_process", strings.TrimRight(sb.String(), "\n")); err != nil {
		return err
	}

	finalText := final.ToFormat(final.MinFormat()) + "\n\n" + final.ToLatex()
	return r.write(path, "cnf", finalText)
}

func (r *Runner) runPDA(g *cfg.Grammar, path string) error {
	p, err := pda.Compile(g)
	if err != nil {
		return cfgerrors.NewAction("pda", err.Error())
	}
	if err := r.write(path, "pda", p.String()); err != nil {
		return err
	}
	return r.write(path, "pda_table", p.Table())
}

func (r *Runner) runCYK(g *cfg.Grammar, path string) error {
	start, ok := g.StartVariable()
	if !ok {
		return cfgerrors.NewAction("cyk", "grammar has no start variable")
	}

	fmt.Fprintln(r.Out, "Input the word to test: (format is 'spaced!')")
	word, err := promptWord(r.Out)
	if err != nil {
		return err
	}

	table := cyk.Fill(g, word)
	fmt.Fprintln(r.Out, "Processed CYK table!")
	fmt.Fprintln(r.Out, table.String())

	if err := r.write(path, "cyk_table", table.String()); err != nil {
		return err
	}

	if !cyk.Accepts(table, g) {
		return cfgerrors.NewAction("cyk", fmt.Sprintf("start variable %s is missing from the final cell; did you run cnf on the grammar yet?", start.Name))
	}

	fmt.Fprintf(r.Out, "Start variable %s is in the final cell, creating parse tree...\n", start.Name)
	tree := cyk.WitnessOrdered(table, g, r.SortTieBreaks)
	fmt.Fprintln(r.Out, "Parse tree created!")
	fmt.Fprintln(r.Out, tree.Show())

	return r.write(path, "cyk_tree", tree.Show())
}

func (r *Runner) runInteractive(g *cfg.Grammar, path string) error {
	var startWord cfg.Word
	if start, ok := g.StartVariable(); ok {
		startWord = cfg.Word{start}
	} else {
		fmt.Fprintln(r.Out, "You didn't define a start variable, so enter a starting variable now:")
		word, err := promptWord(r.Out)
		if err != nil {
			return err
		}
		startWord = word
	}

	reader, err := r.newReader()
	if err != nil {
		return err
	}
	defer reader.Close()

	driver := interactive.New(g, startWord, reader, r.Out)
	if err := driver.Run(); err != nil {
		return err
	}

	return r.write(path, "interactive_derivation", driver.Tree().StrDerivation())
}

func (r *Runner) newReader() (interactive.ChoiceReader, error) {
	if r.ForceDirect {
		return interactive.NewDirectChoiceReader(os.Stdin), nil
	}
	reader, err := interactive.NewReadlineChoiceReader()
	if err != nil {
		return interactive.NewDirectChoiceReader(os.Stdin), nil
	}
	return reader, nil
}

func promptWord(out io.Writer) (cfg.Word, error) {
	fmt.Fprint(out, "  > ")
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return cfgfile.SpacedExclaimWordParser(sb.String())
}

// write computes path's output path for the given suffix (honoring
// OutputDir, with a uuid-disambiguated name on a same-batch stem
// collision — see SPEC_FULL.md §12's batch-mode supplement) and writes
// content to it.
func (r *Runner) write(path, suffix, content string) error {
	out := r.outputPath(path, suffix)
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(out, []byte(content), 0644)
}

func (r *Runner) outputPath(path, suffix string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	name := fmt.Sprintf("%s_%s%s", stem, suffix, ext)

	dir := filepath.Dir(path)
	if r.OutputDir != "" {
		if filepath.IsAbs(r.OutputDir) {
			dir = r.OutputDir
		} else {
			dir = filepath.Join(filepath.Dir(path), r.OutputDir)
		}
	}

	full := filepath.Join(dir, name)

	if r.seenNames == nil {
		r.seenNames = make(map[string]bool)
	}
	if r.seenNames[full] {
		disambiguated := fmt.Sprintf("%s_%s-%s%s", stem, suffix, uuid.NewString()[:8], ext)
		full = filepath.Join(dir, disambiguated)
	}
	r.seenNames[full] = true

	return full
}
