package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/stretchr/testify/assert"
)

func simpleGrammar() *cfg.Grammar {
	g := cfg.New()
	g.SetStart(cfg.NewVariable("S"))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{cfg.NewVariable("A"), cfg.NewVariable("B")}))
	g.AddRule(cfg.NewRule(cfg.NewVariable("A"), cfg.Word{cfg.NewTerminal("a")}))
	g.AddRule(cfg.NewRule(cfg.NewVariable("B"), cfg.Word{cfg.NewTerminal("b")}))
	return g
}

func newTestDriver(g *cfg.Grammar, commands string) (*Driver, *bytes.Buffer) {
	var out bytes.Buffer
	reader := NewDirectChoiceReader(strings.NewReader(commands))
	d := New(g, cfg.Word{cfg.NewVariable("S")}, reader, &out)
	return d, &out
}

func Test_ExpandVariable_autoAppliesSoleRule(t *testing.T) {
	assert := assert.New(t)

	g := simpleGrammar()
	d, out := newTestDriver(g, "")

	d.ExpandVariable(0)

	leaves := d.Tree().Leaves()
	assert.Len(leaves, 2)
	assert.Equal("A", leaves[0].Name)
	assert.Equal("B", leaves[1].Name)
	assert.Contains(out.String(), "Only 1 rule for S")
}

func Test_ExpandVariable_asksWhenMultipleRules(t *testing.T) {
	assert := assert.New(t)

	g := cfg.New()
	g.SetStart(cfg.NewVariable("S"))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{cfg.NewTerminal("a")}))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{cfg.NewTerminal("b")}))

	d, out := newTestDriver(g, "1\n")
	d.ExpandVariable(0)

	leaves := d.Tree().Leaves()
	assert.Len(leaves, 1)
	assert.Contains(out.String(), "Select a rule:")

	sorted := g.RulesFor(cfg.NewVariable("S"))
	assert.Contains([]string{sorted[0].Output.String(), sorted[1].Output.String()}, leaves[0].Name)
}

func Test_PerformChoice_undo(t *testing.T) {
	assert := assert.New(t)

	g := simpleGrammar()
	d, _ := newTestDriver(g, "")

	d.ExpandVariable(0)
	assert.Len(d.Tree().Leaves(), 2)

	quit, err := d.PerformChoice("u")
	assert.NoError(err)
	assert.False(quit)
	assert.Len(d.Tree().Leaves(), 1)
	assert.Equal("S", d.Tree().Leaves()[0].Name)
}

func Test_PerformChoice_quit(t *testing.T) {
	assert := assert.New(t)

	g := simpleGrammar()
	d, _ := newTestDriver(g, "")

	quit, err := d.PerformChoice("q")
	assert.NoError(err)
	assert.True(quit)
}

func Test_Run_drivesFullDerivationToCompletion(t *testing.T) {
	assert := assert.New(t)

	g := simpleGrammar()
	d, _ := newTestDriver(g, "0\n0\n0\nq\n")

	err := d.Run()
	assert.NoError(err)

	leaves := d.Tree().Leaves()
	assert.Len(leaves, 2)
	assert.Equal("a", leaves[0].Name)
	assert.Equal("b", leaves[1].Name)
}
