package pda

import (
	"testing"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/stretchr/testify/assert"
)

func Test_Compile_errorsWithoutStartVariable(t *testing.T) {
	assert := assert.New(t)

	g := cfg.New()
	_, err := Compile(g)
	assert.Error(err)
}

func Test_Compile_initAndMainTransitions(t *testing.T) {
	assert := assert.New(t)

	g := cfg.New()
	g.SetStart(cfg.NewVariable("S"))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{cfg.NewTerminal("b"), cfg.NewVariable("S"), cfg.NewTerminal("a")}))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{}))

	p, err := Compile(g)
	assert.NoError(err)
	assert.Equal(stateStart, p.Start)
	assert.Equal(stateEnd, p.Accept)

	assert.Equal(Transition{
		Start:   stateStart,
		Content: "<push(S$)>",
		End:     stateMain,
	}, p.Transitions[0])

	assert.Equal(Transition{
		Start:   stateMain,
		Content: "<pop($)>",
		End:     stateEnd,
	}, p.Transitions[1])
}

func Test_Compile_epsilonRuleRendersAsPushEpsilon(t *testing.T) {
	assert := assert.New(t)

	g := cfg.New()
	g.SetStart(cfg.NewVariable("S"))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{}))

	p, err := Compile(g)
	assert.NoError(err)

	var found bool
	for _, tr := range p.Transitions {
		if tr.Start == "varS" && tr.Content == "<push(ε)>" && tr.End == stateMain {
			found = true
		}
	}
	assert.True(found, "expected a varS push(ε) main transition, got: %+v", p.Transitions)
}

func Test_Compile_terminalReadTransitions(t *testing.T) {
	assert := assert.New(t)

	g := cfg.New()
	g.SetStart(cfg.NewVariable("S"))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{cfg.NewTerminal("a")}))

	p, err := Compile(g)
	assert.NoError(err)

	var sawPop, sawRead bool
	for _, tr := range p.Transitions {
		if tr.Start == stateMain && tr.Content == "<pop(a)>" && tr.End == "alphaa" {
			sawPop = true
		}
		if tr.Start == "alphaa" && tr.Content == "a" && tr.End == stateMain {
			sawRead = true
		}
	}
	assert.True(sawPop)
	assert.True(sawRead)
}

func Test_PDA_String_includesHeaderAndTransitions(t *testing.T) {
	assert := assert.New(t)

	g := cfg.New()
	g.SetStart(cfg.NewVariable("S"))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{cfg.NewTerminal("a")}))

	p, err := Compile(g)
	assert.NoError(err)

	out := p.String()
	assert.Contains(out, "start init")
	assert.Contains(out, "end ed")
	assert.Contains(out, "init")
}

func Test_PDA_Table_rendersColumns(t *testing.T) {
	assert := assert.New(t)

	g := cfg.New()
	g.SetStart(cfg.NewVariable("S"))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{cfg.NewTerminal("a")}))

	p, err := Compile(g)
	assert.NoError(err)

	out := p.Table()
	assert.Contains(out, "start")
	assert.Contains(out, "content")
	assert.Contains(out, "end")
}
