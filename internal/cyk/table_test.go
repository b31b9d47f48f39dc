package cyk

import (
	"testing"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/stretchr/testify/assert"
)

func Test_NewTable_shapeAndHeader(t *testing.T) {
	assert := assert.New(t)

	word := cfg.Word{cfg.NewTerminal("a"), cfg.NewTerminal("b"), cfg.NewTerminal("c")}
	tbl := NewTable(word)

	assert.Equal(3, tbl.N())
	assert.Equal(Pos{Row: 3, Offset: 0}, tbl.FinalPos())
	assert.Equal(cfg.NewTerminal("a"), tbl.HeaderAt(0))
	assert.Equal(cfg.NewTerminal("c"), tbl.HeaderAt(2))
	assert.Empty(tbl.Cell(Pos{Row: 1, Offset: 0}))
}

func Test_Table_IterPositions_order(t *testing.T) {
	assert := assert.New(t)

	word := cfg.Word{cfg.NewTerminal("a"), cfg.NewTerminal("b")}
	tbl := NewTable(word)

	expect := []Pos{
		{Row: 1, Offset: 0},
		{Row: 1, Offset: 1},
		{Row: 2, Offset: 0},
	}
	assert.Equal(expect, tbl.IterPositions())
}

func Test_Table_GenerateDestPairs(t *testing.T) {
	assert := assert.New(t)

	word := cfg.Word{cfg.NewTerminal("a"), cfg.NewTerminal("b"), cfg.NewTerminal("c")}
	tbl := NewTable(word)

	assert.Nil(tbl.GenerateDestPairs(Pos{Row: 1, Offset: 0}))

	pairs := tbl.GenerateDestPairs(Pos{Row: 3, Offset: 0})
	expect := [][2]Pos{
		{{Row: 1, Offset: 0}, {Row: 2, Offset: 1}},
		{{Row: 2, Offset: 0}, {Row: 1, Offset: 2}},
	}
	assert.Equal(expect, pairs)
}

func Test_Table_CellSorted_deterministicOrder(t *testing.T) {
	assert := assert.New(t)

	word := cfg.Word{cfg.NewTerminal("a")}
	tbl := NewTable(word)

	tbl.markRow1(Pos{Row: 1, Offset: 0}, cfg.NewVariable("B"), Pos{Row: 0, Offset: 0}, cfg.NewTerminal("a"))
	tbl.markRow1(Pos{Row: 1, Offset: 0}, cfg.NewVariable("A"), Pos{Row: 0, Offset: 0}, cfg.NewTerminal("a"))

	items := tbl.CellSorted(Pos{Row: 1, Offset: 0})
	assert.Len(items, 2)
	assert.Equal("A", items[0].Var.Name)
	assert.Equal("B", items[1].Var.Name)
}

func Test_Table_String_rendersGrid(t *testing.T) {
	assert := assert.New(t)

	g := cfg.New()
	g.SetStart(cfg.NewVariable("S"))
	g.AddRule(cfg.NewRule(cfg.NewVariable("S"), cfg.Word{cfg.NewVariable("A"), cfg.NewVariable("B")}))
	g.AddRule(cfg.NewRule(cfg.NewVariable("A"), cfg.Word{cfg.NewTerminal("a")}))
	g.AddRule(cfg.NewRule(cfg.NewVariable("B"), cfg.Word{cfg.NewTerminal("b")}))

	word := cfg.Word{cfg.NewTerminal("a"), cfg.NewTerminal("b")}
	tbl := Fill(g, word)

	out := tbl.String()
	assert.Contains(out, "S")
	assert.Contains(out, "A")
	assert.Contains(out, "B")
}
