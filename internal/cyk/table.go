// Package cyk implements the CYK membership table (spec.md §3, §4.4): an
// upper-triangular dynamic-programming table with back-pointers, its fill
// algorithm, and witness (parse-tree) reconstruction.
package cyk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/rosed"
)

// Pos is a table position: Row is 1..n (bottom to top), Offset is
// 0..n-Row. Pos{0, j} names the header (row 0), holding word[j].
type Pos struct {
	Row    int
	Offset int
}

// BackPointer names one of a CYKItem's back-pointers: the position of the
// source cell and the variable found there.
type BackPointer struct {
	Pos    Pos
	Letter cfg.Letter
}

// Item is a CYK item: a variable occupying a cell, the cell's own position,
// and up to two back-pointers. Row-1 items have exactly one (to the header);
// higher rows have exactly two, per spec.md §3.
type Item struct {
	Var    cfg.Letter
	Pos    Pos
	Dest1  BackPointer
	Dest2  BackPointer
	HasLen int // 1 or 2 back-pointers
}

func (it Item) String() string {
	return it.Var.Name
}

// Table is the upper-triangular CYK table for a word of length n. Row 0
// (the header) holds the input word's letters; rows 1..n hold sets of CYK
// items.
type Table struct {
	Word  cfg.Word
	cells [][]map[Item]bool // cells[row-1][offset], row in 1..n
}

// NewTable allocates an empty table for the given word, with every cell's
// item set initialized empty.
func NewTable(word cfg.Word) *Table {
	n := len(word)
	t := &Table{Word: word, cells: make([][]map[Item]bool, n)}
	for row := 1; row <= n; row++ {
		cells := make([]map[Item]bool, n-row+1)
		for j := range cells {
			cells[j] = make(map[Item]bool)
		}
		t.cells[row-1] = cells
	}
	return t
}

// N returns the length of the word the table was built for.
func (t *Table) N() int {
	return len(t.Word)
}

// FinalPos is the position that recognition succeeds or fails at: (n, 0).
func (t *Table) FinalPos() Pos {
	return Pos{Row: t.N(), Offset: 0}
}

// HeaderAt returns the letter at offset j of the input word (row 0).
func (t *Table) HeaderAt(j int) cfg.Letter {
	return t.Word[j]
}

// Cell returns the set of items at the given position as a slice. Pos with
// Row == 0 is invalid for Cell; use HeaderAt instead.
func (t *Table) Cell(p Pos) []Item {
	m := t.cells[p.Row-1][p.Offset]
	out := make([]Item, 0, len(m))
	for it := range m {
		out = append(out, it)
	}
	return out
}

// CellSorted returns Cell's items sorted by (variable name, back-pointer
// positions), the deterministic tie-break order spec.md §9 recommends for
// reproducible witness selection.
func (t *Table) CellSorted(p Pos) []Item {
	items := t.Cell(p)
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Var.Name != b.Var.Name {
			return a.Var.Name < b.Var.Name
		}
		if a.Dest1.Pos != b.Dest1.Pos {
			return posLess(a.Dest1.Pos, b.Dest1.Pos)
		}
		return posLess(a.Dest2.Pos, b.Dest2.Pos)
	})
	return items
}

func posLess(a, b Pos) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Offset < b.Offset
}

// markRow1 adds an item for variable at pos with the given single
// back-pointer (row-1 cells).
func (t *Table) markRow1(pos Pos, variable cfg.Letter, dest Pos, destLetter cfg.Letter) {
	it := Item{
		Var:    variable,
		Pos:    pos,
		Dest1:  BackPointer{Pos: dest, Letter: destLetter},
		HasLen: 1,
	}
	t.cells[pos.Row-1][pos.Offset][it] = true
}

// markRow2 adds an item for variable at pos with two back-pointers (rows
// above 1).
func (t *Table) markRow2(pos Pos, variable cfg.Letter, destA Pos, letterA cfg.Letter, destB Pos, letterB cfg.Letter) {
	it := Item{
		Var:    variable,
		Pos:    pos,
		Dest1:  BackPointer{Pos: destA, Letter: letterA},
		Dest2:  BackPointer{Pos: destB, Letter: letterB},
		HasLen: 2,
	}
	t.cells[pos.Row-1][pos.Offset][it] = true
}

// IterPositions yields every cell position, starting from row 1, offset 0,
// proceeding left to right within a row before advancing to the next row,
// matching the fill order spec.md §4.4 requires.
func (t *Table) IterPositions() []Pos {
	n := t.N()
	var out []Pos
	for row := 1; row <= n; row++ {
		for offset := 0; offset <= n-row; offset++ {
			out = append(out, Pos{Row: row, Offset: offset})
		}
	}
	return out
}

// GenerateDestPairs returns, for a row>1 position, every split of its span
// into two sub-spans strictly below it: for row r, offset j, the splits
// (i, j) and (r-i, j+i) for i = 1..r-1.
func (t *Table) GenerateDestPairs(p Pos) [][2]Pos {
	if p.Row == 1 {
		return nil
	}
	var out [][2]Pos
	for i := 1; i < p.Row; i++ {
		out = append(out, [2]Pos{
			{Row: i, Offset: p.Offset},
			{Row: p.Row - i, Offset: p.Offset + i},
		})
	}
	return out
}

// String renders the table as a bordered grid via rosed, header row last
// (row n at top, header at bottom), matching the bottom-up visual layout
// spec.md §3 describes.
func (t *Table) String() string {
	n := t.N()
	headers := make([]string, n+1)
	headers[0] = ""
	for j := 0; j < n; j++ {
		headers[j+1] = t.HeaderAt(j).Name
	}

	data := [][]string{headers}
	for row := n; row >= 1; row-- {
		line := make([]string, n+1)
		line[0] = fmt.Sprintf("%d", row)
		for j := 0; j <= n-row; j++ {
			items := t.CellSorted(Pos{Row: row, Offset: j})
			if len(items) == 0 {
				line[j+1] = "--"
				continue
			}
			names := make([]string, len(items))
			for i, it := range items {
				names[i] = it.Var.Name
			}
			line[j+1] = strings.Join(names, ", ")
		}
		data = append(data, line)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{TableBorders: true}).
		String()
}
