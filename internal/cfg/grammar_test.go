package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTestGrammar() *Grammar {
	g := New()
	g.SetStart(NewVariable("S"))
	g.AddRule(NewRule(NewVariable("S"), Word{NewVariable("A"), NewVariable("B")}))
	g.AddRule(NewRule(NewVariable("A"), Word{NewTerminal("a")}))
	g.AddRule(NewRule(NewVariable("B"), Word{NewTerminal("b")}))
	return g
}

func Test_Grammar_AddRule_duplicatesCollapse(t *testing.T) {
	assert := assert.New(t)

	g := New()
	r := NewRule(NewVariable("S"), Word{NewTerminal("a")})
	g.AddRule(r)
	g.AddRule(r)

	assert.Len(g.Rules(), 1)
}

func Test_Grammar_HasRule_RemoveRule(t *testing.T) {
	assert := assert.New(t)

	g := buildTestGrammar()
	r := NewRule(NewVariable("A"), Word{NewTerminal("a")})

	assert.True(g.HasRule(r))
	g.RemoveRule(r)
	assert.False(g.HasRule(r))
}

func Test_Grammar_Copy_isIndependent(t *testing.T) {
	assert := assert.New(t)

	g := buildTestGrammar()
	cp := g.Copy()

	cp.AddRule(NewRule(NewVariable("S"), Word{NewTerminal("c")}))

	assert.NotEqual(len(g.Rules()), len(cp.Rules()))
	assert.True(g.Equal(g.Copy()))
}

func Test_Grammar_Equal(t *testing.T) {
	assert := assert.New(t)

	g1 := buildTestGrammar()
	g2 := buildTestGrammar()

	assert.True(g1.Equal(g2))

	g2.AddRule(NewRule(NewVariable("S"), Word{NewTerminal("c")}))
	assert.False(g1.Equal(g2))
}

func Test_Grammar_FreshNames(t *testing.T) {
	testCases := []struct {
		name   string
		seed   Letter
		grammr func() *Grammar
		amount int
		expect []string
	}{
		{
			name: "no collisions, appends 0",
			seed: NewVariable("A"),
			grammr: func() *Grammar {
				return New()
			},
			amount: 1,
			expect: []string{"A0"},
		},
		{
			name: "collisions, increments until free",
			seed: NewVariable("S"),
			grammr: func() *Grammar {
				g := New()
				g.AddRule(NewRule(NewVariable("S0"), Word{NewTerminal("a")}))
				g.AddRule(NewRule(NewVariable("S1"), Word{NewTerminal("a")}))
				return g
			},
			amount: 1,
			expect: []string{"S2"},
		},
		{
			name: "multiple fresh names chain off each other",
			seed: NewVariable("A"),
			grammr: func() *Grammar {
				return New()
			},
			amount: 3,
			expect: []string{"A0", "A1", "A2"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := tc.grammr()
			fresh := g.FreshNames(tc.seed, tc.amount)

			names := make([]string, len(fresh))
			for i, l := range fresh {
				names[i] = l.Name
				assert.Equal(tc.seed.Variable, l.Variable)
			}
			assert.Equal(tc.expect, names)
		})
	}
}

func Test_Grammar_FreshNames_neverCollidesWithGrammar(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.AddRule(NewRule(NewVariable("S"), Word{NewTerminal("a")}))
	g.AddRule(NewRule(NewVariable("S0"), Word{NewTerminal("a")}))
	g.AddRule(NewRule(NewVariable("S1"), Word{NewTerminal("a")}))

	existing := make(map[string]bool)
	for _, l := range g.AllLetters() {
		existing[l.Name] = true
	}

	fresh := g.FreshNames(NewVariable("S"), 2)
	for _, l := range fresh {
		assert.False(existing[l.Name], "fresh name %q already present in grammar", l.Name)
	}
}

func Test_Grammar_ToFormat_rendersStartAndRuleLines(t *testing.T) {
	assert := assert.New(t)

	g := buildTestGrammar()
	out := g.ToFormat(g.MinFormat())

	assert.Contains(out, "start S")
	assert.Contains(out, "A -> a")
	assert.Contains(out, "B -> b")
}

func Test_Grammar_MinFormat(t *testing.T) {
	testCases := []struct {
		name    string
		letters []Letter
		expect  MinFormat
	}{
		{
			name: "single char names, case disciplined -> char",
			letters: []Letter{
				NewVariable("S"), NewTerminal("a"),
			},
			expect: FormatChar,
		},
		{
			name: "multi char names, case disciplined -> spaced",
			letters: []Letter{
				NewVariable("Start"), NewTerminal("foo"),
			},
			expect: FormatSpaced,
		},
		{
			name: "terminal with uppercase breaks discipline -> spaced!",
			letters: []Letter{
				NewVariable("S"), NewTerminal("Foo"),
			},
			expect: FormatSpacedExclaim,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := New()
			for _, l := range tc.letters {
				if l.Variable {
					g.AddRule(NewRule(l, Word{NewTerminal("x")}))
				} else {
					g.AddRule(NewRule(NewVariable("Z"), Word{l}))
				}
			}

			assert.Equal(tc.expect, g.MinFormat())
		})
	}
}
