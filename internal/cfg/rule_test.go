package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Rule_NewRule_panicsOnNonVariableInput(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		NewRule(NewTerminal("a"), Word{NewTerminal("b")})
	})
}

func Test_Rule_Equal(t *testing.T) {
	assert := assert.New(t)

	r1 := NewRule(NewVariable("S"), Word{NewVariable("A"), NewTerminal("b")})
	r2 := NewRule(NewVariable("S"), Word{NewVariable("A"), NewTerminal("b")})
	r3 := NewRule(NewVariable("S"), Word{NewTerminal("b"), NewVariable("A")})

	assert.True(r1.Equal(r2))
	assert.False(r1.Equal(r3))
}

func Test_Rule_Key_distinguishesVariableFromTerminalOfSameName(t *testing.T) {
	assert := assert.New(t)

	r1 := NewRule(NewVariable("S"), Word{NewVariable("A")})
	r2 := NewRule(NewVariable("S"), Word{NewTerminal("A")})

	assert.NotEqual(r1.Key(), r2.Key())
}

func Test_Rule_Key_sameForEqualRules(t *testing.T) {
	assert := assert.New(t)

	r1 := NewRule(NewVariable("S"), Word{NewVariable("A"), NewTerminal("b")})
	r2 := NewRule(NewVariable("S"), Word{NewVariable("A"), NewTerminal("b")})

	assert.Equal(r1.Key(), r2.Key())
}

func Test_Rule_String(t *testing.T) {
	assert := assert.New(t)

	r := NewRule(NewVariable("S"), Word{NewVariable("A"), NewTerminal("b")})
	assert.Equal("S -> A b", r.String())
}
