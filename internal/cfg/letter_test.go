package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Letter_Format(t *testing.T) {
	testCases := []struct {
		name   string
		letter Letter
		format MinFormat
		expect string
	}{
		{
			name:   "terminal, char format",
			letter: NewTerminal("a"),
			format: FormatChar,
			expect: "a",
		},
		{
			name:   "variable, char format has no marker",
			letter: NewVariable("S"),
			format: FormatChar,
			expect: "S",
		},
		{
			name:   "variable, spaced! format gets trailing !",
			letter: NewVariable("Start"),
			format: FormatSpacedExclaim,
			expect: "Start!",
		},
		{
			name:   "terminal, spaced! format has no marker",
			letter: NewTerminal("hello"),
			format: FormatSpacedExclaim,
			expect: "hello",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.letter.Format(tc.format))
		})
	}
}

func Test_Letter_Equal(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(NewVariable("S"), NewVariable("S"))
	assert.NotEqual(NewVariable("S"), NewTerminal("S"))
	assert.NotEqual(NewVariable("S"), NewVariable("A"))
}
