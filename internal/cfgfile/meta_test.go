package cfgfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SplitLines_separatesMetaFromParseLines(t *testing.T) {
	assert := assert.New(t)

	text := "format char\n\nstart S\nS -> a\nmode cfg\n# a comment\nA -> b"
	parseLines, metaLines := SplitLines(text)

	assert.Equal([]string{"start S", "S -> a", "A -> b"}, parseLines)
	assert.Equal([]string{"format char", "mode cfg", "# a comment"}, metaLines)
}

func Test_SplitLines_ignoresBlankLines(t *testing.T) {
	assert := assert.New(t)

	parseLines, metaLines := SplitLines("\n\n  \nS -> a\n\n")
	assert.Equal([]string{"S -> a"}, parseLines)
	assert.Empty(metaLines)
}

func Test_ParseMetaLines_lastWins(t *testing.T) {
	assert := assert.New(t)

	metaLines := []string{"format char", "format spaced", "mode cfg"}
	md := ParseMetaLines(metaLines)

	assert.Equal([]string{"spaced"}, md.Format)
	assert.Equal([]string{"cfg"}, md.Mode)
}

func Test_MetaData_RequireFormat(t *testing.T) {
	assert := assert.New(t)

	md := ParseMetaLines([]string{"format char"})
	format, err := md.RequireFormat()
	assert.NoError(err)
	assert.Equal("char", format)

	empty := MetaData{}
	_, err = empty.RequireFormat()
	assert.Error(err)
}

func Test_MetaData_ModeOrDefault(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("cfg", MetaData{}.ModeOrDefault())
	assert.Equal("pda", MetaData{Mode: []string{"pda"}}.ModeOrDefault())
}
