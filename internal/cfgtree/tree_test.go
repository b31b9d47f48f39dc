package cfgtree

import (
	"testing"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/stretchr/testify/assert"
)

func Test_New_branchesRootToStartWord(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("S")})
	leaves := tree.Leaves()

	assert.Len(leaves, 1)
	assert.Equal("S", leaves[0].Name)
	assert.Nil(tree.LastAdded(), "initial root expansion must not be on the undo log")
}

func Test_BranchWord_expandsLeafAndRecordsUndo(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("S")})
	root := tree.Leaves()[0]

	tree.BranchWord(root, cfg.Word{cfg.NewVariable("A"), cfg.NewTerminal("b")})

	leaves := tree.Leaves()
	assert.Len(leaves, 2)
	assert.Equal("A", leaves[0].Name)
	assert.Equal("b", leaves[1].Name)
	assert.Equal(leaves, tree.LastAdded())
}

func Test_BranchWord_emptyWordAddsEpsilonTerminator(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("S")})
	root := tree.Leaves()[0]

	tree.BranchWord(root, cfg.Word{})

	assert.Empty(tree.Leaves(), "epsilon terminators are META nodes, not counted as leaves")
	assert.Equal(epsilonName, tree.Root.Children[0].Children[0].Name)
}

func Test_VariableLeaves_excludesTerminals(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("A"), cfg.NewTerminal("b"), cfg.NewVariable("C")})

	varLeaves := tree.VariableLeaves()
	assert.Len(varLeaves, 2)
	assert.Equal("A", varLeaves[0].Name)
	assert.Equal("C", varLeaves[1].Name)
}

func Test_Undo_detachesLastBranch(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("S")})
	root := tree.Leaves()[0]
	tree.BranchWord(root, cfg.Word{cfg.NewVariable("A"), cfg.NewVariable("B")})

	err := tree.Undo()
	assert.NoError(err)
	assert.Len(tree.Leaves(), 1)
	assert.Equal("S", tree.Leaves()[0].Name)
}

func Test_Undo_errorsWhenLogEmpty(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("S")})
	err := tree.Undo()
	assert.Error(err, "initial root expansion is never undoable")
}

func Test_Undo_cannotRemoveRoot(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("S")})
	tree.BranchWord(tree.Leaves()[0], cfg.Word{cfg.NewTerminal("a")})
	tree.Undo()

	err := tree.Undo()
	assert.Error(err)
	assert.NotNil(tree.Root)
}

func Test_NodeDerivation_andLetterDerivation(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("S")})
	root := tree.Leaves()[0]
	tree.BranchWord(root, cfg.Word{cfg.NewVariable("A"), cfg.NewTerminal("b")})
	a := tree.Leaves()[0]
	tree.BranchWord(a, cfg.Word{cfg.NewTerminal("a")})

	words := tree.LetterDerivation()
	assert.Equal(cfg.Word{cfg.NewVariable("S")}, words[0])
	assert.Equal(cfg.Word{cfg.NewVariable("A"), cfg.NewTerminal("b")}, words[1])
	assert.Equal(cfg.Word{cfg.NewTerminal("a"), cfg.NewTerminal("b")}, words[2])
}

func Test_IndexedState_labelsOnlyVariables(t *testing.T) {
	assert := assert.New(t)

	tree := New(cfg.Word{cfg.NewVariable("A"), cfg.NewTerminal("b"), cfg.NewVariable("C")})
	out := tree.IndexedState()

	assert.Contains(out, "A")
	assert.Contains(out, "b")
	assert.Contains(out, "C")
	assert.Contains(out, "0")
	assert.Contains(out, "1")
}
