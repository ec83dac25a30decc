package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_BareWords(t *testing.T) {
	tree := Parse("brown fox")
	assert.Len(t, tree.Branches, 1)
	assert.Empty(t, tree.Branches[0].Phrases)
	assert.Equal(t, "brown fox", tree.Branches[0].Residual)
}

func TestParse_OrSplitsBranches(t *testing.T) {
	tree := Parse("quick OR turtles")
	assert.Len(t, tree.Branches, 2)
	assert.Equal(t, "quick", tree.Branches[0].Residual)
	assert.Equal(t, "turtles", tree.Branches[1].Residual)
}

func TestParse_PhraseExtraction(t *testing.T) {
	tree := Parse(`"brown fox" jumps`)
	assert.Len(t, tree.Branches, 1)
	assert.Equal(t, []string{"brown fox"}, tree.Branches[0].Phrases)
	assert.Equal(t, "jumps", tree.Branches[0].Residual)
}

func TestParse_MultiplePhrasesInOneBranch(t *testing.T) {
	tree := Parse(`"a b" mid "c d"`)
	assert.Equal(t, []string{"a b", "c d"}, tree.Branches[0].Phrases)
	assert.Equal(t, "mid", tree.Branches[0].Residual)
}

func TestPruneWildcards(t *testing.T) {
	kept, ignored := PruneWildcards([]string{"br*n", "a*", "**", "plain"}, 2)
	assert.Equal(t, []string{"br*n", "plain"}, kept)
	assert.Equal(t, []string{"a*", "**"}, ignored)
}

func TestPruneWildcards_NoWildcards(t *testing.T) {
	kept, ignored := PruneWildcards([]string{"abc", "def"}, DefaultMinimumWildcardWordLength)
	assert.Equal(t, []string{"abc", "def"}, kept)
	assert.Empty(t, ignored)
}
