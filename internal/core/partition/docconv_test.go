package partition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByTitleBoundsChunks(t *testing.T) {
	line := strings.Repeat("word ", 100) // ~500 chars per line
	text := strings.Repeat(strings.TrimSpace(line)+"\n", 20)

	groups := groupByTitle(text)
	require.NotEmpty(t, groups)
	for i, g := range groups {
		assert.LessOrEqual(t, len(g), maxCharacters, "group %d over cap", i)
	}
}

func TestGroupByTitleSkipsBlankLines(t *testing.T) {
	groups := groupByTitle("first line\n\n\nsecond line\n")
	require.Len(t, groups, 1)
	assert.Equal(t, "first line second line", groups[0])
}

func TestGroupByTitleSmallRunsMergeForward(t *testing.T) {
	// title-looking lines must not split runs below the combine threshold
	groups := groupByTitle("Overview\nsome body text\nDetails\nmore body text\n")
	assert.Len(t, groups, 1)
}

func TestGroupByTitleHardSplitsLongRun(t *testing.T) {
	groups := groupByTitle(strings.Repeat("x", maxCharacters*3))
	require.Greater(t, len(groups), 1)
	for _, g := range groups {
		assert.LessOrEqual(t, len(g), maxCharacters)
	}
}

func TestLooksLikeTitle(t *testing.T) {
	assert.True(t, looksLikeTitle("Quarterly Report"))
	assert.True(t, looksLikeTitle("2024 Revenue"))
	assert.False(t, looksLikeTitle("a lowercase start"))
	assert.False(t, looksLikeTitle("Ends with a period."))
	assert.False(t, looksLikeTitle(strings.Repeat("Long", 30)))
	assert.False(t, looksLikeTitle(""))
}
