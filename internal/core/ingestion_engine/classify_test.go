package ingestion_engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Preprocessa/internal/core"
)

func TestClassifySplitsTextsAndTables(t *testing.T) {
	elements := []core.Element{
		{Kind: core.ElementText, Text: "intro paragraph"},
		{Kind: core.ElementTable, HTML: "<table><tr><th>Name</th><th>Age</th></tr><tr><td>Bob</td><td>7</td></tr></table>"},
		{Kind: core.ElementText, Text: "closing paragraph"},
	}

	texts, tables, err := Classify(elements)
	require.NoError(t, err)

	assert.Equal(t, []string{"intro paragraph", "closing paragraph"}, texts)
	require.Len(t, tables, 1)
	assert.Contains(t, tables[0], "Name")
	assert.Contains(t, tables[0], "Bob")
	assert.Contains(t, tables[0], "|", "table should render as pipe markdown")
}

func TestClassifyRendersATXHeadings(t *testing.T) {
	elements := []core.Element{
		{Kind: core.ElementTable, HTML: "<h2>Revenue</h2><table><tr><td>100</td></tr></table>"},
	}

	_, tables, err := Classify(elements)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Contains(t, tables[0], "## Revenue")
}

func TestClassifyDropsImageElements(t *testing.T) {
	elements := []core.Element{
		{Kind: core.ElementImage},
		{Kind: core.ElementText, Text: "only text"},
	}

	texts, tables, err := Classify(elements)
	require.NoError(t, err)
	assert.Equal(t, []string{"only text"}, texts)
	assert.Empty(t, tables)
}

func TestClassifyPreservesTableOrder(t *testing.T) {
	elements := []core.Element{
		{Kind: core.ElementTable, HTML: "<table><tr><td>first</td></tr></table>"},
		{Kind: core.ElementTable, HTML: "<table><tr><td>second</td></tr></table>"},
	}

	_, tables, err := Classify(elements)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.True(t, strings.Contains(tables[0], "first"))
	assert.True(t, strings.Contains(tables[1], "second"))
}

func TestClassifyEmptyInput(t *testing.T) {
	texts, tables, err := Classify(nil)
	require.NoError(t, err)
	assert.Empty(t, texts)
	assert.Empty(t, tables)
}
