package ingestion_engine

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/markdave123-py/Preprocessa/internal/core"
)

// tableConverter renders table HTML as Markdown with ATX headings and pipe
// tables. The converter is stateless and safe for concurrent use.
var tableConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// Classify sorts extracted elements into narrative text blocks and table
// representations, preserving input order within each output slice.
//
// Tables arrive as HTML from the partitioner and are converted to Markdown
// so the persisted content stays readable to the chat layer. Image elements
// carry no inline payload and are skipped here; their bytes are picked up
// from the working directory later. Any element lands in at most one of the
// two outputs.
func Classify(elements []core.Element) (texts []string, tables []string, err error) {
	for _, el := range elements {
		switch el.Kind {
		case core.ElementText:
			texts = append(texts, el.Text)
		case core.ElementTable:
			md, convErr := tableConverter.ConvertString(el.HTML)
			if convErr != nil {
				return nil, nil, fmt.Errorf("convert table html to markdown: %w", convErr)
			}
			tables = append(tables, md)
		default:
			// images and anything unrecognized are dropped silently
		}
	}
	return texts, tables, nil
}
