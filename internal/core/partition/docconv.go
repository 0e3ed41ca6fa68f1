package partition

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/Preprocessa/internal/core"
)

// DocconvPartitioner is the local fallback used when no partition endpoint is
// configured. docconv only yields plain text, so it emits text elements
// grouped by the same title-delimited bounds the hosted partitioner uses;
// tables and images are simply not detected.
type DocconvPartitioner struct{}

func NewDocconvPartitioner() *DocconvPartitioner {
	return &DocconvPartitioner{}
}

func (p *DocconvPartitioner) Partition(ctx context.Context, filePath string, imageDir string) ([]core.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := docconv.ConvertPath(filePath)
	if err != nil {
		return nil, fmt.Errorf("docconv: %w", err)
	}
	if strings.TrimSpace(res.Body) == "" {
		return nil, fmt.Errorf("docconv: extracted empty text from %s", filePath)
	}

	var elements []core.Element
	for _, block := range groupByTitle(res.Body) {
		elements = append(elements, core.Element{Kind: core.ElementText, Text: block})
	}
	return elements, nil
}

// groupByTitle folds lines into chunks: a new chunk starts at a title-looking
// line or once the current chunk passes newAfterNChars, chunks never exceed
// maxCharacters, and runs smaller than combineUnderNChars are merged forward.
func groupByTitle(text string) []string {
	var groups []string
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			groups = append(groups, s)
		}
		b.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 && (looksLikeTitle(line) && b.Len() >= combineUnderNChars || b.Len() >= newAfterNChars) {
			flush()
		}
		for b.Len()+len(line)+1 > maxCharacters {
			// hard split a pathological run so no chunk exceeds the cap
			room := maxCharacters - b.Len() - 1
			if room <= 0 {
				flush()
				continue
			}
			b.WriteString(" ")
			b.WriteString(line[:room])
			line = line[room:]
			flush()
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(line)
	}
	flush()
	return groups
}

// looksLikeTitle is a cheap heading heuristic: short line, starts with an
// upper-case letter or digit, no sentence-ending punctuation.
func looksLikeTitle(line string) bool {
	if len(line) == 0 || len(line) > 80 {
		return false
	}
	r := []rune(line)[0]
	if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
		return false
	}
	switch line[len(line)-1] {
	case '.', ',', ';', ':':
		return false
	}
	return true
}

var _ core.Partitioner = (*DocconvPartitioner)(nil)
