package ingestion_engine

import "strings"

// DefaultChunkSize is the target chunk length in runes.
const DefaultChunkSize = 512

// DefaultChunkOverlap is how many trailing runes each chunk shares with the
// next one, preserving local context across boundaries.
const DefaultChunkOverlap = 64

// defaultSeparators is the prioritized list of break characters. The chunker
// prefers the earliest-listed separator that still yields a chunk under the
// size bound. The tail entries cover bullets, zero-width spaces and CJK
// punctuation.
var defaultSeparators = []string{
	" ",
	"\n",
	"\n\n",
	",",
	".",
	"•",
	"​",
	"，",
	"、",
	"．",
	"。",
}

// Chunker splits joined text into bounded, overlapping segments sized for
// embedding. Chunking is deterministic: identical input yields identical
// output.
type Chunker struct {
	size       int
	overlap    int
	separators [][]rune
}

// NewChunker builds a chunker with the given rune bounds. Non-positive size
// falls back to the default; overlap is clamped below size.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 4
	}
	seps := make([][]rune, len(defaultSeparators))
	for i, s := range defaultSeparators {
		seps[i] = []rune(s)
	}
	return &Chunker{size: size, overlap: overlap, separators: seps}
}

// Chunk splits text into segments of at most c.size runes. Every segment
// after the first begins with the previous segment's trailing c.overlap
// runes, so concatenating the first segment with each later segment minus
// that prefix reconstructs the input exactly.
func (c *Chunker) Chunk(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		if start+c.size >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		cut := c.cutPoint(runes[start : start+c.size])
		end := start + cut
		chunks = append(chunks, string(runes[start:end]))
		start = end - c.overlap
	}
	return chunks
}

// cutPoint picks where to end a chunk inside window. It walks the separator
// list in priority order and breaks just after the last occurrence of the
// first separator found, as long as that keeps the next chunk advancing past
// the overlap region. With no usable separator the window is cut whole; a
// run of separator-free text is an accepted hard-split case, not an error.
func (c *Chunker) cutPoint(window []rune) int {
	for _, sep := range c.separators {
		if at := lastIndexRunes(window, sep); at >= 0 {
			cut := at + len(sep)
			if cut > c.overlap {
				return cut
			}
		}
	}
	return len(window)
}

// lastIndexRunes reports the last index of sep within rs, or -1.
func lastIndexRunes(rs, sep []rune) int {
	if len(sep) == 0 || len(sep) > len(rs) {
		return -1
	}
	for i := len(rs) - len(sep); i >= 0; i-- {
		if string(rs[i:i+len(sep)]) == string(sep) {
			return i
		}
	}
	return -1
}

// JoinTexts concatenates narrative blocks with single-space separators,
// matching the form handed to the chunker by the pipeline.
func JoinTexts(texts []string) string {
	return strings.Join(texts, " ")
}
