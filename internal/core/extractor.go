package core

import "context"

// ElementKind tags the closed set of element variants a partitioner emits.
type ElementKind int

const (
	ElementText ElementKind = iota
	ElementTable
	ElementImage
)

// Element is one typed block extracted from a source document.
//
// Text holds the narrative form for ElementText. HTML holds the structured
// table representation for ElementTable (converted to markdown downstream).
// ElementImage elements carry no payload: the partitioner writes image bytes
// to the run's working directory as .jpg files and the pipeline reads them
// back from disk.
type Element struct {
	Kind ElementKind
	Text string
	HTML string
}

// Partitioner decodes a document file into typed elements, writing any
// rendered image blocks into imageDir as .jpg files as a side effect.
// A parse failure is fatal for the run; there is no partial output.
type Partitioner interface {
	Partition(ctx context.Context, filePath string, imageDir string) ([]Element, error)
}
