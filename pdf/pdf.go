// Package pdf defines the document-engine surface the task algorithms run
// against. The engine itself is an injected collaborator: task code only sees
// these interfaces, so any backend able to open paginated documents, read
// page text and persist new documents can drive the toolkit.
package pdf

// Library is the entry point of a document engine.
type Library interface {
	// Open loads an existing document from disk.
	Open(path string) (Document, error)

	// NewDocument creates an empty document that pages can be appended to.
	NewDocument() Document

	// ExtractText returns the whole plain-text content of a document in one
	// pass, without going through the page API.
	ExtractText(path string) (string, error)

	// NewTextDocument creates an empty word-processor document.
	NewTextDocument() TextDocument
}

// Document is one open paginated document.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page loads the 0-based page i.
	Page(i int) (Page, error)

	// AppendPages copies pages [from, to] (0-based, inclusive) of src onto
	// the end of the document.
	AppendPages(src Document, from, to int) error

	// Save persists the document, stamps included, to path.
	Save(path string) error

	// Close releases the document. Further use is undefined.
	Close() error
}

// Page is one page of an open document.
type Page interface {
	// Text returns the page's plain-text content.
	Text() string

	// Height returns the page height in points.
	Height() float64

	// InsertText stamps text at x points from the left edge and y points
	// from the top edge.
	InsertText(x, y float64, text string, fontSize float64) error
}

// TextDocument accumulates paragraphs and is saved once at the end, the
// way the toolkit builds its text-conversion output.
type TextDocument interface {
	AddParagraph(text string)
	Save(path string) error
}
