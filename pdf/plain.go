package pdf

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// a4Height is the page height reported by the plain engine, in points.
const a4Height = 842.0

// PlainLibrary is a document engine over form-feed-paginated plain-text
// files: a document is a UTF-8 file whose pages are separated by '\f'. It
// implements the full Library surface against the real filesystem, which
// makes it usable both as the test engine and as a stand-in backend when no
// native PDF engine is wired in.
type PlainLibrary struct{}

func NewPlainLibrary() *PlainLibrary {
	return &PlainLibrary{}
}

func (l *PlainLibrary) Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := &plainDocument{}
	for _, text := range strings.Split(string(data), "\f") {
		doc.pages = append(doc.pages, &plainPage{text: text})
	}
	return doc, nil
}

func (l *PlainLibrary) NewDocument() Document {
	return &plainDocument{}
}

func (l *PlainLibrary) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	// Page breaks become line breaks in the extracted text.
	return strings.ReplaceAll(string(data), "\f", "\n"), nil
}

func (l *PlainLibrary) NewTextDocument() TextDocument {
	return &plainTextDocument{}
}

type plainDocument struct {
	pages  []*plainPage
	closed bool
}

func (d *plainDocument) PageCount() int {
	return len(d.pages)
}

func (d *plainDocument) Page(i int) (Page, error) {
	if d.closed {
		return nil, errors.New("document is closed")
	}
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("page %d out of range [0, %d)", i, len(d.pages))
	}
	return d.pages[i], nil
}

func (d *plainDocument) AppendPages(src Document, from, to int) error {
	if d.closed {
		return errors.New("document is closed")
	}
	other, ok := src.(*plainDocument)
	if !ok {
		return fmt.Errorf("cannot append pages from a %T", src)
	}
	if from < 0 || to >= len(other.pages) || from > to {
		return fmt.Errorf("page range %d-%d out of bounds", from, to)
	}
	for i := from; i <= to; i++ {
		d.pages = append(d.pages, other.pages[i].clone())
	}
	return nil
}

func (d *plainDocument) Save(path string) error {
	if d.closed {
		return errors.New("document is closed")
	}
	texts := make([]string, len(d.pages))
	for i, p := range d.pages {
		texts[i] = p.render()
	}
	return os.WriteFile(path, []byte(strings.Join(texts, "\f")), 0o644)
}

func (d *plainDocument) Close() error {
	d.closed = true
	return nil
}

type stamp struct {
	x, y float64
	text string
}

type plainPage struct {
	text   string
	stamps []stamp
}

func (p *plainPage) Text() string {
	return p.text
}

func (p *plainPage) Height() float64 {
	return a4Height
}

func (p *plainPage) InsertText(x, y float64, text string, fontSize float64) error {
	p.stamps = append(p.stamps, stamp{x: x, y: y, text: text})
	return nil
}

// render flattens stamps into extra lines so they survive a save/open
// round trip the way stamped text does in a real PDF.
func (p *plainPage) render() string {
	if len(p.stamps) == 0 {
		return p.text
	}
	parts := []string{p.text}
	for _, s := range p.stamps {
		parts = append(parts, s.text)
	}
	return strings.Join(parts, "\n")
}

func (p *plainPage) clone() *plainPage {
	cp := &plainPage{text: p.render()}
	return cp
}

type plainTextDocument struct {
	paragraphs []string
}

func (t *plainTextDocument) AddParagraph(text string) {
	t.paragraphs = append(t.paragraphs, text)
}

func (t *plainTextDocument) Save(path string) error {
	return os.WriteFile(path, []byte(strings.Join(t.paragraphs, "\n")), 0o644)
}
