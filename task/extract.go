package task

import (
	"fmt"
	"path/filepath"
)

// runExtract copies the pages selected by the range expression into a new
// document. An expression that selects nothing is not an error: the run logs
// it and ends in Done without writing a file.
func (r *Runner) runExtract(p ExtractParams, sig *Signal) error {
	q := r.queue
	q.Push(Log{KindExtract, fmt.Sprintf("extracting pages from: %s", filepath.Base(p.PDFPath))})

	doc, err := r.lib.Open(p.PDFPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	pages := ParseRanges(p.Ranges, doc.PageCount())
	if len(pages) == 0 {
		q.Push(Log{KindExtract, "no valid pages in selection"})
		q.Push(Done{})
		return nil
	}

	result := r.lib.NewDocument()
	defer result.Close()

	total := len(pages)
	for i, pg := range pages {
		if sig.IsSet() {
			q.Push(Log{KindExtract, cancelledByUser})
			q.Push(Done{})
			return nil
		}
		if err := result.AppendPages(doc, pg, pg); err != nil {
			return err
		}
		q.Push(Progress{KindExtract, percent(i+1, total), i + 1, total})
		q.Push(Log{KindExtract, fmt.Sprintf("page %d added", pg+1)})
	}

	out := r.outputPath(p.PDFPath, "_extraido", ".pdf")
	if err := result.Save(out); err != nil {
		return err
	}
	q.Push(Log{KindExtract, "generated: " + out})
	r.preview(out)
	q.Push(Done{})
	return nil
}
