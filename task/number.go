package task

import (
	"fmt"
	"path/filepath"
	"strconv"
)

const stampFontSize = 12

// runNumber stamps a page label near the bottom-left corner of every page at
// or past the start page. The output is always written, even when the start
// page lies beyond the document and zero pages were stamped.
func (r *Runner) runNumber(p NumberParams, sig *Signal) error {
	q := r.queue
	q.Push(Log{KindNumber, fmt.Sprintf("numbering file: %s", filepath.Base(p.PDFPath))})

	doc, err := r.lib.Open(p.PDFPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	total := doc.PageCount()
	for i := 0; i < total; i++ {
		if sig.IsSet() {
			q.Push(Log{KindNumber, cancelledByUser})
			q.Push(Done{})
			return nil
		}
		if i+1 >= p.StartPage {
			page, err := doc.Page(i)
			if err != nil {
				return err
			}
			label := i + 1
			if p.UseInitial {
				// Numbering restarts at StartNumber on the start page.
				label = p.StartNumber + (i - p.StartPage + 1)
			}
			y := page.Height() - float64(p.Y)
			text := p.Prefix + strconv.Itoa(label)
			if err := page.InsertText(float64(p.X), y, text, stampFontSize); err != nil {
				return err
			}
		}
		q.Push(Progress{KindNumber, percent(i+1, total), i + 1, total})
	}

	out := r.outputPath(p.PDFPath, "_numerado", ".pdf")
	if err := doc.Save(out); err != nil {
		return err
	}
	q.Push(Log{KindNumber, "generated: " + out})
	r.preview(out)
	q.Push(Done{})
	return nil
}
