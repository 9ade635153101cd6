package task

import (
	"fmt"
	"path/filepath"
	"strings"
)

// runConvert extracts the document's whole plain text up front, then wraps
// each line as one paragraph of a new text document. Extraction happens
// outside the cancellable loop and is credited a flat first 10% of progress;
// line progress maps linearly onto the 10-90% band, with an explicit 100%
// after the save. The output is always written, even for zero lines.
func (r *Runner) runConvert(p ConvertParams, sig *Signal) error {
	q := r.queue
	q.Push(Log{KindConvert, fmt.Sprintf("starting conversion: %s", filepath.Base(p.PDFPath))})

	// The page count is only a display hint for the extraction step; losing
	// it is not an error.
	pageHint := 1
	if doc, err := r.lib.Open(p.PDFPath); err == nil {
		if n := doc.PageCount(); n > pageHint {
			pageHint = n
		}
		doc.Close()
	}

	text, err := r.lib.ExtractText(p.PDFPath)
	if err != nil {
		return err
	}
	lines := splitLines(text)
	q.Push(Progress{KindConvert, 10, 1, pageHint})

	out := r.lib.NewTextDocument()
	// One-line floor keeps the progress arithmetic away from zero totals.
	total := len(lines)
	if total < 1 {
		total = 1
	}
	for i, line := range lines {
		if sig.IsSet() {
			q.Push(Log{KindConvert, cancelledByUser})
			q.Push(Done{})
			return nil
		}
		out.AddParagraph(line)
		q.Push(Progress{KindConvert, 10 + int(float64(i+1)/float64(total)*80), i + 1, total})
	}

	path := r.outputPath(p.PDFPath, "", ".odt")
	if err := out.Save(path); err != nil {
		return err
	}
	q.Push(Log{KindConvert, "generated: " + path})
	q.Push(Progress{KindConvert, 100, total, total})
	r.preview(path)
	q.Push(Done{})
	return nil
}

// splitLines splits extracted text into lines, dropping the trailing empty
// line a final newline would produce. Empty text yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
