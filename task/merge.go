package task

import (
	"fmt"
	"path/filepath"
	"strings"

	"pdftoolkit/pdf"
)

// runMerge appends the pages of each input file, in order, to one output
// document. A file that fails to open or append is logged and skipped; the
// remaining files still merge and the run still ends in Done. The output is
// always written, whatever the skip count.
func (r *Runner) runMerge(p MergeParams, sig *Signal) error {
	q := r.queue
	q.Push(Log{KindMerge, fmt.Sprintf("merging %d files into: %s", len(p.Files), p.OutputName)})

	name := p.OutputName
	if !filepath.IsAbs(name) {
		name = filepath.Join(r.cfg.ResultFolder, name)
	}
	// The merged output always ends in _unido.pdf, whatever the user typed.
	name = strings.TrimSuffix(name, filepath.Ext(name)) + "_unido.pdf"
	out := UniquePath(name)

	merged := r.lib.NewDocument()
	defer merged.Close()

	total := len(p.Files)
	for i, file := range p.Files {
		if sig.IsSet() {
			q.Push(Log{KindMerge, cancelledByUser})
			q.Push(Done{})
			return nil
		}
		if err := r.appendFile(merged, file); err != nil {
			q.Push(Log{KindMerge, fmt.Sprintf("error adding %s: %v", filepath.Base(file), err)})
		} else {
			q.Push(Log{KindMerge, "added: " + filepath.Base(file)})
		}
		q.Push(Progress{KindMerge, percent(i+1, total), i + 1, total})
	}

	if err := merged.Save(out); err != nil {
		return err
	}
	q.Push(Log{KindMerge, "generated: " + out})
	r.preview(out)
	q.Push(Done{})
	return nil
}

func (r *Runner) appendFile(merged pdf.Document, file string) error {
	src, err := r.lib.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()
	return merged.AppendPages(src, 0, src.PageCount()-1)
}
