package task

import (
	"fmt"
	"path/filepath"
	"strings"
)

// runSearch walks every page of one document, tests its text against the
// query strings and collects matching pages into a result document. The
// result file is written only when at least one page matched.
func (r *Runner) runSearch(p SearchParams, sig *Signal) error {
	q := r.queue
	q.Push(Log{KindSearch, fmt.Sprintf("starting search in: %s", filepath.Base(p.PDFPath))})

	doc, err := r.lib.Open(p.PDFPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	result := r.lib.NewDocument()
	defer result.Close()

	queries := make([]string, len(p.Queries))
	copy(queries, p.Queries)
	if !p.CaseSensitive {
		for i, t := range queries {
			queries[i] = strings.ToLower(t)
		}
	}

	total := doc.PageCount()
	matched := 0
	for i := 0; i < total; i++ {
		if sig.IsSet() {
			q.Push(Log{KindSearch, cancelledByUser})
			q.Push(Done{})
			return nil
		}
		page, err := doc.Page(i)
		if err != nil {
			return err
		}
		text := page.Text()
		if !p.CaseSensitive {
			text = strings.ToLower(text)
		}
		if matchesQueries(text, queries, p.RequireAll) {
			if err := result.AppendPages(doc, i, i); err != nil {
				return err
			}
			matched++
			q.Push(Log{KindSearch, fmt.Sprintf("match on page %d", i+1)})
		}
		q.Push(Progress{KindSearch, percent(i+1, total), i + 1, total})
	}

	if matched > 0 {
		out := r.outputPath(p.PDFPath, "_resultado", ".pdf")
		if err := result.Save(out); err != nil {
			return err
		}
		q.Push(Log{KindSearch, "generated: " + out})
		r.preview(out)
	} else {
		q.Push(Log{KindSearch, "no matches found"})
	}
	q.Push(Done{})
	return nil
}

// matchesQueries applies AND semantics when requireAll is set, OR otherwise.
func matchesQueries(text string, queries []string, requireAll bool) bool {
	for _, t := range queries {
		found := strings.Contains(text, t)
		if requireAll && !found {
			return false
		}
		if !requireAll && found {
			return true
		}
	}
	return requireAll
}
