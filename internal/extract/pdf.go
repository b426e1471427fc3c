package extract

import (
	"fmt"

	"github.com/jpl-au/docdex/internal/store"
	"github.com/ledongthuc/pdf"
)

// PDF extracts per-page text from a PDF. The reader counts pages from 1;
// the index stores them 0-indexed. Individual pages that fail to decode are
// skipped so one bad page doesn't lose the rest of the document.
func PDF(path string) ([]store.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var pages []store.Page
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = collapseWhitespace(text)
		if text == "" {
			continue
		}
		pages = append(pages, store.Page{Number: i - 1, Text: text})
	}
	return pages, nil
}
