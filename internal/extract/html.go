package extract

import (
	"html"
	"regexp"

	"github.com/jpl-au/docdex/internal/store"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<script.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style.*?</style>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
)

// HTML extracts visible text from an HTML file as a single page 0 by
// stripping script and style blocks, then all remaining tags. A regex pass
// is enough here: inputs are saved vendor pages and exported reports, not
// adversarial markup.
func HTML(path string) ([]store.Page, error) {
	raw, err := decodeTextFile(path)
	if err != nil {
		return nil, err
	}

	text := scriptRe.ReplaceAllString(raw, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = collapseWhitespace(html.UnescapeString(text))
	if text == "" {
		return nil, nil
	}
	return []store.Page{{Number: 0, Text: text}}, nil
}
