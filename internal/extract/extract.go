// Package extract turns files on disk into page-equivalent units of plain
// text for full-text indexing. Each supported format has one extractor;
// formats the index tracks but cannot read (spreadsheets, images, archives)
// are indexed by metadata only and yield no text.
package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jpl-au/docdex/internal/store"
)

// Extractor produces the text pages of one file. Paginated formats report
// real 0-indexed page numbers; everything else uses a single page 0.
type Extractor func(path string) ([]store.Page, error)

// textExtractors maps lowercase file extensions to their extractor. Formats
// listed in supportedExtensions but absent here are metadata-only.
var textExtractors = map[string]Extractor{
	".pdf":  PDF,
	".docx": DOCX,
	".txt":  Text,
	".html": HTML,
	".htm":  HTML,
}

// supportedExtensions is the full set of file types the scanner indexes,
// including formats it can only track by filename and metadata.
var supportedExtensions = map[string]bool{
	".pdf": true, ".docx": true, ".doc": true, ".txt": true, ".rtf": true,
	".html": true, ".htm": true, ".xlsx": true, ".xls": true, ".csv": true,
	".pptx": true, ".ppt": true, ".png": true, ".jpg": true, ".jpeg": true,
	".bmp": true, ".gif": true, ".tif": true, ".tiff": true, ".zip": true,
	".7z": true, ".rar": true, ".gz": true, ".tar": true, ".exe": true,
}

// Supported reports whether files with this extension belong in the index.
func Supported(ext string) bool {
	return supportedExtensions[strings.ToLower(ext)]
}

// HasText reports whether this extension has a real text extractor, as
// opposed to being tracked metadata-only.
func HasText(ext string) bool {
	_, ok := textExtractors[strings.ToLower(ext)]
	return ok
}

// Pages extracts the text pages of the file at path, dispatching on its
// extension. Metadata-only formats return no pages and no error.
func Pages(path string) ([]store.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fn, ok := textExtractors[ext]
	if !ok {
		return nil, nil
	}
	return fn(path)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// collapseWhitespace normalises runs of whitespace to single spaces so that
// layout artifacts from extraction don't pollute the full-text index.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
