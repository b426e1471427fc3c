// meta.go guesses document metadata from file paths. The heuristics are
// deliberately shallow: they only ever fill empty columns, so a wrong guess
// costs one manual edit while a right one saves typing for the common
// "Manufacturer/Model_Type.pdf" naming convention.

package scan

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// knownManufacturers are matched as plain substrings anywhere in the path,
// so a vendor folder name is enough.
var knownManufacturers = []string{"siemens", "ge", "philips", "draeger", "medtronic"}

// knownDocTypes are matched as whole words in the path; first match wins.
var knownDocTypes = []string{
	"manual", "sop", "datasheet", "service", "user",
	"quick guide", "pm", "calibration", "protocol",
}

var (
	titler = cases.Title(language.English)

	// docTypeRe matches a doc type as a whole word; modelRe extracts the
	// token adjoining it by underscore on either side, e.g. "evita4_manual"
	// or "manual_evita4".
	docTypeRe = make(map[string]*regexp.Regexp, len(knownDocTypes))
	modelRe   = make(map[string]*regexp.Regexp, len(knownDocTypes))

	genericModelRe = regexp.MustCompile(`\b([a-zA-Z]{2,6}[-_][a-zA-Z0-9]{2,8})\b`)
)

func init() {
	for _, dt := range knownDocTypes {
		q := regexp.QuoteMeta(dt)
		docTypeRe[dt] = regexp.MustCompile(`\b` + q + `\b`)
		modelRe[dt] = regexp.MustCompile(
			`([a-zA-Z0-9]+(?:[-_][a-zA-Z0-9]+)*)_` + q + `|` + q + `_([a-zA-Z0-9]+(?:[-_][a-zA-Z0-9]+)*)`)
	}
}

// Meta holds metadata guessed from a file's path. Empty fields mean no guess.
type Meta struct {
	Manufacturer string
	DeviceModel  string
	DocumentType string
}

// MetaFromPath guesses manufacturer, device model and document type from a
// file path. Manufacturer is looked for anywhere in the path, document type
// as a whole word, and the model first next to the type token in the
// filename, then as a generic alphanumeric code.
func MetaFromPath(path string) Meta {
	var m Meta
	pathLower := strings.ToLower(path)
	nameLower := filepath.Base(pathLower)

	for _, manuf := range knownManufacturers {
		if strings.Contains(pathLower, manuf) {
			m.Manufacturer = titler.String(manuf)
			break
		}
	}

	for _, dt := range knownDocTypes {
		if !docTypeRe[dt].MatchString(pathLower) {
			continue
		}
		m.DocumentType = titler.String(dt)
		if g := modelRe[dt].FindStringSubmatch(nameLower); g != nil {
			model := g[1]
			if model == "" {
				model = g[2]
			}
			if len(model) > 2 {
				m.DeviceModel = strings.ToUpper(model)
			}
		}
		break
	}

	if m.DeviceModel == "" {
		if g := genericModelRe.FindStringSubmatch(nameLower); g != nil {
			m.DeviceModel = strings.ToUpper(g[1])
		}
	}

	return m
}
