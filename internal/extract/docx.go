package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/docdex/internal/store"
)

// DOCX extracts the body text of a Word document. A .docx file is a zip
// archive; the text lives in w:t elements of word/document.xml. Word stores
// no reliable page boundaries in the XML, so the whole body becomes one
// synthetic page 0.
func DOCX(path string) ([]store.Page, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml in %s: %w", path, err)
		}
		text, err := wordText(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse document.xml in %s: %w", path, err)
		}
		if text == "" {
			return nil, nil
		}
		return []store.Page{{Number: 0, Text: text}}, nil
	}
	return nil, fmt.Errorf("docx %s: no word/document.xml", path)
}

// wordText walks the XML token stream collecting character data inside w:t
// (text run) elements, with paragraph breaks between w:p elements.
func wordText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString(" ")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return collapseWhitespace(sb.String()), nil
}
