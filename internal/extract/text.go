package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/docdex/internal/store"
	"golang.org/x/text/encoding/charmap"
)

// Text extracts a plain-text file as a single page 0, decoding through a
// fixed chain of encodings. Field notes and exported logs in this corpus are
// frequently Windows-1252 rather than UTF-8.
func Text(path string) ([]store.Page, error) {
	text, err := decodeTextFile(path)
	if err != nil {
		return nil, err
	}
	text = collapseWhitespace(text)
	if text == "" {
		return nil, nil
	}
	return []store.Page{{Number: 0, Text: text}}, nil
}

// decodeTextFile reads path and decodes it as UTF-8, then Windows-1252, then
// Latin-1, taking the first decoding that produces no replacement runes.
// Latin-1 is total over bytes, so the chain cannot fail to decode.
func decodeTextFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file %s: %w", path, err)
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		s := string(decoded)
		if !strings.ContainsRune(s, utf8.RuneError) {
			return s, nil
		}
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode text file %s: %w", path, err)
	}
	return string(decoded), nil
}
