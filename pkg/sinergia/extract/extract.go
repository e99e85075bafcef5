// Package extract turns uploaded documents (résumés, job postings) into plain
// text for the comparison engine.
package extract

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
)

// Func extracts plain text from a document body.
type Func func(data []byte) (string, error)

var byExtension = map[string]Func{
	".txt":  plainText,
	".text": plainText,
	".md":   plainText,
	".html": htmlText,
	".htm":  htmlText,
	".pdf":  pdfText,
	".docx": docxText,
	".xlsx": xlsxText,
	".xls":  xlsText,
}

// Supported returns the file extensions Text understands.
func Supported() []string {
	out := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		out = append(out, ext)
	}
	return out
}

// Text extracts plain text from data, choosing the format from the extension
// of name. Unknown extensions fail with ErrUnsupportedFormat.
func Text(name string, data []byte) (string, error) {
	ext := strings.ToLower(path.Ext(name))
	fn, ok := byExtension[ext]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, internalerr.ErrUnsupportedFormat)
	}
	if len(data) == 0 {
		return "", nil
	}
	text, err := fn(data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", name, err)
	}
	return strings.TrimSpace(text), nil
}

func plainText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), " "), nil
}
