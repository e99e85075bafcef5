package extract

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// pdfText reads the plain text layer of a PDF. Files the parser rejects fall
// back to a scan for printable runes.
func pdfText(data []byte) (string, error) {
	if r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		if reader, err := r.GetPlainText(); err == nil {
			if out, err := io.ReadAll(reader); err == nil && len(bytes.TrimSpace(out)) > 0 {
				return string(out), nil
			}
		}
	}
	return printableText(data), nil
}

func printableText(in []byte) string {
	var out bytes.Buffer
	for len(in) > 0 {
		r, size := utf8.DecodeRune(in)
		in = in[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 && r != 127 {
			out.WriteRune(r)
		}
	}
	return out.String()
}
