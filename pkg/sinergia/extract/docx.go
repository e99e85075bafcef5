package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxText reads the paragraphs of word/document.xml.
func docxText(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	for _, f := range r.File {
		if !strings.EqualFold(f.Name, "word/document.xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return wordXMLText(rc)
	}
	return "", fmt.Errorf("docx: word/document.xml not found")
}

func wordXMLText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var buf strings.Builder
	newline := true
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return "", fmt.Errorf("docx xml: %w", err)
				}
				buf.WriteString(text)
				newline = false
			case "tab":
				buf.WriteByte('\t')
				newline = false
			case "br", "cr":
				buf.WriteByte('\n')
				newline = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "tr":
				if !newline {
					buf.WriteByte('\n')
					newline = true
				}
			case "tc":
				buf.WriteByte('\t')
			}
		}
	}
	return buf.String(), nil
}
