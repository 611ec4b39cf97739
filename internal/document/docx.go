package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// readDOCX pulls the paragraph text out of a DOCX container: a zip archive
// whose word/document.xml holds the body. Paragraph boundaries become
// newlines; all other markup is dropped.
func readDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	for _, f := range archive.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return docxParagraphs(rc)
	}

	return "", errors.New("no word/document.xml in archive")
}

func docxParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var out strings.Builder
	var para strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.CharData:
			para.Write(t)
		case xml.EndElement:
			if t.Name.Local != "p" {
				continue
			}
			line := strings.TrimSpace(para.String())
			para.Reset()
			if line == "" {
				continue
			}
			if out.Len() > 0 {
				out.WriteString("\n")
			}
			out.WriteString(line)
		}
	}

	return strings.TrimSpace(out.String()), nil
}
