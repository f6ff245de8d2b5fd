// Package extract turns uploaded job description files into plain text.
// PDF uses github.com/ledongthuc/pdf and DOCX uses github.com/nguyenthenguyen/docx.
package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Kind is the declared document type of an upload.
type Kind string

const (
	KindPDF  Kind = "PDF"
	KindDOCX Kind = "DOCX"
)

// ErrUnsupportedFileType is returned for names that are neither .pdf nor .docx.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Error reports a parse failure of a supported document.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindFromFileName maps a file name to its Kind by case-insensitive suffix.
func KindFromFileName(name string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return KindPDF, nil
	case strings.HasSuffix(lower, ".docx"):
		return KindDOCX, nil
	default:
		return "", ErrUnsupportedFileType
	}
}

// Extract returns the plain text of data. It has no side effects.
func Extract(ctx context.Context, data []byte, kind Kind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch kind {
	case KindPDF:
		text, err := extractPDF(data)
		if err != nil {
			return "", &Error{Kind: kind, Err: err}
		}
		return text, nil
	case KindDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", &Error{Kind: kind, Err: err}
		}
		return text, nil
	default:
		return "", ErrUnsupportedFileType
	}
}

func extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		sb.WriteString(pageText(reader.Page(i)))
	}
	return sb.String(), nil
}

// pageText yields "" for pages without extractable text, including pages
// whose content stream cannot be interpreted.
func pageText(page pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

// docxParagraphs returns the text of each body-level w:p in document order.
// Only runs that are direct children of the paragraph (or of a hyperlink in
// it) contribute, so tables, text boxes and mc:Fallback copies are left out.
// Runs keep tabs and breaks.
func docxParagraphs(documentXML string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))
	var (
		paragraphs []string
		path       []string
		current    *strings.Builder
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			if isBodyParagraph(path) {
				current = &strings.Builder{}
				continue
			}
			if current == nil || !isParagraphRun(path[:len(path)-1]) {
				continue
			}
			switch t.Name.Local {
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			if isBodyParagraph(path) && current != nil {
				paragraphs = append(paragraphs, current.String())
				current = nil
			}
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		case xml.CharData:
			n := len(path)
			if current != nil && n > 0 && path[n-1] == "t" && isParagraphRun(path[:n-1]) {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

// isBodyParagraph reports whether path is document/body/p.
func isBodyParagraph(path []string) bool {
	return len(path) == 3 && path[1] == "body" && path[2] == "p"
}

// isParagraphRun reports whether path ends in a w:r owned by a body paragraph,
// directly or through a w:hyperlink.
func isParagraphRun(path []string) bool {
	switch {
	case len(path) == 4:
		return isBodyParagraph(path[:3]) && path[3] == "r"
	case len(path) == 5:
		return isBodyParagraph(path[:3]) && path[3] == "hyperlink" && path[4] == "r"
	default:
		return false
	}
}
