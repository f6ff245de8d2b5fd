package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal single-font PDF. Each entry in pages is the text
// drawn on that page; an empty entry produces a page with no content stream.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	var objects []string
	pageCount := len(pages)
	fontID := 3 + pageCount*2
	kids := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i*2))
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pageCount),
	)
	for i, text := range pages {
		contentID := 4 + i*2
		page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			fmt.Sprintf("/Resources << /Font << /F1 %d 0 R >> >>", fontID)
		if text != "" {
			page += fmt.Sprintf(" /Contents %d 0 R", contentID)
		}
		page += " >>"
		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		}
		objects = append(objects, page, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)
	return buf.Bytes()
}

// buildDOCX writes a minimal word document with one paragraph per entry.
func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006" xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape" xmlns:v="urn:schemas-microsoft-com:vml"><w:body>` + body + `</w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func paragraph(runs ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	for _, r := range runs {
		sb.WriteString("<w:r><w:t xml:space=\"preserve\">" + r + "</w:t></w:r>")
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func TestKindFromFileName(t *testing.T) {
	tests := map[string]Kind{
		"jd.pdf":           KindPDF,
		"JD.PDF":           KindPDF,
		"role.Docx":        KindDOCX,
		"archive.tar.docx": KindDOCX,
	}
	for name, want := range tests {
		got, err := KindFromFileName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"notes.txt", "jd.doc", "pdf", "jd.pdf.txt", ""} {
		_, err := KindFromFileName(name)
		assert.ErrorIs(t, err, ErrUnsupportedFileType, name)
	}
}

func TestExtractPDFConcatenatesPages(t *testing.T) {
	data := buildPDF(t, "Backend Engineer", "Go and PostgreSQL")

	text, err := Extract(context.Background(), data, KindPDF)
	require.NoError(t, err)

	first := strings.Index(text, "Backend Engineer")
	second := strings.Index(text, "Go and PostgreSQL")
	require.GreaterOrEqual(t, first, 0, "text: %q", text)
	require.Greater(t, second, first, "pages out of order: %q", text)
}

func TestExtractPDFImageOnlyPageContributesNothing(t *testing.T) {
	data := buildPDF(t, "")

	text, err := Extract(context.Background(), data, KindPDF)
	require.NoError(t, err)
	assert.Equal(t, "", strings.TrimSpace(text))
}

func TestExtractPDFMixedPages(t *testing.T) {
	data := buildPDF(t, "", "Only text page")

	text, err := Extract(context.Background(), data, KindPDF)
	require.NoError(t, err)
	assert.Contains(t, text, "Only text page")
}

func TestExtractPDFMalformed(t *testing.T) {
	_, err := Extract(context.Background(), []byte("this is not a pdf"), KindPDF)
	require.Error(t, err)

	var extractErr *Error
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, KindPDF, extractErr.Kind)
	assert.NotEmpty(t, extractErr.Err.Error())
}

func TestExtractDOCXJoinsParagraphs(t *testing.T) {
	data := buildDOCX(t, paragraph("Senior ", "Go Engineer")+paragraph("Remote")+paragraph())

	text, err := Extract(context.Background(), data, KindDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer\nRemote\n", text)
}

func TestExtractDOCXKeepsTabsAndBreaks(t *testing.T) {
	body := `<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go</w:t><w:br/><w:t>SQL</w:t></w:r></w:p>`
	data := buildDOCX(t, body)

	text, err := Extract(context.Background(), data, KindDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Skills:\tGo\nSQL", text)
}

func TestExtractDOCXSkipsTextBoxesAndTables(t *testing.T) {
	textBox := `<w:txbxContent><w:p><w:r><w:t>Boxed</w:t></w:r></w:p></w:txbxContent>`
	body := paragraph("Before") +
		`<w:p><w:r><mc:AlternateContent>` +
		`<mc:Choice Requires="wps"><w:drawing><wps:txbx>` + textBox + `</wps:txbx></w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict><v:textbox>` + textBox + `</v:textbox></w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r><w:r><w:t>Anchor</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc>` + paragraph("Cell") + `</w:tc></w:tr></w:tbl>`
	data := buildDOCX(t, body)

	text, err := Extract(context.Background(), data, KindDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Before\nAnchor", text)
}

func TestExtractDOCXIncludesHyperlinkRuns(t *testing.T) {
	body := `<w:p><w:r><w:t xml:space="preserve">Apply at </w:t></w:r><w:hyperlink><w:r><w:t>careers</w:t></w:r></w:hyperlink></w:p>`
	data := buildDOCX(t, body)

	text, err := Extract(context.Background(), data, KindDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Apply at careers", text)
}

func TestExtractDOCXMalformed(t *testing.T) {
	_, err := Extract(context.Background(), []byte("PK not really a zip"), KindDOCX)

	var extractErr *Error
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, KindDOCX, extractErr.Kind)
}

func TestExtractRejectsUnknownKind(t *testing.T) {
	_, err := Extract(context.Background(), []byte("hello"), Kind("TXT"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestExtractHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, buildPDF(t, "x"), KindPDF)
	assert.ErrorIs(t, err, context.Canceled)
}
