package pdfextract

import (
	"bytes"
	"os"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

// buildFixturePDF produces a small multi-page PDF with one line of text
// per page.
func buildFixturePDF(t *testing.T, pageLines []string) []byte {
	t.Helper()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	for _, line := range pageLines {
		pdf.AddPage()
		pdf.Cell(40, 10, line)
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	content := buildFixturePDF(t, []string{"first page", "second page", "third page"})

	count, err := extractor.PageCount(content)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPageCountRejectsGarbage(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	_, err := extractor.PageCount([]byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestExtractPage(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	content := buildFixturePDF(t, []string{"first page", "second page"})

	pageContent, total, err := extractor.ExtractPage(content, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.NotNil(t, pageContent)
	assert.Equal(t, "%PDF", string(pageContent[:4]))

	// the extracted page is itself a one-page document
	count, err := extractor.PageCount(pageContent)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExtractPageOutOfRange(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	content := buildFixturePDF(t, []string{"only page"})

	pageContent, total, err := extractor.ExtractPage(content, 5)

	require.NoError(t, err)
	assert.Nil(t, pageContent)
	assert.Equal(t, 1, total)

	pageContent, total, err = extractor.ExtractPage(content, 0)
	require.NoError(t, err)
	assert.Nil(t, pageContent)
	assert.Equal(t, 1, total)
}

func TestExtractPageText(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	content := buildFixturePDF(t, []string{"first page", "second page"})

	text, total, err := extractor.ExtractPageText(content, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	// pdfcpu extracts raw content streams; the page's text operators
	// must at least be present
	assert.NotEmpty(t, text)
}

func TestExtractPageTextOutOfRange(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	content := buildFixturePDF(t, []string{"single"})

	text, total, err := extractor.ExtractPageText(content, 9)

	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Equal(t, 1, total)
}

func TestExtractAllText(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	content := buildFixturePDF(t, []string{"first page", "second page"})

	text, err := extractor.ExtractAllText(content)

	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestNoTempFilesSurvive(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())
	before, err := os.ReadDir(extractor.tempDir)
	require.NoError(t, err)

	content := buildFixturePDF(t, []string{"first page", "second page"})
	_, err = extractor.PageCount(content)
	require.NoError(t, err)
	_, _, err = extractor.ExtractPage(content, 1)
	require.NoError(t, err)
	_, err = extractor.ExtractAllText(content)
	require.NoError(t, err)
	// the error path cleans up too
	_, err = extractor.PageCount([]byte("not a pdf"))
	require.Error(t, err)

	after, err := os.ReadDir(extractor.tempDir)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}
