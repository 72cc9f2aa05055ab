// Package pdfextract pulls text and single pages out of decision PDFs
// using pdfcpu. Everything goes through temp files because pdfcpu's
// high-level API is file based.
package pdfextract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
)

var pageFilePattern = regexp.MustCompile(`page_(\d+)`)

// Extractor extracts content from PDF documents.
type Extractor struct {
	logger  arbor.ILogger
	tempDir string
}

// NewExtractor creates a PDF extractor.
func NewExtractor(logger arbor.ILogger) *Extractor {
	tempDir := filepath.Join(os.TempDir(), "yargi-mcp-pdf")
	os.MkdirAll(tempDir, 0755)

	return &Extractor{
		logger:  logger,
		tempDir: tempDir,
	}
}

// PageCount returns the number of pages in the PDF.
func (e *Extractor) PageCount(pdfContent []byte) (int, error) {
	tempFile, cleanup, err := e.writeTemp(pdfContent)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	return pdfCtx.PageCount, nil
}

// ExtractPage returns a single-page PDF containing only the requested
// page (1-indexed), together with the document's real page count.
// Out-of-range pages return nil bytes and the real count so callers can
// report proper pagination instead of an error.
func (e *Extractor) ExtractPage(pdfContent []byte, pageNumber int) ([]byte, int, error) {
	tempFile, cleanup, err := e.writeTemp(pdfContent)
	if err != nil {
		return nil, 0, err
	}
	defer cleanup()

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	if pageNumber < 1 || pageNumber > pageCount {
		return nil, pageCount, nil
	}

	outFile := filepath.Join(e.tempDir, fmt.Sprintf("page_%s.pdf", uuid.NewString()))
	defer os.Remove(outFile)

	conf := model.NewDefaultConfiguration()
	if err := api.TrimFile(tempFile, outFile, []string{strconv.Itoa(pageNumber)}, conf); err != nil {
		return nil, pageCount, fmt.Errorf("failed to extract page %d: %w", pageNumber, err)
	}

	pageContent, err := os.ReadFile(outFile)
	if err != nil {
		return nil, pageCount, fmt.Errorf("failed to read extracted page: %w", err)
	}
	return pageContent, pageCount, nil
}

// ExtractPageText returns the text of the requested page (1-indexed)
// and the document's real page count. Out-of-range pages return empty
// text and the real count.
func (e *Extractor) ExtractPageText(pdfContent []byte, pageNumber int) (string, int, error) {
	tempFile, cleanup, err := e.writeTemp(pdfContent)
	if err != nil {
		return "", 0, err
	}
	defer cleanup()

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	if pageNumber < 1 || pageNumber > pageCount {
		return "", pageCount, nil
	}

	texts, err := e.extractContent(tempFile, []string{strconv.Itoa(pageNumber)})
	if err != nil {
		return "", pageCount, err
	}
	return texts[pageNumber], pageCount, nil
}

// ExtractAllText returns the text of every page, in order, separated by
// blank lines.
func (e *Extractor) ExtractAllText(pdfContent []byte) (string, error) {
	tempFile, cleanup, err := e.writeTemp(pdfContent)
	if err != nil {
		return "", err
	}
	defer cleanup()

	texts, err := e.extractContent(tempFile, nil)
	if err != nil {
		return "", err
	}

	pageNumbers := make([]int, 0, len(texts))
	for pageNum := range texts {
		pageNumbers = append(pageNumbers, pageNum)
	}
	sort.Ints(pageNumbers)

	var builder strings.Builder
	for _, pageNum := range pageNumbers {
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(strings.TrimSpace(texts[pageNum]))
	}
	return builder.String(), nil
}

// extractContent runs pdfcpu content extraction for the selected pages
// (nil means all) and returns the per-page text keyed by page number.
// pdfcpu has no direct text extraction, so this reads the extracted
// content streams, which is what the rest of the pipeline normalizes.
func (e *Extractor) extractContent(tempFile string, selectedPages []string) (map[int]string, error) {
	outDir := filepath.Join(e.tempDir, fmt.Sprintf("pages_%s", uuid.NewString()))
	os.MkdirAll(outDir, 0755)
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, selectedPages, conf); err != nil {
		return nil, fmt.Errorf("failed to extract PDF content: %w", err)
	}

	texts := make(map[int]string)
	files, _ := os.ReadDir(outDir)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		match := pageFilePattern.FindStringSubmatch(file.Name())
		if match == nil {
			continue
		}
		pageNum, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			if e.logger != nil {
				e.logger.Warn().Err(err).Str("file", file.Name()).Msg("Failed to read extracted page content")
			}
			continue
		}
		texts[pageNum] = string(content)
	}
	return texts, nil
}

// writeTemp stages PDF bytes in the extractor's temp dir.
func (e *Extractor) writeTemp(pdfContent []byte) (string, func(), error) {
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("extract_%s.pdf", uuid.NewString()))
	if err := os.WriteFile(tempFile, pdfContent, 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	return tempFile, func() { os.Remove(tempFile) }, nil
}
