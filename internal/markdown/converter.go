// Package markdown converts court-decision HTML to Markdown and
// paginates long documents into fixed-size chunks.
package markdown

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
)

// ChunkSize is the page size, in characters, for paginated documents.
// Constitutional Court and KİK decisions regularly run past a hundred
// thousand characters; MCP clients want them in digestible pieces.
const ChunkSize = 5000

var blankLines = regexp.MustCompile(`\n{3,}`)

// Converter turns upstream HTML into Markdown.
type Converter struct {
	logger arbor.ILogger
}

// NewConverter creates a converter.
func NewConverter(logger arbor.ILogger) *Converter {
	return &Converter{
		logger: logger,
	}
}

// FromHTML converts HTML content to Markdown. baseURL resolves relative
// links. Conversion failures fall back to stripped plain text rather
// than erroring, so a badly-formed decision still yields content.
func (s *Converter) FromHTML(htmlContent string, baseURL string) (string, error) {
	if htmlContent == "" {
		return "", nil
	}

	converter := md.NewConverter(baseURL, true, nil)
	converted, err := converter.ConvertString(htmlContent)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using fallback")
		}
		return stripHTMLTags(htmlContent), nil
	}

	// Empty output despite non-empty input means the converter choked
	// on the markup; fall back to stripping.
	trimmed := strings.TrimSpace(converted)
	if trimmed == "" && strings.TrimSpace(htmlContent) != "" {
		if s.logger != nil {
			s.logger.Warn().
				Int("html_length", len(htmlContent)).
				Msg("HTML to markdown conversion produced empty output, applying fallback")
		}
		return stripHTMLTags(htmlContent), nil
	}

	return CollapseBlankLines(converted), nil
}

// FromSelection converts one goquery selection to Markdown. Used where
// only a fragment of the page is the decision body.
func (s *Converter) FromSelection(sel *goquery.Selection, baseURL string) (string, error) {
	if sel == nil || sel.Length() == 0 {
		return "", nil
	}

	converter := md.NewConverter(baseURL, true, nil)
	converted := converter.Convert(sel)

	trimmed := strings.TrimSpace(converted)
	if trimmed == "" {
		return strings.TrimSpace(sel.Text()), nil
	}

	return CollapseBlankLines(converted), nil
}

// CleanEscapedHTML undoes the double escaping in Yargıtay and Emsal
// document payloads: HTML entities plus literal \" \r\n \n \t sequences
// left inside the JSON "data" string.
func CleanEscapedHTML(content string) string {
	cleaned := html.UnescapeString(content)
	replacer := strings.NewReplacer(
		`\"`, `"`,
		`\r\n`, "\n",
		`\n`, "\n",
		`\t`, "\t",
	)
	return replacer.Replace(cleaned)
}

// ExtractJSONData pulls the HTML out of a {"data": "..."} document
// envelope. Payloads that are not shaped that way come back unchanged.
func ExtractJSONData(raw string) string {
	var envelope struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && envelope.Data != "" {
		return envelope.Data
	}
	return raw
}

// CollapseBlankLines squeezes runs of three or more newlines down to a
// single blank line.
func CollapseBlankLines(content string) string {
	return blankLines.ReplaceAllString(content, "\n\n")
}

// stripHTMLTags removes HTML tags for fallback cases.
func stripHTMLTags(htmlStr string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	stripped := re.ReplaceAllString(htmlStr, "")

	spaceRe := regexp.MustCompile(`\s+`)
	cleaned := spaceRe.ReplaceAllString(stripped, " ")

	cleaned = html.UnescapeString(cleaned)

	return strings.TrimSpace(cleaned)
}

// Chunk is one page of a paginated Markdown document.
type Chunk struct {
	Content     string
	CurrentPage int
	TotalPages  int
	IsPaginated bool
	TotalChars  int
}

// Paginate slices content into ChunkSize-character pages and returns
// the requested one. Out-of-range pages clamp to the nearest valid
// page; empty content yields one empty page. Characters are counted as
// runes so multi-byte Turkish text does not split mid-character.
func Paginate(content string, page int) Chunk {
	runes := []rune(content)
	totalChars := len(runes)

	totalPages := (totalChars + ChunkSize - 1) / ChunkSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * ChunkSize
	end := start + ChunkSize
	if end > totalChars {
		end = totalChars
	}

	var chunk string
	if start < totalChars {
		chunk = string(runes[start:end])
	}

	return Chunk{
		Content:     chunk,
		CurrentPage: page,
		TotalPages:  totalPages,
		IsPaginated: totalPages > 1,
		TotalChars:  totalChars,
	}
}
