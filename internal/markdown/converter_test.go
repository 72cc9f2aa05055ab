package markdown

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func countNodes(t *testing.T, source string, kind ast.NodeKind) int {
	t.Helper()

	doc := goldmark.New().Parser().Parse(text.NewReader([]byte(source)))
	count := 0
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == kind {
			count++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return count
}

func TestFromHTML(t *testing.T) {
	conv := NewConverter(nil)

	htmlContent := `<html><body>
		<h2>T.C. YARGITAY 1. Hukuk Dairesi</h2>
		<p>Esas No: 2024/100</p>
		<p>Karar No: 2024/200</p>
		<ul><li>Birinci gerekçe</li><li>İkinci gerekçe</li></ul>
	</body></html>`

	out, err := conv.FromHTML(htmlContent, "https://karararama.yargitay.gov.tr")
	require.NoError(t, err)

	assert.Contains(t, out, "T.C. YARGITAY 1. Hukuk Dairesi")
	assert.Contains(t, out, "Esas No: 2024/100")
	// the output must be structural Markdown, not flattened text
	assert.Equal(t, 1, countNodes(t, out, ast.KindHeading))
	assert.Equal(t, 1, countNodes(t, out, ast.KindList))
}

func TestFromHTMLEmptyInput(t *testing.T) {
	conv := NewConverter(nil)

	out, err := conv.FromHTML("", "https://example.gov.tr")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestFromSelection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><div class="menu">nav junk</div><div class="karar"><h3>KARAR</h3><p>Gerekçe metni.</p></div></body></html>`))
	require.NoError(t, err)

	conv := NewConverter(nil)
	out, err := conv.FromSelection(doc.Find("div.karar"), "https://kararlar.uyusmazlik.gov.tr")
	require.NoError(t, err)

	assert.Contains(t, out, "KARAR")
	assert.Contains(t, out, "Gerekçe metni.")
	assert.NotContains(t, out, "nav junk")
}

func TestFromSelectionEmpty(t *testing.T) {
	conv := NewConverter(nil)

	out, err := conv.FromSelection(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestCleanEscapedHTML(t *testing.T) {
	raw := `&lt;p&gt;Karar\r\nmetni\t\"tamam\"&lt;/p&gt;`

	cleaned := CleanEscapedHTML(raw)

	assert.Equal(t, "<p>Karar\nmetni\t\"tamam\"</p>", cleaned)
}

func TestExtractJSONData(t *testing.T) {
	assert.Equal(t, "<html>doc</html>", ExtractJSONData(`{"data":"<html>doc</html>","metadata":{}}`))
	// non-envelope payloads pass through
	assert.Equal(t, "<html>plain</html>", ExtractJSONData("<html>plain</html>"))
	assert.Equal(t, `{"data":""}`, ExtractJSONData(`{"data":""}`))
}

func TestCollapseBlankLines(t *testing.T) {
	assert.Equal(t, "a\n\nb", CollapseBlankLines("a\n\n\n\n\nb"))
	assert.Equal(t, "a\n\nb", CollapseBlankLines("a\n\nb"))
}

func TestPaginate(t *testing.T) {
	t.Run("short content is a single page", func(t *testing.T) {
		chunk := Paginate("kısa metin", 1)

		assert.Equal(t, "kısa metin", chunk.Content)
		assert.Equal(t, 1, chunk.CurrentPage)
		assert.Equal(t, 1, chunk.TotalPages)
		assert.False(t, chunk.IsPaginated)
	})

	t.Run("exactly one chunk is not paginated", func(t *testing.T) {
		content := strings.Repeat("a", ChunkSize)
		chunk := Paginate(content, 1)

		assert.Equal(t, 1, chunk.TotalPages)
		assert.False(t, chunk.IsPaginated)
		assert.Len(t, chunk.Content, ChunkSize)
	})

	t.Run("one character over spills to a second page", func(t *testing.T) {
		content := strings.Repeat("a", ChunkSize) + "b"

		first := Paginate(content, 1)
		assert.Equal(t, 2, first.TotalPages)
		assert.True(t, first.IsPaginated)
		assert.Len(t, first.Content, ChunkSize)

		second := Paginate(content, 2)
		assert.Equal(t, "b", second.Content)
		assert.Equal(t, 2, second.CurrentPage)
	})

	t.Run("out of range pages clamp", func(t *testing.T) {
		content := strings.Repeat("a", ChunkSize+1)

		over := Paginate(content, 99)
		assert.Equal(t, 2, over.CurrentPage)
		assert.Equal(t, "a", over.Content)

		under := Paginate(content, 0)
		assert.Equal(t, 1, under.CurrentPage)
	})

	t.Run("empty content yields one empty page", func(t *testing.T) {
		chunk := Paginate("", 1)

		assert.Equal(t, "", chunk.Content)
		assert.Equal(t, 1, chunk.TotalPages)
		assert.False(t, chunk.IsPaginated)
		assert.Equal(t, 0, chunk.TotalChars)
	})

	t.Run("multi-byte characters count as one", func(t *testing.T) {
		// 5000 Turkish characters occupy more than 5000 bytes but
		// still fit one page
		content := strings.Repeat("ğ", ChunkSize)
		chunk := Paginate(content, 1)

		assert.Equal(t, 1, chunk.TotalPages)
		assert.Equal(t, ChunkSize, chunk.TotalChars)
		assert.Equal(t, content, chunk.Content)
	})
}
