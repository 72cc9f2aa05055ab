// Package kik searches KİK (Kamu İhale Kurumu) procurement review
// decisions. The upstream is an ASP.NET WebForms site whose search and
// preview both run through __doPostBack, so the adapter drives a real
// browser session instead of plain HTTP.
package kik

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/serkanbykl/yargi-mcp/internal/browser"
	"github.com/serkanbykl/yargi-mcp/internal/markdown"
	"github.com/serkanbykl/yargi-mcp/internal/models"
)

const (
	// DefaultBaseURL is the public EKAP host.
	DefaultBaseURL = "https://ekap.kik.gov.tr"

	searchPagePath = "/EKAP/Vatandas/kurulkararsorgu.aspx"
	source         = "kik"

	selSearchButton = `a#ctl00_ContentPlaceHolder1_btnAra`
	selResultsTable = `table#grdKurulKararSorguSonuc`
)

var (
	postBackRe     = regexp.MustCompile(`__doPostBack\('([^']*)','([^']*)'\)`)
	totalRecordsRe = regexp.MustCompile(`Toplam Kayıt Sayısı:\s*(\d+)`)
	displayBlockRe = regexp.MustCompile(`(?i)display:\s*block`)
)

// Client drives the KİK decision search through a shared browser
// session. The driver serializes sessions, so one search or document
// retrieval runs at a time.
type Client struct {
	baseURL string
	driver  *browser.Driver
	logger  arbor.ILogger
	md      *markdown.Converter
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL overrides the EKAP host, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a KİK client on top of an existing browser driver.
func NewClient(driver *browser.Driver, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		driver:  driver,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.md = markdown.NewConverter(c.logger)
	return c
}

// Search submits the decision search form and parses one grid page.
func (c *Client) Search(ctx context.Context, req models.KikSearchRequest) (*models.KikSearchResult, error) {
	req.ApplyDefaults()
	if err := models.Validate(source, &req); err != nil {
		return nil, err
	}

	sessionCtx, release, err := c.driver.Acquire(ctx)
	if err != nil {
		return nil, models.Classify(source, "search", err)
	}
	defer release()

	result, err := c.searchSession(sessionCtx, req)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info().
			Str("karar_tipi", string(req.KararTipi)).
			Int("page", req.Page).
			Int("results", len(result.Decisions)).
			Int("total", result.TotalRecords).
			Msg("KİK search completed")
	}
	return result, nil
}

// searchSession runs one search on an already-acquired session. The
// document flow reuses it for its targeted lookup.
func (c *Client) searchSession(sessionCtx context.Context, req models.KikSearchRequest) (*models.KikSearchResult, error) {
	searchURL := c.baseURL + searchPagePath

	var location string
	if err := c.driver.Run(sessionCtx, chromedp.Location(&location)); err != nil {
		return nil, models.Classify(source, "search", err)
	}
	if location != searchURL {
		if err := c.driver.Run(sessionCtx,
			chromedp.Navigate(searchURL),
			chromedp.WaitVisible(selSearchButton, chromedp.ByQuery),
		); err != nil {
			return nil, models.Classify(source, "search", err)
		}
	}

	if err := c.selectDecisionType(sessionCtx, req.KararTipi); err != nil {
		return nil, models.Classify(source, "search", err)
	}
	if err := c.fillForm(sessionCtx, req); err != nil {
		return nil, models.Classify(source, "search", err)
	}
	if err := c.submitSearch(sessionCtx, req.Page); err != nil {
		return nil, models.Classify(source, "search", err)
	}

	htmlContent, err := c.capturePage(sessionCtx)
	if err != nil {
		return nil, models.Classify(source, "search", err)
	}

	result, err := parseSearchPage(htmlContent, req.KararTipi, req.Page)
	if err != nil {
		return nil, models.NewError(models.KindUpstreamParse, source, "search", err)
	}
	return result, nil
}

// selectDecisionType switches the decision-type tab when it is not
// already active. The switch is a server-side postback that reloads the
// whole form.
func (c *Client) selectDecisionType(sessionCtx context.Context, tipi models.KikKararTipi) error {
	radioSel := fmt.Sprintf(`input[name="ctl00$ContentPlaceHolder1$kurulKararTip"][value="%s"]`, tipi)

	var checked bool
	probe := fmt.Sprintf(`(() => { const el = document.querySelector('%s'); return !!(el && el.checked); })()`, radioSel)
	if err := c.driver.Run(sessionCtx, chromedp.Evaluate(probe, &checked)); err != nil {
		return err
	}
	if checked {
		return nil
	}

	postBack := fmt.Sprintf(`__doPostBack('ctl00$ContentPlaceHolder1$%s','')`, tipi)
	return c.driver.Run(sessionCtx,
		chromedp.Evaluate(postBack, nil),
		chromedp.Sleep(time.Second),
		chromedp.WaitVisible(selSearchButton, chromedp.ByQuery),
	)
}

// fillForm writes every text filter, clearing fields a previous search
// on the same session may have left behind. The year dropdown is only
// touched when requested since it has no empty option.
func (c *Client) fillForm(sessionCtx context.Context, req models.KikSearchRequest) error {
	fields := []struct {
		selector string
		value    string
	}{
		{`input[name="ctl00$ContentPlaceHolder1$txtKararMetni"]`, req.KararMetni},
		{`input[name="ctl00$ContentPlaceHolder1$txtKararNo"]`, models.NormalizeKikKararNo(req.KararNo)},
		{`input[name="ctl00$ContentPlaceHolder1$etKararTarihBaslangic$EkapTakvimTextBox_etKararTarihBaslangic"]`, req.KararTarihiBaslangic},
		{`input[name="ctl00$ContentPlaceHolder1$etKararTarihBitis$EkapTakvimTextBox_etKararTarihBitis"]`, req.KararTarihiBitis},
		{`input[name="ctl00$ContentPlaceHolder1$txtResmiGazeteSayisi"]`, req.ResmiGazeteSayisi},
		{`input[name="ctl00$ContentPlaceHolder1$etResmiGazeteTarihi$EkapTakvimTextBox_etResmiGazeteTarihi"]`, req.ResmiGazeteTarihi},
		{`input[name="ctl00$ContentPlaceHolder1$txtBasvuruKonusuIhale"]`, req.BasvuruKonusuIhale},
		{`input[name="ctl00$ContentPlaceHolder1$txtSikayetci"]`, req.BasvuruSahibi},
		{`input[name="ctl00$ContentPlaceHolder1$txtIhaleyiYapanIdare"]`, req.IhaleyiYapanIdare},
	}

	actions := make([]chromedp.Action, 0, len(fields)+1)
	for _, field := range fields {
		actions = append(actions, chromedp.SetValue(field.selector, field.value, chromedp.ByQuery))
	}
	if req.Yil != "" {
		actions = append(actions, chromedp.SetValue(`select[name="ctl00$ContentPlaceHolder1$ddlYil"]`, req.Yil, chromedp.ByQuery))
	}
	return c.driver.Run(sessionCtx, actions...)
}

// submitSearch clicks the search button for page one; deeper pages go
// through the grid pager's postback targets, where page N maps to
// control ctl{N+2}.
func (c *Client) submitSearch(sessionCtx context.Context, page int) error {
	if page <= 1 {
		return c.driver.Run(sessionCtx, chromedp.Click(selSearchButton, chromedp.ByQuery))
	}
	target := fmt.Sprintf("ctl00$ContentPlaceHolder1$grdKurulKararSorguSonuc$ctl14$ctl%02d", page+2)
	return c.driver.Run(sessionCtx, chromedp.Evaluate(fmt.Sprintf(`__doPostBack('%s','')`, target), nil))
}

// capturePage waits for the results grid, lets the page settle and
// returns the full HTML. A missing grid is not fatal: the page may
// legitimately carry only a no-results message.
func (c *Client) capturePage(sessionCtx context.Context) (string, error) {
	waitCtx, cancel := context.WithTimeout(sessionCtx, 30*time.Second)
	err := c.driver.Run(waitCtx, chromedp.WaitReady(selResultsTable, chromedp.ByQuery))
	cancel()
	if err != nil && c.logger != nil {
		c.logger.Warn().Err(err).Msg("KİK results grid did not appear, parsing page as-is")
	}

	var htmlContent string
	if err := c.driver.Run(sessionCtx,
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	); err != nil {
		return "", err
	}
	return htmlContent, nil
}

// parseSearchPage extracts the result grid from a rendered search page.
func parseSearchPage(htmlContent string, tipi models.KikKararTipi, requestedPage int) (*models.KikSearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	result := &models.KikSearchResult{
		Decisions:   []models.KikDecisionEntry{},
		CurrentPage: requestedPage,
	}

	// A visible validation summary means the form rejected the input.
	validation := doc.Find("div#ctl00_ValidationSummary1").First()
	if validation.Length() > 0 && strings.TrimSpace(validation.Text()) != "" {
		style, _ := validation.Attr("style")
		if !strings.Contains(strings.ToLower(style), "display: none") {
			return result, nil
		}
	}

	message := doc.Find("div#ctl00_MessageContent1").First()
	if strings.Contains(strings.ToLower(message.Text()), "kayıt bulunamamıştır") {
		result.CurrentPage = 1
		return result, nil
	}

	table := doc.Find(selResultsTable).First()
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		// Row 0 is the header, row 1 the filter row.
		if i < 2 {
			return
		}
		cells := row.Find("td")
		if cells.Length() != 6 {
			return
		}

		href, _ := cells.Eq(0).Find(`a[id$="btnOnizle"]`).First().Attr("href")
		eventTarget := ""
		if m := postBackRe.FindStringSubmatch(href); m != nil {
			eventTarget = m[1]
		}
		kararNo := strings.TrimSpace(cells.Eq(1).Find(`span[id$="lblKno"]`).First().Text())
		kararTarihi := strings.TrimSpace(cells.Eq(2).Find(`span[id$="lblKtar"]`).First().Text())
		if eventTarget == "" || kararNo == "" || kararTarihi == "" {
			return
		}

		result.Decisions = append(result.Decisions, models.KikDecisionEntry{
			PreviewEventTarget: eventTarget,
			KararNo:            kararNo,
			KararTipi:          tipi,
			KararTarihi:        kararTarihi,
			Idare:              strings.TrimSpace(cells.Eq(3).Find(`span[id$="lblIdare"]`).First().Text()),
			BasvuruSahibi:      strings.TrimSpace(cells.Eq(4).Find(`span[id$="lblSikayetci"]`).First().Text()),
			IhaleKonusu:        strings.TrimSpace(cells.Eq(5).Find(`span[id$="lblIhale"]`).First().Text()),
			KararID:            models.EncodeKikKararID(tipi, kararNo),
		})
	})

	if m := totalRecordsRe.FindStringSubmatch(doc.Find("div.gridToplamSayi").First().Text()); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			result.TotalRecords = n
		}
	}
	if active := strings.TrimSpace(doc.Find("div.sayfalama span.active").First().Text()); active != "" {
		if n, err := strconv.Atoi(active); err == nil {
			result.CurrentPage = n
		}
	}
	return result, nil
}

// Document retrieves one decision's text as a paginated Markdown chunk.
// The grid exposes decisions only through preview postbacks, so the
// flow re-runs a targeted search for the decoded decision number, fires
// the row's preview and follows the modal's iframe to the decision
// page. Failures are reported in the returned document's ErrorMessage;
// the error return fires only when the caller's context ends.
func (c *Client) Document(ctx context.Context, kararID string, pageNumber int) (*models.KikDocument, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	document := &models.KikDocument{
		RetrievedWithKararID: kararID,
		CurrentPage:          pageNumber,
		TotalPages:           1,
	}

	tipi, kararNo, err := models.DecodeKikKararID(kararID)
	if err != nil {
		document.ErrorMessage = err.Error()
		return document, nil
	}
	document.KararTipi = tipi
	document.KararNo = kararNo

	sessionCtx, release, err := c.driver.Acquire(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, models.Classify(source, "document", ctx.Err())
		}
		document.ErrorMessage = fmt.Sprintf("browser session unavailable: %v", err)
		return document, nil
	}
	defer release()

	targeted := models.KikSearchRequest{KararTipi: tipi, KararNo: kararNo, Page: 1}
	searchResult, err := c.searchSession(sessionCtx, targeted)
	if err != nil {
		if ctx.Err() != nil {
			return nil, models.Classify(source, "document", ctx.Err())
		}
		document.ErrorMessage = fmt.Sprintf("targeted search failed: %v", err)
		return document, nil
	}

	var target *models.KikDecisionEntry
	for i := range searchResult.Decisions {
		entry := &searchResult.Decisions[i]
		if entry.KararNo == kararNo && entry.KararTipi == tipi {
			target = entry
			break
		}
	}
	if target == nil {
		document.ErrorMessage = fmt.Sprintf("decision %s (%s) not found by targeted search", kararNo, tipi)
		return document, nil
	}

	if err := c.driver.Run(sessionCtx,
		chromedp.Evaluate(fmt.Sprintf(`__doPostBack('%s','')`, target.PreviewEventTarget), nil),
		chromedp.Sleep(time.Second),
	); err != nil {
		if ctx.Err() != nil {
			return nil, models.Classify(source, "document", ctx.Err())
		}
		document.ErrorMessage = fmt.Sprintf("preview postback failed: %v", err)
		return document, nil
	}

	iframeSrc, err := c.waitForPreviewFrame(sessionCtx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, models.Classify(source, "document", ctx.Err())
		}
		document.ErrorMessage = fmt.Sprintf("decision preview did not open: %v", err)
		return document, nil
	}

	var location string
	if err := c.driver.Run(sessionCtx, chromedp.Location(&location)); err != nil {
		location = c.baseURL + searchPagePath
	}
	sourceURL := resolveAgainst(location, iframeSrc)
	document.SourceURL = sourceURL

	parsedURL, err := url.Parse(sourceURL)
	if err != nil {
		document.ErrorMessage = fmt.Sprintf("preview frame url unparseable: %v", err)
		return document, nil
	}
	document.KararIDParam = parsedURL.Query().Get("KararId")
	if document.KararIDParam == "" {
		document.ErrorMessage = "KararId parameter missing from preview frame url"
		return document, nil
	}

	var docHTML string
	if err := c.driver.Run(sessionCtx,
		chromedp.Navigate(sourceURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &docHTML, chromedp.ByQuery),
	); err != nil {
		if ctx.Err() != nil {
			return nil, models.Classify(source, "document", ctx.Err())
		}
		document.ErrorMessage = fmt.Sprintf("loading decision page failed: %v", err)
		return document, nil
	}

	content, err := c.convertDecision(docHTML)
	if err != nil {
		document.ErrorMessage = err.Error()
		return document, nil
	}

	chunk := markdown.Paginate(content, pageNumber)
	document.MarkdownChunk = chunk.Content
	document.CurrentPage = chunk.CurrentPage
	document.TotalPages = chunk.TotalPages
	document.IsPaginated = chunk.IsPaginated
	document.FullContentCharCount = chunk.TotalChars

	if c.logger != nil {
		c.logger.Info().
			Str("karar_no", kararNo).
			Str("karar_id_param", document.KararIDParam).
			Int("page", chunk.CurrentPage).
			Int("total_pages", chunk.TotalPages).
			Msg("KİK document converted")
	}
	return document, nil
}

// waitForPreviewFrame polls until the detail modal is visible and its
// iframe points at KurulKararGoster.aspx, falling back to parsing the
// static page when the poll times out.
func (c *Client) waitForPreviewFrame(sessionCtx context.Context) (string, error) {
	const predicate = `(() => {
		const modal = document.querySelector('div#detayPopUp.in');
		const iframe = document.querySelector('iframe#iframe_detayPopUp');
		const visible = modal && window.getComputedStyle(modal).display !== 'none';
		const src = iframe && iframe.getAttribute('src');
		return !!(visible && src && src.includes('KurulKararGoster.aspx'));
	})()`

	deadline := time.Now().Add(30 * time.Second)
	for {
		var ready bool
		if err := c.driver.Run(sessionCtx, chromedp.Evaluate(predicate, &ready)); err != nil {
			return "", err
		}
		if ready {
			var src string
			err := c.driver.Run(sessionCtx, chromedp.Evaluate(`document.querySelector('iframe#iframe_detayPopUp').getAttribute('src') || ''`, &src))
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(src) == "" {
				return "", errors.New("preview frame src is empty")
			}
			return src, nil
		}
		if time.Now().After(deadline) {
			return c.previewFrameFromStaticPage(sessionCtx)
		}
		select {
		case <-sessionCtx.Done():
			return "", sessionCtx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// previewFrameFromStaticPage re-reads the page once and digs the iframe
// src out of the rendered modal markup.
func (c *Client) previewFrameFromStaticPage(sessionCtx context.Context) (string, error) {
	var htmlContent string
	if err := c.driver.Run(sessionCtx, chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery)); err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	popup := doc.Find("div#detayPopUp.in").First()
	if popup.Length() == 0 {
		doc.Find("div#detayPopUp").EachWithBreak(func(_ int, div *goquery.Selection) bool {
			style, _ := div.Attr("style")
			if displayBlockRe.MatchString(style) {
				popup = div
				return false
			}
			return true
		})
	}

	src, _ := popup.Find("iframe#iframe_detayPopUp").First().Attr("src")
	if strings.TrimSpace(src) == "" {
		return "", errors.New("preview frame url not present after postback")
	}
	return src, nil
}

// convertDecision pulls the decision span out of the detail page and
// converts it to Markdown.
func (c *Client) convertDecision(docHTML string) (string, error) {
	fragment := docHTML
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(docHTML)); err == nil {
		if span := doc.Find("span#ctl00_ContentPlaceHolder1_lblKarar").First(); span.Length() > 0 {
			if inner, err := span.Html(); err == nil {
				fragment = inner
			}
		}
	}

	content, err := c.md.FromHTML(html.UnescapeString(fragment), c.baseURL)
	if err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	content = markdown.CollapseBlankLines(content)
	if strings.TrimSpace(content) == "" {
		return "", errors.New("markdown conversion returned empty content")
	}
	return content, nil
}

// resolveAgainst joins a possibly relative href with the page URL it
// was found on.
func resolveAgainst(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
