package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/misbah7172/Custom-Browser/internal/models"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; custom-browser/1.0)"
	maxRedirects     = 10
	// MaxLinks is how many page links a fetch outcome keeps
	MaxLinks = 10

	charsetPrescanBytes  = 1024
	minCharsetConfidence = 50
)

// PageFetcher downloads pages and extracts what the visit log needs from them
type PageFetcher struct {
	client     *resty.Client
	doNotTrack atomic.Bool
	logger     *log.Logger
}

// NewPageFetcher creates a fetcher with the given request timeout and user agent
func NewPageFetcher(timeout time.Duration, userAgent string, logger *log.Logger) *PageFetcher {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &PageFetcher{
		client: client,
		logger: logger,
	}
}

// SetDoNotTrack controls whether requests carry a "DNT: 1" header
func (f *PageFetcher) SetDoNotTrack(enabled bool) {
	f.doNotTrack.Store(enabled)
}

// Fetch loads rawURL. Failures are reported in the outcome rather than returned:
// an unreachable page is still a navigation from the user's point of view.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) models.FetchOutcome {
	req := f.client.R().SetContext(ctx)
	if f.doNotTrack.Load() {
		req.SetHeader("DNT", "1")
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		if f.logger != nil {
			f.logger.Warn("Fetch failed", "url", rawURL, "err", err)
		}
		return models.FetchOutcome{Err: fmt.Errorf("request failed: %w", err)}
	}

	out := models.FetchOutcome{
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
	}

	if out.StatusCode >= http.StatusBadRequest {
		out.Title = fmt.Sprintf("Error: %d", out.StatusCode)
		out.Err = fmt.Errorf("HTTP %d: %s", out.StatusCode, resp.Status())
		if f.logger != nil {
			f.logger.Warn("Fetch returned error status", "url", rawURL, "status", out.StatusCode)
		}
		return out
	}

	out.OK = true
	body := resp.Body()
	if out.ContentType == "" {
		out.ContentType = mimetype.Detect(body).String()
	}

	if isHTML(out.ContentType) {
		base := rawURL
		if resp.RawResponse != nil && resp.RawResponse.Request != nil {
			base = resp.RawResponse.Request.URL.String()
		}
		page, err := ParsePage(body, out.ContentType, base)
		if err != nil && f.logger != nil {
			f.logger.Debug("Page parse failed", "url", rawURL, "err", err)
		}
		out.Title = page.Title
		out.Links = page.Links
		out.TotalLinks = page.TotalLinks
	}

	if f.logger != nil {
		f.logger.Debug("Page fetched", "url", rawURL, "status", out.StatusCode, "contentType", out.ContentType, "bytes", len(body))
	}
	return out
}

// Page is what gets pulled out of an HTML document
type Page struct {
	Title      string
	Links      []models.PageLink
	TotalLinks int
}

// ParsePage extracts the title and the first MaxLinks anchors of an HTML
// document, decoded to UTF-8 using contentType's charset. Relative hrefs are
// resolved against baseURL; anchors without text, fragments and javascript:
// links are skipped.
func ParsePage(body []byte, contentType, baseURL string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(decodeHTML(body, contentType))
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := Page{Title: collapseSpace(doc.Find("title").First().Text())}

	base, _ := url.Parse(baseURL)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		text := collapseSpace(s.Text())
		if text == "" || href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}

		page.TotalLinks++
		if len(page.Links) >= MaxLinks {
			return
		}

		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		page.Links = append(page.Links, models.PageLink{Text: text, URL: href})
	})

	return page, nil
}

// decodeHTML returns body as UTF-8. The charset comes from the Content-Type
// header, a BOM or a <meta> tag. Bodies that declare nothing and are not valid
// UTF-8 are guessed with chardet before falling back to windows-1252.
func decodeHTML(body []byte, contentType string) io.Reader {
	if _, name, certain := charset.DetermineEncoding(body, contentType); !certain && name == "windows-1252" && !declaresCharset(body) {
		if guess, err := chardet.NewTextDetector().DetectBest(body); err == nil && guess.Confidence >= minCharsetConfidence {
			contentType = "text/html; charset=" + strings.ToLower(guess.Charset)
		}
	}

	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return bytes.NewReader(body)
	}
	return r
}

// declaresCharset reports whether the document head names a charset in a <meta> tag
func declaresCharset(body []byte) bool {
	if len(body) > charsetPrescanBytes {
		body = body[:charsetPrescanBytes]
	}
	return bytes.Contains(bytes.ToLower(body), []byte("charset"))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
