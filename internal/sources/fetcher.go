package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// Page is the result of fetching a site URL: the extracted title and
// markdown text, plus the raw HTML for snapshotting.
type Page struct {
	URL   string
	Title string
	Body  string
	HTML  []byte
}

// Fetcher retrieves pages and extracts their text content as markdown.
type Fetcher struct {
	client    *http.Client
	converter *md.Converter
	maxBytes  int64
}

// NewFetcher creates a page fetcher with the given request timeout and
// response size cap.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		converter: md.NewConverter("", true, nil),
		maxBytes:  maxBytes,
	}
}

// Fetch retrieves the page at url and extracts its title and body text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetchFailed, url, resp.Status)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFetchFailed, url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	body, err := f.converter.ConvertString(string(html))
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", url, err)
	}

	return &Page{
		URL:   url,
		Title: title,
		Body:  strings.TrimSpace(body),
		HTML:  html,
	}, nil
}
