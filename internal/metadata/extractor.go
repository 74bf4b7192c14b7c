// Package metadata derives a display name and icon from an arbitrary URL's
// fetched document.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// SiteMetadata holds the fields extracted from a site's document
type SiteMetadata struct {
	Name    string `json:"name"`
	Favicon string `json:"favicon"`
}

// Extractor fetches web pages and extracts site metadata
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor creates a new metadata extractor
func NewExtractor() *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// Extract fetches the document at rawURL and extracts its name and favicon.
// The name is the <title> text, falling back to the og:title meta tag. The
// favicon comes from a rel=icon link, falling back to rel="shortcut icon";
// a relative icon href is resolved against the origin of rawURL as given,
// never against a redirect target.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*SiteMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Slushy/1.0 (+https://slushy.bio)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	meta := &SiteMetadata{}

	meta.Name = e.extractTitle(doc)
	if meta.Name == "" {
		meta.Name = e.extractOGTitle(doc)
	}

	meta.Favicon = e.extractIconHref(doc, "icon")
	if meta.Favicon == "" {
		meta.Favicon = e.extractIconHref(doc, "shortcut icon")
	}

	if meta.Favicon != "" && !strings.HasPrefix(meta.Favicon, "http") {
		meta.Favicon = resolveAgainstOrigin(rawURL, meta.Favicon)
	}

	return meta, nil
}

func (e *Extractor) extractTitle(doc *html.Node) string {
	var findTitle func(*html.Node) string
	findTitle = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				return strings.TrimSpace(n.FirstChild.Data)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if title := findTitle(c); title != "" {
				return title
			}
		}
		return ""
	}

	return findTitle(doc)
}

func (e *Extractor) extractOGTitle(doc *html.Node) string {
	var result string

	var findMeta func(*html.Node)
	findMeta = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var property, content string
			for _, attr := range n.Attr {
				if attr.Key == "property" && attr.Val == "og:title" {
					property = attr.Val
				} else if attr.Key == "content" {
					content = attr.Val
				}
			}
			if property != "" && content != "" && result == "" {
				result = content
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findMeta(c)
		}
	}

	findMeta(doc)
	return result
}

func (e *Extractor) extractIconHref(doc *html.Node, rel string) string {
	var result string

	var findLink func(*html.Node)
	findLink = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var linkRel, href string
			for _, attr := range n.Attr {
				if attr.Key == "rel" {
					linkRel = attr.Val
				} else if attr.Key == "href" {
					href = attr.Val
				}
			}
			if strings.EqualFold(linkRel, rel) && href != "" && result == "" {
				result = href
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findLink(c)
		}
	}

	findLink(doc)
	return result
}

// resolveAgainstOrigin resolves a relative href against the scheme and host
// of the URL the caller supplied. Returns the href unchanged if either URL
// fails to parse.
func resolveAgainstOrigin(rawURL, href string) string {
	base, err := url.Parse(rawURL)
	if err != nil || base.Host == "" {
		return href
	}

	origin := &url.URL{Scheme: base.Scheme, Host: base.Host}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return origin.ResolveReference(ref).String()
}
