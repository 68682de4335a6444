// Package preview finds the og:image of a game's external page.
package preview

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxBodyBytes bounds how much of a page is scanned for meta tags.
const maxBodyBytes = 1 << 20

// Cache remembers looked-up image URLs. *cache.PreviewCache implements it.
type Cache interface {
	Get(ctx context.Context, link string) (string, bool)
	Set(ctx context.Context, link, imageURL string)
}

// Fetcher looks up preview images over HTTP.
type Fetcher struct {
	client *http.Client
	cache  Cache
}

// NewFetcher returns a Fetcher whose requests give up after timeout. cache
// may be nil.
func NewFetcher(timeout time.Duration, cache Cache) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		cache:  cache,
	}
}

// ImageURL returns the preview image for link, or "" when there is none or
// the lookup failed. Failures are logged, never returned.
func (f *Fetcher) ImageURL(ctx context.Context, link string) string {
	if link == "" {
		return ""
	}
	if f.cache != nil {
		if img, ok := f.cache.Get(ctx, link); ok {
			return img
		}
	}

	img, err := f.Fetch(ctx, link)
	if err != nil {
		slog.Warn("preview lookup failed", "link", link, "error", err)
		return ""
	}
	if f.cache != nil {
		f.cache.Set(ctx, link, img)
	}
	return img
}

// Fetch downloads link and extracts its og:image, resolved against link.
func (f *Fetcher) Fetch(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("preview request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("preview http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("preview http: status %d", resp.StatusCode)
	}

	img := OGImage(io.LimitReader(resp.Body, maxBodyBytes))
	if img == "" {
		return "", nil
	}
	return resolve(resp.Request.URL, img), nil
}

// OGImage scans an HTML document for <meta property="og:image">. It stops at
// the start of <body>.
func OGImage(r io.Reader) string {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Body:
				return ""
			case atom.Meta:
				var property, content string
				for _, a := range tok.Attr {
					switch strings.ToLower(a.Key) {
					case "property", "name":
						property = strings.ToLower(a.Val)
					case "content":
						content = strings.TrimSpace(a.Val)
					}
				}
				if property == "og:image" && content != "" {
					return content
				}
			}
		}
	}
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
