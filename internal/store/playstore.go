package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DefaultPlayStoreURL is the public Play Store details page.
const DefaultPlayStoreURL = "https://play.google.com/store/apps/details"

// defaultPlayLocale is sent as hl when the request carries no region.
const defaultPlayLocale = "en_US"

// playVersionRe matches the version literal embedded in the details page
// script data. The capture tolerates plain MAJOR.MINOR.PATCH as well as
// vendor variants carrying an alphabetic channel segment followed by
// further dot-separated segments, e.g. "5.1.varies.20240115".
var playVersionRe = regexp.MustCompile(`\[\[\["(\d+\.\d+(?:\.[a-z]+)?(?:\.[^"]*)?)"\]\]`)

// PlayStoreLookup scrapes the Play Store web page for an application. The
// page structure is undocumented: a page without the version literal
// degrades to an empty version, which normalizes to "0.0.0" and is never
// considered newer. An HTTP failure, by contrast, is strict and must
// reach the caller; a broken scrape is an actionable bug, not a routine
// "no update".
type PlayStoreLookup struct {
	baseURL    string
	httpClient *http.Client
}

// NewPlayStoreLookup returns a lookup against the given details page. An
// empty baseURL selects the public Play Store; a nil client selects
// http.DefaultClient.
func NewPlayStoreLookup(baseURL string, client *http.Client) *PlayStoreLookup {
	if baseURL == "" {
		baseURL = DefaultPlayStoreURL
	}
	return &PlayStoreLookup{
		baseURL:    baseURL,
		httpClient: clientOrDefault(client),
	}
}

// Strict reports true: Play Store HTTP failures propagate to the caller.
func (l *PlayStoreLookup) Strict() bool { return true }

// Fetch issues one GET to the details page and scans the raw body for the
// embedded version literal. Release notes are never available through
// this path, and the returned store link is the request URL itself: the
// page exposes no separate canonical link field.
func (l *PlayStoreLookup) Fetch(ctx context.Context, req Request) (*Metadata, error) {
	q := url.Values{}
	q.Set("id", req.AppID)
	locale := req.Region
	if locale == "" {
		locale = defaultPlayLocale
	}
	q.Set("hl", locale)
	pageURL := l.baseURL + "?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: pageURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	version := ""
	if m := playVersionRe.FindSubmatch(body); m != nil {
		version = string(m[1])
	}
	if req.OverrideVersion != "" {
		version = req.OverrideVersion
	}

	return &Metadata{
		Version:  version,
		StoreURL: pageURL,
		AppName:  pageTitle(body),
	}, nil
}

// pageTitle extracts the og:title meta content, falling back to the
// document title. A page that fails to parse just yields "".
func pageTitle(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var ogTitle, docTitle string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var prop, content string
				for _, a := range n.Attr {
					switch a.Key {
					case "property":
						prop = a.Val
					case "content":
						content = a.Val
					}
				}
				if prop == "og:title" && ogTitle == "" {
					ogTitle = content
				}
			case "title":
				if docTitle == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					docTitle = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if ogTitle != "" {
		return ogTitle
	}
	return strings.TrimSpace(docTitle)
}
