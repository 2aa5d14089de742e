// Package fetch resolves document references that arrive as URLs into plain
// text. Resolution is best-effort: any failure returns the input unchanged so
// the pipeline never stalls on a bad link.
package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	maxBodyBytes = 2 << 20

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Resolver fetches and extracts text from remote documents.
type Resolver struct {
	client *http.Client
}

// NewResolver constructs a Resolver with the given per-request timeout.
func NewResolver(timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Resolver{client: &http.Client{Timeout: timeout}}
}

// Resolve returns extracted text for http(s) inputs and the input itself for
// anything else or on any failure.
func (r *Resolver) Resolve(ctx context.Context, input string) string {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return input
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
	if err != nil {
		return input
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return input
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return input
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return input
	}

	if text := ExtractText(body); text != "" {
		return text
	}
	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}
	return input
}

// ExtractText pulls readable text from an HTML payload, preferring a
// description-like container when one exists.
func ExtractText(data []byte) string {
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return ""
	}
	if node := findContentNode(doc); node != nil {
		if text := nodeText(node); text != "" {
			return text
		}
	}
	if body := findElement(doc, "body"); body != nil {
		return nodeText(body)
	}
	return nodeText(doc)
}

// findContentNode looks for the containers job boards typically use for the
// posting body.
func findContentNode(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			switch attr.Key {
			case "class":
				if strings.Contains(strings.ToLower(attr.Val), "description") {
					return n
				}
			case "id":
				if attr.Val == "job-details" {
					return n
				}
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findContentNode(child); found != nil {
			return found
		}
	}
	return nil
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, name); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return strings.TrimSpace(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, b)
	}
}
