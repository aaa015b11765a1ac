package sources

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ReasonNoSummary is the stable reason recorded when a Wikipedia lookup
// fails in transit.
const ReasonNoSummary = "No Wikipedia summary found"

const summarySentences = 3

var citationPattern = regexp.MustCompile(`\[\d+\]`)

// Summary fetches the lead summary for a species from its Wikipedia
// article: the first paragraph containing bolded text, stripped of citation
// markers and trimmed to the first three sentences. Missing articles and
// articles without a qualifying paragraph are NotFound; transport failures
// are Failed and not cached.
func (c *Clients) Summary(ctx context.Context, species string) Result[string] {
	result, err := c.wikiMemo.GetOrCompute(species, func() (Result[string], error) {
		return c.fetchSummary(ctx, species)
	})
	if err != nil {
		return Failed[string](ReasonNoSummary)
	}
	return result
}

func (c *Clients) fetchSummary(ctx context.Context, species string) (Result[string], error) {
	ctx, cancel := c.withTimeout(ctx, c.cfg.GetWikipediaTimeout())
	defer cancel()

	title := strings.ReplaceAll(species, " ", "_")
	reqURL := fmt.Sprintf("%s/wiki/%s", c.cfg.GetWikipediaBaseURL(), title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result[string]{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("wikipedia", "article", err)
		return Result[string]{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return NotFound[string](), nil
	}
	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamStatus("wikipedia", "article", resp.StatusCode)
		return Result[string]{}, fmt.Errorf("wikipedia status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		c.log.UpstreamError("wikipedia", "parse", err)
		return Result[string]{}, err
	}

	summary, ok := extractSummary(doc)
	if !ok {
		return NotFound[string](), nil
	}
	return Found(summary), nil
}

// extractSummary walks the parsed article for the first <p> that contains a
// <b> descendant, which on Wikipedia is the lead paragraph naming the
// subject.
func extractSummary(doc *html.Node) (string, bool) {
	var paragraph *html.Node

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "p" && hasBold(n) {
			paragraph = n
			return true
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(doc)

	if paragraph == nil {
		return "", false
	}

	text := citationPattern.ReplaceAllString(nodeText(paragraph), "")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	sentences := strings.Split(text, ". ")
	if len(sentences) > summarySentences {
		sentences = sentences[:summarySentences]
	}
	joined := strings.Join(sentences, ". ")
	return strings.TrimSuffix(joined, ".") + ".", true
}

func hasBold(n *html.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == "b" {
			return true
		}
		if hasBold(child) {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return sb.String()
}
