package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
)

// newsItemLimit caps how many feed entries are kept per species.
const newsItemLimit = 5

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

// News fetches up to five recent conservation-news entries for a species
// from the Google News RSS search feed. Zero entries is NotFound; fetch and
// parse failures are Failed — a failure here must never masquerade as an
// item list.
func (c *Clients) News(ctx context.Context, species string) Result[[]NewsItem] {
	ctx, cancel := c.withTimeout(ctx, c.cfg.GetNewsFeedTimeout())
	defer cancel()

	query := strings.ReplaceAll(species, " ", "-") + "+conservation"
	reqURL := fmt.Sprintf("%s/rss/search?q=%s", c.cfg.GetNewsFeedBaseURL(), query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Failed[[]NewsItem](err.Error())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("news", "rss_search", err)
		return Failed[[]NewsItem](err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamStatus("news", "rss_search", resp.StatusCode)
		return Failed[[]NewsItem](fmt.Sprintf("news feed status %d", resp.StatusCode))
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		c.log.UpstreamError("news", "decode", err)
		return Failed[[]NewsItem](err.Error())
	}

	entries := feed.Channel.Items
	if len(entries) == 0 {
		return NotFound[[]NewsItem]()
	}
	if len(entries) > newsItemLimit {
		entries = entries[:newsItemLimit]
	}

	items := make([]NewsItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, NewsItem{
			Title:     entry.Title,
			Link:      entry.Link,
			Published: entry.PubDate,
		})
	}

	return Found(items)
}
