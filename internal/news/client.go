package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"CryptoAnalyst/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://news.google.com"
	DefaultLimit   = 5
)

// rss mirrors the parts of the Google News feed we read.
type rss struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Client fetches crypto headlines from the Google News RSS search feed.
type Client struct {
	client *resty.Client
	limit  int
}

// NewClient creates a news client. baseURL overrides the feed host when non-empty.
func NewClient(baseURL, proxyURL string, limit int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &Client{client: client, limit: limit}
}

// Fetch returns up to the configured number of recent headlines for an asset.
func (c *Client) Fetch(ctx context.Context, query string) ([]model.Article, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":    query + " crypto",
			"hl":   "en-US",
			"gl":   "US",
			"ceid": "US:en",
		}).
		Get("/rss/search")
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch news: status %d", resp.StatusCode())
	}

	var feed rss
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("parse news feed: %w", err)
	}

	items := feed.Channel.Items
	if len(items) > c.limit {
		items = items[:c.limit]
	}
	articles := make([]model.Article, 0, len(items))
	for _, it := range items {
		articles = append(articles, model.Article{
			Title:   CleanTitle(it.Title),
			Link:    strings.TrimSpace(it.Link),
			PubDate: strings.TrimSpace(it.PubDate),
		})
	}
	return articles, nil
}

// CleanTitle strips markup and entities that some publishers leave in titles.
func CleanTitle(title string) string {
	title = html.UnescapeString(strings.TrimSpace(title))
	if !strings.ContainsAny(title, "<>") {
		return title
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(title))
	if err != nil {
		return title
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
