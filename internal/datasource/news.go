package datasource

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/advisorly/stockadvisor/pkg/models"
)

// NewsSource represents a US financial news source configuration.
type NewsSource struct {
	Name   string
	RSSURL string
}

// DefaultNewsSources lists the configured US financial news RSS feeds.
var DefaultNewsSources = []NewsSource{
	{
		Name:   "MarketWatch",
		RSSURL: "https://feeds.content.dowjones.io/public/rss/mw_topstories",
	},
	{
		Name:   "CNBC Markets",
		RSSURL: "https://www.cnbc.com/id/100003114/device/rss/rss.html",
	},
	{
		Name:   "Yahoo Finance",
		RSSURL: "https://finance.yahoo.com/news/rssindex",
	},
}

// tickerFeedURL is the per-symbol Yahoo Finance headline feed.
const tickerFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US"

// News fetches financial news from US RSS sources. It implements
// NewsProvider.
type News struct {
	sources []NewsSource
	cache   *Cache
	limiter *RateLimiter
	parser  *gofeed.Parser
}

// NewNews creates a news data source with the default US sources.
func NewNews() *News {
	return NewNewsWithSources(DefaultNewsSources)
}

// NewNewsWithSources creates a news data source with custom sources.
func NewNewsWithSources(sources []NewsSource) *News {
	p := gofeed.NewParser()
	p.UserAgent = DefaultUserAgent
	return &News{
		sources: sources,
		cache:   NewCache(10 * time.Minute),
		limiter: NewRateLimiter(2, time.Second), // conservative: 2 req/s
		parser:  p,
	}
}

// MarketNews returns recent market-wide news from all configured sources,
// newest first. Failed sources are skipped; an error is returned only when
// every source fails.
func (n *News) MarketNews(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	cacheKey := fmt.Sprintf("news:market:%d", limit)
	if cached, ok := n.cache.Get(cacheKey); ok {
		return cached.([]models.NewsArticle), nil
	}

	var all []models.NewsArticle
	var lastErr error
	for _, src := range n.sources {
		articles, err := n.fetchFeed(ctx, src.Name, src.RSSURL)
		if err != nil {
			lastErr = err
			continue
		}
		all = append(all, articles...)
	}
	if len(all) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all news sources failed: %w", lastErr)
	}

	sortArticlesByDate(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	n.cache.Set(cacheKey, all)
	return all, nil
}

// TickerNews returns news for a specific ticker: the per-symbol Yahoo feed
// merged with keyword matches from the market-wide sources.
func (n *News) TickerNews(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	cacheKey := fmt.Sprintf("news:stock:%s:%d", symbol, limit)
	if cached, ok := n.cache.Get(cacheKey); ok {
		return cached.([]models.NewsArticle), nil
	}

	articles, feedErr := n.fetchFeed(ctx, "Yahoo Finance", fmt.Sprintf(tickerFeedURL, symbol))

	market, err := n.MarketNews(ctx, 0)
	if err != nil && feedErr != nil {
		return nil, feedErr
	}
	keywords := tickerKeywords(symbol)
	seen := make(map[string]bool, len(articles))
	for _, a := range articles {
		seen[a.URL] = true
	}
	for _, a := range market {
		if seen[a.URL] {
			continue
		}
		if matchesAny(a.Title+" "+a.Summary, keywords) {
			articles = append(articles, a)
			seen[a.URL] = true
		}
	}

	sortArticlesByDate(articles)
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	n.cache.Set(cacheKey, articles)
	return articles, nil
}

// FetchBody downloads an article page and extracts its readable text.
// Best effort: on any failure the article's existing summary stands.
func (n *News) FetchBody(ctx context.Context, article *models.NewsArticle) error {
	if article.URL == "" {
		return fmt.Errorf("article has no URL")
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := doGet(ctx, article.URL, nil)
	if err != nil {
		return err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return fmt.Errorf("parse article %s: %w", article.URL, err)
	}

	var paras []string
	doc.Find("article p, div.article-content p, div.caas-body p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > 40 {
			paras = append(paras, text)
		}
	})
	if len(paras) == 0 {
		return fmt.Errorf("no article body found at %s", article.URL)
	}
	article.Body = strings.Join(paras, "\n\n")
	return nil
}

// --- Internal helpers ---

func (n *News) fetchFeed(ctx context.Context, source, feedURL string) ([]models.NewsArticle, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := n.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", source, err)
	}

	articles := make([]models.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.NewsArticle{
			Title:   strings.TrimSpace(item.Title),
			URL:     item.Link,
			Source:  source,
			Summary: cleanHTML(item.Description),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func sortArticlesByDate(articles []models.NewsArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// tickerKeywords returns search keywords for a ticker.
// For example, "AAPL" → ["aapl", "apple"].
func tickerKeywords(ticker string) []string {
	t := strings.ToLower(ticker)
	var keywords []string
	// A bare one-letter symbol would match almost any text.
	if len(t) >= 2 {
		keywords = append(keywords, t)
	}

	nameMap := map[string][]string{
		"aapl":  {"apple"},
		"msft":  {"microsoft"},
		"googl": {"google", "alphabet"},
		"goog":  {"google", "alphabet"},
		"amzn":  {"amazon"},
		"meta":  {"meta platforms", "facebook"},
		"nvda":  {"nvidia"},
		"tsla":  {"tesla", "elon musk"},
		"brk-b": {"berkshire"},
		"jpm":   {"jpmorgan", "jp morgan"},
		"v":     {"visa"},
		"unh":   {"unitedhealth"},
		"xom":   {"exxon"},
		"wmt":   {"walmart"},
		"nflx":  {"netflix"},
		"amd":   {"advanced micro devices"},
		"intc":  {"intel"},
		"ba":    {"boeing"},
		"dis":   {"disney"},
		"ko":    {"coca-cola", "coca cola"},
	}
	if names, ok := nameMap[t]; ok {
		keywords = append(keywords, names...)
	}
	return keywords
}

func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
