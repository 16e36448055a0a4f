package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/advisorly/stockadvisor/internal/agent/prompts"
	"github.com/advisorly/stockadvisor/internal/analysis/fundamental"
	"github.com/advisorly/stockadvisor/internal/analysis/technical"
	"github.com/advisorly/stockadvisor/internal/datasource"
	"github.com/advisorly/stockadvisor/internal/llm"
	"github.com/advisorly/stockadvisor/pkg/models"
)

// Pipeline coordinates the data sources and the four agents for a full
// research run on one ticker.
type Pipeline struct {
	news        *Agent
	fundamental *Agent
	technical   *Agent
	strategist  *Agent

	prices       datasource.PriceHistoryProvider
	fundamentals datasource.FundamentalsProvider
	headlines    datasource.NewsProvider

	historyDays      int
	pivotWindow      int
	clusterThreshold float64
	newsLimit        int
	fetchBodies      bool
	bodyTopN         int
}

// PipelineConfig holds the settings for creating a Pipeline.
type PipelineConfig struct {
	Provider    llm.Provider
	ChatOptions *llm.ChatOptions

	Prices       datasource.PriceHistoryProvider
	Fundamentals datasource.FundamentalsProvider
	News         datasource.NewsProvider

	HistoryDays      int
	PivotWindow      int
	ClusterThreshold float64
	NewsLimit        int

	// FetchBodies downloads full article text for the BodyTopN most
	// recent headlines when the news provider supports it.
	FetchBodies bool
	BodyTopN    int
}

// NewPipeline creates a fully wired research pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	p := &Pipeline{
		prices:           cfg.Prices,
		fundamentals:     cfg.Fundamentals,
		headlines:        cfg.News,
		historyDays:      cfg.HistoryDays,
		pivotWindow:      cfg.PivotWindow,
		clusterThreshold: cfg.ClusterThreshold,
		newsLimit:        cfg.NewsLimit,
		fetchBodies:      cfg.FetchBodies,
		bodyTopN:         cfg.BodyTopN,
	}
	if p.historyDays <= 0 {
		p.historyDays = 200
	}
	if p.pivotWindow <= 0 {
		p.pivotWindow = technical.DefaultPivotWindow
	}
	if p.clusterThreshold <= 0 {
		p.clusterThreshold = technical.DefaultClusterThreshold
	}
	if p.newsLimit <= 0 {
		p.newsLimit = 15
	}
	if p.bodyTopN <= 0 {
		p.bodyTopN = 3
	}

	p.news = New(Config{
		Name:         prompts.AgentNewsResearcher,
		Role:         "U.S. market news researcher",
		SystemPrompt: prompts.NewsResearcherSystemPrompt,
		Provider:     cfg.Provider,
		ChatOptions:  cfg.ChatOptions,
	})
	p.fundamental = New(Config{
		Name:         prompts.AgentFundamentalAnalyst,
		Role:         "Fundamental analyst",
		SystemPrompt: prompts.FundamentalAnalystSystemPrompt,
		Provider:     cfg.Provider,
		ChatOptions:  cfg.ChatOptions,
	})
	p.technical = New(Config{
		Name:         prompts.AgentTechnicalAnalyst,
		Role:         "Technical analyst",
		SystemPrompt: prompts.TechnicalAnalystSystemPrompt,
		Provider:     cfg.Provider,
		ChatOptions:  cfg.ChatOptions,
	})
	p.strategist = New(Config{
		Name:         prompts.AgentStrategist,
		Role:         "Chief investment strategist",
		SystemPrompt: prompts.StrategistSystemPrompt,
		Provider:     cfg.Provider,
		ChatOptions:  cfg.ChatOptions,
	})
	return p
}

// Analyze runs the full pipeline for a ticker: concurrent data collection,
// concurrent analyst reports, then the strategist's final decision.
//
// Price history is required; fundamentals and news degrade to explicit
// "unavailable" markers so one flaky upstream does not sink the run.
func (p *Pipeline) Analyze(ctx context.Context, ticker string) (*models.PipelineResult, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("agent: empty ticker")
	}

	var (
		series   models.PriceSeries
		fund     *models.Fundamentals
		articles []models.NewsArticle
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = p.prices.History(gctx, ticker, p.historyDays)
		if err != nil {
			return fmt.Errorf("price history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fund, err = p.fundamentals.Fundamentals(gctx, ticker)
		if err != nil {
			log.Printf("agent: fundamentals for %s unavailable: %v", ticker, err)
			fund = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		articles, err = p.headlines.TickerNews(gctx, ticker, p.newsLimit)
		if err != nil {
			log.Printf("agent: news for %s unavailable: %v", ticker, err)
			articles = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.fetchBodies {
		p.fetchArticleBodies(ctx, ticker, articles)
	}

	snapshot, err := technical.Analyze(ticker, series, p.pivotWindow, p.clusterThreshold)
	if err != nil {
		return nil, fmt.Errorf("technical analysis: %w", err)
	}

	techText := technical.RenderText(snapshot)
	fundText := "(fundamental data unavailable)"
	if fund != nil {
		fundText = fundamental.RenderText(fund)
	}
	newsText := renderHeadlines(articles)

	var newsRes, fundRes, techRes *Result
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		newsRes, err = p.news.Run(gctx, prompts.NewsTask(ticker, newsText))
		return err
	})
	g.Go(func() error {
		var err error
		fundRes, err = p.fundamental.Run(gctx, prompts.FundamentalTask(ticker, fundText))
		return err
	})
	g.Go(func() error {
		var err error
		techRes, err = p.technical.Run(gctx, prompts.TechnicalTask(ticker, techText))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stratRes, err := p.strategist.Run(ctx, prompts.StrategistTask(
		ticker, newsRes.Content, fundRes.Content, techRes.Content))
	if err != nil {
		return nil, err
	}

	decision, err := ParseDecision(stratRes.Content)
	if err != nil {
		return nil, fmt.Errorf("strategist output: %w", err)
	}
	fillDecisionDefaults(decision, ticker, fund)

	return &models.PipelineResult{
		Ticker:              ticker,
		MacroAnalysis:       newsRes.Content,
		FundamentalAnalysis: fundRes.Content,
		TechnicalAnalysis:   techRes.Content,
		Decision:            decision,
		Snapshot:            snapshot,
		Fundamentals:        fund,
		Headlines:           articles,
		GeneratedAt:         time.Now(),
	}, nil
}

// fetchArticleBodies fills in full text for the top headlines when the
// news provider can download article pages. Failures only cost detail.
func (p *Pipeline) fetchArticleBodies(ctx context.Context, ticker string, articles []models.NewsArticle) {
	bf, ok := p.headlines.(datasource.BodyFetcher)
	if !ok {
		return
	}
	n := p.bodyTopN
	if n > len(articles) {
		n = len(articles)
	}
	for i := 0; i < n; i++ {
		if err := bf.FetchBody(ctx, &articles[i]); err != nil {
			log.Printf("agent: article body for %s unavailable: %v", ticker, err)
		}
	}
}

// ParseDecision extracts the JSON decision object from the strategist's
// reply, tolerating markdown code fences and surrounding prose.
func ParseDecision(content string) (*models.InvestmentDecision, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object found in reply")
	}

	var d models.InvestmentDecision
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("decode decision: %w", err)
	}
	switch d.Decision {
	case models.DecisionBuy, models.DecisionHold, models.DecisionSell:
	default:
		return nil, fmt.Errorf("invalid decision %q", d.Decision)
	}
	return &d, nil
}

// extractJSON returns the first balanced top-level JSON object in s.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func fillDecisionDefaults(d *models.InvestmentDecision, ticker string, fund *models.Fundamentals) {
	if d.Ticker == "" {
		d.Ticker = ticker
	}
	if d.Date == "" {
		d.Date = time.Now().Format("2006-01-02")
	}
	if fund != nil {
		if d.FullName == "" {
			d.FullName = fund.Stock.Name
		}
		if d.Industry == "" {
			d.Industry = fund.Stock.Industry
		}
	}
}

// renderHeadlines formats collected articles as the text block handed to
// the news researcher.
func renderHeadlines(articles []models.NewsArticle) string {
	if len(articles) == 0 {
		return "(no recent news found)"
	}
	var b strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&b, "%d. [%s] %s", i+1, a.Source, a.Title)
		if !a.PublishedAt.IsZero() {
			fmt.Fprintf(&b, " (%s)", a.PublishedAt.Format("2006-01-02"))
		}
		b.WriteString("\n")
		if a.Summary != "" {
			fmt.Fprintf(&b, "   %s\n", a.Summary)
		}
		if a.Body != "" {
			body := a.Body
			if len(body) > 1500 {
				body = body[:1500] + "..."
			}
			fmt.Fprintf(&b, "   %s\n", body)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
