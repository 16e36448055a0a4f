// stockadvisor — automated equity research for U.S. stocks.
//
// Main CLI entrypoint using the cobra command framework.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/advisorly/stockadvisor/internal/agent"
	"github.com/advisorly/stockadvisor/internal/analysis/fundamental"
	"github.com/advisorly/stockadvisor/internal/analysis/technical"
	"github.com/advisorly/stockadvisor/internal/config"
	"github.com/advisorly/stockadvisor/internal/datasource"
	"github.com/advisorly/stockadvisor/internal/llm"
	"github.com/advisorly/stockadvisor/internal/report"
	"github.com/advisorly/stockadvisor/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stockadvisor",
	Short: "Automated equity research for U.S. stocks",
	Long: `stockadvisor runs a multi-agent research pipeline for a U.S. equity:
market news, fundamentals, and technical indicators are collected,
analyzed by specialist agents, and synthesized into a BUY/HOLD/SELL
decision with a full Markdown/PDF research report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(technicalCmd)
	rootCmd.AddCommand(fundamentalCmd)
	rootCmd.AddCommand(newsCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stockadvisor %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Run the full research pipeline and write a report",
	Long: `Run the complete multi-agent pipeline for a ticker: collect news,
fundamentals, and price history; run the three analyst agents; let the
strategist issue the final decision; write Markdown/HTML (and PDF when
an engine is available) reports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := normalizeTicker(args[0])

		provider, err := llm.New(cfg.LLM.Provider, cfg.APIKey(), cfg.LLM.Model)
		if err != nil {
			return err
		}

		yahoo := datasource.NewYahoo()
		pipeline := agent.NewPipeline(agent.PipelineConfig{
			Provider: provider,
			ChatOptions: &llm.ChatOptions{
				Temperature: llm.Temperature(cfg.LLM.Temperature),
				MaxTokens:   cfg.LLM.MaxTokens,
			},
			Prices:           yahoo,
			Fundamentals:     yahoo,
			News:             datasource.NewNews(),
			HistoryDays:      cfg.Analysis.HistoryDays,
			PivotWindow:      cfg.Analysis.PivotWindow,
			ClusterThreshold: cfg.Analysis.ClusterThreshold,
			NewsLimit:        cfg.News.Limit,
			FetchBodies:      cfg.News.FetchBody,
			BodyTopN:         cfg.News.BodyTopN,
		})

		fmt.Printf("Analyzing %s with %s/%s...\n", ticker, cfg.LLM.Provider, cfg.LLM.Model)
		result, err := pipeline.Analyze(cmd.Context(), ticker)
		if err != nil {
			return err
		}

		if d := result.Decision; d != nil {
			fmt.Printf("\nDecision: %s — %s (%s)\n", d.Decision, d.FullName, d.Date)
		}

		pdf, _ := cmd.Flags().GetBool("pdf")
		writer := &report.Writer{
			OutputDir: cfg.Report.OutputDir,
			PDF:       pdf && cfg.Report.PDF,
			PDFConfig: report.DefaultPDFConfig(),
		}
		paths, err := writer.Save(result)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Printf("wrote %s\n", p)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("pdf", true, "also generate a PDF report")
}

// --- Technical Command ---

var technicalCmd = &cobra.Command{
	Use:   "technical [ticker]",
	Short: "Print the technical indicator readout for a stock",
	Long:  "Fetch price history and print the indicator table, support/resistance levels, and trend reading without involving any LLM.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := normalizeTicker(args[0])

		series, err := datasource.NewYahoo().History(cmd.Context(), ticker, cfg.Analysis.HistoryDays)
		if err != nil {
			return err
		}
		snapshot, err := technical.Analyze(ticker, series,
			cfg.Analysis.PivotWindow, cfg.Analysis.ClusterThreshold)
		if err != nil {
			return err
		}
		fmt.Print(technical.RenderText(snapshot))
		return nil
	},
}

// --- Fundamental Command ---

var fundamentalCmd = &cobra.Command{
	Use:   "fundamental [ticker]",
	Short: "Print the fundamental data readout for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := normalizeTicker(args[0])

		fund, err := datasource.NewYahoo().Fundamentals(cmd.Context(), ticker)
		if err != nil {
			return err
		}
		fmt.Print(fundamental.RenderText(fund))
		return nil
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [ticker]",
	Short: "Print recent news headlines, optionally for one ticker",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := datasource.NewNews()

		var (
			articles []models.NewsArticle
			err      error
		)
		if len(args) == 1 {
			articles, err = source.TickerNews(cmd.Context(), normalizeTicker(args[0]), cfg.News.Limit)
		} else {
			articles, err = source.MarketNews(cmd.Context(), cfg.News.Limit)
		}
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			fmt.Println("no recent news found")
			return nil
		}
		for _, a := range articles {
			when := ""
			if !a.PublishedAt.IsZero() {
				when = a.PublishedAt.Format(" (2006-01-02)")
			}
			fmt.Printf("[%s]%s %s\n  %s\n", a.Source, when, a.Title, a.URL)
		}
		return nil
	},
}

func normalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
