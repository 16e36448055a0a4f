// Package report renders a finished pipeline run as an equity research
// report: Markdown for reading and version control, HTML for styling, and
// optionally PDF via an external engine.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/advisorly/stockadvisor/pkg/models"
)

// IndicatorRow is one labeled indicator reading for table rendering.
type IndicatorRow struct {
	Label string
	Value string
}

// ReportData is the flattened template model built from a PipelineResult.
type ReportData struct {
	Title       string
	Ticker      string
	CompanyName string
	Industry    string
	Date        string
	GeneratedAt string

	Decision       string
	DecisionClass  string // buy / hold / sell, for CSS
	MacroReasoning string
	FundReasoning  string
	TechReasoning  string

	MacroAnalysis       string
	FundamentalAnalysis string
	TechnicalAnalysis   string

	CurrentPrice string
	Indicators   []IndicatorRow
	Resistances  []string
	Supports     []string
	LongTrend    string
	ShortTrend   string
	RSIZone      string
	MACDSignal   string
	Bollinger    string
}

// BuildReportData flattens a pipeline result for template rendering.
func BuildReportData(r *models.PipelineResult) ReportData {
	data := ReportData{
		Title:               "U.S. Equity Research Report",
		Ticker:              r.Ticker,
		GeneratedAt:         r.GeneratedAt.Format("2006-01-02 15:04 MST"),
		Date:                r.GeneratedAt.Format("2006-01-02"),
		MacroAnalysis:       strings.TrimSpace(r.MacroAnalysis),
		FundamentalAnalysis: strings.TrimSpace(r.FundamentalAnalysis),
		TechnicalAnalysis:   strings.TrimSpace(r.TechnicalAnalysis),
	}

	if r.Decision != nil {
		data.CompanyName = r.Decision.FullName
		data.Industry = r.Decision.Industry
		if r.Decision.Date != "" {
			data.Date = r.Decision.Date
		}
		data.Decision = string(r.Decision.Decision)
		data.DecisionClass = strings.ToLower(string(r.Decision.Decision))
		data.MacroReasoning = r.Decision.MacroReasoning
		data.FundReasoning = r.Decision.FundReasoning
		data.TechReasoning = r.Decision.TechReasoning
	}
	if data.CompanyName == "" && r.Fundamentals != nil {
		data.CompanyName = r.Fundamentals.Stock.Name
	}
	if data.CompanyName == "" {
		data.CompanyName = r.Ticker
	}

	if s := r.Snapshot; s != nil {
		data.CurrentPrice = fmt.Sprintf("$%.2f", s.CurrentPrice)
		data.Indicators = indicatorRows(s.Latest)
		for _, lvl := range s.Levels.Resistances {
			data.Resistances = append(data.Resistances, fmt.Sprintf("$%.2f", lvl))
		}
		for _, lvl := range s.Levels.Supports {
			data.Supports = append(data.Supports, fmt.Sprintf("$%.2f", lvl))
		}
		data.LongTrend = string(s.Trend.LongTerm)
		data.ShortTrend = string(s.Trend.ShortTerm)
		data.RSIZone = string(s.Trend.RSIZone)
		data.MACDSignal = string(s.Trend.MACDSignal)
		data.Bollinger = string(s.Trend.Bollinger)
	}

	return data
}

func indicatorRows(row models.IndicatorRow) []IndicatorRow {
	return []IndicatorRow{
		{"SMA (20)", row.SMA20.String()},
		{"SMA (50)", row.SMA50.String()},
		{"SMA (200)", row.SMA200.String()},
		{"EMA (12)", row.EMA12.String()},
		{"EMA (26)", row.EMA26.String()},
		{"MACD", row.MACD.String()},
		{"MACD Signal", row.MACDSignal.String()},
		{"MACD Histogram", row.MACDHist.String()},
		{"RSI (14)", row.RSI14.String()},
		{"Bollinger Upper", row.BBUpper.String()},
		{"Bollinger Middle", row.BBMiddle.String()},
		{"Bollinger Lower", row.BBLower.String()},
	}
}

// GenerateMarkdown renders the full research report as Markdown.
func GenerateMarkdown(r *models.PipelineResult) (string, error) {
	data := BuildReportData(r)

	tmpl, err := texttemplate.New("markdown").Parse(markdownTemplate)
	if err != nil {
		return "", fmt.Errorf("report: parse markdown template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("report: render markdown: %w", err)
	}
	return buf.String(), nil
}

// GenerateHTML renders the full research report as a standalone HTML page.
func GenerateHTML(r *models.PipelineResult) (string, error) {
	data := BuildReportData(r)

	tmpl, err := template.New("html").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("report: parse html template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("report: render html: %w", err)
	}
	return buf.String(), nil
}

// Writer saves reports to disk.
type Writer struct {
	OutputDir string
	PDF       bool      // also produce a PDF when an engine is available
	PDFConfig PDFConfig // engine settings; OutputPath is set per report
}

// Save writes the Markdown and HTML reports (and optionally a PDF) for a
// pipeline result. It returns the paths written.
func (w *Writer) Save(r *models.PipelineResult) ([]string, error) {
	dir := w.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create output dir: %w", err)
	}

	md, err := GenerateMarkdown(r)
	if err != nil {
		return nil, err
	}
	html, err := GenerateHTML(r)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(dir, r.Ticker+"_report")
	var paths []string

	mdPath := base + ".md"
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return nil, fmt.Errorf("report: write %s: %w", mdPath, err)
	}
	paths = append(paths, mdPath)

	htmlPath := base + ".html"
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return paths, fmt.Errorf("report: write %s: %w", htmlPath, err)
	}
	paths = append(paths, htmlPath)

	if w.PDF {
		cfg := w.PDFConfig
		if cfg.PageSize == "" {
			cfg = DefaultPDFConfig()
		}
		cfg.OutputPath = base + ".pdf"
		if err := GeneratePDF(html, cfg); err != nil {
			return paths, fmt.Errorf("report: pdf: %w", err)
		}
		paths = append(paths, cfg.OutputPath)
	}

	return paths, nil
}
