// Package fundamental summarizes valuation ratios and quarterly income
// trends for the fundamental analyst agent. Missing upstream data renders
// as "N/A", never as zero.
package fundamental

import (
	"fmt"
	"strings"

	"github.com/advisorly/stockadvisor/pkg/models"
)

// QuarterlyGrowth holds quarter-over-quarter growth rates in percent.
// A rate is undefined when either quarter lacks the figure or the older
// quarter is zero or negative.
type QuarterlyGrowth struct {
	Period         string
	RevenueQoQ     models.Float
	NetIncomeQoQ   models.Float
	GrossMarginPct models.Float
}

// ComputeGrowth derives QoQ growth for each quarter that has a successor.
// Quarters arrive newest first, matching the upstream order.
func ComputeGrowth(quarters []models.QuarterlyIncome) []QuarterlyGrowth {
	var out []QuarterlyGrowth
	for i := 0; i+1 < len(quarters); i++ {
		cur, prev := quarters[i], quarters[i+1]
		g := QuarterlyGrowth{
			Period:         cur.Period,
			RevenueQoQ:     growthRate(cur.Revenue, prev.Revenue),
			NetIncomeQoQ:   growthRate(cur.NetIncome, prev.NetIncome),
			GrossMarginPct: marginPct(cur.GrossProfit, cur.Revenue),
		}
		out = append(out, g)
	}
	return out
}

func growthRate(cur, prev models.Float) models.Float {
	if !cur.Valid() || !prev.Valid() || prev.Value() <= 0 {
		return models.Undefined()
	}
	return models.F((cur.Value() - prev.Value()) / prev.Value() * 100)
}

func marginPct(part, whole models.Float) models.Float {
	if !part.Valid() || !whole.Valid() || whole.Value() <= 0 {
		return models.Undefined()
	}
	return models.F(part.Value() / whole.Value() * 100)
}

// RenderText formats fundamentals as the plain-text block handed to the
// fundamental analyst agent.
func RenderText(f *models.Fundamentals) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ticker: %s\n", f.Stock.Ticker)
	fmt.Fprintf(&b, "Company: %s\n", orNA(f.Stock.Name))
	fmt.Fprintf(&b, "Sector / Industry: %s / %s\n", orNA(f.Stock.Sector), orNA(f.Stock.Industry))
	fmt.Fprintf(&b, "P/E: %s\n", f.PE)
	fmt.Fprintf(&b, "P/B: %s\n", f.PB)
	fmt.Fprintf(&b, "ROE: %s\n", f.ROE)
	fmt.Fprintf(&b, "ROA: %s\n", f.ROA)
	fmt.Fprintf(&b, "Profit Margin: %s\n", f.ProfitMargin)
	fmt.Fprintf(&b, "EPS (ttm): %s\n", f.EPS)
	fmt.Fprintf(&b, "Debt-to-Equity: %s\n", f.DebtToEquity)
	fmt.Fprintf(&b, "EV/EBITDA: %s\n", f.EVEBITDA)

	b.WriteString("\n")
	b.WriteString(renderBenchmark(f.Stock.Sector))

	b.WriteString("\nLAST 4 QUARTERS:\n")
	if len(f.Quarters) == 0 {
		b.WriteString("  (no quarterly data available)\n")
	}
	for i, q := range f.Quarters {
		fmt.Fprintf(&b, "Quarter T-%d (%s):\n", i+1, orNA(q.Period))
		fmt.Fprintf(&b, "  - Revenue: %s\n", money(q.Revenue))
		fmt.Fprintf(&b, "  - Gross Profit: %s\n", money(q.GrossProfit))
		fmt.Fprintf(&b, "  - Net Income: %s\n", money(q.NetIncome))
	}

	growth := ComputeGrowth(f.Quarters)
	if len(growth) > 0 {
		b.WriteString("\nQUARTERLY TRENDS:\n")
		for _, g := range growth {
			margin := "N/A"
			if g.GrossMarginPct.Valid() {
				margin = fmt.Sprintf("%.1f%%", g.GrossMarginPct.Value())
			}
			fmt.Fprintf(&b, "%s: revenue QoQ %s, net income QoQ %s, gross margin %s\n",
				orNA(g.Period), pct(g.RevenueQoQ), pct(g.NetIncomeQoQ), margin)
		}
	}

	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// money formats a dollar amount with thousands separators, "N/A" when
// undefined.
func money(v models.Float) string {
	if !v.Valid() {
		return "N/A"
	}
	val := v.Value()
	neg := val < 0
	if neg {
		val = -val
	}
	s := fmt.Sprintf("%d", int64(val+0.5))
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "$" + strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func pct(v models.Float) string {
	if !v.Valid() {
		return "N/A"
	}
	return fmt.Sprintf("%+.1f%%", v.Value())
}
