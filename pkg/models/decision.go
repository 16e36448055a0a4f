package models

import "time"

// Decision is the final investment call.
type Decision string

const (
	DecisionBuy  Decision = "BUY"
	DecisionHold Decision = "HOLD"
	DecisionSell Decision = "SELL"
)

// InvestmentDecision is the structured output of the investment strategist.
// The strategist emits it as a JSON block; field tags match that contract.
type InvestmentDecision struct {
	Ticker         string   `json:"stock_ticker"`
	FullName       string   `json:"full_name"`
	Industry       string   `json:"industry"`
	Date           string   `json:"today_date"` // YYYY-MM-DD
	Decision       Decision `json:"decision"`
	MacroReasoning string   `json:"macro_reasoning"`
	FundReasoning  string   `json:"fund_reasoning"`
	TechReasoning  string   `json:"tech_reasoning"`
}

// PipelineResult bundles everything one full analysis run produced.
type PipelineResult struct {
	Ticker              string              `json:"ticker"`
	MacroAnalysis       string              `json:"macro_analysis"`
	FundamentalAnalysis string              `json:"fundamental_analysis"`
	TechnicalAnalysis   string              `json:"technical_analysis"`
	Decision            *InvestmentDecision `json:"decision,omitempty"`
	Snapshot            *TechnicalSnapshot  `json:"snapshot,omitempty"`
	Fundamentals        *Fundamentals       `json:"fundamentals,omitempty"`
	Headlines           []NewsArticle       `json:"headlines,omitempty"`
	GeneratedAt         time.Time           `json:"generated_at"`
}
