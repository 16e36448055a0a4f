package models

// Fundamentals aggregates the valuation ratios and quarterly trends used by
// the fundamental analyst. Ratios the upstream source does not report are
// undefined and render as "N/A" rather than zero.
type Fundamentals struct {
	Stock        Stock             `json:"stock"`
	PE           Float             `json:"pe"`
	PB           Float             `json:"pb"`
	ROE          Float             `json:"roe"`
	ROA          Float             `json:"roa"`
	ProfitMargin Float             `json:"profit_margin"`
	EPS          Float             `json:"eps"`
	DebtToEquity Float             `json:"debt_to_equity"`
	EVEBITDA     Float             `json:"ev_ebitda"`
	Quarters     []QuarterlyIncome `json:"quarters,omitempty"` // newest first, up to 4
}

// QuarterlyIncome is one quarter of income-statement headline figures.
type QuarterlyIncome struct {
	Period      string `json:"period"` // e.g., "2026-06-30"
	Revenue     Float  `json:"revenue"`
	GrossProfit Float  `json:"gross_profit"`
	NetIncome   Float  `json:"net_income"`
}
