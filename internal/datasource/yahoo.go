package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/advisorly/stockadvisor/pkg/models"
)

// Yahoo fetches price history and fundamentals from the public Yahoo
// Finance JSON endpoints. It implements PriceHistoryProvider and
// FundamentalsProvider.
type Yahoo struct {
	baseURL string
	cache   *Cache
	limiter *RateLimiter
}

// NewYahoo creates a Yahoo Finance data source.
func NewYahoo() *Yahoo {
	return &Yahoo{
		baseURL: "https://query1.finance.yahoo.com",
		cache:   NewCache(5 * time.Minute),
		limiter: NewRateLimiter(5, time.Second),
	}
}

// --- Chart (price history) API ---

type yhChartResponse struct {
	Chart struct {
		Result []yhChartResult `json:"result"`
		Error  *yhError        `json:"error"`
	} `json:"chart"`
}

type yhChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []yhQuoteBlock `json:"quote"`
	} `json:"indicators"`
}

type yhQuoteBlock struct {
	Open  []*float64 `json:"open"`
	High  []*float64 `json:"high"`
	Low   []*float64 `json:"low"`
	Close []*float64 `json:"close"`
}

type yhError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// History returns up to `days` trading sessions of daily bars, oldest
// first. The request window is padded with calendar days so weekends and
// holidays do not starve the session count.
func (y *Yahoo) History(ctx context.Context, ticker string, days int) (models.PriceSeries, error) {
	if days <= 0 {
		days = 200
	}
	cacheKey := fmt.Sprintf("yahoo:history:%s:%d", ticker, days)
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(models.PriceSeries), nil
	}
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprintf("%d", now.AddDate(0, 0, -days*5/2).Unix()))
	q.Set("period2", fmt.Sprintf("%d", now.Unix()))
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.baseURL, url.PathEscape(ticker), q.Encode())

	body, err := doGet(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	defer body.Close()

	var resp yhChartResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: decode: %w", ticker, err)
	}
	series, err := parseChart(&resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	if len(series) > days {
		series = series[len(series)-days:]
	}

	y.cache.Set(cacheKey, series)
	return series, nil
}

// parseChart converts a chart response into a clean chronological series,
// dropping sessions with missing quotes.
func parseChart(resp *yhChartResponse) (models.PriceSeries, error) {
	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, ErrTickerNotFound
		}
		return nil, fmt.Errorf("upstream error: %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, ErrNoHistory
	}
	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || len(result.Timestamp) == 0 {
		return nil, ErrNoHistory
	}
	quote := result.Indicators.Quote[0]

	series := make(models.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Each quote array can be shorter than the timestamp list.
		if i >= len(quote.Open) || i >= len(quote.High) ||
			i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}
		if quote.Open[i] == nil || quote.High[i] == nil ||
			quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		series = append(series, models.PriceBar{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		})
	}
	if len(series) == 0 {
		return nil, ErrNoHistory
	}
	return series, nil
}

// --- quoteSummary (fundamentals) API ---

type yhSummaryResponse struct {
	QuoteSummary struct {
		Result []yhSummaryResult `json:"result"`
		Error  *yhError          `json:"error"`
	} `json:"quoteSummary"`
}

type yhSummaryResult struct {
	AssetProfile *struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
	Price *struct {
		LongName     string `json:"longName"`
		ShortName    string `json:"shortName"`
		ExchangeName string `json:"exchangeName"`
		Currency     string `json:"currency"`
	} `json:"price"`
	SummaryDetail *struct {
		TrailingPE *yhValue `json:"trailingPE"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		PriceToBook        *yhValue `json:"priceToBook"`
		TrailingEps        *yhValue `json:"trailingEps"`
		EnterpriseToEbitda *yhValue `json:"enterpriseToEbitda"`
	} `json:"defaultKeyStatistics"`
	FinancialData *struct {
		ReturnOnEquity *yhValue `json:"returnOnEquity"`
		ReturnOnAssets *yhValue `json:"returnOnAssets"`
		ProfitMargins  *yhValue `json:"profitMargins"`
		DebtToEquity   *yhValue `json:"debtToEquity"`
	} `json:"financialData"`
	IncomeStatementHistoryQuarterly *struct {
		Statements []yhIncomeStatement `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistoryQuarterly"`
}

type yhIncomeStatement struct {
	EndDate      *yhValue `json:"endDate"`
	TotalRevenue *yhValue `json:"totalRevenue"`
	GrossProfit  *yhValue `json:"grossProfit"`
	NetIncome    *yhValue `json:"netIncome"`
}

// yhValue is Yahoo's {"raw": n, "fmt": "..."} wrapper. Missing fields decode
// as nil pointers and surface as undefined floats.
type yhValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (v *yhValue) float() models.Float {
	if v == nil || v.Raw == nil {
		return models.Undefined()
	}
	return models.F(*v.Raw)
}

// Fundamentals returns valuation ratios and the last four quarterly income
// statements. Fields Yahoo does not report come back undefined ("N/A" when
// rendered), never zero.
func (y *Yahoo) Fundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error) {
	cacheKey := "yahoo:fundamentals:" + ticker
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.Fundamentals), nil
	}
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("modules", "assetProfile,price,summaryDetail,defaultKeyStatistics,financialData,incomeStatementHistoryQuarterly")
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", y.baseURL, url.PathEscape(ticker), q.Encode())

	body, err := doGet(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo fundamentals %s: %w", ticker, err)
	}
	defer body.Close()

	var resp yhSummaryResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("yahoo fundamentals %s: decode: %w", ticker, err)
	}
	fund, err := parseSummary(ticker, &resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo fundamentals %s: %w", ticker, err)
	}

	y.cache.Set(cacheKey, fund)
	return fund, nil
}

func parseSummary(ticker string, resp *yhSummaryResponse) (*models.Fundamentals, error) {
	if resp.QuoteSummary.Error != nil {
		if resp.QuoteSummary.Error.Code == "Not Found" {
			return nil, ErrTickerNotFound
		}
		return nil, fmt.Errorf("upstream error: %s: %s",
			resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, ErrTickerNotFound
	}
	r := resp.QuoteSummary.Result[0]

	fund := &models.Fundamentals{
		Stock:        models.Stock{Ticker: ticker},
		PE:           models.Undefined(),
		PB:           models.Undefined(),
		ROE:          models.Undefined(),
		ROA:          models.Undefined(),
		ProfitMargin: models.Undefined(),
		EPS:          models.Undefined(),
		DebtToEquity: models.Undefined(),
		EVEBITDA:     models.Undefined(),
	}

	if r.Price != nil {
		fund.Stock.Name = r.Price.LongName
		if fund.Stock.Name == "" {
			fund.Stock.Name = r.Price.ShortName
		}
		fund.Stock.Exchange = r.Price.ExchangeName
		fund.Stock.Currency = r.Price.Currency
	}
	if r.AssetProfile != nil {
		fund.Stock.Sector = r.AssetProfile.Sector
		fund.Stock.Industry = r.AssetProfile.Industry
	}
	if r.SummaryDetail != nil {
		fund.PE = r.SummaryDetail.TrailingPE.float()
	}
	if r.DefaultKeyStatistics != nil {
		fund.PB = r.DefaultKeyStatistics.PriceToBook.float()
		fund.EPS = r.DefaultKeyStatistics.TrailingEps.float()
		fund.EVEBITDA = r.DefaultKeyStatistics.EnterpriseToEbitda.float()
	}
	if r.FinancialData != nil {
		fund.ROE = r.FinancialData.ReturnOnEquity.float()
		fund.ROA = r.FinancialData.ReturnOnAssets.float()
		fund.ProfitMargin = r.FinancialData.ProfitMargins.float()
		fund.DebtToEquity = r.FinancialData.DebtToEquity.float()
	}
	if r.IncomeStatementHistoryQuarterly != nil {
		for i, st := range r.IncomeStatementHistoryQuarterly.Statements {
			if i >= 4 {
				break
			}
			q := models.QuarterlyIncome{
				Revenue:     st.TotalRevenue.float(),
				GrossProfit: st.GrossProfit.float(),
				NetIncome:   st.NetIncome.float(),
			}
			if st.EndDate != nil {
				q.Period = st.EndDate.Fmt
			}
			fund.Quarters = append(fund.Quarters, q)
		}
	}
	return fund, nil
}
