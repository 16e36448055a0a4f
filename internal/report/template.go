package report

// markdownTemplate is the Markdown research report layout.
const markdownTemplate = `# {{.Title}}

## {{.Ticker}} — {{.Date}}

**Company:** {{.CompanyName}}{{if .Industry}}
**Industry:** {{.Industry}}{{end}}
**Generated:** {{.GeneratedAt}}

### Executive Summary

{{if .Decision}}**Recommendation: {{.Decision}}**

- **Macro:** {{.MacroReasoning}}
- **Fundamental:** {{.FundReasoning}}
- **Technical:** {{.TechReasoning}}
{{else}}_No final decision was produced for this run._
{{end}}

### Macroeconomic & News Outlook

{{.MacroAnalysis}}

### Fundamental & Valuation Analysis

{{.FundamentalAnalysis}}

### Technical Analysis

{{if .CurrentPrice}}Current price: **{{.CurrentPrice}}**

| Indicator | Value |
|-----------|------:|
{{range .Indicators}}| {{.Label}} | {{.Value}} |
{{end}}
**Resistance levels:** {{if .Resistances}}{{range $i, $r := .Resistances}}{{if $i}}, {{end}}{{$r}}{{end}}{{else}}none found{{end}}
**Support levels:** {{if .Supports}}{{range $i, $s := .Supports}}{{if $i}}, {{end}}{{$s}}{{end}}{{else}}none found{{end}}

| Reading | Signal |
|---------|--------|
| Long-term trend | {{.LongTrend}} |
| Short-term trend | {{.ShortTrend}} |
| RSI zone | {{.RSIZone}} |
| MACD | {{.MACDSignal}} |
| Bollinger | {{.Bollinger}} |

{{end}}{{.TechnicalAnalysis}}

### Final Investment Recommendation

{{if .Decision}}We assign a **{{.Decision}}** rating for **{{.CompanyName}} ({{.Ticker}})** as of {{.Date}}.
{{else}}_No recommendation available._
{{end}}`

// htmlTemplate is the standalone HTML report page. Analyst sections are
// model-written Markdown; they render preformatted rather than parsed.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} — {{.Ticker}}</title>
<style>
  body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    margin: 40px;
    color: #333;
    font-size: 16px;
    line-height: 1.7;
  }
  h1 { text-align: center; font-size: 34px; margin-bottom: 8px; }
  .subtitle { text-align: center; color: #666; margin-bottom: 30px; }
  h2 {
    font-size: 24px;
    color: #2c3e50;
    border-bottom: 2px solid #ccc;
    padding-bottom: 8px;
    margin-top: 40px;
  }
  table { width: 100%; border-collapse: collapse; margin: 20px 0; }
  th, td { border: 1px solid #ccc; padding: 8px 12px; text-align: left; }
  th { background: #f4f6f8; }
  td.num { text-align: right; }
  .analysis { white-space: pre-wrap; }
  .decision {
    display: inline-block;
    padding: 6px 18px;
    border-radius: 4px;
    color: #fff;
    font-weight: bold;
    font-size: 20px;
  }
  .decision.buy { background: #27ae60; }
  .decision.hold { background: #f39c12; }
  .decision.sell { background: #c0392b; }
  .levels span {
    display: inline-block;
    background: #eef2f5;
    border-radius: 3px;
    padding: 2px 10px;
    margin-right: 6px;
  }
  footer { margin-top: 50px; color: #999; font-size: 13px; text-align: center; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="subtitle">{{.CompanyName}} ({{.Ticker}}){{if .Industry}} &middot; {{.Industry}}{{end}} &middot; {{.Date}}</div>

<h2>Executive Summary</h2>
{{if .Decision}}
<p><span class="decision {{.DecisionClass}}">{{.Decision}}</span></p>
<ul>
  <li><b>Macro:</b> {{.MacroReasoning}}</li>
  <li><b>Fundamental:</b> {{.FundReasoning}}</li>
  <li><b>Technical:</b> {{.TechReasoning}}</li>
</ul>
{{else}}<p><i>No final decision was produced for this run.</i></p>{{end}}

<h2>Macroeconomic &amp; News Outlook</h2>
<div class="analysis">{{.MacroAnalysis}}</div>

<h2>Fundamental &amp; Valuation Analysis</h2>
<div class="analysis">{{.FundamentalAnalysis}}</div>

<h2>Technical Analysis</h2>
{{if .CurrentPrice}}
<p>Current price: <b>{{.CurrentPrice}}</b></p>
<table>
  <thead><tr><th>Indicator</th><th>Value</th></tr></thead>
  <tbody>
  {{range .Indicators}}<tr><td>{{.Label}}</td><td class="num">{{.Value}}</td></tr>
  {{end}}</tbody>
</table>
<p class="levels"><b>Resistance:</b> {{if .Resistances}}{{range .Resistances}}<span>{{.}}</span>{{end}}{{else}}none found{{end}}</p>
<p class="levels"><b>Support:</b> {{if .Supports}}{{range .Supports}}<span>{{.}}</span>{{end}}{{else}}none found{{end}}</p>
<table>
  <thead><tr><th>Reading</th><th>Signal</th></tr></thead>
  <tbody>
    <tr><td>Long-term trend</td><td>{{.LongTrend}}</td></tr>
    <tr><td>Short-term trend</td><td>{{.ShortTrend}}</td></tr>
    <tr><td>RSI zone</td><td>{{.RSIZone}}</td></tr>
    <tr><td>MACD</td><td>{{.MACDSignal}}</td></tr>
    <tr><td>Bollinger</td><td>{{.Bollinger}}</td></tr>
  </tbody>
</table>
{{end}}
<div class="analysis">{{.TechnicalAnalysis}}</div>

<h2>Final Investment Recommendation</h2>
{{if .Decision}}
<p>We assign a <span class="decision {{.DecisionClass}}">{{.Decision}}</span> rating for <b>{{.CompanyName}} ({{.Ticker}})</b> as of {{.Date}}.</p>
{{else}}<p><i>No recommendation available.</i></p>{{end}}

<footer>Generated {{.GeneratedAt}}</footer>
</body>
</html>`
