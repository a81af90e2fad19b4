// Package report turns readiness reports into downloadable artifacts: a
// branded HTML document rasterized to PDF through headless Chromium, with the
// raw HTML as the fallback artifact when rasterization is unavailable.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"readiness-service/internal/analysis"
)

// dimensionShortNames are the compact labels used in the trend chart.
var dimensionShortNames = map[string]string{
	analysis.DimensionFinancial: "Financial",
	analysis.DimensionAcademic:  "Academic",
	analysis.DimensionCareer:    "Career",
	analysis.DimensionCultural:  "Cultural",
	analysis.DimensionPractical: "Practical",
	analysis.DimensionSupport:   "Support",
}

var countryDescriptions = map[string]string{
	"Singapore":            "Strong academic support, proximity to India, structured environment",
	"Ireland":              "English-speaking, EU benefits, growing tech sector",
	"Germany":              "Free education, strong engineering programs, EU access",
	"Canada":               "Multicultural, post-graduation work permits, quality education",
	"Australia":            "English-speaking, strong research programs, work opportunities",
	"United Kingdom":       "Prestigious universities, strong Indian diaspora, global recognition",
	"United States":        "Top universities, research opportunities, diverse programs",
	"India":                "Domestic options, cost-effective, familiar environment",
	"United Arab Emirates": "Growing education sector, proximity, business opportunities",
	"Netherlands":          "English programs, EU benefits, innovative education",
}

var countryFlags = map[string]string{
	"Singapore":            "\U0001F1F8\U0001F1EC",
	"Ireland":              "\U0001F1EE\U0001F1EA",
	"Netherlands":          "\U0001F1F3\U0001F1F1",
	"Canada":               "\U0001F1E8\U0001F1E6",
	"Australia":            "\U0001F1E6\U0001F1FA",
	"United Kingdom":       "\U0001F1EC\U0001F1E7",
	"Germany":              "\U0001F1E9\U0001F1EA",
	"United States":        "\U0001F1FA\U0001F1F8",
	"India":                "\U0001F1EE\U0001F1F3",
	"United Arab Emirates": "\U0001F1E6\U0001F1EA",
}

type dimensionView struct {
	Name     string
	Short    string
	Score    int
	Weight   int
	BarClass string
}

type countryView struct {
	Rank        int
	Name        string
	Flag        string
	Match       int
	Description string
}

type reportView struct {
	StudentName     string
	StudentEmail    string
	StudentPhone    string
	OverallIndex    int
	Band            string
	Dimensions      []dimensionView
	Countries       []countryView
	Strengths       string
	Gaps            string
	Recommendations string
	Source          string
}

// MatchPercent ranks destination fit on a descending 15-point ladder: the
// first country is a 100% match, the second 85%, the third 70%.
func MatchPercent(index int) int {
	return 100 - index*15
}

func barClass(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "average"
	default:
		return "weak"
	}
}

func buildView(r analysis.ReadinessReport) reportView {
	view := reportView{
		StudentName:     orDefault(r.StudentName, "Student"),
		StudentEmail:    orDefault(r.StudentEmail, "Not provided"),
		StudentPhone:    orDefault(r.StudentPhone, "Not provided"),
		OverallIndex:    r.WeightedIndex,
		Band:            orDefault(r.Band, "Needs Assessment"),
		Strengths:       orDefault(r.Strengths, "No strengths identified"),
		Gaps:            orDefault(r.Gaps, "No gaps identified"),
		Recommendations: orDefault(r.Recommendations, "No recommendations provided"),
		Source:          r.Source,
	}

	for _, d := range r.Dimensions {
		short := dimensionShortNames[d.Name]
		if short == "" {
			short = d.Name
		}
		view.Dimensions = append(view.Dimensions, dimensionView{
			Name:     d.Name,
			Short:    short,
			Score:    d.Score,
			Weight:   d.Weight,
			BarClass: barClass(d.Score),
		})
	}

	for i, name := range r.CountryFit {
		base := strings.TrimSpace(countryBaseName(name))
		desc, ok := countryDescriptions[base]
		if !ok {
			desc = "Good study destination with quality education"
		}
		flag, ok := countryFlags[base]
		if !ok {
			flag = "\U0001F30D"
		}
		view.Countries = append(view.Countries, countryView{
			Rank:        i + 1,
			Name:        name,
			Flag:        flag,
			Match:       MatchPercent(i),
			Description: desc,
		})
	}

	return view
}

// countryBaseName strips tier qualifiers such as "(conditional)".
func countryBaseName(name string) string {
	if i := strings.IndexByte(name, '('); i > 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// FilenameSlug lowercases the student name and collapses whitespace to
// hyphens for use in attachment filenames.
func FilenameSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = regexp.MustCompile(`\s+`).ReplaceAllString(slug, "-")
	slug = regexp.MustCompile(`[^a-z0-9-]`).ReplaceAllString(slug, "")
	if slug == "" {
		slug = "student"
	}
	return slug
}

// RenderHTML produces the full report document for a readiness report.
func RenderHTML(r analysis.ReadinessReport) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, buildView(r)); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>D-Vivid Consultant - Study Abroad Assessment Report</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: 'Poppins', 'Segoe UI', Arial, sans-serif; color: #1f2937; background: #ffffff; font-size: 12px; }
  .page { padding: 24px 28px; }
  .header { display: flex; justify-content: space-between; align-items: center; border-bottom: 3px solid #4f46e5; padding-bottom: 14px; margin-bottom: 18px; }
  .brand { font-size: 1.6em; font-weight: 800; color: #4f46e5; }
  .brand-sub { font-size: 0.85em; color: #6b7280; }
  .report-title { text-align: right; }
  .report-title h1 { font-size: 1.2em; color: #111827; }
  .report-title p { color: #6b7280; font-size: 0.85em; }
  .student-info { display: flex; gap: 24px; background: #f9fafb; border-radius: 8px; padding: 12px 16px; margin-bottom: 18px; }
  .student-info div { font-size: 0.95em; }
  .student-info span { color: #6b7280; display: block; font-size: 0.8em; }
  .overall-banner { display: flex; align-items: center; gap: 20px; background: linear-gradient(135deg, #4f46e5, #7c3aed); color: #fff; border-radius: 10px; padding: 18px 22px; margin-bottom: 20px; }
  .overall-score { font-size: 2.6em; font-weight: 800; }
  .overall-label { font-size: 1.05em; }
  .overall-band { background: rgba(255,255,255,0.2); border-radius: 999px; padding: 4px 14px; font-weight: 600; }
  h2.section-title { font-size: 1.05em; color: #111827; border-left: 4px solid #4f46e5; padding-left: 8px; margin: 18px 0 10px; }
  .score-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 10px; }
  .score-card { border: 1px solid #e5e7eb; border-radius: 8px; padding: 10px; }
  .score-card h4 { font-size: 0.85em; color: #374151; margin-bottom: 4px; }
  .score-value { font-size: 1.3em; font-weight: 700; color: #111827; }
  .score-bar { height: 6px; background: #e5e7eb; border-radius: 3px; margin-top: 6px; overflow: hidden; }
  .score-fill { height: 100%; border-radius: 3px; }
  .score-fill.excellent { background: #10b981; }
  .score-fill.good { background: #3b82f6; }
  .score-fill.average { background: #f59e0b; }
  .score-fill.weak { background: #ef4444; }
  .score-weight { font-size: 0.7em; color: #666; margin-top: 4px; }
  .radar-chart { display: flex; flex-direction: column; gap: 6px; }
  .radar-item { display: flex; justify-content: space-between; align-items: center; padding: 6px 12px; background: linear-gradient(90deg, #f9fafb, #f3f4f6); border-radius: 6px; border-left: 4px solid #4f46e5; }
  .radar-label { font-weight: 600; color: #374151; font-size: 0.85em; }
  .radar-score { font-weight: 700; color: #4f46e5; font-size: 1em; }
  .trend-bar { display: flex; align-items: center; gap: 8px; margin-bottom: 6px; }
  .trend-label { width: 70px; font-size: 0.8em; color: #374151; }
  .trend-progress { flex: 1; height: 8px; background: #e5e7eb; border-radius: 4px; overflow: hidden; }
  .trend-fill { height: 100%; background: linear-gradient(90deg, #4f46e5, #7c3aed); }
  .trend-value { width: 36px; text-align: right; font-size: 0.8em; font-weight: 600; }
  .country-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 10px; }
  .country-card { border: 1px solid #e5e7eb; border-radius: 8px; padding: 12px; text-align: center; }
  .country-rank { font-size: 0.75em; color: #6b7280; }
  .country-flag { font-size: 1.6em; margin: 4px 0; }
  .country-name { font-weight: 600; font-size: 0.9em; }
  .country-score { color: #4f46e5; font-weight: 700; font-size: 0.9em; margin-top: 2px; }
  .country-desc { font-size: 0.75em; color: #6b7280; margin-top: 6px; }
  .narrative { background: #f9fafb; border-radius: 8px; padding: 12px 14px; font-size: 0.9em; line-height: 1.5; color: #374151; }
  .footer { margin-top: 24px; border-top: 1px solid #e5e7eb; padding-top: 10px; display: flex; justify-content: space-between; color: #9ca3af; font-size: 0.75em; }
</style>
</head>
<body>
<div class="page">
  <div class="header">
    <div>
      <div class="brand">D-Vivid Consultant</div>
      <div class="brand-sub">Study Abroad Guidance &amp; Counseling</div>
    </div>
    <div class="report-title">
      <h1>Study Abroad Readiness Report</h1>
      <p>Comprehensive Readiness Assessment</p>
    </div>
  </div>

  <div class="student-info">
    <div><span>Student</span>{{.StudentName}}</div>
    <div><span>Email</span>{{.StudentEmail}}</div>
    <div><span>Contact</span>{{.StudentPhone}}</div>
  </div>

  <div class="overall-banner">
    <div class="overall-score">{{.OverallIndex}}</div>
    <div>
      <div class="overall-label">Comprehensive Readiness Index</div>
      <div class="overall-band">{{.Band}}</div>
    </div>
  </div>

  <h2 class="section-title">Readiness Dimensions</h2>
  <div class="score-grid">
    {{range .Dimensions}}
    <div class="score-card">
      <h4>{{.Name}}</h4>
      <div class="score-value">{{.Score}}%</div>
      <div class="score-bar"><div class="score-fill {{.BarClass}}" style="width: {{.Score}}%"></div></div>
      <div class="score-weight">Weight: {{.Weight}}%</div>
    </div>
    {{end}}
  </div>

  <h2 class="section-title">Readiness Radar</h2>
  <div class="radar-chart">
    {{range .Dimensions}}
    <div class="radar-item">
      <div class="radar-label">{{.Name}}</div>
      <div class="radar-score">{{.Score}}%</div>
    </div>
    {{end}}
  </div>

  <h2 class="section-title">Performance Overview</h2>
  {{range .Dimensions}}
  <div class="trend-bar">
    <div class="trend-label">{{.Short}}</div>
    <div class="trend-progress"><div class="trend-fill" style="width: {{.Score}}%"></div></div>
    <div class="trend-value">{{.Score}}%</div>
  </div>
  {{end}}

  {{if .Countries}}
  <h2 class="section-title">Recommended Destinations</h2>
  <div class="country-grid">
    {{range .Countries}}
    <div class="country-card">
      <div class="country-rank">#{{.Rank}}</div>
      <div class="country-flag">{{.Flag}}</div>
      <div class="country-name">{{.Name}}</div>
      <div class="country-score">{{.Match}}% Match</div>
      <div class="country-desc">{{.Description}}</div>
    </div>
    {{end}}
  </div>
  {{end}}

  <h2 class="section-title">Strengths</h2>
  <div class="narrative">{{.Strengths}}</div>

  <h2 class="section-title">Development Areas</h2>
  <div class="narrative">{{.Gaps}}</div>

  <h2 class="section-title">Recommendations</h2>
  <div class="narrative">{{.Recommendations}}</div>

  <div class="footer">
    <div>D-Vivid Consultant &middot; Study Abroad Assessment</div>
    <div>Report basis: {{.Source}}</div>
  </div>
</div>
</body>
</html>
`))
