// Package analysis produces study-abroad readiness reports from scored
// questionnaire profiles, using an LLM provider chain with a deterministic
// local fallback.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// Provenance markers for how a report was produced.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
	SourceDegraded = "degraded"
)

// Framework dimension names as they appear in reports. These are the
// counselor-facing labels of the six-factor readiness framework; they differ
// slightly from the questionnaire section names.
const (
	DimensionFinancial = "Financial Planning"
	DimensionAcademic  = "Academic Readiness"
	DimensionCareer    = "Career Alignment"
	DimensionCultural  = "Personal & Cultural"
	DimensionPractical = "Practical Readiness"
	DimensionSupport   = "Support System"
)

// TopicScore is a scored questionnaire section carried on the profile.
// Correct/Total mirrors the wire shape of the funnel client: percentages are
// reported as correct out of 100.
type TopicScore struct {
	Name    string `json:"name"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// Percent returns the topic score normalized to 0-100.
func (t TopicScore) Percent() int {
	if t.Total <= 0 {
		return 0
	}
	p := int(math.Round(float64(t.Correct) / float64(t.Total) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// StudentProfile is the analysis input: identity plus scored performance.
type StudentProfile struct {
	Name         string       `json:"userName"`
	Email        string       `json:"userEmail,omitempty"`
	Phone        string       `json:"userPhone,omitempty"`
	OverallScore int          `json:"overallScore"`
	TopicScores  []TopicScore `json:"topicScoresArray"`
}

// Fingerprint returns a stable content hash of the profile, used both as the
// cache key and as the seed for deterministic fallback generation.
func (p StudentProfile) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%d", strings.TrimSpace(p.Name), strings.ToLower(strings.TrimSpace(p.Email)), p.Phone, p.OverallScore)
	for _, t := range p.TopicScores {
		fmt.Fprintf(h, "|%s=%d/%d", t.Name, t.Correct, t.Total)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// DimensionScore is one of the six weighted framework sub-scores.
type DimensionScore struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Weight int    `json:"weight"`
}

// ReadinessReport is the terminal analysis artifact. Every field is always
// populated regardless of which producer (LLM, fallback, degraded) built it.
type ReadinessReport struct {
	StudentName     string           `json:"studentName"`
	StudentEmail    string           `json:"studentEmail,omitempty"`
	StudentPhone    string           `json:"studentPhone,omitempty"`
	Dimensions      []DimensionScore `json:"dimensionScores"`
	WeightedIndex   int              `json:"weightedIndex"`
	Band            string           `json:"readinessBand"`
	Strengths       string           `json:"strengths"`
	Gaps            string           `json:"gaps"`
	Recommendations string           `json:"recommendations"`
	CountryFit      []string         `json:"countryFit"`
	Topics          []TopicScore     `json:"topics,omitempty"`
	Source          string           `json:"source"`
}

// DimensionWeights returns the six-factor framework weights in report order.
// Weights sum to 100.
func DimensionWeights() []DimensionScore {
	return []DimensionScore{
		{Name: DimensionFinancial, Weight: 25},
		{Name: DimensionAcademic, Weight: 20},
		{Name: DimensionCareer, Weight: 20},
		{Name: DimensionCultural, Weight: 15},
		{Name: DimensionPractical, Weight: 10},
		{Name: DimensionSupport, Weight: 10},
	}
}

// Band maps a 0-100 readiness score to its qualitative level.
func Band(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Very Good"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Satisfactory"
	default:
		return "Needs Improvement"
	}
}

// WeightedIndex computes the framework-weighted composite of the dimension
// scores, rounded to the nearest integer.
func WeightedIndex(dims []DimensionScore) int {
	var sum float64
	for _, d := range dims {
		sum += float64(d.Score) * float64(d.Weight) / 100.0
	}
	return int(math.Round(sum))
}

// CountryFitFor returns the top-3 destination list for a weighted index per
// the country-fit matrix tiers.
func CountryFitFor(weightedIndex int) []string {
	switch {
	case weightedIndex >= 80:
		return []string{"United States", "United Kingdom", "Canada"}
	case weightedIndex >= 60:
		return []string{"Singapore", "Australia", "Germany"}
	default:
		return []string{"India (domestic options)", "Singapore (conditional)", "UAE (with support)"}
	}
}
