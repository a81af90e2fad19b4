package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "readiness-service/internal/common/errors"
)

// ParseModelReport decodes the extracted JSON object from the remote model
// into a ReadinessReport. Models are inconsistent about value types (numbers
// arrive as strings, narratives arrive as arrays), so decoding is tolerant;
// structural absence of the score block is the only hard failure. Missing
// composites are recomputed locally from the sub-scores.
func ParseModelReport(raw string, profile StudentProfile) (ReadinessReport, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ReadinessReport{}, apperrors.NewMalformedUpstreamResponseError(fmt.Sprintf("model JSON did not decode: %v", err))
	}

	scoresRaw, ok := lookupKey(doc, "scores")
	if !ok {
		return ReadinessReport{}, apperrors.NewMalformedUpstreamResponseError("model JSON missing Scores block")
	}
	var scoreDoc map[string]json.RawMessage
	if err := json.Unmarshal(scoresRaw, &scoreDoc); err != nil {
		return ReadinessReport{}, apperrors.NewMalformedUpstreamResponseError(fmt.Sprintf("Scores block did not decode: %v", err))
	}

	weights := DimensionWeights()
	dims := make([]DimensionScore, 0, len(weights))
	for _, w := range weights {
		score, found := matchScore(scoreDoc, w.Name)
		if !found {
			return ReadinessReport{}, apperrors.NewMalformedUpstreamResponseError(fmt.Sprintf("Scores block missing dimension %q", w.Name))
		}
		dims = append(dims, DimensionScore{Name: w.Name, Score: clampScore(score), Weight: w.Weight})
	}

	report := ReadinessReport{
		StudentName:     stringField(doc, "student name", profile.Name),
		StudentEmail:    stringField(doc, "student email", profile.Email),
		StudentPhone:    stringField(doc, "student phone", profile.Phone),
		Dimensions:      dims,
		Strengths:       stringField(doc, "strengths", ""),
		Gaps:            stringField(doc, "gaps", ""),
		Recommendations: stringField(doc, "recommendations", ""),
		Topics:          profile.TopicScores,
		Source:          SourceLLM,
	}

	if idx, ok := numberField(doc, "overall readiness index"); ok {
		report.WeightedIndex = clampScore(idx)
	} else {
		report.WeightedIndex = WeightedIndex(dims)
	}

	report.Band = stringField(doc, "readiness level", "")
	if report.Band == "" {
		report.Band = Band(report.WeightedIndex)
	}

	report.CountryFit = countryField(doc)
	if len(report.CountryFit) == 0 {
		report.CountryFit = CountryFitFor(report.WeightedIndex)
	} else if len(report.CountryFit) > 3 {
		report.CountryFit = report.CountryFit[:3]
	}

	return report, nil
}

// lookupKey finds a top-level key case-insensitively, ignoring punctuation
// variance like "Country Fit (Top 3)".
func lookupKey(doc map[string]json.RawMessage, want string) (json.RawMessage, bool) {
	for k, v := range doc {
		if normalizeKey(k) == want || strings.HasPrefix(normalizeKey(k), want) {
			return v, true
		}
	}
	return nil, false
}

func normalizeKey(k string) string {
	return strings.TrimSpace(strings.ToLower(k))
}

// matchScore resolves a dimension by loose name matching; models emit labels
// such as "Personal & Cultural Readiness" for "Personal & Cultural".
func matchScore(scores map[string]json.RawMessage, dimension string) (int, bool) {
	target := normalizeKey(dimension)
	for k, v := range scores {
		key := normalizeKey(k)
		if key == target || strings.HasPrefix(key, target) || strings.HasPrefix(target, key) {
			if n, ok := decodeNumber(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func stringField(doc map[string]json.RawMessage, key, fallback string) string {
	raw, ok := lookupKey(doc, key)
	if !ok {
		return fallback
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}

	// Narrative fields sometimes arrive as arrays of points.
	var items []string
	if err := json.Unmarshal(raw, &items); err == nil && len(items) > 0 {
		return strings.Join(items, " ")
	}

	return fallback
}

func numberField(doc map[string]json.RawMessage, key string) (int, bool) {
	raw, ok := lookupKey(doc, key)
	if !ok {
		return 0, false
	}
	return decodeNumber(raw)
}

func decodeNumber(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(math.Round(f)), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(math.Round(f)), true
		}
	}
	return 0, false
}

func countryField(doc map[string]json.RawMessage) []string {
	raw, ok := lookupKey(doc, "country fit")
	if !ok {
		return nil
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return names
	}

	// Some models expand entries into objects with a country/name field.
	var objs []map[string]interface{}
	if err := json.Unmarshal(raw, &objs); err == nil {
		for _, obj := range objs {
			for _, key := range []string{"country", "Country", "name", "Name"} {
				if v, ok := obj[key].(string); ok && v != "" {
					names = append(names, v)
					break
				}
			}
		}
	}
	return names
}
