package analysis

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// dimension offset spans for locally generated reports. Each dimension score
// is the overall score plus an offset drawn from [-shift, span-shift). The
// spans reflect how much each dimension plausibly deviates from raw quiz
// performance; financial readiness varies the most.
type offsetSpan struct {
	name  string
	span  float64
	shift float64
}

var fallbackSpans = []offsetSpan{
	{DimensionFinancial, 30, 15},
	{DimensionAcademic, 20, 10},
	{DimensionCareer, 25, 12},
	{DimensionCultural, 20, 10},
	{DimensionPractical, 15, 8},
	{DimensionSupport, 10, 5},
}

// FallbackReport generates a complete readiness report locally when the
// remote model chain is unavailable. Generation is deterministic: the PRNG is
// seeded from the profile fingerprint, so resubmitting the same answers
// yields the same report.
func FallbackReport(profile StudentProfile) ReadinessReport {
	seed := profileSeed(profile)
	rng := rand.New(rand.NewSource(seed))

	weights := DimensionWeights()
	dims := make([]DimensionScore, 0, len(weights))
	byName := make(map[string]int, len(weights))
	for i, s := range fallbackSpans {
		offset := int(math.Floor(rng.Float64()*s.span - s.shift))
		score := clampScore(profile.OverallScore + offset)
		dims = append(dims, DimensionScore{
			Name:   s.name,
			Score:  score,
			Weight: weights[i].Weight,
		})
		byName[s.name] = score
	}

	weighted := WeightedIndex(dims)
	band := Band(profile.OverallScore)

	return ReadinessReport{
		StudentName:     profile.Name,
		StudentEmail:    profile.Email,
		StudentPhone:    profile.Phone,
		Dimensions:      dims,
		WeightedIndex:   weighted,
		Band:            band,
		Strengths:       fallbackStrengths(band, byName),
		Gaps:            fallbackGaps(byName),
		Recommendations: fallbackRecommendations(byName),
		CountryFit:      CountryFitFor(weighted),
		Topics:          profile.TopicScores,
		Source:          SourceFallback,
	}
}

// DegradedReport is the last-resort artifact when remote output existed but
// could not be parsed. It carries the profile's own numbers so the funnel
// still terminates with a usable report.
func DegradedReport(profile StudentProfile) ReadinessReport {
	weights := DimensionWeights()
	dims := make([]DimensionScore, 0, len(weights))
	for _, w := range weights {
		dims = append(dims, DimensionScore{
			Name:   w.Name,
			Score:  clampScore(profile.OverallScore),
			Weight: w.Weight,
		})
	}
	weighted := WeightedIndex(dims)

	return ReadinessReport{
		StudentName:     profile.Name,
		StudentEmail:    profile.Email,
		StudentPhone:    profile.Phone,
		Dimensions:      dims,
		WeightedIndex:   weighted,
		Band:            Band(profile.OverallScore),
		Strengths:       "Detailed analysis is temporarily unavailable. Your overall performance has been carried across all readiness dimensions.",
		Gaps:            "A full dimension-level breakdown could not be produced for this attempt.",
		Recommendations: "Please retry the analysis later for a complete dimension-level evaluation, or consult a counselor with your overall score.",
		CountryFit:      CountryFitFor(weighted),
		Topics:          profile.TopicScores,
		Source:          SourceDegraded,
	}
}

// profileSeed derives a PRNG seed from the profile content hash.
func profileSeed(profile StudentProfile) int64 {
	fp := profile.Fingerprint()
	var raw [8]byte
	for i := 0; i < 8 && i*2+1 < len(fp); i++ {
		raw[i] = hexByte(fp[i*2], fp[i*2+1])
	}
	return int64(binary.BigEndian.Uint64(raw[:]))
}

func hexByte(hi, lo byte) byte {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func fallbackStrengths(band string, scores map[string]int) string {
	return fmt.Sprintf(
		"Based on your assessment, you demonstrate %s readiness in key areas. Your performance indicates %s, %s, and %s.",
		strings.ToLower(band),
		pick(scores[DimensionAcademic] >= 70, "strong academic foundation", "areas for academic improvement"),
		pick(scores[DimensionSupport] >= 70, "good support systems", "need for stronger support networks"),
		pick(scores[DimensionCareer] >= 70, "clear career direction", "need for career clarity"),
	)
}

func fallbackGaps(scores map[string]int) string {
	return fmt.Sprintf(
		"Areas requiring attention include %s, %s, and %s.",
		pick(scores[DimensionFinancial] < 60, "financial planning and budgeting for international education", "maintaining financial readiness"),
		pick(scores[DimensionCultural] < 60, "cultural adaptability and cross-cultural communication skills", "enhancing cultural awareness"),
		pick(scores[DimensionPractical] < 60, "practical preparation for living abroad", "strengthening practical readiness"),
	)
}

func fallbackRecommendations(scores map[string]int) string {
	return fmt.Sprintf(
		"1. %s 2. %s 3. %s 4. %s 5. %s",
		pick(scores[DimensionFinancial] < 70, "Develop a comprehensive financial plan including budgeting, scholarship research, and funding strategies.", "Maintain your financial planning approach."),
		pick(scores[DimensionAcademic] < 70, "Focus on academic preparation including language skills and subject mastery.", "Continue your academic excellence."),
		pick(scores[DimensionCareer] < 70, "Engage in career counseling to clarify long-term goals and align study plans.", "Leverage your clear career direction."),
		pick(scores[DimensionCultural] < 70, "Participate in cultural exchange programs and intercultural training.", "Build on your cultural adaptability."),
		pick(scores[DimensionPractical] < 70, "Research visa processes, accommodation, and daily living requirements.", "Enhance your practical readiness."),
	)
}

func pick(cond bool, whenTrue, whenFalse string) string {
	if cond {
		return whenTrue
	}
	return whenFalse
}
