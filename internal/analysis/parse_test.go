package analysis

import (
	"testing"

	apperrors "readiness-service/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedModelJSON = `{
  "Student Name": "Asha Patel",
  "Student Email": "asha@example.com",
  "Scores": {
    "Financial Planning": 78,
    "Academic Readiness": 82,
    "Career Alignment": 74,
    "Personal & Cultural": 69,
    "Practical Readiness": 71,
    "Support System": 88
  },
  "Overall Readiness Index": 77,
  "Readiness Level": "Good",
  "Strengths": "Strong academics and family support.",
  "Gaps": "Cultural adaptability needs work.",
  "Recommendations": "Join an exchange program.",
  "Country Fit (Top 3)": ["Singapore", "Australia", "Germany"]
}`

func TestParseModelReport(t *testing.T) {
	report, err := ParseModelReport(wellFormedModelJSON, sampleProfile(75))
	require.NoError(t, err)

	assert.Equal(t, "Asha Patel", report.StudentName)
	assert.Equal(t, SourceLLM, report.Source)
	assert.Equal(t, 77, report.WeightedIndex)
	assert.Equal(t, "Good", report.Band)
	assert.Equal(t, []string{"Singapore", "Australia", "Germany"}, report.CountryFit)

	require.Len(t, report.Dimensions, 6)
	assert.Equal(t, DimensionFinancial, report.Dimensions[0].Name)
	assert.Equal(t, 78, report.Dimensions[0].Score)
	assert.Equal(t, 25, report.Dimensions[0].Weight)
	assert.Equal(t, DimensionSupport, report.Dimensions[5].Name)
	assert.Equal(t, 88, report.Dimensions[5].Score)
}

func TestParseModelReportToleratesLooseTypes(t *testing.T) {
	raw := `{
	  "Scores": {
	    "Financial Planning": "78",
	    "Academic Readiness": "82%",
	    "Career Alignment": 74.4,
	    "Personal & Cultural Readiness": 69,
	    "Practical Readiness": 71,
	    "Support System": 88
	  },
	  "Overall Readiness Index": "77",
	  "Strengths": ["Strong academics.", "Good support."],
	  "Country Fit (Top 3)": [{"country": "Singapore"}, {"name": "Australia"}]
	}`

	report, err := ParseModelReport(raw, sampleProfile(75))
	require.NoError(t, err)

	assert.Equal(t, 78, report.Dimensions[0].Score)
	assert.Equal(t, 82, report.Dimensions[1].Score)
	assert.Equal(t, 74, report.Dimensions[2].Score)
	assert.Equal(t, 69, report.Dimensions[3].Score)
	assert.Equal(t, 77, report.WeightedIndex)
	assert.Equal(t, "Strong academics. Good support.", report.Strengths)
	assert.Equal(t, []string{"Singapore", "Australia"}, report.CountryFit)
	// Missing Readiness Level falls back to the band of the weighted index.
	assert.Equal(t, "Good", report.Band)
	// Identity absent in model output comes from the profile.
	assert.Equal(t, "Asha Patel", report.StudentName)
}

func TestParseModelReportRecomputesMissingComposites(t *testing.T) {
	raw := `{
	  "Scores": {
	    "Financial Planning": 90,
	    "Academic Readiness": 90,
	    "Career Alignment": 90,
	    "Personal & Cultural": 90,
	    "Practical Readiness": 90,
	    "Support System": 90
	  }
	}`

	report, err := ParseModelReport(raw, sampleProfile(75))
	require.NoError(t, err)

	assert.Equal(t, 90, report.WeightedIndex)
	assert.Equal(t, "Excellent", report.Band)
	assert.Equal(t, []string{"United States", "United Kingdom", "Canada"}, report.CountryFit)
}

func TestParseModelReportRejectsMissingScores(t *testing.T) {
	for name, raw := range map[string]string{
		"no scores block": `{"Readiness Level": "Good"}`,
		"partial scores":  `{"Scores": {"Financial Planning": 78}}`,
		"not an object":   `["Financial Planning", 78]`,
	} {
		_, err := ParseModelReport(raw, sampleProfile(75))
		require.Error(t, err, name)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMalformedUpstreamResponse), name)
	}
}

func TestParseModelReportClampsScores(t *testing.T) {
	raw := `{
	  "Scores": {
	    "Financial Planning": 140,
	    "Academic Readiness": -20,
	    "Career Alignment": 74,
	    "Personal & Cultural": 69,
	    "Practical Readiness": 71,
	    "Support System": 88
	  }
	}`

	report, err := ParseModelReport(raw, sampleProfile(75))
	require.NoError(t, err)
	assert.Equal(t, 100, report.Dimensions[0].Score)
	assert.Equal(t, 0, report.Dimensions[1].Score)
}
