package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"readiness-service/internal/analysis"
	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRasterizer struct {
	pdf   []byte
	err   error
	calls int
	last  string
}

func (s *stubRasterizer) Render(ctx context.Context, html string) ([]byte, error) {
	s.calls++
	s.last = html
	return s.pdf, s.err
}

func sampleReport() analysis.ReadinessReport {
	return analysis.ReadinessReport{
		StudentName:  "Asha Patel",
		StudentEmail: "asha@example.com",
		StudentPhone: "+91 98765 43210",
		Dimensions: []analysis.DimensionScore{
			{Name: analysis.DimensionFinancial, Score: 78, Weight: 25},
			{Name: analysis.DimensionAcademic, Score: 82, Weight: 20},
			{Name: analysis.DimensionCareer, Score: 74, Weight: 20},
			{Name: analysis.DimensionCultural, Score: 69, Weight: 15},
			{Name: analysis.DimensionPractical, Score: 71, Weight: 10},
			{Name: analysis.DimensionSupport, Score: 88, Weight: 10},
		},
		WeightedIndex:   77,
		Band:            "Good",
		Strengths:       "Strong academics and family support.",
		Gaps:            "Cultural adaptability needs work.",
		Recommendations: "Join an exchange program.",
		CountryFit:      []string{"Singapore", "Australia", "Germany"},
		Source:          analysis.SourceLLM,
	}
}

func TestGeneratePDFArtifact(t *testing.T) {
	raster := &stubRasterizer{pdf: []byte("%PDF-1.4 fake")}
	svc := NewService(raster, logger.NewTestLogger(t))

	artifact, err := svc.Generate(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.True(t, artifact.IsPDF())
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.Equal(t, "study-abroad-report-asha-patel.pdf", artifact.Filename)
	assert.Equal(t, []byte("%PDF-1.4 fake"), artifact.Bytes)
	assert.Equal(t, 1, raster.calls)
}

func TestGenerateFallsBackToHTML(t *testing.T) {
	raster := &stubRasterizer{err: errors.New("chromium unavailable")}
	svc := NewService(raster, logger.NewTestLogger(t))

	artifact, err := svc.Generate(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.False(t, artifact.IsPDF())
	assert.Equal(t, "text/html", artifact.ContentType)
	assert.Equal(t, "study-abroad-report-asha-patel.html", artifact.Filename)
	assert.Contains(t, string(artifact.Bytes), "Asha Patel")
}

func TestGenerateWithoutRasterizer(t *testing.T) {
	svc := NewService(nil, logger.NewTestLogger(t))

	artifact, err := svc.Generate(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "text/html", artifact.ContentType)
}

func TestGenerateRequiresStudentName(t *testing.T) {
	svc := NewService(&stubRasterizer{pdf: []byte("x")}, logger.NewTestLogger(t))

	r := sampleReport()
	r.StudentName = "   "
	_, err := svc.Generate(context.Background(), r)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}

func TestGenerateIsIdempotent(t *testing.T) {
	raster := &stubRasterizer{pdf: []byte("%PDF")}
	svc := NewService(raster, logger.NewTestLogger(t))

	first, err := svc.Generate(context.Background(), sampleReport())
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderHTMLContent(t *testing.T) {
	html, err := RenderHTML(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, html, "D-Vivid Consultant")
	assert.Contains(t, html, "Asha Patel")
	assert.Contains(t, html, "Comprehensive Readiness Index")
	assert.Contains(t, html, "Weight: 25%")
	assert.Contains(t, html, "Readiness Radar")
	// Each dimension renders twice: once as a radar list row, once as a trend bar.
	assert.Equal(t, 6, strings.Count(html, `class="radar-item"`))
	assert.Equal(t, 6, strings.Count(html, `class="trend-bar"`))
	assert.Contains(t, html, "100% Match")
	assert.Contains(t, html, "85% Match")
	assert.Contains(t, html, "70% Match")
	assert.Contains(t, html, "Singapore")
	assert.Contains(t, html, "Strong academics and family support.")
}

func TestRenderHTMLEscapesInput(t *testing.T) {
	r := sampleReport()
	r.StudentName = `<script>alert("x")</script>`
	html, err := RenderHTML(r)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
}

func TestRenderHTMLDefaultsMissingFields(t *testing.T) {
	html, err := RenderHTML(analysis.ReadinessReport{StudentName: "Ravi"})
	require.NoError(t, err)

	assert.Contains(t, html, "No strengths identified")
	assert.Contains(t, html, "No recommendations provided")
	assert.Contains(t, html, "Needs Assessment")
}

func TestFilenameSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Asha Patel", "asha-patel"},
		{"  Rohan   K  Mehta ", "rohan-k-mehta"},
		{"O'Brien, Jr.", "obrien-jr"},
		{"", "student"},
		{"###", "student"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FilenameSlug(tt.in), "input %q", tt.in)
	}
}

func TestCountryViewHandlesTierQualifiers(t *testing.T) {
	r := sampleReport()
	r.CountryFit = []string{"India (domestic options)", "Singapore (conditional)", "UAE (with support)"}

	html, err := RenderHTML(r)
	require.NoError(t, err)

	assert.Contains(t, html, "India (domestic options)")
	// Base-name lookup still resolves the description for qualified entries.
	assert.Contains(t, html, "Domestic options, cost-effective, familiar environment")
	assert.True(t, strings.Contains(html, "Good study destination with quality education"))
}
