package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"readiness-service/internal/common/database"
	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	text  string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestCache(t *testing.T) *ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Hour, logger.NewNoOpLogger())
}

func TestAnalyzeUsesModelOutput(t *testing.T) {
	svc := NewService(&stubCompleter{text: wellFormedModelJSON}, nil, logger.NewTestLogger(t))

	report, err := svc.Analyze(context.Background(), sampleProfile(75))
	require.NoError(t, err)

	assert.Equal(t, SourceLLM, report.Source)
	assert.Equal(t, 77, report.WeightedIndex)
}

func TestAnalyzeFallsBackWhenModelUnavailable(t *testing.T) {
	svc := NewService(&stubCompleter{err: apperrors.NewUpstreamUnavailableError(errors.New("connection refused"))}, nil, logger.NewTestLogger(t))

	report, err := svc.Analyze(context.Background(), sampleProfile(72))
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, report.Source)
	assert.Len(t, report.Dimensions, 6)
	assert.NotEmpty(t, report.Recommendations)
	assert.Len(t, report.CountryFit, 3)
}

func TestAnalyzeFallsBackOnTimeout(t *testing.T) {
	svc := NewService(&stubCompleter{err: apperrors.NewLLMTimeoutError("sonar-pro")}, nil, logger.NewTestLogger(t))

	report, err := svc.Analyze(context.Background(), sampleProfile(72))
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, report.Source)
}

func TestAnalyzeDegradesOnUnparseableOutput(t *testing.T) {
	svc := NewService(&stubCompleter{text: "I am sorry, I cannot produce JSON today."}, nil, logger.NewTestLogger(t))

	report, err := svc.Analyze(context.Background(), sampleProfile(55))
	require.NoError(t, err)

	assert.Equal(t, SourceDegraded, report.Source)
	assert.Len(t, report.Dimensions, 6)
	assert.Equal(t, 55, report.WeightedIndex)
}

func TestAnalyzeDegradesOnWrongShape(t *testing.T) {
	svc := NewService(&stubCompleter{text: `{"Readiness Level": "Good"}`}, nil, logger.NewTestLogger(t))

	report, err := svc.Analyze(context.Background(), sampleProfile(55))
	require.NoError(t, err)
	assert.Equal(t, SourceDegraded, report.Source)
}

func TestAnalyzeRejectsMissingName(t *testing.T) {
	svc := NewService(&stubCompleter{text: wellFormedModelJSON}, nil, logger.NewTestLogger(t))

	profile := sampleProfile(75)
	profile.Name = "  "
	_, err := svc.Analyze(context.Background(), profile)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}

func TestAnalyzeRejectsBadContact(t *testing.T) {
	svc := NewService(&stubCompleter{text: wellFormedModelJSON}, nil, logger.NewTestLogger(t))

	profile := sampleProfile(75)
	profile.Email = "not-an-email"
	_, err := svc.Analyze(context.Background(), profile)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

	profile = sampleProfile(75)
	profile.Phone = "abc"
	_, err = svc.Analyze(context.Background(), profile)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}

func TestAnalyzeServesRepeatFromCache(t *testing.T) {
	completer := &stubCompleter{text: wellFormedModelJSON}
	svc := NewService(completer, newTestCache(t), logger.NewTestLogger(t))

	first, err := svc.Analyze(context.Background(), sampleProfile(75))
	require.NoError(t, err)

	second, err := svc.Analyze(context.Background(), sampleProfile(75))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, completer.calls)
}

func TestAnalyzeDoesNotServeDegradedFromCache(t *testing.T) {
	completer := &stubCompleter{text: "not json"}
	svc := NewService(completer, newTestCache(t), logger.NewTestLogger(t))

	first, err := svc.Analyze(context.Background(), sampleProfile(75))
	require.NoError(t, err)
	assert.Equal(t, SourceDegraded, first.Source)

	// A retry gets a fresh attempt instead of the cached degraded report.
	completer.text = wellFormedModelJSON
	second, err := svc.Analyze(context.Background(), sampleProfile(75))
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, second.Source)
	assert.Equal(t, 2, completer.calls)
}
