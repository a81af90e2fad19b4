package analysis

import (
	"context"
	"strings"

	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"
	"readiness-service/internal/common/metrics"
	"readiness-service/internal/common/validation"
)

// Service runs the analysis pipeline: validate, consult the cache, try the
// remote model chain, and degrade through the local producers. After input
// validation passes, Analyze cannot fail; the funnel always terminates with a
// complete report.
type Service struct {
	completer Completer
	cache     *ReportCache
	log       logger.Logger
}

// NewService wires the analysis pipeline. cache may be nil when caching is
// disabled.
func NewService(completer Completer, cache *ReportCache, log logger.Logger) *Service {
	return &Service{completer: completer, cache: cache, log: log}
}

// Analyze produces a readiness report for the profile. The only error it
// returns is input validation; every upstream failure downgrades to the
// deterministic local fallback, and unparseable upstream output downgrades to
// the degraded report.
func (s *Service) Analyze(ctx context.Context, profile StudentProfile) (ReadinessReport, error) {
	if err := validateProfile(profile); err != nil {
		return ReadinessReport{}, err
	}

	fingerprint := profile.Fingerprint()
	if report, ok := s.cache.Get(ctx, fingerprint); ok {
		s.log.Info("analysis served from cache", map[string]interface{}{
			"fingerprint": fingerprint[:12],
			"source":      report.Source,
		})
		metrics.AnalyzeRequests.WithLabelValues("cache").Inc()
		return report, nil
	}

	report := s.produce(ctx, profile)
	s.cache.Put(ctx, fingerprint, report)
	metrics.AnalyzeRequests.WithLabelValues(report.Source).Inc()

	s.log.Info("analysis completed", map[string]interface{}{
		"fingerprint":   fingerprint[:12],
		"source":        report.Source,
		"weightedIndex": report.WeightedIndex,
		"band":          report.Band,
	})
	return report, nil
}

func (s *Service) produce(ctx context.Context, profile StudentProfile) ReadinessReport {
	text, err := s.completer.Complete(ctx, systemPrompt, BuildUserPrompt(profile))
	if err != nil {
		s.log.Warn("remote model chain failed, generating local report", map[string]interface{}{
			"code":  apperrors.CodeOf(err),
			"error": err.Error(),
		})
		return FallbackReport(profile)
	}

	raw, err := ExtractJSONObject(text)
	if err != nil {
		s.log.Error("model output carried no JSON, degrading", map[string]interface{}{
			"error":   err.Error(),
			"preview": truncate(text, 200),
		})
		return DegradedReport(profile)
	}

	report, err := ParseModelReport(raw, profile)
	if err != nil {
		s.log.Error("model JSON did not match report shape, degrading", map[string]interface{}{
			"error": err.Error(),
		})
		return DegradedReport(profile)
	}

	return report
}

func validateProfile(profile StudentProfile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return apperrors.NewInvalidInputError("user name is required")
	}
	if profile.Email != "" && !validation.IsEmail(profile.Email) {
		return apperrors.NewInvalidInputError("user email is not a valid address")
	}
	if profile.Phone != "" && !validation.IsPhone(profile.Phone) {
		return apperrors.NewInvalidInputError("user phone is not a dialable number")
	}
	if profile.OverallScore < 0 || profile.OverallScore > 100 {
		return apperrors.NewInvalidInputError("overall score must be between 0 and 100")
	}
	return nil
}
