package report

import (
	"context"
	"strings"

	"readiness-service/internal/analysis"
	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"
	"readiness-service/internal/common/metrics"
)

// Artifact is a downloadable report document. Callers must branch on
// ContentType: rasterization failures downgrade to the HTML document rather
// than failing the request.
type Artifact struct {
	Bytes       []byte
	ContentType string
	Filename    string
}

// IsPDF reports whether the artifact is the rasterized document.
func (a Artifact) IsPDF() bool {
	return a.ContentType == "application/pdf"
}

// Service renders readiness reports into artifacts.
type Service struct {
	raster Rasterizer
	log    logger.Logger
}

// NewService builds the report service. raster may be nil, in which case
// every request yields the HTML artifact.
func NewService(raster Rasterizer, log logger.Logger) *Service {
	return &Service{raster: raster, log: log}
}

// Generate renders the report document and rasterizes it to PDF. The only
// error is input validation; a failed or absent rasterizer downgrades the
// result to an HTML artifact with the same content.
func (s *Service) Generate(ctx context.Context, r analysis.ReadinessReport) (Artifact, error) {
	if strings.TrimSpace(r.StudentName) == "" {
		return Artifact{}, apperrors.NewInvalidInputError("student name is required")
	}

	html, err := RenderHTML(r)
	if err != nil {
		// The template is compiled at init and the view is fully typed, so
		// this only fires on catastrophic template bugs.
		return Artifact{}, apperrors.NewRenderingFailureError(err)
	}

	slug := FilenameSlug(r.StudentName)

	if s.raster != nil {
		pdf, err := s.raster.Render(ctx, html)
		if err == nil {
			metrics.RenderRequests.WithLabelValues("pdf").Inc()
			return Artifact{
				Bytes:       pdf,
				ContentType: "application/pdf",
				Filename:    "study-abroad-report-" + slug + ".pdf",
			}, nil
		}
		s.log.Warn("rasterization failed, serving html artifact", map[string]interface{}{
			"student": slug,
			"error":   err.Error(),
		})
	}

	metrics.RenderRequests.WithLabelValues("html").Inc()
	return Artifact{
		Bytes:       []byte(html),
		ContentType: "text/html",
		Filename:    "study-abroad-report-" + slug + ".html",
	}, nil
}
