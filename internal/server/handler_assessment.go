package server

import (
	"net/http"
	"strings"

	"readiness-service/internal/analysis"
	"readiness-service/internal/assessment"
	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/leads"
)

type assessmentRequest struct {
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Phone     string                `json:"phone"`
	Responses []assessment.Response `json:"responses"`
}

type assessmentResponse struct {
	Summary assessment.Summary       `json:"summary"`
	Report  analysis.ReadinessReport `json:"report"`
}

// handleAssessment runs the whole funnel in one call: score the answers,
// analyze, capture the lead, and optionally email the report. Only scoring
// input problems fail the request; side effects are best-effort.
func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := decodePayload(r, assessmentSchema, &req); err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = nameFromEmail(req.Email)
	}
	if name == "" {
		s.errHandler.WriteError(w, r, apperrors.NewInvalidInputError("a name or an email is required"))
		return
	}

	summary := assessment.Score(req.Responses)
	profile := buildProfile(name, req.Email, req.Phone, summary)

	readiness, err := s.deps.Analysis.Analyze(r.Context(), profile)
	if err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	s.captureAssessmentLead(r, profile, readiness)
	s.emailReport(r, readiness)

	s.writeJSON(w, http.StatusOK, assessmentResponse{
		Summary: summary,
		Report:  readiness,
	})
}

// captureAssessmentLead upserts the participant as a lead. Unlike the lead
// endpoint, a store failure here is logged, not surfaced: the student still
// gets their report.
func (s *Server) captureAssessmentLead(r *http.Request, profile analysis.StudentProfile, readiness analysis.ReadinessReport) {
	if s.deps.Leads == nil || (profile.Email == "" && profile.Phone == "") {
		return
	}

	_, err := s.deps.Leads.Capture(r.Context(), leads.Lead{
		Name:         profile.Name,
		Email:        profile.Email,
		Phone:        profile.Phone,
		OverallScore: profile.OverallScore,
		Band:         readiness.Band,
		Source:       "assessment",
	})
	if err != nil {
		s.deps.Log.Warn("assessment lead capture failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// emailReport renders and mails the report when email delivery is wired and
// the student left an address.
func (s *Server) emailReport(r *http.Request, readiness analysis.ReadinessReport) {
	if s.deps.Email == nil || s.deps.Reports == nil || readiness.StudentEmail == "" {
		return
	}

	artifact, err := s.deps.Reports.Generate(r.Context(), readiness)
	if err != nil {
		s.deps.Log.Warn("report generation for email failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	err = s.deps.Email.SendReport(r.Context(), readiness.StudentEmail, readiness.StudentName,
		artifact.Filename, artifact.ContentType, artifact.Bytes)
	if err != nil {
		s.deps.Log.Warn("report email failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func buildProfile(name, email, phone string, summary assessment.Summary) analysis.StudentProfile {
	topics := make([]analysis.TopicScore, 0, len(summary.Sections))
	for _, section := range summary.Sections {
		topics = append(topics, analysis.TopicScore{
			Name:    section.Name,
			Correct: section.Percent,
			Total:   100,
		})
	}
	return analysis.StudentProfile{
		Name:         name,
		Email:        strings.TrimSpace(email),
		Phone:        strings.TrimSpace(phone),
		OverallScore: summary.Overall,
		TopicScores:  topics,
	}
}

// nameFromEmail derives a display name from the email local part.
func nameFromEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return ""
	}
	return email[:at]
}
