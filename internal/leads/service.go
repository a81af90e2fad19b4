package leads

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"

	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"
	"readiness-service/internal/common/metrics"
	"readiness-service/internal/common/validation"
)

// Notifier alerts the counseling desk about a captured lead.
type Notifier interface {
	NotifyLeadCaptured(ctx context.Context, lead Lead)
}

// WorkflowPublisher hands a captured lead to the follow-up process engine.
type WorkflowPublisher interface {
	PublishMessage(ctx context.Context, name, correlationKey string, variables map[string]interface{}) error
}

// Service captures leads: Postgres write first, then best-effort fan-out to
// search, notifications, and the workflow engine. Only the Postgres write can
// fail the operation.
type Service struct {
	repo        *Repository
	indexer     *Indexer
	notifier    Notifier
	workflow    WorkflowPublisher
	messageName string
	log         logger.Logger
}

// ServiceOptions carries the optional fan-out targets.
type ServiceOptions struct {
	Indexer     *Indexer
	Notifier    Notifier
	Workflow    WorkflowPublisher
	MessageName string
}

// NewService wires the lead capture pipeline.
func NewService(repo *Repository, opts ServiceOptions, log logger.Logger) *Service {
	if opts.MessageName == "" {
		opts.MessageName = "lead-captured"
	}
	return &Service{
		repo:        repo,
		indexer:     opts.Indexer,
		notifier:    opts.Notifier,
		workflow:    opts.Workflow,
		messageName: opts.MessageName,
		log:         log,
	}
}

// Capture validates and upserts the lead, then fans out. The upsert result
// tells the caller whether the contact was new or a returning student.
func (s *Service) Capture(ctx context.Context, lead Lead) (UpsertResult, error) {
	ctx, span := otel.Tracer("leads").Start(ctx, "lead.capture")
	defer span.End()

	lead = normalize(lead)
	if err := validate(lead); err != nil {
		return UpsertResult{}, err
	}

	result, err := s.repo.Upsert(ctx, lead)
	if err != nil {
		metrics.LeadUpserts.WithLabelValues("error").Inc()
		return UpsertResult{}, err
	}

	outcome := "updated"
	if result.Created {
		outcome = "created"
	}
	metrics.LeadUpserts.WithLabelValues(outcome).Inc()
	s.log.Info("lead captured", map[string]interface{}{
		"leadId":  result.ID,
		"outcome": outcome,
	})

	lead.ID = result.ID
	s.fanOut(ctx, lead, result.Created)

	return result, nil
}

// Search proxies counselor queries to the search index.
func (s *Service) Search(ctx context.Context, query string, size int) ([]Lead, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewInvalidInputError("search query is required")
	}
	return s.indexer.Search(ctx, query, size)
}

// fanOut runs the best-effort side effects of a captured lead. New leads
// additionally notify the desk and start the follow-up workflow; updates only
// refresh the search index.
func (s *Service) fanOut(ctx context.Context, lead Lead, created bool) {
	s.indexer.Index(ctx, lead)

	if !created {
		return
	}

	if s.notifier != nil {
		s.notifier.NotifyLeadCaptured(ctx, lead)
	}

	if s.workflow != nil {
		variables := map[string]interface{}{
			"leadId": lead.ID,
			"name":   lead.Name,
			"email":  lead.Email,
			"phone":  lead.Phone,
		}
		if err := s.workflow.PublishMessage(ctx, s.messageName, lead.ID, variables); err != nil {
			s.log.Warn("workflow message publication failed", map[string]interface{}{
				"leadId": lead.ID,
				"error":  err.Error(),
			})
		}
	}
}

func normalize(lead Lead) Lead {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	lead.Phone = strings.TrimSpace(lead.Phone)
	return lead
}

func validate(lead Lead) error {
	if lead.Email == "" && lead.Phone == "" {
		return apperrors.NewInvalidInputError("a lead needs an email or a phone number")
	}
	if lead.Email != "" && !validation.IsEmail(lead.Email) {
		return apperrors.NewInvalidInputError("lead email is not a valid address")
	}
	if lead.Phone != "" && !validation.IsPhone(lead.Phone) {
		return apperrors.NewInvalidInputError("lead phone is not a dialable number")
	}
	return nil
}
