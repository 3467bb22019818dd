package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alijeyrad/mindwell_backend/internal/repo"
	"github.com/Alijeyrad/mindwell_backend/internal/service/alerts"
	"github.com/Alijeyrad/mindwell_backend/pkg/observability"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type SubmitRequest struct {
	UserID         string    `json:"userId"`
	AssessmentType string    `json:"assessmentType"`
	Responses      Responses `json:"responses"`
}

// Submission is the stored row together with the score it was derived from.
type Submission struct {
	Assessment *repo.Assessment `json:"assessment"`
	Result     Result           `json:"result"`
	Message    string           `json:"message"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Submission, error)
	ListByUser(ctx context.Context, userID string) ([]*repo.Assessment, error)
	ListFlagged(ctx context.Context, limit int) ([]*repo.Assessment, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type assessmentService struct {
	db      *repo.Client
	events  alerts.Publisher
	metrics *observability.DomainMetrics
	logger  *slog.Logger
}

// New wires the service. events and metrics may be nil.
func New(db *repo.Client, events alerts.Publisher, metrics *observability.DomainMetrics, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &assessmentService{db: db, events: events, metrics: metrics, logger: logger}
}

func (s *assessmentService) Submit(ctx context.Context, req SubmitRequest) (*Submission, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrMissingUser
	}

	form, err := Lookup(req.AssessmentType)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(req.Responses); err != nil {
		return nil, err
	}

	res := Score(form, req.Responses)

	row := &repo.Assessment{
		UserID:                 userID,
		AssessmentType:         form.Type,
		Responses:              req.Responses,
		TotalScore:             res.Total,
		SeverityLevel:          res.Severity.String(),
		Recommendations:        res.Recommendation,
		FlaggedForIntervention: res.Flagged,
	}
	if err := s.db.Assessment.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssessmentStorage, err)
	}

	s.metrics.AssessmentScored(ctx, row.SeverityLevel)

	if res.Flagged {
		s.metrics.Flagged(ctx, alerts.KindAssessment)
		ev := alerts.FlagEvent{
			Kind:       alerts.KindAssessment,
			UserID:     userID,
			Severity:   row.SeverityLevel,
			OccurredAt: row.CreatedAt,
		}
		// The row is already stored and visible on the flagged list, so a
		// broker outage only delays the page.
		if err := alerts.Publish(s.events, ev); err != nil {
			s.logger.ErrorContext(ctx, "flag event not published",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}

	return &Submission{
		Assessment: row,
		Result:     res,
		Message:    RecommendationText(res.Recommendation),
	}, nil
}

func (s *assessmentService) ListByUser(ctx context.Context, userID string) ([]*repo.Assessment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}
	rows, err := s.db.Assessment.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return rows, nil
}

func (s *assessmentService) ListFlagged(ctx context.Context, limit int) ([]*repo.Assessment, error) {
	rows, err := s.db.Assessment.ListFlagged(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list flagged assessments: %w", err)
	}
	return rows, nil
}

// IsValidation reports whether err is a caller mistake rather than a fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnknownForm) || errors.Is(err, ErrInvalidResponses) || errors.Is(err, ErrMissingUser)
}
