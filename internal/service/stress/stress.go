package stress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Alijeyrad/mindwell_backend/internal/repo"
)

const (
	MinLevel = 1
	MaxLevel = 5
)

var (
	ErrInvalidRequest = errors.New("invalid stress check-in")
	ErrStorage        = errors.New("stress check-in could not be stored")
)

var relaxationTips = []string{
	"Take deep breaths and try progressive muscle relaxation",
	"Break your task into smaller, manageable chunks",
	"Consider talking to a counselor or trusted friend",
}

var studyTips = []string{
	"Review your study materials and create a study plan",
	"Seek help from teachers, tutors, or study groups",
	"Practice with sample questions or similar exercises",
}

// Tips returns coping suggestions for a check-in. High stress (4 or more) adds
// relaxation tips and low confidence (2 or less) adds study tips.
func Tips(stressLevel, confidenceLevel int) []string {
	tips := []string{}
	if stressLevel >= 4 {
		tips = append(tips, relaxationTips...)
	}
	if confidenceLevel <= 2 {
		tips = append(tips, studyTips...)
	}
	return tips
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Request struct {
	UserID             string    `json:"userId"`
	AcademicEventID    uuid.UUID `json:"academicEventId"`
	StressLevel        int       `json:"stressLevel"`
	ConfidenceLevel    int       `json:"confidenceLevel"`
	AdditionalConcerns string    `json:"additionalConcerns"`
}

type Result struct {
	Checkin *repo.StressCheckin `json:"checkin"`
	Tips    []string            `json:"tips"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Submit(ctx context.Context, req Request) (*Result, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type stressService struct {
	db     *repo.Client
	logger *slog.Logger
}

func New(db *repo.Client, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &stressService{db: db, logger: logger}
}

func (s *stressService) Submit(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	c := &repo.StressCheckin{
		UserID:          strings.TrimSpace(req.UserID),
		AcademicEventID: req.AcademicEventID,
		StressLevel:     req.StressLevel,
		ConfidenceLevel: req.ConfidenceLevel,
	}
	if concerns := strings.TrimSpace(req.AdditionalConcerns); concerns != "" {
		c.AdditionalConcerns = &concerns
	}

	if err := s.db.Stress.Create(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "stress check-in not stored", slog.String("user_id", c.UserID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return &Result{Checkin: c, Tips: Tips(c.StressLevel, c.ConfidenceLevel)}, nil
}

func validate(req Request) error {
	var problems []string
	if strings.TrimSpace(req.UserID) == "" {
		problems = append(problems, "userId is required")
	}
	if req.AcademicEventID == uuid.Nil {
		problems = append(problems, "academicEventId is required")
	}
	if req.StressLevel < MinLevel || req.StressLevel > MaxLevel {
		problems = append(problems, fmt.Sprintf("stressLevel must be %d..%d", MinLevel, MaxLevel))
	}
	if req.ConfidenceLevel < MinLevel || req.ConfidenceLevel > MaxLevel {
		problems = append(problems, fmt.Sprintf("confidenceLevel must be %d..%d", MinLevel, MaxLevel))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}
