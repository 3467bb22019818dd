package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Alijeyrad/mindwell_backend/internal/repo"
	"github.com/Alijeyrad/mindwell_backend/internal/service/alerts"
	"github.com/Alijeyrad/mindwell_backend/internal/service/genai"
	"github.com/Alijeyrad/mindwell_backend/internal/service/safety"
	"github.com/Alijeyrad/mindwell_backend/pkg/observability"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type SendRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type Reply struct {
	Reply   string `json:"reply"`
	Flagged bool   `json:"flagged"`
}

type Summary struct {
	Text      string    `json:"summary"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Send(ctx context.Context, req SendRequest) (Reply, error)
	Summarize(ctx context.Context, userID string) (Summary, error)
	History(ctx context.Context, userID string) ([]*repo.ChatTurn, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type chatService struct {
	db         *repo.Client
	classifier *safety.Classifier
	generator  genai.Generator
	events     alerts.Publisher
	metrics    *observability.DomainMetrics
	logger     *slog.Logger
}

type Params struct {
	DB         *repo.Client
	Classifier *safety.Classifier
	Generator  genai.Generator
	Events     alerts.Publisher
	Metrics    *observability.DomainMetrics
	Logger     *slog.Logger
}

func New(p Params) Service {
	if p.Classifier == nil {
		p.Classifier = safety.NewClassifier()
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	return &chatService{
		db:         p.DB,
		classifier: p.Classifier,
		generator:  p.Generator,
		events:     p.Events,
		metrics:    p.Metrics,
		logger:     p.Logger,
	}
}

// Send classifies before touching storage so an outage can never turn a
// crisis message into a generated reply.
func (s *chatService) Send(ctx context.Context, req SendRequest) (Reply, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || strings.TrimSpace(req.Message) == "" {
		return Reply{}, ErrInvalidRequest
	}

	verdict := s.classifier.Classify(req.Message)
	if verdict.Flagged {
		return s.sendCrisis(ctx, userID, req.Message, verdict), nil
	}

	if err := s.append(ctx, userID, repo.RoleUser, req.Message, false); err != nil {
		return Reply{}, &FallbackError{
			Kind:  ErrStorage,
			Reply: genai.FallbackReply(""),
			Err:   err,
		}
	}

	res := s.generator.Generate(ctx, counselorPrompt(req.Message))
	if !res.OK() {
		s.metrics.GenerationFailed(ctx, string(res.Reason))
		s.logger.WarnContext(ctx, "chat reply generation failed",
			slog.String("user_id", userID),
			slog.String("reason", string(res.Reason)),
			slog.Any("error", res.Err),
		)
		return Reply{}, &FallbackError{
			Kind:   ErrGenerationFailed,
			Reason: res.Reason,
			Reply:  genai.FallbackReply(res.Reason),
			Err:    res.Err,
		}
	}

	// The student already has a real answer; a lost assistant turn only
	// shortens the transcript.
	if err := s.append(ctx, userID, repo.RoleAssistant, res.Text, false); err != nil {
		s.logger.ErrorContext(ctx, "assistant turn not stored",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	return Reply{Reply: res.Text, Flagged: false}, nil
}

// sendCrisis never fails; storage and broker errors are logged only.
func (s *chatService) sendCrisis(ctx context.Context, userID, message string, v safety.Verdict) Reply {
	s.metrics.Flagged(ctx, alerts.KindChat)
	s.logger.WarnContext(ctx, "chat message flagged",
		slog.String("user_id", userID),
		slog.String("phrase", v.Phrase),
	)

	if err := s.append(ctx, userID, repo.RoleUser, message, true); err != nil {
		s.logger.ErrorContext(ctx, "flagged user turn not stored", slog.String("user_id", userID), slog.Any("error", err))
	}
	if err := s.append(ctx, userID, repo.RoleAssistant, safety.CrisisReply, true); err != nil {
		s.logger.ErrorContext(ctx, "crisis reply not stored", slog.String("user_id", userID), slog.Any("error", err))
	}

	ev := alerts.FlagEvent{
		Kind:       alerts.KindChat,
		UserID:     userID,
		Excerpt:    excerpt(message, 280),
		OccurredAt: time.Now().UTC(),
	}
	if err := alerts.Publish(s.events, ev); err != nil {
		s.logger.ErrorContext(ctx, "flag event not published", slog.String("user_id", userID), slog.Any("error", err))
	}

	return Reply{Reply: safety.CrisisReply, Flagged: true}
}

func (s *chatService) append(ctx context.Context, userID string, role repo.Role, content string, flagged bool) error {
	return s.db.ChatTurn.Append(ctx, &repo.ChatTurn{
		UserID:  userID,
		Role:    role,
		Content: content,
		Flagged: flagged,
	})
}

func (s *chatService) Summarize(ctx context.Context, userID string) (Summary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Summary{}, ErrInvalidRequest
	}

	turns, err := s.db.ChatTurn.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if len(turns) == 0 {
		return Summary{}, ErrNoHistory
	}

	res := s.generator.Generate(ctx, summaryPrompt(transcript(turns)))
	if !res.OK() {
		s.metrics.GenerationFailed(ctx, string(res.Reason))
		s.logger.WarnContext(ctx, "summary generation failed",
			slog.String("user_id", userID),
			slog.String("reason", string(res.Reason)),
			slog.Any("error", res.Err),
		)
		return Summary{}, &FallbackError{Kind: ErrSummaryFailed, Reason: res.Reason, Err: res.Err}
	}

	out := Summary{
		Text:      res.Text,
		StartDate: turns[0].CreatedAt,
		EndDate:   turns[len(turns)-1].CreatedAt,
	}

	if err := s.db.ChatSummary.Create(ctx, &repo.ChatSummary{
		UserID:    userID,
		StartDate: out.StartDate,
		EndDate:   out.EndDate,
		Text:      out.Text,
	}); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return out, nil
}

func (s *chatService) History(ctx context.Context, userID string) ([]*repo.ChatTurn, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidRequest
	}
	turns, err := s.db.ChatTurn.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return turns, nil
}

func excerpt(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max]) + "…"
}
