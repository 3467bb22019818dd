package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Alijeyrad/mindwell_backend/config"
)

const defaultModelType = "VoiceBasedEmotionClassifier_CNN"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type PredictRequest struct {
	UserID    string `json:"userId"`
	AudioData string `json:"audioData"`
}

type Prediction struct {
	Emotion              string        `json:"emotion"`
	Confidence           float64       `json:"confidence"`
	MentalHealth         *MentalHealth `json:"mentalHealth,omitempty"`
	Timestamp            time.Time     `json:"timestamp"`
	RequiresConfirmation bool          `json:"requiresConfirmation"`
	ModelVersion         string        `json:"modelVersion,omitempty"`
	ModelType            string        `json:"modelType"`
}

type modelResponse struct {
	Emotion      string        `json:"emotion"`
	Confidence   float64       `json:"confidence"`
	MentalHealth *MentalHealth `json:"mentalHealth"`
	ModelVersion string        `json:"modelVersion"`
	ModelType    string        `json:"modelType"`
	Error        string        `json:"error"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Predict(ctx context.Context, req PredictRequest) (*Prediction, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type voiceService struct {
	http   *resty.Client
	logger *slog.Logger
	now    func() time.Time
}

func New(cfg config.VoiceConfig, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.MLServerURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &voiceService{
		http:   client,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Predict forwards the recording to the model server once. There is no
// synthetic fallback when the model cannot be reached.
func (s *voiceService) Predict(ctx context.Context, req PredictRequest) (*Prediction, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.AudioData) == "" {
		return nil, ErrInvalidRequest
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/predict")
	if err != nil {
		s.logger.ErrorContext(ctx, "emotion model unreachable", slog.String("user_id", req.UserID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if resp.IsError() {
		s.logger.ErrorContext(ctx, "emotion model returned error status",
			slog.String("user_id", req.UserID),
			slog.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode())
	}

	var out modelResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrPredictionFailed, err)
	}
	if out.Error != "" {
		s.logger.WarnContext(ctx, "emotion prediction failed", slog.String("user_id", req.UserID), slog.String("reason", out.Error))
		return nil, fmt.Errorf("%w: %s", ErrPredictionFailed, out.Error)
	}
	if out.Emotion == "" {
		return nil, fmt.Errorf("%w: response has no emotion", ErrPredictionFailed)
	}

	p := &Prediction{
		Emotion:              out.Emotion,
		Confidence:           out.Confidence,
		MentalHealth:         out.MentalHealth,
		Timestamp:            s.now(),
		RequiresConfirmation: true,
		ModelVersion:         out.ModelVersion,
		ModelType:            out.ModelType,
	}
	if p.MentalHealth == nil {
		if mh, ok := MentalHealthFor(out.Emotion); ok {
			p.MentalHealth = &mh
		}
	}
	if p.ModelType == "" {
		p.ModelType = defaultModelType
	}

	s.logger.InfoContext(ctx, "emotion predicted",
		slog.String("user_id", req.UserID),
		slog.String("emotion", p.Emotion),
		slog.Float64("confidence", p.Confidence),
	)
	return p, nil
}
