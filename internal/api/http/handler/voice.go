package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/internal/service/voice"
)

type VoiceHandler struct {
	svc voice.Service
}

func NewVoiceHandler(svc voice.Service) *VoiceHandler {
	return &VoiceHandler{svc: svc}
}

// POST /api/v1/voice-emotion
func (h *VoiceHandler) Predict(c fiber.Ctx) error {
	var body voice.PredictRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Predict(c.Context(), body)
	if err != nil {
		return mapVoiceError(c, err)
	}
	return ok(c, p)
}

func mapVoiceError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, voice.ErrInvalidRequest):
		return badRequest(c, err.Error())
	case errors.Is(err, voice.ErrModelUnavailable):
		return serviceUnavailable(c, "voice emotion analysis requires the ML server to be running")
	case errors.Is(err, voice.ErrPredictionFailed):
		return internalErrorMsg(c, "ML prediction failed")
	default:
		return internalError(c)
	}
}
