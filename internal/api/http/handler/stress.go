package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/internal/service/stress"
)

type StressHandler struct {
	svc stress.Service
}

func NewStressHandler(svc stress.Service) *StressHandler {
	return &StressHandler{svc: svc}
}

// POST /api/v1/stress-checkins
func (h *StressHandler) Submit(c fiber.Ctx) error {
	var body stress.Request
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	res, err := h.svc.Submit(c.Context(), body)
	if err != nil {
		if errors.Is(err, stress.ErrInvalidRequest) {
			return badRequest(c, err.Error())
		}
		return internalErrorMsg(c, "failed to submit check-in")
	}
	return created(c, res)
}
