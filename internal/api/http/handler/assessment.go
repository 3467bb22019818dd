package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/internal/service/assessment"
)

type AssessmentHandler struct {
	svc assessment.Service
}

func NewAssessmentHandler(svc assessment.Service) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

// GET /api/v1/assessments/forms
func (h *AssessmentHandler) Forms(c fiber.Ctx) error {
	return ok(c, assessment.Forms())
}

// GET /api/v1/assessments/forms/:type
func (h *AssessmentHandler) Form(c fiber.Ctx) error {
	f, err := assessment.Lookup(c.Params("type"))
	if err != nil {
		return notFound(c, err.Error())
	}
	return ok(c, f)
}

// POST /api/v1/assessments
func (h *AssessmentHandler) Submit(c fiber.Ctx) error {
	var body assessment.SubmitRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	sub, err := h.svc.Submit(c.Context(), body)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return created(c, sub)
}

// GET /api/v1/users/:userId/assessments
func (h *AssessmentHandler) ListByUser(c fiber.Ctx) error {
	list, err := h.svc.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/admin/flagged
func (h *AssessmentHandler) ListFlagged(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.ListFlagged(c.Context(), limit)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, list)
}

func mapAssessmentError(c fiber.Ctx, err error) error {
	switch {
	case assessment.IsValidation(err):
		return badRequest(c, err.Error())
	case errors.Is(err, assessment.ErrAssessmentStorage):
		return internalErrorMsg(c, "failed to save assessment")
	default:
		return internalError(c)
	}
}
