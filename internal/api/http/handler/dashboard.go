package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/internal/service/analytics"
)

type DashboardHandler struct {
	svc analytics.Service
}

func NewDashboardHandler(svc analytics.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GET /api/v1/admin/dashboard
func (h *DashboardHandler) Get(c fiber.Ctx) error {
	d, err := h.svc.Dashboard(c.Context())
	if err != nil {
		return internalError(c)
	}
	return ok(c, d)
}

// GET /api/v1/admin/students
func (h *DashboardHandler) Students(c fiber.Ctx) error {
	profiles, err := h.svc.StudentProfiles(c.Context())
	if err != nil {
		return internalError(c)
	}
	return ok(c, profiles)
}
