package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/internal/api/http/handler"
)

func (r *Router) registerAssessmentRoutes(api fiber.Router, h *handler.AssessmentHandler) {
	a := api.Group("/assessments")
	a.Get("/forms", h.Forms)
	a.Get("/forms/:type", h.Form)
	a.Post("/", h.Submit)
}

func (r *Router) registerWellbeingRoutes(api fiber.Router, voiceH *handler.VoiceHandler, stressH *handler.StressHandler) {
	api.Post("/voice-emotion", voiceH.Predict)
	api.Post("/stress-checkins", stressH.Submit)
}
