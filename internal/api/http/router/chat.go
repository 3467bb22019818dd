package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/internal/api/http/handler"
)

// Chat routes keep the paths existing clients call.
func (r *Router) registerChatRoutes(app *fiber.App, h *handler.ChatHandler) {
	app.Post("/chat", h.Send)
	app.Post("/summarize/:userId", h.Summarize)
}
