package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/internal/service/chat"
	"github.com/Alijeyrad/mindwell_backend/internal/service/genai"
)

type ChatHandler struct {
	svc chat.Service
}

func NewChatHandler(svc chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// POST /chat
func (h *ChatHandler) Send(c fiber.Ctx) error {
	var body chat.SendRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	reply, err := h.svc.Send(c.Context(), body)
	if err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(reply)
}

// POST /summarize/:userId
func (h *ChatHandler) Summarize(c fiber.Ctx) error {
	sum, err := h.svc.Summarize(c.Context(), c.Params("userId"))
	if err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(sum)
}

// GET /api/v1/users/:userId/chat
func (h *ChatHandler) History(c fiber.Ctx) error {
	turns, err := h.svc.History(c.Context(), c.Params("userId"))
	if err != nil {
		return mapChatError(c, err)
	}
	return ok(c, turns)
}

func mapChatError(c fiber.Ctx, err error) error {
	var fb *chat.FallbackError
	switch {
	case errors.Is(err, chat.ErrInvalidRequest):
		return badRequest(c, err.Error())
	case errors.Is(err, chat.ErrNoHistory):
		return notFound(c, err.Error())
	case errors.As(err, &fb) && fb.Reply != "":
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": genai.ErrorMessage(fb.Reason),
			"reply": fb.Reply,
		})
	case errors.Is(err, chat.ErrSummaryFailed):
		return internalErrorMsg(c, "failed to generate summary")
	default:
		return internalError(c)
	}
}
