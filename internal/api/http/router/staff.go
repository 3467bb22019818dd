package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/mindwell_backend/internal/api/http/handler"
	"github.com/Alijeyrad/mindwell_backend/pkg/authorize"
)

func (r *Router) registerStaffRoutes(
	api fiber.Router,
	assessmentH *handler.AssessmentHandler,
	chatH *handler.ChatHandler,
	dashboardH *handler.DashboardHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	admin := api.Group("/admin", authRequired)
	admin.Get("/dashboard", requirePerm(authorize.ResourceDashboard, authorize.ActionRead), dashboardH.Get)
	admin.Get("/students", requirePerm(authorize.ResourceDashboard, authorize.ActionRead), dashboardH.Students)
	admin.Get("/flagged", requirePerm(authorize.ResourceFlagged, authorize.ActionList), assessmentH.ListFlagged)

	users := api.Group("/users", authRequired)
	users.Get("/:userId/assessments", requirePerm(authorize.ResourceAssessment, authorize.ActionList), assessmentH.ListByUser)
	users.Get("/:userId/chat", requirePerm(authorize.ResourceChatHistory, authorize.ActionRead), chatH.History)
}
