package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/mindwell_backend/config"
	"github.com/Alijeyrad/mindwell_backend/internal/api/http/handler"
	"github.com/Alijeyrad/mindwell_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/mindwell_backend/internal/repo"
	"github.com/Alijeyrad/mindwell_backend/internal/service/analytics"
	"github.com/Alijeyrad/mindwell_backend/internal/service/assessment"
	"github.com/Alijeyrad/mindwell_backend/internal/service/chat"
	"github.com/Alijeyrad/mindwell_backend/internal/service/stress"
	"github.com/Alijeyrad/mindwell_backend/internal/service/voice"
	"github.com/Alijeyrad/mindwell_backend/pkg/authorize"
	"github.com/Alijeyrad/mindwell_backend/pkg/database"
	pasetotoken "github.com/Alijeyrad/mindwell_backend/pkg/paseto"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg           *config.Config
	DB            *repo.Client `optional:"true"`
	Auth          authorize.IAuthorization
	PasetoMgr     *pasetotoken.Manager
	AssessmentSvc assessment.Service
	ChatSvc       chat.Service
	VoiceSvc      voice.Service
	StressSvc     stress.Service
	AnalyticsSvc  analytics.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Middlewares
	authRequired := middleware.AuthRequired(r.p.PasetoMgr)
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	// 3. Initialize Handlers
	chatH := handler.NewChatHandler(r.p.ChatSvc)
	assessmentH := handler.NewAssessmentHandler(r.p.AssessmentSvc)
	voiceH := handler.NewVoiceHandler(r.p.VoiceSvc)
	stressH := handler.NewStressHandler(r.p.StressSvc)
	dashboardH := handler.NewDashboardHandler(r.p.AnalyticsSvc)

	// 4. Delegate to sub-files
	r.registerChatRoutes(app, chatH)

	api := app.Group("/api/v1")
	r.registerAssessmentRoutes(api, assessmentH)
	r.registerWellbeingRoutes(api, voiceH, stressH)
	r.registerStaffRoutes(api, assessmentH, chatH, dashboardH, authRequired, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			if r.p.DB == nil {
				return true
			}
			return database.Ping(c.Context(), r.p.DB.DB()) == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
