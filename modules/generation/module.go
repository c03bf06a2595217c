package generation

import (
	"outings-api/core/config"
	"outings-api/core/logger"
	"outings-api/core/middleware"
	"outings-api/modules/generation/controller"
	"outings-api/modules/generation/router"
	"outings-api/modules/generation/service"

	"github.com/labstack/echo/v4"
)

// NewGenerator builds the text generator from config. A missing key is logged here
// and reported by each generation call.
func NewGenerator(cfg config.GenerationConfig) service.Generator {
	if cfg.APIKey == "" {
		logger.Warn("Generation:NewGenerator:MissingAPIKey")
	}
	return service.NewGeminiClient(cfg)
}

// Init registers the draft routes. Call Close on the returned service at shutdown.
func Init(g *echo.Group, cfg config.GenerationConfig, creator service.ActivityCreator, mw *middleware.Middleware) *service.DraftService {
	svc := service.NewDraftService(NewGenerator(cfg), creator, service.WithGenerationTimeout(cfg.Timeout))
	ctrl := controller.NewDraftController(svc)
	router.NewDraftRouter(ctrl).Register(g, mw)
	return svc
}
