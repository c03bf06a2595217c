package activity

import (
	"context"
	"time"

	"outings-api/core/config"
	"outings-api/core/logger"
	"outings-api/core/middleware"
	"outings-api/modules/activity/controller"
	"outings-api/modules/activity/repository"
	"outings-api/modules/activity/router"
	"outings-api/modules/activity/service"
	geomap "outings-api/modules/geomap/service"

	"github.com/labstack/echo/v4"
)

// NewStore builds the entity store and loads the demo catalogue when seeding is on.
func NewStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	store := repository.NewStore()
	if !cfg.Seed.Enabled {
		logger.Info("Activity:NewStore:SeedDisabled")
		return store, nil
	}

	seed, err := repository.DefaultSeed(time.Now())
	if err != nil {
		return nil, err
	}
	if err := store.Seed(ctx, seed); err != nil {
		return nil, err
	}
	return store, nil
}

// GetService wires the workflow, projector and activity service over store.
func GetService(store repository.StoreInterface, cfg *config.Config, opts ...service.ServiceOption) *service.ActivityService {
	workflow := service.NewRegistrationWorkflow(store, service.Policy{
		EnforceCapacityOnAccept: cfg.Registration.EnforceCapacityOnAccept,
		UpsertOnRegister:        cfg.Registration.UpsertOnRegister,
	})
	projector := service.NewViewProjector(cfg.Feed.HomeSize, geomap.NewMapProjector())
	return service.NewActivityService(store, workflow, projector, opts...)
}

// Init registers the activity routes and returns the service for the other modules.
func Init(g *echo.Group, store repository.StoreInterface, cfg *config.Config, mw *middleware.Middleware, opts ...service.ServiceOption) *service.ActivityService {
	svc := GetService(store, cfg, opts...)
	ctrl := controller.NewActivityController(svc)
	router.NewActivityRouter(ctrl).Register(g, mw)
	return svc
}
