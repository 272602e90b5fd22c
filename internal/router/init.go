package router

import (
	"eventos-api/internal/application"
	"eventos-api/internal/container"
	"eventos-api/internal/infrastructure/mongodb"
	handlers "eventos-api/internal/interface/http"
	"eventos-api/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	db := container.GetMongo()
	logger := container.GetLogger()

	userRepo := mongodb.NewUserRepository(db, cfg.MongoQueryTimeout)
	eventRepo := mongodb.NewEventRepository(db, cfg.MongoQueryTimeout)

	userSvc := application.NewUserService(userRepo, logger)
	eventSvc := application.NewEventService(eventRepo, userRepo)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger)))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(eventSvc, logger)))
}

// UserService builds the user service against the container's database,
// for callers outside the HTTP surface (startup bootstrap).
func UserService() *application.UserService {
	cfg := container.GetConfig()
	return application.NewUserService(
		mongodb.NewUserRepository(container.GetMongo(), cfg.MongoQueryTimeout),
		container.GetLogger(),
	)
}
