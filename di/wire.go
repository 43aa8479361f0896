//go:build wireinject
// +build wireinject

package di

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/infras/redis"
	"agenda/permissions"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"

	"github.com/google/wire"

	accountRepository "agenda/internal/domains/account/repository"
	appointmentRepository "agenda/internal/domains/appointment/repository"
	appointmentService "agenda/internal/domains/appointment/service"
	authService "agenda/internal/domains/auth/service"
	catalogRepository "agenda/internal/domains/catalog/repository"
	catalogService "agenda/internal/domains/catalog/service"
	clientRepository "agenda/internal/domains/client/repository"
	clientService "agenda/internal/domains/client/service"
	notificationService "agenda/internal/domains/notification/service"
	settingsRepository "agenda/internal/domains/settings/repository"
	settingsService "agenda/internal/domains/settings/service"
	staffRepository "agenda/internal/domains/staff/repository"
	staffService "agenda/internal/domains/staff/service"

	appointmentHandler "agenda/internal/handlers/appointment"
	authHandler "agenda/internal/handlers/auth"
	catalogHandler "agenda/internal/handlers/catalog"
	clientHandler "agenda/internal/handlers/client"
	healthHandler "agenda/internal/handlers/health"
	settingsHandler "agenda/internal/handlers/settings"
	staffHandler "agenda/internal/handlers/staff"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var settingsDomain = wire.NewSet(
	settingsRepository.New,
	settingsService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var clientDomain = wire.NewSet(
	clientRepository.New,
	clientService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var authDomain = wire.NewSet(
	accountRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	settingsDomain,
	catalogDomain,
	staffDomain,
	clientDomain,
	appointmentDomain,
	notificationDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	catalogHandler.New,
	staffHandler.New,
	clientHandler.New,
	appointmentHandler.New,
	settingsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
