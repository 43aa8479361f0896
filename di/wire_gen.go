// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/infras/redis"
	"agenda/internal/domains/account/repository"
	repository4 "agenda/internal/domains/appointment/repository"
	service7 "agenda/internal/domains/appointment/service"
	"agenda/internal/domains/auth/service"
	repository2 "agenda/internal/domains/catalog/repository"
	service2 "agenda/internal/domains/catalog/service"
	repository5 "agenda/internal/domains/client/repository"
	service4 "agenda/internal/domains/client/service"
	service6 "agenda/internal/domains/notification/service"
	repository6 "agenda/internal/domains/settings/repository"
	service5 "agenda/internal/domains/settings/service"
	repository3 "agenda/internal/domains/staff/repository"
	service3 "agenda/internal/domains/staff/service"
	"agenda/internal/handlers/appointment"
	"agenda/internal/handlers/auth"
	"agenda/internal/handlers/catalog"
	"agenda/internal/handlers/client"
	"agenda/internal/handlers/health"
	"agenda/internal/handlers/settings"
	"agenda/internal/handlers/staff"
	"agenda/permissions"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	handler := health.New()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	account := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(account, configConfig, otelOtel, jwtJWT)
	authHandler := auth.New(serviceAuth, otelOtel)
	repositoryCatalog := repository2.New(connection, otelOtel)
	redisClient := redis.New(configConfig)
	redisCache := cache.NewRedisCache(redisClient, otelOtel)
	serviceCatalog := service2.New(repositoryCatalog, configConfig, redisCache, otelOtel)
	catalogHandler := catalog.New(serviceCatalog, otelOtel)
	repositoryStaff := repository3.New(connection, otelOtel)
	serviceStaff := service3.New(repositoryStaff, configConfig, redisCache, otelOtel)
	staffHandler := staff.New(serviceStaff, otelOtel)
	repositoryAppointment := repository4.New(connection, otelOtel)
	repositoryClient := repository5.New(connection, repositoryAppointment, otelOtel)
	serviceClient := service4.New(repositoryClient, configConfig, redisCache, otelOtel)
	clientHandler := client.New(serviceClient, otelOtel)
	setting := repository6.New(connection, otelOtel)
	serviceSettings := service5.New(setting, configConfig, redisCache, otelOtel)
	kafkaClient := kafka.New(configConfig)
	notification := service6.New(serviceSettings, kafkaClient, configConfig, otelOtel)
	serviceAppointment := service7.New(repositoryAppointment, repositoryCatalog, repositoryStaff, repositoryClient, serviceSettings, notification, configConfig, redisCache, otelOtel)
	appointmentHandler := appointment.New(serviceAppointment, otelOtel)
	settingsHandler := settings.New(serviceSettings, otelOtel)
	domainHandlers := router.DomainHandlers{
		Health:      handler,
		Auth:        authHandler,
		Catalog:     catalogHandler,
		Staff:       staffHandler,
		Client:      clientHandler,
		Appointment: appointmentHandler,
		Settings:    settingsHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var settingsDomain = wire.NewSet(repository6.New, service5.New)

var catalogDomain = wire.NewSet(repository2.New, service2.New)

var staffDomain = wire.NewSet(repository3.New, service3.New)

var clientDomain = wire.NewSet(repository5.New, service4.New)

var appointmentDomain = wire.NewSet(repository4.New, service7.New)

var notificationDomain = wire.NewSet(service6.New)

var authDomain = wire.NewSet(repository.New, service.New)

var domains = wire.NewSet(
	settingsDomain,
	catalogDomain,
	staffDomain,
	clientDomain,
	appointmentDomain,
	notificationDomain,
	authDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), health.New, auth.New, catalog.New, staff.New, client.New, appointment.New, settings.New, router.New)
