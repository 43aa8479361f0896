package router

import (
	"agenda/internal/handlers/appointment"
	"agenda/internal/handlers/auth"
	"agenda/internal/handlers/catalog"
	"agenda/internal/handlers/client"
	"agenda/internal/handlers/health"
	"agenda/internal/handlers/settings"
	"agenda/internal/handlers/staff"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health      health.Handler
	Auth        auth.Handler
	Catalog     catalog.Handler
	Staff       staff.Handler
	Client      client.Handler
	Appointment appointment.Handler
	Settings    settings.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Client.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Settings.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
