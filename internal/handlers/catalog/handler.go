package catalog

import (
	"agenda/infras/otel"
	"agenda/internal/domains/catalog/model"
	"agenda/internal/domains/catalog/model/dto"
	"agenda/internal/domains/catalog/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateService)
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Get("/{id}", handler.GetServiceByID)
		routerGroup.Patch("/{id}", handler.UpdateService)
		routerGroup.Delete("/{id}", handler.DeleteService)
	})
}

// CreateService handles the creation of a new service.
// @Summary Create a new service
// @Description Create a new bookable service with a name, duration and price.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequest true "Create Service Request"
// @Success 201 {object} response.Message "Service created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [post]
// @Security BearerAuth
func (handler *Handler) CreateService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	req := dto.CreateServiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Service created successfully")
}

// GetServices retrieves all services based on query parameters.
// @Summary Get all services
// @Description Retrieve all services with optional filtering and pagination.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query string false "Filter by active flag (true/false)"
// @Success 200 {object} response.Data[dto.GetServicesResponse] "List of services"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
// @Security BearerAuth
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	active := r.URL.Query().Get(model.FieldActive)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if active != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    active,
			Table:    model.TableName,
		})
	}

	services, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Services retrieved successfully")

	response.WithJSON(w, http.StatusOK, services)
}

// GetServiceByID retrieves a service by its ID.
// @Summary Get a service by ID
// @Description Retrieve a service by its unique identifier.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Data[dto.ServiceResponse] "Service details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	svc, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service retrieved successfully")

	response.WithJSON(w, http.StatusOK, svc)
}

// UpdateService updates an existing service by its ID.
// @Summary Update a service by ID
// @Description Update the details of an existing service. Duration changes never touch existing appointments.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.UpdateServiceRequest true "Update Service Request"
// @Success 200 {object} response.Message "Service updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Service updated successfully")
}

// DeleteService deletes a service by its ID.
// @Summary Delete a service by ID
// @Description Delete a service using its unique identifier.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Message "Service deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Service deleted successfully")
}
