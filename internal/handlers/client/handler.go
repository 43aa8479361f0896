package client

import (
	"agenda/infras/otel"
	"agenda/internal/domains/client/model/dto"
	"agenda/internal/domains/client/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Client
	otel    otel.Otel
}

func New(service service.Client, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/clients", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateClient)
		routerGroup.Get("/", handler.GetClients)
		routerGroup.Get("/{id}", handler.GetClientByID)
		routerGroup.Patch("/{id}", handler.UpdateClient)
		routerGroup.Delete("/{id}", handler.DeleteClient)
	})
}

// CreateClient handles the creation of a new client.
// @Summary Create a new client
// @Description Register a new client with contact details.
// @Tags Client
// @Accept json
// @Produce json
// @Param request body dto.CreateClientRequest true "Create Client Request"
// @Success 201 {object} response.Message "Client created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clients [post]
// @Security BearerAuth
func (handler *Handler) CreateClient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateClient")
	defer scope.End()

	req := dto.CreateClientRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create client")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Client created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Client created successfully")
}

// GetClients retrieves all clients, optionally filtered by a search term.
// @Summary Get all clients
// @Description Retrieve all clients with pagination. The q parameter searches name and phone.
// @Tags Client
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Search term matched against name and phone"
// @Success 200 {object} response.Data[dto.GetClientsResponse] "List of clients"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clients [get]
// @Security BearerAuth
func (handler *Handler) GetClients(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClients")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	term := r.URL.Query().Get(constant.RequestParamSearch)

	var (
		clients dto.GetClientsResponse
		err     error
	)

	if term != "" {
		clients, err = handler.service.Search(ctx, term, queryParams)
	} else {
		clients, err = handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get clients")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Clients retrieved successfully")

	response.WithJSON(w, http.StatusOK, clients)
}

// GetClientByID retrieves a client by their ID.
// @Summary Get a client by ID
// @Description Retrieve a client by their unique identifier.
// @Tags Client
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} response.Data[dto.ClientResponse] "Client details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clients/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetClientByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClientByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	client, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get client by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Client retrieved successfully")

	response.WithJSON(w, http.StatusOK, client)
}

// UpdateClient updates an existing client by their ID.
// @Summary Update a client by ID
// @Description Update the details of an existing client.
// @Tags Client
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body dto.UpdateClientRequest true "Update Client Request"
// @Success 200 {object} response.Message "Client updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clients/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateClient")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateClientRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update client")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Client updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Client updated successfully")
}

// DeleteClient deletes a client and all of their appointments.
// @Summary Delete a client by ID
// @Description Delete a client along with every appointment booked for them.
// @Tags Client
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} response.Message "Client deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/clients/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteClient")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete client")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Client deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Client deleted successfully")
}
