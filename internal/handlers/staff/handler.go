package staff

import (
	"agenda/infras/otel"
	"agenda/internal/domains/staff/model"
	"agenda/internal/domains/staff/model/dto"
	"agenda/internal/domains/staff/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Staff
	otel    otel.Otel
}

func New(service service.Staff, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/staff", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateStaff)
		routerGroup.Get("/", handler.GetStaff)
		routerGroup.Get("/{id}", handler.GetStaffByID)
		routerGroup.Patch("/{id}", handler.UpdateStaff)
		routerGroup.Post("/{id}/deactivate", handler.DeactivateStaff)
		routerGroup.Post("/{id}/activate", handler.ActivateStaff)
		routerGroup.Delete("/{id}", handler.DeleteStaff)
	})
}

// CreateStaff handles the creation of a new staff member.
// @Summary Create a new staff member
// @Description Create a new staff member with a name and calendar color.
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Create Staff Request"
// @Success 201 {object} response.Message "Staff member created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff [post]
// @Security BearerAuth
func (handler *Handler) CreateStaff(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateStaff")
	defer scope.End()

	req := dto.CreateStaffRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create staff member")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Staff member created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Staff member created successfully")
}

// GetStaff retrieves all staff members based on query parameters.
// @Summary Get all staff members
// @Description Retrieve all staff members with optional filtering and pagination.
// @Tags Staff
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query string false "Filter by active flag (true/false)"
// @Success 200 {object} response.Data[dto.GetStaffResponse] "List of staff members"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff [get]
// @Security BearerAuth
func (handler *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaff")
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

	staffMembers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff members")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Staff members retrieved successfully")

	response.WithJSON(w, http.StatusOK, staffMembers)
}

// GetStaffByID retrieves a staff member by their ID.
// @Summary Get a staff member by ID
// @Description Retrieve a staff member by their unique identifier.
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff member ID"
// @Success 200 {object} response.Data[dto.StaffResponse] "Staff member details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetStaffByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaffByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	member, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff member by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Staff member retrieved successfully")

	response.WithJSON(w, http.StatusOK, member)
}

// UpdateStaff updates an existing staff member by their ID.
// @Summary Update a staff member by ID
// @Description Update the details of an existing staff member.
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff member ID"
// @Param request body dto.UpdateStaffRequest true "Update Staff Request"
// @Success 200 {object} response.Message "Staff member updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStaff")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStaffRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update staff member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Staff member updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Staff member updated successfully")
}

// DeactivateStaff deactivates a staff member.
// @Summary Deactivate a staff member
// @Description Deactivate a staff member so they stop accepting bookings. The last active staff member cannot be deactivated.
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff member ID"
// @Success 200 {object} response.Message "Staff member deactivated successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/deactivate [post]
// @Security BearerAuth
func (handler *Handler) DeactivateStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateStaff")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Deactivate(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate staff member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Staff member deactivated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Staff member deactivated successfully")
}

// ActivateStaff reactivates a staff member.
// @Summary Activate a staff member
// @Description Reactivate a previously deactivated staff member.
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff member ID"
// @Success 200 {object} response.Message "Staff member activated successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/activate [post]
// @Security BearerAuth
func (handler *Handler) ActivateStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ActivateStaff")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Activate(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to activate staff member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Staff member activated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Staff member activated successfully")
}

// DeleteStaff deletes a staff member by their ID.
// @Summary Delete a staff member by ID
// @Description Remove a staff member entirely.
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff member ID"
// @Success 200 {object} response.Message "Staff member deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteStaff")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete staff member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Staff member deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Staff member deleted successfully")
}
