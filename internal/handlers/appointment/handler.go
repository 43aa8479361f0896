package appointment

import (
	"agenda/infras/otel"
	"agenda/internal/domains/appointment/model/dto"
	"agenda/internal/domains/appointment/service"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/", handler.GetAppointmentsForDate)
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Get("/availability", handler.GetAvailability)
		routerGroup.Get("/stats", handler.GetStats)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
		routerGroup.Patch("/{id}/reschedule", handler.Reschedule)
		routerGroup.Delete("/{id}", handler.DeleteAppointment)
	})
}

// CreateAppointment books a new appointment.
// @Summary Book a new appointment
// @Description Book an appointment for a client with a staff member. The end time is derived from the service duration.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Appointment booked successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) CreateAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment booked successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetAppointmentsForDate retrieves the agenda for one day.
// @Summary Get appointments for a date
// @Description Retrieve the day's appointments ordered by start time. Cancelled appointments are excluded.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param staff_id query string false "Filter by staff member ID"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentsForDate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentsForDate")
	defer scope.End()

	date, err := handler.dateParam(r, constant.RequestParamDate, timezone.Now())
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	staffID := r.URL.Query().Get(constant.RequestParamStaffID)

	appointments, err := handler.service.ForDate(ctx, date, staffID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetSlots lists the bookable slot starts within business hours.
// @Summary Get slot grid
// @Description List every slot start within business hours, stepped by the configured slot duration or an explicit granularity.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param granularity query int false "Slot step in minutes"
// @Success 200 {object} response.Data[dto.SlotsResponse] "Slot grid"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/slots [get]
// @Security BearerAuth
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	granularity := 0

	if raw := r.URL.Query().Get(constant.RequestParamGranularity); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			err = failure.BadRequestFromString("invalid granularity parameter")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		granularity = parsed
	}

	slots, err := handler.service.Slots(ctx, granularity)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, slots)
}

// GetAvailability marks which slots can hold a service on a given day.
// @Summary Get slot availability
// @Description For one staff member and one day, mark which slots can hold a service of the given duration.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param duration query int true "Service duration in minutes"
// @Param staff_id query string true "Staff member ID"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Slot availability"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/availability [get]
// @Security BearerAuth
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date, err := handler.dateParam(r, constant.RequestParamDate, timezone.Now())
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	duration, err := strconv.Atoi(r.URL.Query().Get(constant.RequestParamDuration))
	if err != nil {
		err = failure.BadRequestFromString("invalid duration parameter")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	staffID := r.URL.Query().Get(constant.RequestParamStaffID)

	availability, err := handler.service.Availability(ctx, date, duration, staffID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// GetStats reports booking counts and income for a date range.
// @Summary Get appointment statistics
// @Description Aggregate appointment counts and income per status and per staff member over a date range.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.StatsResponse] "Appointment statistics"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	from, err := handler.dateParam(r, constant.RequestParamFrom, time.Time{})
	if err != nil || from.IsZero() {
		err = failure.BadRequestFromString("invalid or missing from parameter")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	to, err := handler.dateParam(r, constant.RequestParamTo, time.Time{})
	if err != nil || to.IsZero() {
		err = failure.BadRequestFromString("invalid or missing to parameter")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	// The range is inclusive of the final day
	stats, err := handler.service.Stats(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// GetAppointmentByID retrieves an appointment by its ID.
// @Summary Get an appointment by ID
// @Description Retrieve an appointment by its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointment)
}

// UpdateStatus updates the status of an appointment.
// @Summary Update appointment status
// @Description Move an appointment between pending, confirmed and cancelled.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Appointment status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update appointment status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment status updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Appointment status updated successfully")
}

// Reschedule moves an appointment to a new start time.
// @Summary Reschedule an appointment
// @Description Move an appointment to a new start. The end is recomputed from the service duration.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RescheduleRequest true "Reschedule Request"
// @Success 200 {object} response.Message "Appointment rescheduled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/reschedule [patch]
// @Security BearerAuth
func (handler *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reschedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RescheduleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reschedule(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reschedule appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment rescheduled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Appointment rescheduled successfully")
}

// DeleteAppointment deletes an appointment by its ID.
// @Summary Delete an appointment by ID
// @Description Remove an appointment from the calendar entirely.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Appointment deleted successfully")
}

func (handler *Handler) dateParam(r *http.Request, param string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return fallback, nil
	}

	date, err := timezone.Parse(constant.DateOnlyLayout, raw)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid " + param + " parameter") // nolint:wrapcheck
	}

	return date, nil
}
