package settings

import (
	"agenda/infras/otel"
	"agenda/internal/domains/settings/model/dto"
	"agenda/internal/domains/settings/service"
	"agenda/shared/constant"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const requestParamKey = "key"

type Handler struct {
	service service.Settings
	otel    otel.Otel
}

func New(service service.Settings, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", handler.GetSettings)
		r.Get("/business-hours", handler.GetBusinessHours)
		r.Put("/business-hours", handler.SetBusinessHours)
		r.Get("/{key}", handler.GetSetting)
		r.Put("/{key}", handler.SetSetting)
	})
}

// GetSettings retrieves every stored setting.
// @Summary Get all settings
// @Description Retrieve all stored settings. Keys that were never written fall back to their defaults when read individually.
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetSettingsResponse] "List of settings"
// @Failure 500 {object} response.Error
// @Router /v1/settings [get]
// @Security BearerAuth
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get settings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Settings retrieved successfully")

	response.WithJSON(w, http.StatusOK, settings)
}

// GetBusinessHours retrieves the configured business hours.
// @Summary Get business hours
// @Description Retrieve the opening and closing hour of the business day.
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.BusinessHoursResponse] "Business hours"
// @Failure 500 {object} response.Error
// @Router /v1/settings/business-hours [get]
// @Security BearerAuth
func (handler *Handler) GetBusinessHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessHours")
	defer scope.End()

	start, end, err := handler.service.BusinessHours(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business hours retrieved successfully")

	response.WithJSON(w, http.StatusOK, dto.BusinessHoursResponse{StartHour: start, EndHour: end})
}

// SetBusinessHours updates the business hours.
// @Summary Set business hours
// @Description Update the opening and closing hour. Existing appointments are not revalidated.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.SetBusinessHoursRequest true "Set Business Hours Request"
// @Success 200 {object} response.Message "Business hours updated successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/business-hours [put]
// @Security BearerAuth
func (handler *Handler) SetBusinessHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetBusinessHours")
	defer scope.End()

	req := dto.SetBusinessHoursRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetBusinessHours(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set business hours")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Business hours updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Business hours updated successfully")
}

// GetSetting retrieves one setting by key.
// @Summary Get a setting by key
// @Description Retrieve a setting value, falling back to the default when the key was never written.
// @Tags Settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} response.Data[dto.SettingResponse] "Setting value"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{key} [get]
// @Security BearerAuth
func (handler *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSetting")
	defer scope.End()

	key := chi.URLParam(r, requestParamKey)

	value, err := handler.service.Get(ctx, key)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get setting")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Setting retrieved successfully")

	response.WithJSON(w, http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

// SetSetting stores one setting by key.
// @Summary Set a setting by key
// @Description Store a setting value for a known key.
// @Tags Settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body dto.SetSettingRequest true "Set Setting Request"
// @Success 200 {object} response.Message "Setting updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{key} [put]
// @Security BearerAuth
func (handler *Handler) SetSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetSetting")
	defer scope.End()

	key := chi.URLParam(r, requestParamKey)

	req := dto.SetSettingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Set(ctx, key, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set setting")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Setting updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Setting updated successfully")
}
