package service

import (
	"agenda/config"
	"agenda/infras/otel"
	"agenda/internal/domains/appointment/model"
	"agenda/internal/domains/appointment/model/dto"
	"agenda/internal/domains/appointment/repository"
	catalogModel "agenda/internal/domains/catalog/model"
	catalogRepo "agenda/internal/domains/catalog/repository"
	clientModel "agenda/internal/domains/client/model"
	clientRepo "agenda/internal/domains/client/repository"
	notificationService "agenda/internal/domains/notification/service"
	settingsService "agenda/internal/domains/settings/service"
	staffModel "agenda/internal/domains/staff/model"
	staffRepo "agenda/internal/domains/staff/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment = "appointment:get"
)

type Appointment interface {
	BusinessHours(ctx context.Context) (dto.BusinessHoursResponse, error)
	Slots(ctx context.Context, granularityMinutes int) (dto.SlotsResponse, error)
	Availability(ctx context.Context, date time.Time, serviceDuration int, staffID string) (dto.AvailabilityResponse, error)
	IsSlotFree(ctx context.Context, start, end time.Time, staffID, excludeID string) (bool, error)
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	ForDate(ctx context.Context, date time.Time, staffID string) (dto.GetAppointmentsResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
	Reschedule(ctx context.Context, id string, req dto.RescheduleRequest) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, from, to time.Time) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo         repository.Appointment
	catalogRepo  catalogRepo.Catalog
	staffRepo    staffRepo.Staff
	clientRepo   clientRepo.Client
	settings     settingsService.Settings
	notification notificationService.Notification
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Appointment,
	catalogRepo catalogRepo.Catalog,
	staffRepo staffRepo.Staff,
	clientRepo clientRepo.Client,
	settings settingsService.Settings,
	notification notificationService.Notification,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:         repo,
		catalogRepo:  catalogRepo,
		staffRepo:    staffRepo,
		clientRepo:   clientRepo,
		settings:     settings,
		notification: notification,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) BusinessHours(ctx context.Context) (res dto.BusinessHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BusinessHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.StartHour, res.EndHour, err = s.settings.BusinessHours(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve business hours")

		return res, fmt.Errorf("failed to resolve business hours: %w", err)
	}

	return res, nil
}

// Slots enumerates every bookable start within business hours, stepped by
// the granularity. Zero granularity means the configured slot duration.
func (s *serviceImpl) Slots(ctx context.Context, granularityMinutes int) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()
	defer scope.TraceIfError(err)

	slots, _, err := s.slotGrid(ctx, granularityMinutes)
	if err != nil {
		return res, err
	}

	res.Slots = slots

	return res, nil
}

// Availability marks, for one staff member and one day, which slots can hold
// a service of the given duration. A slot is unavailable when the candidate
// interval would run past closing or collide with a non-cancelled
// appointment.
func (s *serviceImpl) Availability(ctx context.Context, date time.Time, serviceDuration int, staffID string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if serviceDuration < catalogModel.MinDurationMinutes {
		return res, failure.BadRequestFromString("service duration must be positive") // nolint:wrapcheck
	}

	slots, hours, err := s.slotGrid(ctx, 0)
	if err != nil {
		return res, err
	}

	loc := timezone.GetLocation()
	day := date.In(loc)
	closing := time.Date(day.Year(), day.Month(), day.Day(), hours.EndHour, 0, 0, 0, loc)

	// The whole day, not just business hours: an appointment booked before
	// the hours were narrowed can start before opening and still overlap
	// the grid.
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	booked, err := s.repo.GetByDateRange(ctx, dayStart, dayStart.AddDate(0, 0, 1), staffID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments for availability")

		return res, fmt.Errorf("failed to get appointments for availability: %w", err)
	}

	res.Date = day.Format(constant.DateOnlyLayout)
	res.Slots = make([]dto.SlotAvailability, len(slots))

	for i, slot := range slots {
		start := time.Date(day.Year(), day.Month(), day.Day(), slot.Hour, slot.Minute, 0, 0, loc)
		end := start.Add(time.Duration(serviceDuration) * time.Minute)

		available := !end.After(closing)

		for _, appt := range booked {
			if !available {
				break
			}

			if appt.Overlaps(start, end) {
				available = false
			}
		}

		res.Slots[i] = dto.SlotAvailability{
			Hour:      slot.Hour,
			Minute:    slot.Minute,
			Available: available,
		}
	}

	return res, nil
}

// IsSlotFree checks a single interval against the staff member's calendar.
// excludeID ignores one appointment, for reschedule checks.
func (s *serviceImpl) IsSlotFree(ctx context.Context, start, end time.Time, staffID, excludeID string) (free bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsSlotFree")
	defer scope.End()
	defer scope.TraceIfError(err)

	overlapping, err := s.repo.FindOverlapping(ctx, staffID, start, end, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping appointments")

		return false, fmt.Errorf("failed to find overlapping appointments: %w", err)
	}

	return len(overlapping) == 0, nil
}

// Create books an appointment. References are validated in a fixed order, so
// the caller always learns about a missing service before an occupied slot.
// The final conflict check runs inside the insert transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	svc, err := s.resolveService(ctx, req.ServiceID)
	if err != nil {
		return res, err
	}

	if err = s.resolveStaff(ctx, req.StaffID); err != nil {
		return res, err
	}

	client, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return res, err
	}

	start, err := req.ParseStart()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid start time: %v", err)) // nolint:wrapcheck
	}

	end := start.Add(time.Duration(svc.Duration) * time.Minute)

	if err = s.checkBusinessHours(ctx, start, end); err != nil {
		return res, err
	}

	appointment := model.Appointment{
		ID:        uuid.NewString(),
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		StartTime: start,
		EndTime:   end,
		Status:    model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.InsertIfAvailable(ctx, appointment); err != nil {
		if failure.GetCode(err) != 409 {
			log.Error().Err(err).Msg("failed to create appointment")
		}

		return res, err // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notification.PublishReminder(c, appointment, client, svc); err != nil {
			log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("failed to publish reminder")
		}
	}()

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

// ForDate lists the day's agenda ordered by start, cancelled excluded.
func (s *serviceImpl) ForDate(ctx context.Context, date time.Time, staffID string) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	loc := timezone.GetLocation()
	day := date.In(loc)
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	models, err := s.repo.GetByDateRange(ctx, from, to, staffID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments for date")

		return res, fmt.Errorf("failed to get appointments for date: %w", err)
	}

	res.FromModels(models, len(models), 0)

	return res, nil
}

// UpdateStatus moves an appointment between pending, confirmed and
// cancelled. Every transition is allowed, cancelling included both ways.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !exist {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update appointment status")

		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Reschedule moves an appointment to a new start. The end is recomputed from
// the service's current duration; the appointment itself never blocks its
// own move.
func (s *serviceImpl) Reschedule(ctx context.Context, id string, req dto.RescheduleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	svc, err := s.resolveService(ctx, appointment.ServiceID)
	if err != nil {
		return err
	}

	start, err := req.ParseStart()
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid start time: %v", err)) // nolint:wrapcheck
	}

	end := start.Add(time.Duration(svc.Duration) * time.Minute)

	if err = s.checkBusinessHours(ctx, start, end); err != nil {
		return err
	}

	if err = s.repo.RescheduleIfAvailable(ctx, id, start, end, appointment.StaffID); err != nil {
		if failure.GetCode(err) != 409 {
			log.Error().Err(err).Msg("failed to reschedule appointment")
		}

		return err // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !exist {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment")

		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Stats(ctx context.Context, from, to time.Time) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	byStatus, err := s.repo.StatsByStatus(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get status stats")

		return res, fmt.Errorf("failed to get status stats: %w", err)
	}

	byStaff, err := s.repo.StaffPerformance(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff performance")

		return res, fmt.Errorf("failed to get staff performance: %w", err)
	}

	res.FromModels(from, to, byStatus, byStaff)

	return res, nil
}

// slotGrid returns the slot starts for business hours and the hours used to
// compute them.
func (s *serviceImpl) slotGrid(ctx context.Context, granularityMinutes int) ([]dto.Slot, dto.BusinessHoursResponse, error) {
	var hours dto.BusinessHoursResponse

	startHour, endHour, err := s.settings.BusinessHours(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve business hours")

		return nil, hours, fmt.Errorf("failed to resolve business hours: %w", err)
	}

	if granularityMinutes <= 0 {
		granularityMinutes, err = s.settings.SlotDuration(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve slot duration")

			return nil, hours, fmt.Errorf("failed to resolve slot duration: %w", err)
		}
	}

	hours.StartHour = startHour
	hours.EndHour = endHour

	slots := []dto.Slot{}
	for minute := startHour * 60; minute < endHour*60; minute += granularityMinutes {
		slots = append(slots, dto.Slot{Hour: minute / 60, Minute: minute % 60})
	}

	return slots, hours, nil
}

// checkBusinessHours rejects intervals outside the working day. The closing
// bound is checked against the start's calendar date, so an appointment can
// never spill into the next day.
func (s *serviceImpl) checkBusinessHours(ctx context.Context, start, end time.Time) error {
	startHour, endHour, err := s.settings.BusinessHours(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve business hours")

		return fmt.Errorf("failed to resolve business hours: %w", err)
	}

	loc := timezone.GetLocation()
	day := start.In(loc)
	open := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, loc)
	closing := time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, loc)

	if start.Before(open) || end.After(closing) {
		return failure.UnprocessableEntity("appointment is outside business hours") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) resolveService(ctx context.Context, id string) (catalogModel.Service, error) {
	svc, err := s.catalogRepo.Get(ctx, shared.FilterByID(id, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return svc, fmt.Errorf("failed to get service: %w", err)
	}

	if svc.ID == constant.Empty {
		return svc, failure.NotFound("service not found") // nolint:wrapcheck
	}

	if !svc.Active {
		return svc, failure.UnprocessableEntity("service is inactive") // nolint:wrapcheck
	}

	return svc, nil
}

func (s *serviceImpl) resolveStaff(ctx context.Context, id string) error {
	member, err := s.staffRepo.Get(ctx, shared.FilterByID(id, staffModel.FieldID, staffModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff member")

		return fmt.Errorf("failed to get staff member: %w", err)
	}

	if member.ID == constant.Empty {
		return failure.NotFound("staff member not found") // nolint:wrapcheck
	}

	if !member.Active {
		return failure.UnprocessableEntity("staff member is inactive") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) resolveClient(ctx context.Context, id string) (clientModel.Client, error) {
	client, err := s.clientRepo.Get(ctx, shared.FilterByID(id, clientModel.FieldID, clientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get client")

		return client, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ID == constant.Empty {
		return client, failure.NotFound("client not found") // nolint:wrapcheck
	}

	return client, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}
	}()
}
