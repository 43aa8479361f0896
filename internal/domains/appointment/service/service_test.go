package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	apptMocks "agenda/internal/domains/appointment/mocks"
	"agenda/internal/domains/appointment/model"
	"agenda/internal/domains/appointment/model/dto"
	"agenda/internal/domains/appointment/service"
	catalogMocks "agenda/internal/domains/catalog/mocks"
	catalogModel "agenda/internal/domains/catalog/model"
	clientMocks "agenda/internal/domains/client/mocks"
	clientModel "agenda/internal/domains/client/model"
	notifMocks "agenda/internal/domains/notification/mocks"
	settingMocks "agenda/internal/domains/settings/mocks"
	staffMocks "agenda/internal/domains/staff/mocks"
	staffModel "agenda/internal/domains/staff/model"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/failure"
)

type appointmentDeps struct {
	repo         *apptMocks.MockAppointment
	catalog      *catalogMocks.MockCatalog
	staff        *staffMocks.MockStaff
	client       *clientMocks.MockClient
	settings     *settingMocks.MockSettings
	notification *notifMocks.MockNotification
	cache        *cacheMocks.MockRedisCache
}

func newAppointmentService(t *testing.T) (appointmentDeps, service.Appointment) {
	t.Helper()

	ctrl := gomock.NewController(t)

	deps := appointmentDeps{
		repo:         apptMocks.NewMockAppointment(ctrl),
		catalog:      catalogMocks.NewMockCatalog(ctrl),
		staff:        staffMocks.NewMockStaff(ctrl),
		client:       clientMocks.NewMockClient(ctrl),
		settings:     settingMocks.NewMockSettings(ctrl),
		notification: notifMocks.NewMockNotification(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	svc := service.New(
		deps.repo,
		deps.catalog,
		deps.staff,
		deps.client,
		deps.settings,
		deps.notification,
		&config.Config{},
		deps.cache,
		mocks.NewOtel(),
	)

	return deps, svc
}

func expectHours(deps appointmentDeps, start, end int) {
	deps.settings.EXPECT().
		BusinessHours(gomock.Any()).
		Return(start, end, nil).
		AnyTimes()
}

func TestAppointmentService_Slots(t *testing.T) {
	t.Run("uses the configured slot duration when granularity is zero", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		expectHours(deps, 12, 20)
		deps.settings.EXPECT().SlotDuration(gomock.Any()).Return(15, nil)

		res, err := svc.Slots(context.Background(), 0)

		assert.NoError(t, err)
		assert.Len(t, res.Slots, 32)
		assert.Equal(t, dto.Slot{Hour: 12, Minute: 0}, res.Slots[0])
		assert.Equal(t, dto.Slot{Hour: 19, Minute: 45}, res.Slots[31])
	})

	t.Run("honours an explicit granularity", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		expectHours(deps, 12, 20)

		res, err := svc.Slots(context.Background(), 30)

		assert.NoError(t, err)
		assert.Len(t, res.Slots, 16)
		assert.Equal(t, dto.Slot{Hour: 12, Minute: 30}, res.Slots[1])
	})
}

func findSlot(t *testing.T, slots []dto.SlotAvailability, hour, minute int) dto.SlotAvailability {
	t.Helper()

	for _, slot := range slots {
		if slot.Hour == hour && slot.Minute == minute {
			return slot
		}
	}

	t.Fatalf("slot %02d:%02d not in response", hour, minute)

	return dto.SlotAvailability{}
}

func TestAppointmentService_Availability(t *testing.T) {
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	booked := []model.Appointment{
		{
			ID:        "appt-1",
			StaffID:   "staff-1",
			StartTime: time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 6, 10, 14, 30, 0, 0, time.UTC),
			Status:    model.StatusConfirmed,
		},
	}

	setup := func(t *testing.T) (appointmentDeps, service.Appointment) {
		deps, svc := newAppointmentService(t)
		expectHours(deps, 12, 20)
		deps.settings.EXPECT().SlotDuration(gomock.Any()).Return(30, nil)
		deps.repo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any(), "staff-1").
			Return(booked, nil)

		return deps, svc
	}

	t.Run("a booking blocks its own slot but not the neighbours", func(t *testing.T) {
		_, svc := setup(t)

		res, err := svc.Availability(context.Background(), day, 30, "staff-1")

		assert.NoError(t, err)
		assert.Equal(t, "2026-06-10", res.Date)
		assert.Len(t, res.Slots, 16)
		assert.False(t, findSlot(t, res.Slots, 14, 0).Available)
		assert.True(t, findSlot(t, res.Slots, 13, 30).Available)
		assert.True(t, findSlot(t, res.Slots, 14, 30).Available)
		assert.True(t, findSlot(t, res.Slots, 19, 30).Available)
	})

	t.Run("a longer service blocks the preceding slot and the tail of the day", func(t *testing.T) {
		_, svc := setup(t)

		res, err := svc.Availability(context.Background(), day, 60, "staff-1")

		assert.NoError(t, err)
		assert.False(t, findSlot(t, res.Slots, 13, 30).Available)
		assert.False(t, findSlot(t, res.Slots, 14, 0).Available)
		assert.True(t, findSlot(t, res.Slots, 14, 30).Available)
		assert.False(t, findSlot(t, res.Slots, 19, 30).Available)
	})

	t.Run("an appointment starting before opening still blocks the grid", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		expectHours(deps, 12, 20)
		deps.settings.EXPECT().SlotDuration(gomock.Any()).Return(30, nil)

		early := []model.Appointment{
			{
				ID:        "appt-2",
				StaffID:   "staff-1",
				StartTime: time.Date(2026, 6, 10, 11, 30, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 6, 10, 12, 30, 0, 0, time.UTC),
				Status:    model.StatusConfirmed,
			},
		}

		deps.repo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any(), "staff-1").
			DoAndReturn(func(_ context.Context, from, to time.Time, _ string) ([]model.Appointment, error) {
				assert.Equal(t, day, from)
				assert.Equal(t, day.AddDate(0, 0, 1), to)

				return early, nil
			})

		res, err := svc.Availability(context.Background(), day, 30, "staff-1")

		assert.NoError(t, err)
		assert.False(t, findSlot(t, res.Slots, 12, 0).Available)
		assert.True(t, findSlot(t, res.Slots, 12, 30).Available)
	})

	t.Run("rejects a non-positive duration", func(t *testing.T) {
		_, svc := newAppointmentService(t)

		_, err := svc.Availability(context.Background(), day, 0, "staff-1")

		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestAppointmentService_IsSlotFree(t *testing.T) {
	start := time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	t.Run("free when nothing overlaps", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.repo.EXPECT().
			FindOverlapping(gomock.Any(), "staff-1", start, end, "").
			Return([]model.Appointment{}, nil)

		free, err := svc.IsSlotFree(context.Background(), start, end, "staff-1", "")

		assert.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("busy when another appointment overlaps", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.repo.EXPECT().
			FindOverlapping(gomock.Any(), "staff-1", start, end, "appt-9").
			Return([]model.Appointment{{ID: "appt-1"}}, nil)

		free, err := svc.IsSlotFree(context.Background(), start, end, "staff-1", "appt-9")

		assert.NoError(t, err)
		assert.False(t, free)
	})
}

func TestAppointmentService_Create(t *testing.T) {
	activeService := catalogModel.Service{ID: "svc-1", Name: "Corte", Duration: 30, Price: 100, Active: true}
	activeStaff := staffModel.Staff{ID: "staff-1", Name: "Marta", Active: true}
	knownClient := clientModel.Client{ID: "client-1", Name: "Ana"}

	req := dto.CreateAppointmentRequest{
		ClientID:  "client-1",
		ServiceID: "svc-1",
		StaffID:   "staff-1",
		Start:     "2026-06-10T14:00:00Z",
	}

	t.Run("unknown service stops before any other lookup", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(catalogModel.Service{}, nil)

		_, err := svc.Create(context.Background(), req)

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("inactive service is rejected as unprocessable", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		inactive := activeService
		inactive.Active = false
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)

		_, err := svc.Create(context.Background(), req)

		assert.Equal(t, 422, failure.GetCode(err))
	})

	t.Run("inactive staff member is rejected as unprocessable", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		inactive := activeStaff
		inactive.Active = false
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeService, nil)
		deps.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)

		_, err := svc.Create(context.Background(), req)

		assert.Equal(t, 422, failure.GetCode(err))
	})

	t.Run("unknown client is rejected before the slot check", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeService, nil)
		deps.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeStaff, nil)
		deps.client.EXPECT().Get(gomock.Any(), gomock.Any()).Return(clientModel.Client{}, nil)

		_, err := svc.Create(context.Background(), req)

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("start outside business hours is rejected", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeService, nil)
		deps.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeStaff, nil)
		deps.client.EXPECT().Get(gomock.Any(), gomock.Any()).Return(knownClient, nil)
		expectHours(deps, 12, 20)

		early := req
		early.Start = "2026-06-10T11:00:00Z"

		_, err := svc.Create(context.Background(), early)

		assert.Equal(t, 422, failure.GetCode(err))
	})

	t.Run("end past closing is rejected even when the start fits", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeService, nil)
		deps.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeStaff, nil)
		deps.client.EXPECT().Get(gomock.Any(), gomock.Any()).Return(knownClient, nil)
		expectHours(deps, 12, 20)

		late := req
		late.Start = "2026-06-10T19:45:00Z"

		_, err := svc.Create(context.Background(), late)

		assert.Equal(t, 422, failure.GetCode(err))
	})

	t.Run("occupied slot surfaces as a conflict", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeService, nil)
		deps.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeStaff, nil)
		deps.client.EXPECT().Get(gomock.Any(), gomock.Any()).Return(knownClient, nil)
		expectHours(deps, 12, 20)
		deps.repo.EXPECT().
			InsertIfAvailable(gomock.Any(), gomock.Any()).
			Return(failure.Conflict("time slot is already booked"))

		_, err := svc.Create(context.Background(), req)

		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("books the slot as pending and publishes a reminder", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeService, nil)
		deps.staff.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeStaff, nil)
		deps.client.EXPECT().Get(gomock.Any(), gomock.Any()).Return(knownClient, nil)
		expectHours(deps, 12, 20)
		deps.repo.EXPECT().
			InsertIfAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, appt model.Appointment) error {
				assert.NotEmpty(t, appt.ID)
				assert.Equal(t, model.StatusPending, appt.Status)
				assert.Equal(t, 30*time.Minute, appt.EndTime.Sub(appt.StartTime))

				return nil
			})
		deps.notification.EXPECT().
			PublishReminder(gomock.Any(), gomock.Any(), knownClient, activeService).
			Return(nil).
			AnyTimes()

		res, err := svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, "2026-06-10T14:30:00Z", res.End)
	})
}

func TestAppointmentService_Reschedule(t *testing.T) {
	existing := model.Appointment{
		ID:        "appt-1",
		ServiceID: "svc-1",
		StaffID:   "staff-1",
		StartTime: time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 6, 10, 14, 30, 0, 0, time.UTC),
		Status:    model.StatusConfirmed,
	}
	activeService := catalogModel.Service{ID: "svc-1", Name: "Corte", Duration: 30, Active: true}

	t.Run("moves the appointment with the end recomputed from the service", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeService, nil)
		expectHours(deps, 12, 20)
		deps.repo.EXPECT().
			RescheduleIfAvailable(gomock.Any(), "appt-1",
				time.Date(2026, 6, 10, 16, 0, 0, 0, time.UTC),
				time.Date(2026, 6, 10, 16, 30, 0, 0, time.UTC),
				"staff-1").
			Return(nil)
		deps.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Reschedule(context.Background(), "appt-1", dto.RescheduleRequest{Start: "2026-06-10T16:00:00Z"})

		assert.NoError(t, err)
	})

	t.Run("conflict from the calendar passes through", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
		deps.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeService, nil)
		expectHours(deps, 12, 20)
		deps.repo.EXPECT().
			RescheduleIfAvailable(gomock.Any(), "appt-1", gomock.Any(), gomock.Any(), "staff-1").
			Return(failure.Conflict("time slot is already booked"))

		err := svc.Reschedule(context.Background(), "appt-1", dto.RescheduleRequest{Start: "2026-06-10T16:00:00Z"})

		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)

		err := svc.Reschedule(context.Background(), "missing", dto.RescheduleRequest{Start: "2026-06-10T16:00:00Z"})

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	t.Run("any transition is allowed", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

				return nil
			})
		deps.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.UpdateStatus(context.Background(), "appt-1", dto.UpdateStatusRequest{Status: model.StatusCancelled})

		assert.NoError(t, err)
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		deps, svc := newAppointmentService(t)
		deps.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.UpdateStatus(context.Background(), "missing", dto.UpdateStatusRequest{Status: model.StatusConfirmed})

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestAppointmentService_Stats(t *testing.T) {
	deps, svc := newAppointmentService(t)

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	deps.repo.EXPECT().
		StatsByStatus(gomock.Any(), from, to).
		Return([]model.StatusStat{{Status: model.StatusConfirmed, Total: 4, Income: 400}}, nil)
	deps.repo.EXPECT().
		StaffPerformance(gomock.Any(), from, to).
		Return([]model.StaffStat{{StaffID: "staff-1", StaffName: "Marta", Total: 4, Income: 400}}, nil)

	res, err := svc.Stats(context.Background(), from, to)

	assert.NoError(t, err)
	assert.Equal(t, "2026-06-01", res.From)
	assert.Len(t, res.ByStatus, 1)
	assert.Equal(t, 400.0, res.ByStaff[0].Income)
}
