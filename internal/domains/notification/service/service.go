package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	apptModel "agenda/internal/domains/appointment/model"
	catalogModel "agenda/internal/domains/catalog/model"
	clientModel "agenda/internal/domains/client/model"
	"agenda/internal/domains/notification/model"
	settingsModel "agenda/internal/domains/settings/model"
	settingsService "agenda/internal/domains/settings/service"
	"agenda/shared/constant"
	"agenda/shared/timezone"
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	ReminderMessage(ctx context.Context, appt apptModel.Appointment, client clientModel.Client, svc catalogModel.Service) (string, error)
	WhatsAppURL(phone, message string) string
	PublishReminder(ctx context.Context, appt apptModel.Appointment, client clientModel.Client, svc catalogModel.Service) error
}

type serviceImpl struct {
	settings settingsService.Settings
	kafka    kafka.Client
	cfg      *config.Config
	otel     otel.Otel
}

func New(settings settingsService.Settings, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		settings: settings,
		kafka:    kafkaClient,
		cfg:      cfg,
		otel:     otel,
	}
}

// ReminderMessage renders the standard reminder text for one appointment.
func (s *serviceImpl) ReminderMessage(ctx context.Context, appt apptModel.Appointment, client clientModel.Client, svc catalogModel.Service) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReminderMessage")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessName, err := s.settings.Get(ctx, settingsModel.KeyBusinessName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get business name")

		return res, fmt.Errorf("failed to get business name: %w", err)
	}

	date := timezone.Format(appt.StartTime, "02/01")
	start := timezone.Format(appt.StartTime, "15:04")

	res = fmt.Sprintf("Hola %s! Te recordamos tu turno en %s para el día %s a las %s (%s). ¡Te esperamos!",
		client.Name, businessName, date, start, svc.Name)

	return res, nil
}

// WhatsAppURL builds a click-to-chat link. The phone keeps digits only; the
// message is query-escaped. An empty phone yields an empty URL.
func (s *serviceImpl) WhatsAppURL(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, phone)

	if digits == "" {
		return ""
	}

	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// PublishReminder emits a reminder event for the appointment. Failures are
// reported but never block the booking that triggered them.
func (s *serviceImpl) PublishReminder(ctx context.Context, appt apptModel.Appointment, client clientModel.Client, svc catalogModel.Service) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PublishReminder")
	defer scope.End()
	defer scope.TraceIfError(err)

	message, err := s.ReminderMessage(ctx, appt, client, svc)
	if err != nil {
		return err
	}

	phone := ""
	if client.Phone != nil {
		phone = *client.Phone
	}

	event := model.ReminderEvent{
		AppointmentID: appt.ID,
		ClientID:      client.ID,
		ClientName:    client.Name,
		Phone:         phone,
		ServiceName:   svc.Name,
		Start:         appt.StartTime,
		Message:       message,
		WhatsAppURL:   s.WhatsAppURL(phone, message),
	}

	err = s.kafka.SendMessages(ctx, s.cfg.Kafka.ReminderTopic, kafka.Message{
		Key:   appt.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("appointmentID", appt.ID).Msg("failed to publish reminder event")

		return fmt.Errorf("failed to publish reminder event: %w", err)
	}

	return nil
}
