package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	kafkaMocks "agenda/infras/kafka/mocks"
	"agenda/infras/otel/mocks"
	apptModel "agenda/internal/domains/appointment/model"
	catalogModel "agenda/internal/domains/catalog/model"
	clientModel "agenda/internal/domains/client/model"
	"agenda/internal/domains/notification/service"
	settingMocks "agenda/internal/domains/settings/mocks"
)

func newNotificationService(t *testing.T) (*settingMocks.MockSettings, *kafkaMocks.MockClient, service.Notification) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockSettings := settingMocks.NewMockSettings(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.ReminderTopic = "appointment.reminders"

	svc := service.New(mockSettings, mockKafka, cfg, mockOtel)

	return mockSettings, mockKafka, svc
}

func TestNotificationService_WhatsAppURL(t *testing.T) {
	_, _, svc := newNotificationService(t)

	tests := []struct {
		name    string
		phone   string
		message string
		want    string
	}{
		{
			name:    "strips formatting from the phone and escapes the text",
			phone:   "+54 (11) 5555-1234",
			message: "Hola Ana! Te esperamos",
			want:    "https://wa.me/541155551234?text=Hola+Ana%21+Te+esperamos",
		},
		{
			name:  "empty phone yields no URL",
			phone: "",
			want:  "",
		},
		{
			name:  "phone without digits yields no URL",
			phone: "n/a",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.WhatsAppURL(tt.phone, tt.message))
		})
	}
}

func TestNotificationService_ReminderMessage(t *testing.T) {
	mockSettings, _, svc := newNotificationService(t)

	mockSettings.EXPECT().
		Get(gomock.Any(), "business_name").
		Return("Barbería Pro", nil)

	start := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	message, err := svc.ReminderMessage(context.Background(),
		apptModel.Appointment{ID: "appt-1", StartTime: start},
		clientModel.Client{Name: "Ana"},
		catalogModel.Service{Name: "Corte"},
	)

	assert.NoError(t, err)
	assert.Contains(t, message, "Ana")
	assert.Contains(t, message, "Barbería Pro")
	assert.Contains(t, message, "Corte")
	assert.Contains(t, message, "15:30")
}

func TestNotificationService_PublishReminder(t *testing.T) {
	mockSettings, mockKafka, svc := newNotificationService(t)

	mockSettings.EXPECT().
		Get(gomock.Any(), "business_name").
		Return("Barbería Pro", nil)

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "appointment.reminders", gomock.Any()).
		Return(nil)

	phone := "+54 11 5555-1234"

	err := svc.PublishReminder(context.Background(),
		apptModel.Appointment{ID: "appt-1", StartTime: time.Now()},
		clientModel.Client{ID: "client-1", Name: "Ana", Phone: &phone},
		catalogModel.Service{Name: "Corte"},
	)

	assert.NoError(t, err)
}
