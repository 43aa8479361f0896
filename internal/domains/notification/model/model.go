package model

import "time"

// ReminderEvent is published to the reminder topic when an appointment is
// booked. Outbound delivery is handled by whoever consumes the topic.
type ReminderEvent struct {
	AppointmentID string    `json:"appointment_id"`
	ClientID      string    `json:"client_id"`
	ClientName    string    `json:"client_name"`
	Phone         string    `json:"phone"`
	ServiceName   string    `json:"service_name"`
	Start         time.Time `json:"start"`
	Message       string    `json:"message"`
	WhatsAppURL   string    `json:"whatsapp_url"`
}
