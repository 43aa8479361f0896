package model

import (
	"agenda/shared/model"
	"time"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID        = "id"
	FieldClientID  = "client_id"
	FieldServiceID = "service_id"
	FieldStaffID   = "staff_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldStatus    = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment occupies the half-open interval [StartTime, EndTime) on one
// staff member's calendar. Cancelled appointments do not block the slot.
type Appointment struct {
	ID        string    `db:"id"`
	ClientID  string    `db:"client_id"`
	ServiceID string    `db:"service_id"`
	StaffID   string    `db:"staff_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Status    string    `db:"status"`
	model.Metadata
}

// Overlaps reports whether the appointment collides with [start, end).
// Touching boundaries do not collide.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}

// StatusStat is one row of the per-status report.
type StatusStat struct {
	Status string  `db:"status"`
	Total  int     `db:"total"`
	Income float64 `db:"income"`
}

// StaffStat is one row of the per-staff-member report.
type StaffStat struct {
	StaffID   string  `db:"staff_id"`
	StaffName string  `db:"staff_name"`
	Total     int     `db:"total"`
	Income    float64 `db:"income"`
}
