package dto

import (
	"agenda/internal/domains/appointment/model"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/timezone"
	"time"
)

type CreateAppointmentRequest struct {
	ClientID  string `json:"client_id"  validate:"required,uuid4"`
	ServiceID string `json:"service_id" validate:"required,uuid4"`
	StaffID   string `json:"staff_id"   validate:"required,uuid4"`
	Start     string `json:"start"      validate:"required"`
}

// ParseStart resolves the requested start in the application timezone.
func (c *CreateAppointmentRequest) ParseStart() (time.Time, error) {
	return timezone.Parse(constant.DateFormat, c.Start)
}

type RescheduleRequest struct {
	Start string `json:"start" validate:"required"`
}

func (r *RescheduleRequest) ParseStart() (time.Time, error) {
	return timezone.Parse(constant.DateFormat, r.Start)
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type AppointmentResponse struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	r.ID = model.ID
	r.ClientID = model.ClientID
	r.ServiceID = model.ServiceID
	r.StaffID = model.StaffID
	r.Start = timezone.Format(model.StartTime, constant.DateFormat)
	r.End = timezone.Format(model.EndTime, constant.DateFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

// Slot is one bookable start within business hours.
type Slot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type SlotsResponse struct {
	Slots []Slot `json:"slots"`
}

// SlotAvailability marks whether a service of the requested duration can
// start at this slot.
type SlotAvailability struct {
	Hour      int  `json:"hour"`
	Minute    int  `json:"minute"`
	Available bool `json:"available"`
}

type AvailabilityResponse struct {
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}

type BusinessHoursResponse struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

type StatusStatResponse struct {
	Status string  `json:"status"`
	Total  int     `json:"total"`
	Income float64 `json:"income"`
}

type StaffStatResponse struct {
	StaffID   string  `json:"staff_id"`
	StaffName string  `json:"staff_name"`
	Total     int     `json:"total"`
	Income    float64 `json:"income"`
}

type StatsResponse struct {
	From     string               `json:"from"`
	To       string               `json:"to"`
	ByStatus []StatusStatResponse `json:"by_status"`
	ByStaff  []StaffStatResponse  `json:"by_staff"`
}

func (r *StatsResponse) FromModels(from, to time.Time, byStatus []model.StatusStat, byStaff []model.StaffStat) {
	r.From = timezone.Format(from, constant.DateOnlyLayout)
	r.To = timezone.Format(to, constant.DateOnlyLayout)

	r.ByStatus = make([]StatusStatResponse, len(byStatus))
	for i, stat := range byStatus {
		r.ByStatus[i] = StatusStatResponse(stat)
	}

	r.ByStaff = make([]StaffStatResponse, len(byStaff))
	for i, stat := range byStaff {
		r.ByStaff[i] = StaffStatResponse(stat)
	}
}
