package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "settings"
	EntityName = "setting"

	FieldKey   = "key"
	FieldValue = "value"
)

// Well-known setting keys.
const (
	KeyBusinessHoursStart = "business_hours_start"
	KeyBusinessHoursEnd   = "business_hours_end"
	KeySlotDuration       = "slot_duration"
	KeyBusinessName       = "business_name"
)

// Defaults apply when a key has never been written.
var Defaults = map[string]string{
	KeyBusinessHoursStart: "12",
	KeyBusinessHoursEnd:   "20",
	KeySlotDuration:       "15",
	KeyBusinessName:       "Agenda",
}

type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
	model.Metadata
}
