package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "services"
	EntityName = "catalog"

	FieldID       = "id"
	FieldName     = "name"
	FieldDuration = "duration_min"
	FieldPrice    = "price"
	FieldActive   = "active"
)

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 480
)

type Service struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Duration int     `db:"duration_min"`
	Price    float64 `db:"price"`
	Active   bool    `db:"active"`
	model.Metadata
}
