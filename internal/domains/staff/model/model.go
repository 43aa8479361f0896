package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "staff_members"
	EntityName = "staff"

	FieldID     = "id"
	FieldName   = "name"
	FieldColor  = "color"
	FieldActive = "active"
)

type Staff struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Color  string `db:"color"`
	Active bool   `db:"active"`
	model.Metadata
}
