package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "clients"
	EntityName = "client"

	FieldID    = "id"
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
	FieldNotes = "notes"
)

type Client struct {
	ID    string  `db:"id"`
	Name  string  `db:"name"`
	Email string  `db:"email"`
	Phone *string `db:"phone"`
	Notes *string `db:"notes"`
	model.Metadata
}
