package model

import (
	"agenda/shared/model"
	"time"
)

const (
	TableName  = "accounts"
	EntityName = "account"

	FieldID                 = "id"
	FieldUsername           = "username"
	FieldPassword           = "password"
	FieldRole               = "role"
	FieldStaffID            = "staff_id"
	FieldActive             = "active"
	FieldFailedAttempts     = "failed_attempts"
	FieldLockedUntil        = "locked_until"
	FieldMustChangePassword = "must_change_password"
	FieldLastLogin          = "last_login"
)

type Account struct {
	ID                 string     `db:"id"`
	Username           string     `db:"username"`
	Password           string     `db:"password"`
	Role               string     `db:"role"`
	StaffID            *string    `db:"staff_id"`
	Active             bool       `db:"active"`
	FailedAttempts     int        `db:"failed_attempts"`
	LockedUntil        *time.Time `db:"locked_until"`
	MustChangePassword bool       `db:"must_change_password"`
	LastLogin          *time.Time `db:"last_login"`
	model.Metadata
}

// Locked reports whether the account is locked at the given instant. An
// expired lock is treated as open; the failed counter is cleared only by a
// successful login.
func (a *Account) Locked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}
