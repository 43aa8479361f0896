package dto

import (
	"agenda/infras/jwt"
	accountModel "agenda/internal/domains/account/model"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken        string          `json:"access_token"`
	RefreshToken       string          `json:"refresh_token"`
	TokenType          string          `json:"token_type"`
	ExpiresIn          int64           `json:"expires_in"`
	Account            AccountResponse `json:"account"`
	MustChangePassword bool            `json:"must_change_password"`
}

func (r *LoginResponse) FromModel(account accountModel.Account, pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
	r.MustChangePassword = account.MustChangePassword
	r.Account.FromModel(account)
}

type AccountResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	StaffID  *string `json:"staff_id,omitempty"`
	Active   bool    `json:"active"`
}

func (r *AccountResponse) FromModel(account accountModel.Account) {
	r.ID = account.ID
	r.Username = account.Username
	r.Role = account.Role
	r.StaffID = account.StaffID
	r.Active = account.Active
}

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role"     validate:"required,oneof=admin staff"`
	StaffID  *string `json:"staff_id" validate:"omitempty,uuid4"`
}

func (r *RegisterRequest) ToModel(hash, user string) accountModel.Account {
	return accountModel.Account{
		ID:                 uuid.NewString(),
		Username:           r.Username,
		Password:           hash,
		Role:               r.Role,
		StaffID:            r.StaffID,
		Active:             true,
		MustChangePassword: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UnlockRequest struct {
	Username string `json:"username" validate:"required,max=100"`
}

type UnlockResponse struct {
	Unlocked bool `json:"unlocked"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
}
