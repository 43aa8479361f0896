package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/jwt"
	jwtMocks "agenda/infras/jwt/mocks"
	"agenda/infras/otel/mocks"
	accountMocks "agenda/internal/domains/account/mocks"
	accountModel "agenda/internal/domains/account/model"
	"agenda/internal/domains/auth/model/dto"
	"agenda/internal/domains/auth/service"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

// bcrypt hash of "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func newAuthService(t *testing.T) (*accountMocks.MockAccount, *jwtMocks.MockJWT, service.Auth) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := accountMocks.NewMockAccount(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockOtel, mockJWT)

	return mockRepo, mockJWT, svc
}

func validAccount() accountModel.Account {
	return accountModel.Account{
		ID:       "account-id-123",
		Username: "admin",
		Password: passwordHash,
		Role:     "admin",
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	req := dto.LoginRequest{Username: "admin", Password: "password"}
	wrongReq := dto.LoginRequest{Username: "admin", Password: "wrongpassword"}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT)
		wantErr   bool
		wantCode  int
		wantMsg   string
	}{
		{
			name: "successful login resets counters and issues tokens",
			req:  req,
			setupMock: func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT) {
				account := validAccount()

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(account, nil)

				repo.EXPECT().
					RecordSuccess(gomock.Any(), account.ID, gomock.Any()).
					Return(nil)

				jwtMock.EXPECT().
					GenerateTokenPair(account.ID, account.Username, account.Role).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
						TokenType:    "Bearer",
					}, nil)
			},
		},
		{
			name: "unknown account answers like a wrong password",
			req:  req,
			setupMock: func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(accountModel.Account{}, nil)
			},
			wantErr:  true,
			wantCode: 401,
			wantMsg:  "invalid username or password",
		},
		{
			name: "inactive account answers like a wrong password",
			req:  req,
			setupMock: func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT) {
				account := validAccount()
				account.Active = false

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(account, nil)
			},
			wantErr:  true,
			wantCode: 401,
			wantMsg:  "invalid username or password",
		},
		{
			name: "first failure reports remaining attempts",
			req:  wrongReq,
			setupMock: func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT) {
				account := validAccount()

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(account, nil)

				repo.EXPECT().
					RecordFailure(gomock.Any(), account.ID, 1, gomock.Nil()).
					Return(nil)
			},
			wantErr:  true,
			wantCode: 401,
			wantMsg:  "4 attempt(s) remaining",
		},
		{
			name: "fifth failure stores the lock but still answers as a credential failure",
			req:  wrongReq,
			setupMock: func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT) {
				account := validAccount()
				account.FailedAttempts = 4

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(account, nil)

				repo.EXPECT().
					RecordFailure(gomock.Any(), account.ID, 5, gomock.Not(gomock.Nil())).
					Return(nil)
			},
			wantErr:  true,
			wantCode: 401,
			wantMsg:  "0 attempt(s) remaining",
		},
		{
			name: "locked account is rejected before password check",
			req:  req,
			setupMock: func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT) {
				account := validAccount()
				until := timezone.Now().Add(3 * time.Minute)
				account.FailedAttempts = 5
				account.LockedUntil = &until

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(account, nil)
			},
			wantErr:  true,
			wantCode: 423,
			wantMsg:  "minute(s)",
		},
		{
			name: "expired lock keeps the counter until a success",
			req:  wrongReq,
			setupMock: func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT) {
				account := validAccount()
				until := timezone.Now().Add(-time.Minute)
				account.FailedAttempts = 3
				account.LockedUntil = &until

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(account, nil)

				repo.EXPECT().
					RecordFailure(gomock.Any(), account.ID, 4, gomock.Nil()).
					Return(nil)
			},
			wantErr:  true,
			wantCode: 401,
			wantMsg:  "1 attempt(s) remaining",
		},
		{
			name: "expired lock allows a correct password",
			req:  req,
			setupMock: func(repo *accountMocks.MockAccount, jwtMock *jwtMocks.MockJWT) {
				account := validAccount()
				until := timezone.Now().Add(-time.Minute)
				account.FailedAttempts = 5
				account.LockedUntil = &until

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(account, nil)

				repo.EXPECT().
					RecordSuccess(gomock.Any(), account.ID, gomock.Any()).
					Return(nil)

				jwtMock.EXPECT().
					GenerateTokenPair(account.ID, account.Username, account.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, jwtMock, svc := newAuthService(t)
			tt.setupMock(repo, jwtMock)

			res, err := svc.Authenticate(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.True(t, strings.Contains(err.Error(), tt.wantMsg), "error %q should contain %q", err.Error(), tt.wantMsg)
				}

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.AccessToken)
			assert.Equal(t, "account-id-123", res.Account.ID)
		})
	}
}

func TestAuthService_Unlock(t *testing.T) {
	t.Run("clears counters for an existing account", func(t *testing.T) {
		repo, _, svc := newAuthService(t)

		account := validAccount()

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(account, nil)

		repo.EXPECT().
			ClearLock(gomock.Any(), account.ID).
			Return(nil)

		unlocked, err := svc.Unlock(context.Background(), "admin")

		assert.NoError(t, err)
		assert.True(t, unlocked)
	})

	t.Run("reports false for an unknown username", func(t *testing.T) {
		repo, _, svc := newAuthService(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(accountModel.Account{}, nil)

		unlocked, err := svc.Unlock(context.Background(), "ghost")

		assert.NoError(t, err)
		assert.False(t, unlocked)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(repo *accountMocks.MockAccount)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "stores the new hash and clears the change flag",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newsecret"},
			setupMock: func(repo *accountMocks.MockAccount) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validAccount(), nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "rejects a wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newsecret"},
			setupMock: func(repo *accountMocks.MockAccount) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validAccount(), nil)
			},
			wantErr:  true,
			wantCode: 401,
		},
		{
			name: "rejects a short new password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "abc"},
			setupMock: func(repo *accountMocks.MockAccount) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validAccount(), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "unknown account",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newsecret"},
			setupMock: func(repo *accountMocks.MockAccount) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(accountModel.Account{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := newAuthService(t)
			tt.setupMock(repo)

			err := svc.ChangePassword(context.Background(), "account-id-123", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("taken username conflicts", func(t *testing.T) {
		repo, _, svc := newAuthService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := svc.Register(context.Background(), dto.RegisterRequest{
			Username: "admin",
			Password: "secret1",
			Role:     "admin",
		})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("new accounts must change their password", func(t *testing.T) {
		repo, _, svc := newAuthService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, account accountModel.Account) error {
				assert.True(t, account.MustChangePassword)
				assert.True(t, account.Active)
				assert.NotEqual(t, "secret1", account.Password)

				return nil
			})

		res, err := svc.Register(context.Background(), dto.RegisterRequest{
			Username: "marco",
			Password: "secret1",
			Role:     "staff",
		})

		assert.NoError(t, err)
		assert.Equal(t, "marco", res.Username)
	})
}
