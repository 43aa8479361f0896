package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/otel"
	accountModel "agenda/internal/domains/account/model"
	accountRepo "agenda/internal/domains/account/repository"
	"agenda/internal/domains/auth/model/dto"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/password"
	"agenda/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// maxFailedAttempts locks the account on the fifth consecutive failure.
	maxFailedAttempts = 5
	// lockoutDuration is how long a locked account rejects logins.
	lockoutDuration = 5 * time.Minute
)

const invalidCredentialsMsg = "invalid username or password"

type Auth interface {
	Authenticate(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AccountResponse, error)
	Unlock(ctx context.Context, username string) (bool, error)
	ChangePassword(ctx context.Context, accountID string, req dto.ChangePasswordRequest) error
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	repo accountRepo.Account
	cfg  *config.Config
	otel otel.Otel
	jwt  jwt.JWT
}

func New(repo accountRepo.Account, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
		jwt:  jwt,
	}
}

// Authenticate verifies credentials and drives the lockout state machine.
// Unknown and inactive accounts answer exactly like a wrong password, so a
// caller cannot probe which usernames exist.
func (s *serviceImpl) Authenticate(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authenticate")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.repo.Get(ctx, usernameFilter(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return res, fmt.Errorf("failed to get account: %w", err)
	}

	if account.ID == constant.Empty || !account.Active {
		return res, failure.Unauthorized(invalidCredentialsMsg) // nolint:wrapcheck
	}

	now := timezone.Now()

	if account.Locked(now) {
		minutes := remainingMinutes(now, *account.LockedUntil)

		return res, failure.Locked(fmt.Sprintf("account locked, try again in %d minute(s)", minutes)) // nolint:wrapcheck
	}

	if password.Verify(req.Password, account.Password) != nil {
		err = s.recordFailure(ctx, account, now)

		return res, err
	}

	if err = s.repo.RecordSuccess(ctx, account.ID, now); err != nil {
		log.Error().Err(err).Msg("failed to record login success")

		return res, fmt.Errorf("failed to record login success: %w", err)
	}

	pair, err := s.jwt.GenerateTokenPair(account.ID, account.Username, account.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")

		return res, fmt.Errorf("failed to generate token pair: %w", err)
	}

	res.FromModel(account, pair)

	return res, nil
}

// recordFailure bumps the counter, locking the account when the threshold is
// reached. The caller always gets an error.
func (s *serviceImpl) recordFailure(ctx context.Context, account accountModel.Account, now time.Time) error {
	attempts := account.FailedAttempts + 1

	var lockedUntil *time.Time

	if attempts >= maxFailedAttempts {
		until := now.Add(lockoutDuration)
		lockedUntil = &until
	}

	if err := s.repo.RecordFailure(ctx, account.ID, attempts, lockedUntil); err != nil {
		log.Error().Err(err).Msg("failed to record login failure")

		return fmt.Errorf("failed to record login failure: %w", err)
	}

	if lockedUntil != nil {
		log.Warn().Str("username", account.Username).Msg("account locked after too many failed logins")
	}

	// The attempt that trips the lock still answers as a credential
	// failure; the lock itself is only reported from the next attempt on.
	remaining := max(0, maxFailedAttempts-attempts)

	return failure.Unauthorized(fmt.Sprintf("%s, %d attempt(s) remaining", invalidCredentialsMsg, remaining)) // nolint:wrapcheck
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	taken, err := s.repo.Exist(ctx, usernameFilter(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if username is taken")

		return res, fmt.Errorf("failed to check if username is taken: %w", err)
	}

	if taken {
		return res, failure.Conflict("username already exists") // nolint:wrapcheck
	}

	if err = password.CheckStrength(req.Password); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	account := req.ToModel(hash, user)

	if err = s.repo.Insert(ctx, account); err != nil {
		log.Error().Err(err).Msg("failed to create account")

		return res, fmt.Errorf("failed to create account: %w", err)
	}

	res.FromModel(account)

	return res, nil
}

// Unlock clears the lockout state. It reports false, without error, when the
// username does not exist.
func (s *serviceImpl) Unlock(ctx context.Context, username string) (unlocked bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unlock")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.repo.Get(ctx, usernameFilter(username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return false, fmt.Errorf("failed to get account: %w", err)
	}

	if account.ID == constant.Empty {
		return false, nil
	}

	if err = s.repo.ClearLock(ctx, account.ID); err != nil {
		log.Error().Err(err).Msg("failed to clear account lock")

		return false, fmt.Errorf("failed to clear account lock: %w", err)
	}

	return true, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, accountID string, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.repo.Get(ctx, idFilter(accountID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return fmt.Errorf("failed to get account: %w", err)
	}

	if account.ID == constant.Empty {
		return failure.NotFound("account not found") // nolint:wrapcheck
	}

	if err = password.Verify(req.CurrentPassword, account.Password); err != nil {
		return failure.Unauthorized("current password is incorrect") // nolint:wrapcheck
	}

	if err = password.CheckStrength(req.NewPassword); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	fields := map[string]any{
		accountModel.FieldPassword:           hash,
		accountModel.FieldMustChangePassword: false,
		constant.FieldModifiedAt:             timezone.Now(),
	}

	if err = s.repo.Update(ctx, fields, idFilter(accountID)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	pair, err := s.jwt.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token rejected")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(pair)

	return res, nil
}

// remainingMinutes rounds the remaining lock window up to whole minutes, so
// the message never promises an earlier retry than the lock allows.
func remainingMinutes(now, until time.Time) int {
	remaining := until.Sub(now)

	minutes := int(remaining / time.Minute)
	if remaining%time.Minute > 0 {
		minutes++
	}

	return minutes
}

func usernameFilter(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    accountModel.FieldUsername,
				Table:    accountModel.TableName,
				Value:    username,
				Operator: gDto.FilterOperatorEq,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func idFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    accountModel.FieldID,
				Table:    accountModel.TableName,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
