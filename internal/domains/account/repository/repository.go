package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/account/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"
	"context"
	"fmt"
	"time"
)

type Account interface {
	Insert(ctx context.Context, model model.Account) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Account, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Account, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	RecordFailure(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error
	RecordSuccess(ctx context.Context, id string, at time.Time) error
	ClearLock(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Account]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Account {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Account](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// RecordFailure stores the new counter and optional lock in one statement,
// so concurrent failures cannot interleave counter and lock writes.
func (repo *repositoryImpl) RecordFailure(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".RecordFailure")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET failed_attempts = :failed_attempts, locked_until = :locked_until WHERE id = :id`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"id":              id,
		"failed_attempts": attempts,
		"locked_until":    lockedUntil,
	}

	_, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to record login failure: %w", err)
	}

	return nil
}

// RecordSuccess resets the counters and stamps the login time.
func (repo *repositoryImpl) RecordSuccess(ctx context.Context, id string, at time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".RecordSuccess")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET failed_attempts = 0, locked_until = NULL, last_login = :last_login WHERE id = :id`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"id":         id,
		"last_login": at,
	}

	_, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to record login success: %w", err)
	}

	return nil
}

// ClearLock resets the counters without touching last_login. Used by the
// administrative unlock.
func (repo *repositoryImpl) ClearLock(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ClearLock")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET failed_attempts = 0, locked_until = NULL WHERE id = :id`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{"id": id})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to clear account lock: %w", err)
	}

	return nil
}
