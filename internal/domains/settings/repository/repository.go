package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/settings/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"
	"context"
	"fmt"
)

type Setting interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Setting, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Setting, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Upsert(ctx context.Context, model model.Setting) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Setting]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Setting {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Setting](model.EntityName, model.TableName, model.FieldKey, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert writes a setting, replacing the value when the key already exists.
func (repo *repositoryImpl) Upsert(ctx context.Context, setting model.Setting) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Upsert")
	defer scope.End()

	query := fmt.Sprintf(`INSERT INTO %s (key, value, created_at, created_by, modified_at, modified_by)
		VALUES (:key, :value, :created_at, :created_by, :modified_at, :modified_by)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, modified_at = EXCLUDED.modified_at, modified_by = EXCLUDED.modified_by`,
		model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, setting)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}
