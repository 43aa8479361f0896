package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/catalog/model"
	gDto "agenda/shared/dto"
	gRepo "agenda/shared/repository"
	"context"
)

type Catalog interface {
	Insert(ctx context.Context, model model.Service) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Service]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Catalog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Service](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
