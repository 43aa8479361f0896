package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	apptRepo "agenda/internal/domains/appointment/repository"
	"agenda/internal/domains/client/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"
	"context"
	"fmt"
)

type Client interface {
	Insert(ctx context.Context, model model.Client) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Client, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Client, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteWithAppointments(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Client]
	db           *postgres.Connection
	appointments apptRepo.Appointment
	otel         otel.Otel
}

func New(db *postgres.Connection, appointments apptRepo.Appointment, otel otel.Otel) Client {
	return &repositoryImpl{
		Repository:   gRepo.NewRepository[model.Client](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:           db,
		appointments: appointments,
		otel:         otel,
	}
}

// DeleteWithAppointments removes the client and every appointment that
// references them in one transaction, so a half-deleted client can never be
// observed.
func (repo *repositoryImpl) DeleteWithAppointments(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".DeleteWithAppointments")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = repo.appointments.DeleteByClientTx(ctx, tx, id); err != nil {
		scope.TraceError(err)

		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err // nolint:wrapcheck
	}

	if err = repo.DeleteTx(ctx, tx, idFilter(id)); err != nil {
		scope.TraceError(err)

		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err // nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func idFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Table:    model.TableName,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
