package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/appointment/model"
	catalogModel "agenda/internal/domains/catalog/model"
	staffModel "agenda/internal/domains/staff/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"
	"agenda/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Appointment interface {
	Insert(ctx context.Context, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	FindOverlapping(ctx context.Context, staffID string, start, end time.Time, excludeID string) ([]model.Appointment, error)
	InsertIfAvailable(ctx context.Context, model model.Appointment) error
	RescheduleIfAvailable(ctx context.Context, id string, start, end time.Time, staffID string) error
	GetByDateRange(ctx context.Context, from, to time.Time, staffID string) ([]model.Appointment, error)
	StatsByStatus(ctx context.Context, from, to time.Time) ([]model.StatusStat, error)
	StaffPerformance(ctx context.Context, from, to time.Time) ([]model.StaffStat, error)
	DeleteByClientTx(ctx context.Context, tx *sqlx.Tx, clientID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// overlapWhere matches non-cancelled appointments of one staff member whose
// half-open interval collides with [:start_time, :end_time). Adjacent
// intervals do not match. :exclude_id carries the appointment being moved,
// or the empty string.
const overlapWhere = `WHERE staff_id = :staff_id
	AND status != 'cancelled'
	AND start_time < :end_time
	AND end_time > :start_time
	AND (:exclude_id = '' OR id != :exclude_id)`

const overlapQuery = `SELECT COUNT(id) FROM appointments ` + overlapWhere

func (repo *repositoryImpl) FindOverlapping(ctx context.Context, staffID string, start, end time.Time, excludeID string) ([]model.Appointment, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".FindOverlapping")
	defer scope.End()

	query := `SELECT * FROM appointments ` + overlapWhere + ` ORDER BY start_time ASC`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"staff_id":   staffID,
		"start_time": start,
		"end_time":   end,
		"exclude_id": excludeID,
	}

	var models []model.Appointment

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to find overlapping appointments: %w", err)
	}

	return models, nil
}

// InsertIfAvailable re-checks the slot and inserts inside one SERIALIZABLE
// transaction, so two concurrent bookings for the same slot cannot both
// commit. Serialization failures are retried by the connection helper.
func (repo *repositoryImpl) InsertIfAvailable(ctx context.Context, appointment model.Appointment) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".InsertIfAvailable")
	defer scope.End()

	err := repo.db.WithSerializableTx(ctx, func(tx *sqlx.Tx) error {
		occupied, err := repo.slotOccupied(ctx, tx, appointment.StaffID, appointment.StartTime, appointment.EndTime, "")
		if err != nil {
			return err
		}

		if occupied {
			return failure.Conflict("time slot is already booked") // nolint:wrapcheck
		}

		return repo.InsertTx(ctx, tx, appointment) // nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)

		return err // nolint:wrapcheck
	}

	return nil
}

// RescheduleIfAvailable moves an appointment to a new interval, ignoring the
// appointment itself in the conflict check.
func (repo *repositoryImpl) RescheduleIfAvailable(ctx context.Context, id string, start, end time.Time, staffID string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".RescheduleIfAvailable")
	defer scope.End()

	err := repo.db.WithSerializableTx(ctx, func(tx *sqlx.Tx) error {
		occupied, err := repo.slotOccupied(ctx, tx, staffID, start, end, id)
		if err != nil {
			return err
		}

		if occupied {
			return failure.Conflict("time slot is already booked") // nolint:wrapcheck
		}

		fields := map[string]any{
			model.FieldStartTime:     start,
			model.FieldEndTime:       end,
			constant.FieldModifiedAt: timezone.Now(),
		}

		return repo.UpdateTx(ctx, tx, fields, idFilter(id)) // nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)

		return err // nolint:wrapcheck
	}

	return nil
}

func (repo *repositoryImpl) slotOccupied(ctx context.Context, tx *sqlx.Tx, staffID string, start, end time.Time, excludeID string) (bool, error) {
	args := map[string]any{
		"staff_id":   staffID,
		"start_time": start,
		"end_time":   end,
		"exclude_id": excludeID,
	}

	prepare, err := tx.PrepareNamedContext(ctx, overlapQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var count int

	if err = prepare.GetContext(ctx, &count, args); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to count overlapping appointments: %w", err)
	}

	return count > 0, nil
}

// GetByDateRange lists non-cancelled appointments starting in [from, to),
// ordered by start. staffID narrows to one member when non-empty.
func (repo *repositoryImpl) GetByDateRange(ctx context.Context, from, to time.Time, staffID string) ([]model.Appointment, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByDateRange")
	defer scope.End()

	query := `SELECT * FROM appointments
		WHERE start_time >= :from AND start_time < :to
		AND status != 'cancelled'
		AND (:staff_id = '' OR staff_id = :staff_id)
		ORDER BY start_time ASC`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"from":     from,
		"to":       to,
		"staff_id": staffID,
	}

	var models []model.Appointment

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get appointments by date range: %w", err)
	}

	return models, nil
}

func (repo *repositoryImpl) StatsByStatus(ctx context.Context, from, to time.Time) ([]model.StatusStat, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".StatsByStatus")
	defer scope.End()

	query := fmt.Sprintf(`SELECT a.status, COUNT(a.id) AS total, COALESCE(SUM(s.price), 0) AS income
		FROM %s a
		JOIN %s s ON s.id = a.service_id
		WHERE a.start_time >= :from AND a.start_time < :to
		GROUP BY a.status
		ORDER BY a.status ASC`, model.TableName, catalogModel.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{"from": from, "to": to}

	var stats []model.StatusStat

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &stats, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to get appointment stats: %w", err)
	}

	return stats, nil
}

func (repo *repositoryImpl) StaffPerformance(ctx context.Context, from, to time.Time) ([]model.StaffStat, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".StaffPerformance")
	defer scope.End()

	query := fmt.Sprintf(`SELECT a.staff_id, st.name AS staff_name, COUNT(a.id) AS total, COALESCE(SUM(s.price), 0) AS income
		FROM %s a
		JOIN %s s ON s.id = a.service_id
		JOIN %s st ON st.id = a.staff_id
		WHERE a.start_time >= :from AND a.start_time < :to
		AND a.status != 'cancelled'
		GROUP BY a.staff_id, st.name
		ORDER BY income DESC`, model.TableName, catalogModel.TableName, staffModel.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{"from": from, "to": to}

	var stats []model.StaffStat

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &stats, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to get staff performance: %w", err)
	}

	return stats, nil
}

// DeleteByClientTx removes every appointment of one client as part of the
// caller's transaction. Used by the client-delete cascade.
func (repo *repositoryImpl) DeleteByClientTx(ctx context.Context, tx *sqlx.Tx, clientID string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".DeleteByClientTx")
	defer scope.End()

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = :client_id", model.TableName, model.FieldClientID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := tx.NamedExecContext(ctx, query, map[string]any{"client_id": clientID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete appointments by client: %w", err)
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
