package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/pkg/errors"

	jsoniter "github.com/json-iterator/go"
)

const (
	activitiesTable = "activities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ActivityRepository interface {
	Create(ctx context.Context, q postgres.Queryer, activity *domain.Activity) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error)
}

type activityRepository struct {
	conn *postgres.Connection
}

func NewActivityRepository(conn *postgres.Connection) ActivityRepository {
	return &activityRepository{
		conn: conn,
	}
}

func (r *activityRepository) Create(ctx context.Context, q postgres.Queryer, activity *domain.Activity) error {
	metadata := activity.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	raw, err := json.Marshal(metadata)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar metadados da atividade")
	}

	sqlQuery, args, err := squirrel.
		Insert(activitiesTable).
		Columns("type", "description", "employee_name", "context", "metadata").
		Values(activity.Type, activity.Description, activity.EmployeeName, activity.Context, string(raw)).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&activity.ID, &activity.CreatedAt); err != nil {
		return wrapError(err, "erro ao registrar atividade")
	}

	return nil
}

func (r *activityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error) {
	queryBuilder := squirrel.
		Select("id", "type", "description", "employee_name", "context", "metadata", "created_at").
		From(activitiesTable).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Context.IsChannel() {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"context": filter.Context})
	}
	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(filter.Limit))
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao listar atividades")
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		var (
			activity domain.Activity
			raw      []byte
		)
		err := rows.Scan(&activity.ID, &activity.Type, &activity.Description, &activity.EmployeeName,
			&activity.Context, &raw, &activity.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler atividade")
		}

		activity.Metadata = map[string]any{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &activity.Metadata); err != nil {
				return nil, errors.Wrap(err, "erro ao ler metadados da atividade")
			}
		}

		activities = append(activities, &activity)
	}

	return activities, rows.Err()
}
