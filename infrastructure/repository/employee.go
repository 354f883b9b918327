package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/pkg/errors"
)

const (
	employeesTable = "employees"
)

type EmployeeRepository interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
}

type employeeRepository struct {
	conn *postgres.Connection
}

func NewEmployeeRepository(conn *postgres.Connection) EmployeeRepository {
	return &employeeRepository{
		conn: conn,
	}
}

func (r *employeeRepository) selectEmployees() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "name", "role", "pin_hash", "created_at").
		From(employeesTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *employeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	sqlQuery, args, err := r.selectEmployees().OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao listar funcionários")
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	sqlQuery, args, err := r.selectEmployees().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	employee, err := scanEmployee(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		return nil, wrapError(err, "erro ao buscar funcionário")
	}

	return employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	pinHash := sql.NullString{String: employee.PinHash, Valid: employee.PinHash != ""}

	queryBuilder := squirrel.
		Insert(employeesTable).
		Columns("name", "role", "pin_hash").
		Values(employee.Name, employee.Role, pinHash).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&employee.ID, &employee.CreatedAt)
	if err != nil {
		return nil, wrapError(err, "erro ao criar funcionário")
	}

	employee.HasPin = pinHash.Valid
	return employee, nil
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		employee domain.Employee
		pinHash  sql.NullString
	)

	if err := row.Scan(&employee.ID, &employee.Name, &employee.Role, &pinHash, &employee.CreatedAt); err != nil {
		return nil, err
	}

	employee.PinHash = pinHash.String
	employee.HasPin = pinHash.Valid && pinHash.String != ""
	return &employee, nil
}
