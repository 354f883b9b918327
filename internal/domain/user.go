package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type EmployeeRole string

const (
	RoleStaff   EmployeeRole = "staff"
	RoleManager EmployeeRole = "manager"
)

type Employee struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Role      EmployeeRole `json:"role"`
	PinHash   string       `json:"-"`
	HasPin    bool         `json:"has_pin"`
	CreatedAt time.Time    `json:"created_at"`
}

type CreateEmployeeRequest struct {
	Name string       `json:"name" validate:"required,max=100"`
	Role EmployeeRole `json:"role" validate:"omitempty,oneof=staff manager"`
	Pin  string       `json:"pin" validate:"omitempty,numeric,min=4,max=8"`
}

type StartSessionRequest struct {
	EmployeeID int64   `json:"employee_id" validate:"required,gt=0"`
	Context    Context `json:"context" validate:"required,oneof=boutique online"`
	Pin        string  `json:"pin"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Employee  *Employee `json:"employee"`
	Context   Context   `json:"context"`
}

// Claims é o conteúdo do token de sessão
type Claims struct {
	EmployeeID   int64        `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	EmployeeRole EmployeeRole `json:"employee_role"`
	Context      Context      `json:"context"`
	jwt.RegisteredClaims
}

// Actor é quem executa uma operação, derivado da sessão
type Actor struct {
	EmployeeID   int64
	EmployeeName string
	Role         EmployeeRole
	Context      Context
}

func (c *Claims) Actor() Actor {
	return Actor{
		EmployeeID:   c.EmployeeID,
		EmployeeName: c.EmployeeName,
		Role:         c.EmployeeRole,
		Context:      c.Context,
	}
}

func (a Actor) IsManager() bool {
	return a.Role == RoleManager
}
