package authenticating

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/validation"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)
	CreateEmployee(ctx context.Context, actor domain.Actor, req *domain.CreateEmployeeRequest) (*domain.Employee, error)
	StartSession(ctx context.Context, req *domain.StartSessionRequest) (*domain.Session, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	employees repository.EmployeeRepository
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(employees repository.EmployeeRepository, cfg *config.Config) Authenticator {
	return &Service{
		employees: employees,
		secret:    []byte(cfg.Auth.Secret),
		ttl:       cfg.Auth.SessionTTL,
		now:       time.Now,
	}
}

func (s *Service) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar funcionários")
	}
	return employees, nil
}

func (s *Service) CreateEmployee(ctx context.Context, actor domain.Actor, req *domain.CreateEmployeeRequest) (*domain.Employee, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, err)
	}

	employee := &domain.Employee{Name: req.Name, Role: req.Role}
	if employee.Role == "" {
		employee.Role = domain.RoleStaff
	}

	if req.Pin != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
		if err != nil {
			return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash do PIN")
		}
		employee.PinHash = string(hashed)
	}

	employee, err := s.employees.Create(ctx, employee)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewAuthError(ErrEmployeeExists, apiErrors.ErrDuplicate, map[string]any{"name": req.Name})
		}
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar funcionário")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"employee_id": employee.ID,
		"role":        employee.Role,
		"created_by":  actor.EmployeeName,
	}).Info("Funcionário cadastrado")

	return employee, nil
}

// StartSession abre a sessão do funcionário no canal escolhido. Funcionários
// sem PIN cadastrado entram apenas com a seleção.
func (s *Service) StartSession(ctx context.Context, req *domain.StartSessionRequest) (*domain.Session, error) {
	if err := validation.Struct(req); err != nil {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, err)
	}

	employee, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewEmployeeAuthError(ErrEmployeeNotFound, apiErrors.ErrNotFound, req.EmployeeID, nil)
		}
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar funcionário")
	}

	if employee.HasPin {
		if err := bcrypt.CompareHashAndPassword([]byte(employee.PinHash), []byte(req.Pin)); err != nil {
			log.ForContext(ctx).WithField("employee_id", employee.ID).Warn("PIN incorreto")
			return nil, NewEmployeeAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, employee.ID, "PIN incorreto")
		}
	}

	expiresAt := s.now().Add(s.ttl)
	token, err := s.generateJWT(employee, req.Context, expiresAt)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de sessão")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"employee_id": employee.ID,
		"context":     req.Context,
	}).Info("Sessão iniciada")

	return &domain.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Employee:  employee,
		Context:   req.Context,
	}, nil
}

func (s *Service) generateJWT(employee *domain.Employee, c domain.Context, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		EmployeeRole: employee.Role,
		Context:      c,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(employee.ID, 10),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, nil)
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || !claims.Context.IsChannel() {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, nil)
	}

	return claims, nil
}
