package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"empapi/internal/dto"
	"empapi/internal/model"
	"empapi/internal/repository"
)

const tracerName = "empapi/internal/service"

// EmployeeService defines the employee use cases. A missing employee is reported
// through an empty envelope; a non-nil error always means an infrastructure fault.
type EmployeeService interface {
	// GetAll returns every employee. The envelope is present even when the list is empty.
	GetAll(ctx context.Context) (model.Envelope[[]dto.EmployeeView], error)

	// GetByID returns one employee, or an empty envelope when it does not exist.
	GetByID(ctx context.Context, id int) (model.Envelope[dto.EmployeeView], error)

	// Add stores a new employee and returns the whole collection afterwards.
	Add(ctx context.Context, req dto.CreateEmployeeRequest) (model.Envelope[[]dto.EmployeeView], error)

	// Update replaces the mutable fields of an employee and returns it, or an
	// empty envelope when it does not exist.
	Update(ctx context.Context, id int, req dto.UpdateEmployeeRequest) (model.Envelope[dto.EmployeeView], error)

	// Delete removes an employee and returns the remaining collection, or an
	// empty envelope when it does not exist.
	Delete(ctx context.Context, id int) (model.Envelope[[]dto.EmployeeView], error)
}

type employeeService struct {
	repo   repository.EmployeeRepository
	tracer trace.Tracer
}

// NewEmployeeService constructs a new EmployeeService.
func NewEmployeeService(repo repository.EmployeeRepository) EmployeeService {
	return &employeeService{repo: repo, tracer: otel.Tracer(tracerName)}
}

func (s *employeeService) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "EmployeeService."+op, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (s *employeeService) list(ctx context.Context) (model.Envelope[[]dto.EmployeeView], error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return model.Empty[[]dto.EmployeeView](), fmt.Errorf("list employees: %w", err)
	}
	return model.Found(dto.NewEmployeeViews(items)), nil
}

func (s *employeeService) GetAll(ctx context.Context) (model.Envelope[[]dto.EmployeeView], error) {
	ctx, span := s.start(ctx, "GetAll")
	defer span.End()

	env, err := s.list(ctx)
	if err != nil {
		return env, fail(span, err)
	}
	return env, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int) (model.Envelope[dto.EmployeeView], error) {
	ctx, span := s.start(ctx, "GetByID", attribute.Int("employee.id", id))
	defer span.End()

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Empty[dto.EmployeeView](), nil
		}
		return model.Empty[dto.EmployeeView](), fail(span, fmt.Errorf("find employee %d: %w", id, err))
	}
	return model.Found(dto.NewEmployeeView(*e)), nil
}

func (s *employeeService) Add(ctx context.Context, req dto.CreateEmployeeRequest) (model.Envelope[[]dto.EmployeeView], error) {
	ctx, span := s.start(ctx, "Add")
	defer span.End()

	e := req.Employee()
	stored, err := s.repo.Create(ctx, &e)
	if err != nil {
		return model.Empty[[]dto.EmployeeView](), fail(span, fmt.Errorf("create employee: %w", err))
	}
	span.SetAttributes(attribute.Int("employee.id", stored.ID))

	env, err := s.list(ctx)
	if err != nil {
		return env, fail(span, err)
	}
	return env, nil
}

func (s *employeeService) Update(ctx context.Context, id int, req dto.UpdateEmployeeRequest) (model.Envelope[dto.EmployeeView], error) {
	ctx, span := s.start(ctx, "Update", attribute.Int("employee.id", id))
	defer span.End()

	e := req.Employee(id)
	stored, err := s.repo.Update(ctx, &e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Empty[dto.EmployeeView](), nil
		}
		return model.Empty[dto.EmployeeView](), fail(span, fmt.Errorf("update employee %d: %w", id, err))
	}
	return model.Found(dto.NewEmployeeView(*stored)), nil
}

func (s *employeeService) Delete(ctx context.Context, id int) (model.Envelope[[]dto.EmployeeView], error) {
	ctx, span := s.start(ctx, "Delete", attribute.Int("employee.id", id))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Empty[[]dto.EmployeeView](), nil
		}
		return model.Empty[[]dto.EmployeeView](), fail(span, fmt.Errorf("delete employee %d: %w", id, err))
	}

	env, err := s.list(ctx)
	if err != nil {
		return env, fail(span, err)
	}
	return env, nil
}
