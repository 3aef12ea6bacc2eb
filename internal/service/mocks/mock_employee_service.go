package mocks

import (
	"context"

	"empapi/internal/dto"
	"empapi/internal/model"
	"empapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) GetAll(ctx context.Context) (model.Envelope[[]dto.EmployeeView], error) {
	args := m.Called(ctx)
	env, _ := args.Get(0).(model.Envelope[[]dto.EmployeeView])
	return env, args.Error(1)
}

func (m *MockEmployeeService) GetByID(ctx context.Context, id int) (model.Envelope[dto.EmployeeView], error) {
	args := m.Called(ctx, id)
	env, _ := args.Get(0).(model.Envelope[dto.EmployeeView])
	return env, args.Error(1)
}

func (m *MockEmployeeService) Add(ctx context.Context, req dto.CreateEmployeeRequest) (model.Envelope[[]dto.EmployeeView], error) {
	args := m.Called(ctx, req)
	env, _ := args.Get(0).(model.Envelope[[]dto.EmployeeView])
	return env, args.Error(1)
}

func (m *MockEmployeeService) Update(ctx context.Context, id int, req dto.UpdateEmployeeRequest) (model.Envelope[dto.EmployeeView], error) {
	args := m.Called(ctx, id, req)
	env, _ := args.Get(0).(model.Envelope[dto.EmployeeView])
	return env, args.Error(1)
}

func (m *MockEmployeeService) Delete(ctx context.Context, id int) (model.Envelope[[]dto.EmployeeView], error) {
	args := m.Called(ctx, id)
	env, _ := args.Get(0).(model.Envelope[[]dto.EmployeeView])
	return env, args.Error(1)
}

type MockRosterExporter struct {
	mock.Mock
}

func (m *MockRosterExporter) Export(ctx context.Context) (*service.ExportResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
