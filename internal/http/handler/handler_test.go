package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"empapi/internal/dto"
	"empapi/internal/http/middleware"
	"empapi/internal/model"
	"empapi/internal/service"
	serviceMocks "empapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	sree    = dto.EmployeeView{ID: 1, Name: "Sree", MailID: "sree@gmail.com", JobTitle: model.JobTitleProjectLead, Mission: model.MissionSCV, ProjectName: "XYZ", ReportsTo: "Jack"}
	karthik = dto.EmployeeView{ID: 2, Name: "Karthik", MailID: "karthik@gmail.com", JobTitle: model.JobTitleProjectManager, Mission: model.MissionD2T, ProjectName: "ABC", ReportsTo: "Jill"}
	shiva   = dto.EmployeeView{ID: 3, Name: "Shiva", MailID: "shiva@gmail.com", JobTitle: model.JobTitleProjectEngineer, Mission: model.MissionGUI, ProjectName: "ABC", ReportsTo: "Tim"}
)

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeList(t *testing.T, resp *http.Response) model.Envelope[[]dto.EmployeeView] {
	t.Helper()
	var env model.Envelope[[]dto.EmployeeView]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func decodeOne(t *testing.T, resp *http.Response) model.Envelope[dto.EmployeeView] {
	t.Helper()
	var env model.Envelope[dto.EmployeeView]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func decodeRaw(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})

	t.Run("no database", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(nil))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListEmployees(t *testing.T) {
	mockSvc := new(serviceMocks.MockEmployeeService)
	app := fiber.New()
	app.Get("/employees", ListEmployees(mockSvc))

	t.Run("returns both sample employees", func(t *testing.T) {
		mockSvc.On("GetAll", mock.Anything).Return(model.Found([]dto.EmployeeView{sree, karthik}), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		env := decodeList(t, resp)
		got, ok := env.Get()
		assert.True(t, ok)
		assert.Equal(t, []dto.EmployeeView{sree, karthik}, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("absent payload is still 200", func(t *testing.T) {
		mockSvc.On("GetAll", mock.Anything).Return(model.Empty[[]dto.EmployeeView](), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeRaw(t, resp)
		assert.Equal(t, false, body["success"])
		assert.Nil(t, body["data"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("GetAll", mock.Anything).Return(model.Empty[[]dto.EmployeeView](), errors.New("db error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetEmployee(t *testing.T) {
	mockSvc := new(serviceMocks.MockEmployeeService)
	app := fiber.New()
	app.Get("/employees/:id", GetEmployee(mockSvc))

	t.Run("present", func(t *testing.T) {
		mockSvc.On("GetByID", mock.Anything, 0).Return(model.Found(sree), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/employees/0", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		got, ok := decodeOne(t, resp).Get()
		assert.True(t, ok)
		assert.Equal(t, sree, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("absent is 404 with empty envelope", func(t *testing.T) {
		mockSvc.On("GetByID", mock.Anything, 0).Return(model.Empty[dto.EmployeeView](), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/employees/0", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeRaw(t, resp)
		assert.Equal(t, false, body["success"])
		assert.Nil(t, body["data"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/employees/abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("GetByID", mock.Anything, 7).Return(model.Empty[dto.EmployeeView](), errors.New("db error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/employees/7", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateEmployee(t *testing.T) {
	mockSvc := new(serviceMocks.MockEmployeeService)
	app := fiber.New()
	app.Post("/employees", CreateEmployee(mockSvc))

	newHire := dto.CreateEmployeeRequest{
		Name:        "Shiva",
		MailID:      "shiva@gmail.com",
		JobTitle:    model.JobTitleProjectEngineer,
		Mission:     model.MissionGUI,
		ProjectName: "ABC",
		ReportsTo:   "Tim",
	}

	t.Run("returns collection ending with the new employee", func(t *testing.T) {
		mockSvc.On("Add", mock.Anything, newHire).Return(model.Found([]dto.EmployeeView{sree, karthik, shiva}), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/employees", newHire))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		got, ok := decodeList(t, resp).Get()
		require.True(t, ok)
		require.Len(t, got, 3)
		assert.Equal(t, shiva, got[2])
		mockSvc.AssertExpectations(t)
	})

	t.Run("absent payload is still 200", func(t *testing.T) {
		mockSvc.On("Add", mock.Anything, newHire).Return(model.Empty[[]dto.EmployeeView](), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/employees", newHire))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, decodeList(t, resp).Present())
		mockSvc.AssertExpectations(t)
	})

	t.Run("omitted enums pass through to the service", func(t *testing.T) {
		partial := dto.CreateEmployeeRequest{Name: "Anu"}
		mockSvc.On("Add", mock.Anything, partial).Return(model.Found([]dto.EmployeeView{}), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/employees", map[string]string{"name": "Anu"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown job title", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/employees", map[string]string{"name": "X", "jobTitle": "Intern"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)
	})

	t.Run("unknown mission", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/employees", map[string]string{"name": "X", "mission": "Mars"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Add", mock.Anything, newHire).Return(model.Empty[[]dto.EmployeeView](), errors.New("db error")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/employees", newHire))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateEmployee(t *testing.T) {
	mockSvc := new(serviceMocks.MockEmployeeService)
	app := fiber.New()
	app.Put("/employees/:id", UpdateEmployee(mockSvc))

	change := dto.UpdateEmployeeRequest{
		Name:        "Sree",
		MailID:      "sree@gmail.com",
		JobTitle:    model.JobTitleProjectManager,
		Mission:     model.MissionSCV,
		ProjectName: "XYZ",
		ReportsTo:   "Jack",
	}
	promoted := sree
	promoted.JobTitle = model.JobTitleProjectManager

	t.Run("present", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, 1, change).Return(model.Found(promoted), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/employees/1", change))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		got, ok := decodeOne(t, resp).Get()
		assert.True(t, ok)
		assert.Equal(t, promoted, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("absent is 404 with empty envelope", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, 99, change).Return(model.Empty[dto.EmployeeView](), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/employees/99", change))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.False(t, decodeOne(t, resp).Present())
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/employees/1.5", change))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("unknown mission", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/employees/1", map[string]string{"mission": "Mars"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, 1, change).Return(model.Empty[dto.EmployeeView](), errors.New("db error")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/employees/1", change))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteEmployee(t *testing.T) {
	mockSvc := new(serviceMocks.MockEmployeeService)
	app := fiber.New()
	app.Delete("/employees/:id", DeleteEmployee(mockSvc))

	t.Run("returns remaining collection", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, 1).Return(model.Found([]dto.EmployeeView{karthik}), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/employees/1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		got, ok := decodeList(t, resp).Get()
		assert.True(t, ok)
		assert.Equal(t, []dto.EmployeeView{karthik}, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("absent payload is still 200", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, 42).Return(model.Empty[[]dto.EmployeeView](), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/employees/42", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, decodeList(t, resp).Present())
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/employees/x", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, 1).Return(model.Empty[[]dto.EmployeeView](), errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/employees/1", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestExportEmployees(t *testing.T) {
	mockExp := new(serviceMocks.MockRosterExporter)
	app := fiber.New()
	app.Post("/employees/export", ExportEmployees(mockExp))

	t.Run("created", func(t *testing.T) {
		res := &service.ExportResult{Key: "exports/a.xlsx", URL: "http://minio/exports/a.xlsx", Count: 2}
		mockExp.On("Export", mock.Anything).Return(res, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/employees/export", nil))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got service.ExportResult
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, *res, got)
		mockExp.AssertExpectations(t)
	})

	t.Run("nothing to export", func(t *testing.T) {
		mockExp.On("Export", mock.Anything).Return(nil, service.ErrNoEmployees).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/employees/export", nil))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NO_EMPLOYEES", res.Error.Code)
		mockExp.AssertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		mockExp.On("Export", mock.Anything).Return(nil, errors.New("bucket gone")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/employees/export", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockExp.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockEmployeeService)
	RegisterRoutes(app, nil, mockSvc, nil)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("employee routes are mounted", func(t *testing.T) {
		mockSvc.On("GetAll", mock.Anything).Return(model.Found([]dto.EmployeeView{sree, karthik}), nil).Once()
		mockSvc.On("GetByID", mock.Anything, 2).Return(model.Found(karthik), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/employees", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/employees/2", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("export absent without storage", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/employees/export", nil))

		assert.NotEqual(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"bad request", fiber.ErrBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{"too large", fiber.ErrRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE"},
		{"unmapped fiber status", fiber.ErrTeapot, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
			app.Use(middleware.RequestID())
			app.Get("/fail", func(c *fiber.Ctx) error { return tt.err })

			req := httptest.NewRequest(http.MethodGet, "/fail", nil)
			req.Header.Set(middleware.RequestIDHeader, "rid-1")
			resp, _ := app.Test(req)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var res errorPayload
			json.NewDecoder(resp.Body).Decode(&res)
			assert.Equal(t, tt.wantCode, res.Error.Code)
			assert.Equal(t, "rid-1", res.RequestID)
		})
	}
}

func TestErrorHandler_RecoveredPanic(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Get("/employees/:id", func(c *fiber.Ctx) error {
		panic("nil map write")
	})

	req := httptest.NewRequest(http.MethodGet, "/employees/7", nil)
	req.Header.Set(middleware.RequestIDHeader, "rid-panic")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var res errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
	assert.Equal(t, "internal server error", res.Error.Message)
	assert.Equal(t, "rid-panic", res.RequestID)
}
