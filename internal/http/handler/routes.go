package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"empapi/internal/dto"
	"empapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// The export route is only mounted when exporter is non-nil.
func RegisterRoutes(app *fiber.App, db *sql.DB, empSvc service.EmployeeService, exporter service.RosterExporter) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/employees", ListEmployees(empSvc))
	app.Post("/employees", CreateEmployee(empSvc))
	if exporter != nil {
		app.Post("/employees/export", ExportEmployees(exporter))
	}
	app.Get("/employees/:id", GetEmployee(empSvc))
	app.Put("/employees/:id", UpdateEmployee(empSvc))
	app.Delete("/employees/:id", DeleteEmployee(empSvc))
}

// HealthCheck pings the database. A nil db (in-memory storage) is always healthy.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]string
// @Failure  503 {object} errorPayload
// @Router   /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 while the process is up.
//
// @Summary  Liveness probe
// @Tags     health
// @Success  200
// @Router   /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

func parseID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	return id, err == nil
}

// ListEmployees returns every employee.
//
// @Summary  List employees
// @Tags     employees
// @Produce  json
// @Success  200 {object} model.Envelope[[]dto.EmployeeView]
// @Failure  500 {object} errorPayload
// @Router   /employees [get]
func ListEmployees(svc service.EmployeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		env, err := svc.GetAll(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusOK).JSON(env)
	}
}

// GetEmployee returns one employee, or 404 with an empty envelope.
//
// @Summary  Get an employee
// @Tags     employees
// @Produce  json
// @Param    id  path  int  true  "Employee ID"
// @Success  200 {object} model.Envelope[dto.EmployeeView]
// @Failure  400 {object} errorPayload
// @Failure  404 {object} model.Envelope[dto.EmployeeView]
// @Failure  500 {object} errorPayload
// @Router   /employees/{id} [get]
func GetEmployee(svc service.EmployeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		env, err := svc.GetByID(c.UserContext(), id)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if !env.Present() {
			return c.Status(fiber.StatusNotFound).JSON(env)
		}
		return c.Status(fiber.StatusOK).JSON(env)
	}
}

// CreateEmployee adds an employee and returns the whole collection.
// The status is 200 whether or not the envelope carries data.
//
// @Summary  Create an employee
// @Tags     employees
// @Accept   json
// @Produce  json
// @Param    employee  body  dto.CreateEmployeeRequest  true  "New employee"
// @Success  200 {object} model.Envelope[[]dto.EmployeeView]
// @Failure  400 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /employees [post]
func CreateEmployee(svc service.EmployeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.CreateEmployeeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if msg, ok := validate.Struct(req); !ok {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", msg)
		}
		env, err := svc.Add(c.UserContext(), req)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusOK).JSON(env)
	}
}

// UpdateEmployee replaces an employee, or answers 404 with an empty envelope.
//
// @Summary  Update an employee
// @Tags     employees
// @Accept   json
// @Produce  json
// @Param    id        path  int                        true  "Employee ID"
// @Param    employee  body  dto.UpdateEmployeeRequest  true  "Replacement fields"
// @Success  200 {object} model.Envelope[dto.EmployeeView]
// @Failure  400 {object} errorPayload
// @Failure  404 {object} model.Envelope[dto.EmployeeView]
// @Failure  500 {object} errorPayload
// @Router   /employees/{id} [put]
func UpdateEmployee(svc service.EmployeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req dto.UpdateEmployeeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if msg, ok := validate.Struct(req); !ok {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", msg)
		}
		env, err := svc.Update(c.UserContext(), id, req)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if !env.Present() {
			return c.Status(fiber.StatusNotFound).JSON(env)
		}
		return c.Status(fiber.StatusOK).JSON(env)
	}
}

// DeleteEmployee removes an employee and returns the remaining collection.
// The status is 200 whether or not the envelope carries data.
//
// @Summary  Delete an employee
// @Tags     employees
// @Produce  json
// @Param    id  path  int  true  "Employee ID"
// @Success  200 {object} model.Envelope[[]dto.EmployeeView]
// @Failure  400 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /employees/{id} [delete]
func DeleteEmployee(svc service.EmployeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		env, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusOK).JSON(env)
	}
}

// ExportEmployees uploads an xlsx roster and returns a presigned download link.
//
// @Summary  Export the roster
// @Tags     employees
// @Produce  json
// @Success  201 {object} service.ExportResult
// @Failure  409 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /employees/export [post]
func ExportEmployees(exporter service.RosterExporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := exporter.Export(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrNoEmployees) {
				return writeError(c, fiber.StatusConflict, "NO_EMPLOYEES", "there are no employees to export")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
