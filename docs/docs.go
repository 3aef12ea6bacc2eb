// Package docs holds the hand-maintained Swagger document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/employees": {
            "get": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "List employees",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope-array_dto_EmployeeView"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Create an employee",
                "parameters": [
                    {"description": "New employee", "name": "employee", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateEmployeeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope-array_dto_EmployeeView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/employees/export": {
            "post": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Export the roster",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.ExportResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Get an employee",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope-dto_EmployeeView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.Envelope-dto_EmployeeView"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Update an employee",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true},
                    {"description": "Replacement fields", "name": "employee", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateEmployeeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope-dto_EmployeeView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.Envelope-dto_EmployeeView"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Delete an employee",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Envelope-array_dto_EmployeeView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "dto.CreateEmployeeRequest": {
            "type": "object",
            "properties": {
                "jobTitle": {"$ref": "#/definitions/model.JobTitle"},
                "mailId": {"type": "string"},
                "mission": {"$ref": "#/definitions/model.Mission"},
                "name": {"type": "string"},
                "projectName": {"type": "string"},
                "reportsTo": {"type": "string"}
            }
        },
        "dto.EmployeeView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "jobTitle": {"$ref": "#/definitions/model.JobTitle"},
                "mailId": {"type": "string"},
                "mission": {"$ref": "#/definitions/model.Mission"},
                "name": {"type": "string"},
                "projectName": {"type": "string"},
                "reportsTo": {"type": "string"}
            }
        },
        "dto.UpdateEmployeeRequest": {
            "type": "object",
            "properties": {
                "jobTitle": {"$ref": "#/definitions/model.JobTitle"},
                "mailId": {"type": "string"},
                "mission": {"$ref": "#/definitions/model.Mission"},
                "name": {"type": "string"},
                "projectName": {"type": "string"},
                "reportsTo": {"type": "string"}
            }
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.Envelope-array_dto_EmployeeView": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/dto.EmployeeView"}},
                "success": {"type": "boolean"}
            }
        },
        "model.Envelope-dto_EmployeeView": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/dto.EmployeeView"},
                "success": {"type": "boolean"}
            }
        },
        "model.JobTitle": {
            "type": "string",
            "enum": ["ProjectEngineer", "ProjectLead", "ProjectManager"],
            "x-enum-varnames": ["JobTitleProjectEngineer", "JobTitleProjectLead", "JobTitleProjectManager"]
        },
        "model.Mission": {
            "type": "string",
            "enum": ["SCV", "GUI", "D2T"],
            "x-enum-varnames": ["MissionSCV", "MissionGUI", "MissionD2T"]
        },
        "service.ExportResult": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "key": {"type": "string"},
                "url": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Employee API",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
