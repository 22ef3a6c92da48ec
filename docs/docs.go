// Package docs holds the OpenAPI document served under /swagger.
// Keep it in step with the godoc annotations on internal/http/handler.
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
        "/health": {
            "get": {
                "description": "Checks database connectivity.",
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
        },
        "/api/upload": {
            "post": {
                "description": "Stores one file in object storage under an existing or newly created project.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "Upload a lease document",
                "parameters": [
                    {"type": "file", "description": "Lease document (PDF, DOC, DOCX, JPEG, PNG)", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Existing project id", "name": "projectId", "in": "formData"},
                    {"type": "string", "description": "Name of a project to create", "name": "projectName", "in": "formData"},
                    {"type": "string", "description": "Description of the new project", "name": "projectDescription", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.uploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/process-document": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "Extract and structure a stored document",
                "parameters": [
                    {"description": "Stored file reference", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ProcessInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.processResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/save-lease-data": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "Persist an analysed lease",
                "parameters": [
                    {"description": "Lease data and its project", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.saveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.saveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/intake": {
            "post": {
                "description": "Uploads, extracts, analyses and saves every file concurrently. Per-file failures are reported in the document list.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "Run the full pipeline for one or more files",
                "parameters": [
                    {"type": "file", "description": "One or more lease documents", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Existing project id", "name": "projectId", "in": "formData"},
                    {"type": "string", "description": "Name of a project to create", "name": "projectName", "in": "formData"},
                    {"type": "string", "description": "Description of the new project", "name": "projectDescription", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.intakeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Rows to skip", "name": "offset", "in": "query"},
                    {"type": "string", "description": "Case-insensitive name filter", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.projectListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a project",
                "parameters": [
                    {"description": "Project", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createProjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.projectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/projects/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project",
                "parameters": [{"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.projectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "description": "Stored files are not removed.",
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Delete a project and its leases",
                "parameters": [{"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/projects/{id}/leases": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List the leases of a project",
                "parameters": [
                    {"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "default": 10, "description": "Page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.leaseListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/projects/{id}/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["projects"],
                "summary": "Download a project's leases as XLSX",
                "parameters": [{"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/leases/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leases"],
                "summary": "Get a persisted lease",
                "parameters": [{"type": "string", "description": "Lease id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.leaseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Dashboard totals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "code": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "handler.successResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "handler.uploadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "fileUrl": {"type": "string"},
                "publicId": {"type": "string"},
                "fileName": {"type": "string"},
                "fileSize": {"type": "integer"},
                "projectId": {"type": "string"}
            }
        },
        "service.ProcessInput": {
            "type": "object",
            "properties": {
                "fileUrl": {"type": "string"},
                "fileName": {"type": "string"},
                "projectId": {"type": "string"}
            }
        },
        "handler.processResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "leaseData": {"$ref": "#/definitions/model.LeaseRecord"},
                "extractedText": {"type": "string"},
                "fileName": {"type": "string"},
                "projectId": {"type": "string"}
            }
        },
        "handler.saveRequest": {
            "type": "object",
            "properties": {
                "leaseData": {"$ref": "#/definitions/model.LeaseRecord"},
                "projectId": {"type": "string"},
                "fileName": {"type": "string"},
                "fileUrl": {"type": "string"}
            }
        },
        "handler.saveResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "leaseId": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.intakeResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "failed": {"type": "integer"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/pipeline.Document"}},
                "events": {"type": "array", "items": {"$ref": "#/definitions/pipeline.Event"}}
            }
        },
        "pipeline.Document": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "file_name": {"type": "string"},
                "file_size": {"type": "integer"},
                "content_type": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "uploading", "processing", "completed", "error"]},
                "progress": {"type": "integer"},
                "error": {"type": "string"},
                "project_id": {"type": "string"},
                "file_url": {"type": "string"},
                "lease_id": {"type": "string"},
                "lease_data": {"$ref": "#/definitions/model.LeaseRecord"}
            }
        },
        "pipeline.Event": {
            "type": "object",
            "properties": {
                "document_id": {"type": "string"},
                "file_name": {"type": "string"},
                "status": {"type": "string"},
                "progress": {"type": "integer"},
                "error": {"type": "string"},
                "at": {"type": "string"}
            }
        },
        "handler.createProjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "model.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "document_count": {"type": "integer"},
                "status": {"type": "string", "enum": ["active", "completed", "pending"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.projectResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/model.Project"}
            }
        },
        "handler.projectListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Project"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "model.LeaseRecord": {
            "type": "object",
            "properties": {
                "tenant": {"type": "object"},
                "landlord": {"type": "object"},
                "property": {"type": "object"},
                "financialTerms": {"type": "object"},
                "leaseTerms": {"type": "object"},
                "specialProvisions": {"type": "object"},
                "legalClauses": {"type": "object"}
            }
        },
        "model.LeaseDocument": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "project_id": {"type": "string"},
                "file_name": {"type": "string"},
                "file_url": {"type": "string"},
                "lease": {"$ref": "#/definitions/model.LeaseRecord"},
                "status": {"type": "string"},
                "processed_at": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handler.leaseResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/model.LeaseDocument"}
            }
        },
        "handler.leaseListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.LeaseDocument"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "model.Stats": {
            "type": "object",
            "properties": {
                "total_projects": {"type": "integer"},
                "total_documents": {"type": "integer"},
                "processed_this_month": {"type": "integer"}
            }
        },
        "handler.statsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/model.Stats"}
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
	Title:            "Lease Intake API",
	Description:      "Upload lease documents, extract their text, structure it with an LLM and store the result per project.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
