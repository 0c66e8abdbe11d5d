// Package docs registers the OpenAPI description served under /docs.
// Regenerate with: swag init -g cmd/damoacook/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{.Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/lectures/hrd": {
            "get": {
                "description": "Returns one page of the academy's Work24 courses. Responses carry X-Cache and X-Elapsed-ms.",
                "produces": ["application/json"],
                "tags": ["Courses"],
                "summary": "List courses",
                "parameters": [
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 8, "name": "page_size", "in": "query"},
                    {"type": "string", "name": "organ", "in": "query"},
                    {"type": "string", "description": "YYYYMMDD", "name": "start", "in": "query"},
                    {"type": "string", "description": "YYYYMMDD", "name": "end", "in": "query"},
                    {"type": "string", "default": "2", "name": "sort_col", "in": "query"},
                    {"enum": ["ASC", "DESC"], "type": "string", "default": "DESC", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/paginate.Page-models_CourseRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/lectures/hrd/{courseID}": {
            "get": {
                "description": "Returns one course session. A missing institution_id is resolved from the list endpoint.",
                "produces": ["application/json"],
                "tags": ["Courses"],
                "summary": "Course detail",
                "parameters": [
                    {"type": "string", "name": "courseID", "in": "path", "required": true},
                    {"type": "string", "name": "session_index", "in": "query", "required": true},
                    {"type": "string", "name": "institution_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CourseRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/inquiries": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Inquiries"],
                "summary": "Submit an inquiry",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.InquiryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Dependency status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "models.InquiryRequest": {
            "type": "object",
            "required": ["message", "name", "phone"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "message": {"type": "string"},
                "honeypot": {"type": "string"}
            }
        },
        "models.CourseRecord": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"},
                "session_index": {"type": "string"},
                "institution_id": {"type": "string"},
                "institution_name": {"type": "string"},
                "title": {"type": "string"},
                "location": {"type": "string"},
                "contact": {"type": "string"},
                "summary": {"type": "string"},
                "satisfaction_score": {"type": "string"},
                "target_code": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "capacity": {"type": "integer"},
                "applied": {"type": "integer"},
                "remaining_slots": {"type": "integer"},
                "status_label": {"type": "string"},
                "d_day": {"type": "string"},
                "is_closed": {"type": "boolean"},
                "graduates": {"type": "string"},
                "fee": {"type": "string"},
                "employment_rate_6m": {"type": "string"},
                "non_insured_employment_rate_6m": {"type": "string"},
                "registration_url": {"type": "string"}
            }
        },
        "paginate.Page-models_CourseRecord": {
            "type": "object",
            "properties": {
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "current_page": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.CourseRecord"}}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"},
                "code": {"type": "string"},
                "data": {}
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
	Title:            "Damoacook API",
	Description:      "Course listings from the Work24 registry and the inquiry intake of the academy website.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
