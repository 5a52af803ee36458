// Package docs holds the Swagger spec served at /swagger/index.html.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/health": {"get": {"tags": ["Health"], "summary": "Health Check", "produces": ["application/json"], "responses": {"200": {"description": "API is healthy"}}}},
        "/ready": {"get": {"tags": ["Health"], "summary": "Readiness Check", "produces": ["application/json"], "responses": {"200": {"description": "API is ready"}, "503": {"description": "Database unreachable"}}}},
        "/live": {"get": {"tags": ["Health"], "summary": "Liveness Check", "produces": ["application/json"], "responses": {"200": {"description": "API is alive"}}}},
        "/api/v1/auth/register": {"post": {"tags": ["Auth"], "summary": "Register an account", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Username taken"}}}},
        "/api/v1/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/api/v1/auth/logout": {"post": {"tags": ["Auth"], "summary": "Log out", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users/me": {"get": {"tags": ["Users"], "summary": "Current user", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/users/me/color": {
            "get": {"tags": ["Users"], "summary": "Get theme color", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Users"], "summary": "Set theme color", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid color"}}}
        },
        "/api/v1/tasks": {
            "get": {"tags": ["Tasks"], "summary": "List tasks", "produces": ["application/json"], "parameters": [{"type": "integer", "name": "tasklist_id", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Tasks"], "summary": "Create a task", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "409": {"description": "Name already exists"}}}
        },
        "/api/v1/tasks/{id}": {
            "get": {"tags": ["Tasks"], "summary": "Task detail", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["Tasks"], "summary": "Delete a task", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/api/v1/tasks/{id}/complete": {"patch": {"tags": ["Tasks"], "summary": "Set complete", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/tasks/{id}/starred": {"patch": {"tags": ["Tasks"], "summary": "Set starred", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/tasks/{id}/subtasks": {
            "get": {"tags": ["Subtasks"], "summary": "List subtasks", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Subtasks"], "summary": "Create a subtask", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/subtasks/{id}": {"delete": {"tags": ["Subtasks"], "summary": "Delete a subtask", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/tasklists": {
            "get": {"tags": ["TaskLists"], "summary": "List task lists", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["TaskLists"], "summary": "Create a task list", "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "409": {"description": "Name already exists"}}}
        },
        "/api/v1/tasklists/{id}": {"delete": {"tags": ["TaskLists"], "summary": "Delete a task list", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/tasklists/{id}/tasks/{task_id}": {
            "put": {"tags": ["TaskLists"], "summary": "Attach a task", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "task_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["TaskLists"], "summary": "Detach a task", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "task_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/assistant/ask": {"post": {"tags": ["Assistant"], "summary": "Ask the assistant", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Empty or too long question"}, "409": {"description": "Unresolved reference"}, "422": {"description": "Malformed model output"}, "429": {"description": "Too many requests"}, "502": {"description": "Model unavailable"}, "504": {"description": "Model timed out"}}}},
        "/api/v1/assistant/speech": {"post": {"tags": ["Assistant"], "summary": "Ask the assistant by voice", "consumes": ["multipart/form-data"], "produces": ["application/json"], "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}, "413": {"description": "File too large"}, "502": {"description": "Transcription or model unavailable"}, "503": {"description": "Speech input disabled"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Todo Assistant API",
	Description:      "Personal task manager with a natural-language assistant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
