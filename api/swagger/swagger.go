package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CampusMate Reminder API",
        "description": "Class, task and advising reminder scheduler",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Admin", "description": "Manual scheduler triggers"},
        {"name": "Tasks", "description": "Due-dated coursework"},
        {"name": "Exceptions", "description": "Per-date schedule overrides"},
        {"name": "Advising", "description": "Advising slot assignments"},
        {"name": "Users", "description": "Profile and timetable"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/admin/schedule/run": {
            "post": {
                "tags": ["Admin"],
                "summary": "Run the reminder scheduler now",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RunScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Run summary"},
                    "401": {"description": "Invalid admin secret"}
                }
            }
        },
        "/api/v1/admin/schedule/reset": {
            "post": {
                "tags": ["Admin"],
                "summary": "Purge the queue and reschedule everything",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Reset summary"},
                    "401": {"description": "Invalid admin secret"}
                }
            }
        },
        "/api/v1/users/{id}/tasks": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Create a task and schedule its reminders",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Task created"}
                }
            }
        },
        "/api/v1/users/{id}/tasks/{taskId}": {
            "delete": {
                "tags": ["Tasks"],
                "summary": "Mark a task completed",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "taskId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Completed"}
                }
            }
        },
        "/api/v1/users/{id}/exceptions": {
            "post": {
                "tags": ["Exceptions"],
                "summary": "Record a schedule exception for a date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExceptionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Exception recorded"}
                }
            }
        },
        "/api/v1/users/{id}/timetable": {
            "put": {
                "tags": ["Users"],
                "summary": "Replace the weekly timetable",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceTimetableRequest"}}
                ],
                "responses": {
                    "204": {"description": "Timetable replaced"},
                    "422": {"description": "Malformed session time"}
                }
            }
        },
        "/api/v1/users/{id}/advising/{semester}": {
            "put": {
                "tags": ["Advising"],
                "summary": "Assign or move an advising slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "path", "required": true, "type": "string"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignAdvisingSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "Assignment result"}
                }
            },
            "get": {
                "tags": ["Advising"],
                "summary": "Read the assigned advising slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Advising slot"},
                    "404": {"description": "No slot assigned"}
                }
            }
        }
    },
    "definitions": {
        "RunScheduleRequest": {
            "type": "object",
            "required": ["secret"],
            "properties": {
                "secret": {"type": "string"},
                "target": {"type": "string", "enum": ["today", "tomorrow"]}
            }
        },
        "ResetScheduleRequest": {
            "type": "object",
            "required": ["secret"],
            "properties": {
                "secret": {"type": "string"}
            }
        },
        "CreateTaskRequest": {
            "type": "object",
            "required": ["course_name", "due_date"],
            "properties": {
                "course_name": {"type": "string"},
                "type": {"type": "string"},
                "due_date": {"type": "string", "format": "date-time"}
            }
        },
        "CreateExceptionRequest": {
            "type": "object",
            "required": ["date", "course_code", "kind"],
            "properties": {
                "date": {"type": "string", "example": "2026-03-10"},
                "course_code": {"type": "string"},
                "kind": {"type": "string", "enum": ["cancellation", "makeup"]},
                "course_name": {"type": "string"},
                "start_time": {"type": "string", "example": "09:30 AM"},
                "end_time": {"type": "string", "example": "10:50 AM"},
                "room": {"type": "string"}
            }
        },
        "ReplaceTimetableRequest": {
            "type": "object",
            "required": ["weekly_timetable"],
            "properties": {
                "weekly_timetable": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {"$ref": "#/definitions/ClassSession"}
                    }
                }
            }
        },
        "ClassSession": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "courseCode": {"type": "string"},
                "startTime": {"type": "string", "example": "09:30 AM"},
                "endTime": {"type": "string", "example": "10:50 AM"},
                "room": {"type": "string"}
            }
        },
        "AssignAdvisingSlotRequest": {
            "type": "object",
            "required": ["date", "start_time"],
            "properties": {
                "date": {"type": "string", "example": "03 December 2025"},
                "start_time": {"type": "string", "example": "09:00 AM"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "CampusMate Reminder API",
	Description:      "Class, task and advising reminder scheduler",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
