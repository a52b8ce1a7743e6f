// Package docs registers the OpenAPI document served under /api/swagger.
// It is maintained by hand alongside the handler annotations.
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
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/password-strength": {
            "post": {
                "description": "Classifies a password as weak, medium or strong for the signup form indicator.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Rate a password",
                "parameters": [
                    {"description": "Password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.PasswordStrengthRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "description": "Creates an account. Invalid forms return one message per offending field under \"errors\".",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User signup",
                "parameters": [
                    {"description": "Signup form", "name": "signup", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/generate-questions": {
            "post": {
                "description": "Returns five sample questions after a short delay. The input only has to carry a job description.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["interview"],
                "summary": "Generate interview questions",
                "parameters": [
                    {"description": "Job description and optional CV text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.GenerateQuestionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.GenerateQuestionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/interviews/start": {
            "post": {
                "description": "Opens an in-progress session for the given questions. A bearer token, when present, records the owner.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["interview"],
                "summary": "Start interview session",
                "parameters": [
                    {"description": "Questions and job description", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.StartInterviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.InterviewSession"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/interviews/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["interview"],
                "summary": "Get interview session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InterviewSession"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/interviews/{id}/complete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["interview"],
                "summary": "Complete interview session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InterviewSession"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/interviews/{id}/export": {
            "get": {
                "description": "Downloads the questions and latest answers as Excel or CSV.",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv"],
                "tags": ["interview"],
                "summary": "Export interview transcript",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Export format (xlsx, csv). Default: xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/interviews/{id}/responses": {
            "post": {
                "description": "Appends an answer to an in-progress session. Completed sessions reject further answers.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["interview"],
                "summary": "Record an answer",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Answer", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.InterviewResponse"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.InterviewSession"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/upload-cv": {
            "post": {
                "description": "Accepts a CV as multipart field \"file\" and returns a placeholder parse of its first bytes.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["interview"],
                "summary": "Upload CV",
                "parameters": [
                    {"type": "file", "description": "CV file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UploadCVResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "domain.GenerateQuestionsRequest": {
            "type": "object",
            "properties": {
                "cvContent": {"type": "string"},
                "jobDescription": {"type": "string"}
            }
        },
        "domain.GenerateQuestionsResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.InterviewQuestion"}}
            }
        },
        "domain.InterviewQuestion": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "enum": ["technical", "behavioral", "experience"]},
                "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
                "id": {"type": "string"},
                "question": {"type": "string"}
            }
        },
        "domain.InterviewResponse": {
            "type": "object",
            "required": ["questionId"],
            "properties": {
                "answer": {"type": "string"},
                "audio": {"type": "string", "format": "byte"},
                "duration": {"type": "number"},
                "questionId": {"type": "string"}
            }
        },
        "domain.InterviewSession": {
            "type": "object",
            "properties": {
                "endedAt": {"type": "string"},
                "id": {"type": "string"},
                "jobDescription": {"type": "string"},
                "jobTitle": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.InterviewQuestion"}},
                "responses": {"type": "array", "items": {"$ref": "#/definitions/domain.InterviewResponse"}},
                "startedAt": {"type": "string"},
                "status": {"type": "string", "enum": ["not-started", "in-progress", "completed"]},
                "userId": {"type": "string"}
            }
        },
        "domain.SignupRequest": {
            "type": "object",
            "properties": {
                "acceptTerms": {"type": "boolean"},
                "confirmPassword": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "domain.StartInterviewRequest": {
            "type": "object",
            "properties": {
                "fileName": {"type": "string"},
                "jobDescription": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.InterviewQuestion"}}
            }
        },
        "domain.UploadCVResponse": {
            "type": "object",
            "properties": {
                "fileName": {"type": "string"},
                "message": {"type": "string"},
                "parsedContent": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "v1.PasswordStrengthRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Mock Interview API",
	Description:      "Mock CV upload, question generation and interview sessions for the practice workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
