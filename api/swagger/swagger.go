package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SpeakSmart API",
        "description": "Course marketplace backend: class lifecycle, selections, payments and enrollments.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Credential issuance"},
        {"name": "Users", "description": "Profile management"},
        {"name": "Instructors", "description": "Instructor directory"},
        {"name": "Classes", "description": "Class lifecycle and catalog"},
        {"name": "Selections", "description": "Provisional class selections"},
        {"name": "Payments", "description": "Charge reservation and history"},
        {"name": "Enrollments", "description": "Enrollment completion and history"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "Record store unavailable"}
                }
            }
        },
        "/credentials": {
            "post": {
                "tags": ["Auth"],
                "summary": "Issue an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CredentialRequest"}}
                ],
                "responses": {
                    "200": {"description": "Signed credential"},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List all users (admin)",
                "responses": {
                    "200": {"description": "Users"},
                    "401": {"description": "Missing or invalid credential", "schema": {"$ref": "#/definitions/APIError"}},
                    "403": {"description": "Insufficient role", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/users/{email}": {
            "put": {
                "tags": ["Users"],
                "summary": "Create or refresh a profile",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stored profile"}
                }
            },
            "get": {
                "tags": ["Users"],
                "summary": "Get a profile (self or admin)",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Profile"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/instructors": {
            "get": {
                "tags": ["Instructors"],
                "summary": "List instructors",
                "responses": {
                    "200": {"description": "Instructors"}
                }
            }
        },
        "/instructors/popular": {
            "get": {
                "tags": ["Instructors"],
                "summary": "List most popular instructors by approved-class enrollment",
                "responses": {
                    "200": {"description": "Ranked instructors"}
                }
            }
        },
        "/instructors/{email}/classes": {
            "get": {
                "tags": ["Instructors"],
                "summary": "List an instructor's classes",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Classes"}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved"]}
                ],
                "responses": {
                    "200": {"description": "Classes"}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Propose a class (instructor or admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Pending class"},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/classes/popular": {
            "get": {
                "tags": ["Classes"],
                "summary": "List the most-enrolled approved classes",
                "responses": {
                    "200": {"description": "Popular classes"}
                }
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Class"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "tags": ["Classes"],
                "summary": "Update class fields (instructor or admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated class"}
                }
            },
            "patch": {
                "tags": ["Classes"],
                "summary": "Update class fields (instructor or admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated class"}
                }
            }
        },
        "/classes/{id}/approve": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Approve a class (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Approved class"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/selections": {
            "post": {
                "tags": ["Selections"],
                "summary": "Select a class for later enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Selection"},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/selections/{email}": {
            "get": {
                "tags": ["Selections"],
                "summary": "List a student's selections (self or admin)",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Selections"}
                }
            }
        },
        "/selections/{email}/{id}": {
            "get": {
                "tags": ["Selections"],
                "summary": "Fetch one of a student's selections (self or admin)",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Selection"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/selections/{id}": {
            "delete": {
                "tags": ["Selections"],
                "summary": "Remove a selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/payment-reservations": {
            "post": {
                "tags": ["Payments"],
                "summary": "Reserve a charge for a class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Reservation secret"},
                    "400": {"description": "Price mismatch", "schema": {"$ref": "#/definitions/APIError"}},
                    "502": {"description": "Gateway rejection", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/payments/{email}": {
            "get": {
                "tags": ["Payments"],
                "summary": "List a student's payments (self or admin)",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Payments"}
                }
            }
        },
        "/payments/{email}/{id}/receipt": {
            "get": {
                "tags": ["Payments"],
                "summary": "Download a payment receipt as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF receipt"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Complete an enrollment after payment confirmation",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CompleteEnrollmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Enrollment"},
                    "500": {"description": "Partial completion", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/enrollments/{email}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List a student's enrollments (self or admin)",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Enrollments"}
                }
            }
        }
    },
    "definitions": {
        "CredentialRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "instructor", "admin"]}
            }
        },
        "UpsertUserRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "photo_url": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "instructor", "admin"]}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "required": ["name", "instructor_name", "instructor_email", "price"],
            "properties": {
                "name": {"type": "string"},
                "image_url": {"type": "string"},
                "instructor_name": {"type": "string"},
                "instructor_email": {"type": "string"},
                "price": {"type": "integer"},
                "available_seats": {"type": "integer"}
            }
        },
        "UpdateClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "image_url": {"type": "string"},
                "price": {"type": "integer"},
                "available_seats": {"type": "integer"}
            }
        },
        "SelectClassRequest": {
            "type": "object",
            "required": ["student_email", "class_id"],
            "properties": {
                "student_email": {"type": "string"},
                "class_id": {"type": "string"}
            }
        },
        "ReservationRequest": {
            "type": "object",
            "required": ["class_id", "price"],
            "properties": {
                "class_id": {"type": "string"},
                "price": {"type": "integer"}
            }
        },
        "CompleteEnrollmentRequest": {
            "type": "object",
            "required": ["student_email", "class_id", "amount", "transaction_id"],
            "properties": {
                "student_email": {"type": "string"},
                "class_id": {"type": "string"},
                "amount": {"type": "integer"},
                "transaction_id": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "boolean"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
