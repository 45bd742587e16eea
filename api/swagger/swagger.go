package swagger

import (
	"bytes"
	"text/template"

	"github.com/swaggo/swag"
)

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Bimbel API",
        "description": "Back office for a tutoring centre: accounts, classes, attendance, results, finance, events and study material lending",
        "version": "1.0.0"
    },
    "basePath": "{{.BasePath}}",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Authentication"
        },
        {
            "name": "Users"
        },
        {
            "name": "Students"
        },
        {
            "name": "Classes"
        },
        {
            "name": "Attendance"
        },
        {
            "name": "TestResults"
        },
        {
            "name": "Finance"
        },
        {
            "name": "Events"
        },
        {
            "name": "Publications"
        },
        {
            "name": "Metrics"
        }
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Authenticate user and start a session",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LoginRequest"
                        }
                    }
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "End the current session",
                "responses": {
                    "204": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Current user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Change password",
                "responses": {
                    "204": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ChangePasswordRequest"
                        }
                    }
                ]
            }
        },
        "/users": {
            "get": {
                "tags": [
                    "Users"
                ],
                "summary": "List users",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "role",
                        "in": "query",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Users"
                ],
                "summary": "Create user",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Username taken",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateUserRequest"
                        }
                    }
                ]
            }
        },
        "/users/{id}": {
            "get": {
                "tags": [
                    "Users"
                ],
                "summary": "Get user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/users/{id}/student": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Get the student profile of a user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/students": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List student profiles",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        },
        "/classes": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "List classes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "grade",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "integer"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Classes"
                ],
                "summary": "Create class",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateClassRequest"
                        }
                    }
                ]
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "Get class",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/attendance": {
            "get": {
                "tags": [
                    "Attendance"
                ],
                "summary": "List attendance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "classId",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "studentId",
                        "in": "query",
                        "description": "Student profile ID",
                        "type": "integer"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Mark attendance",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/MarkAttendanceRequest"
                        }
                    }
                ]
            }
        },
        "/attendance/{id}": {
            "get": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Get attendance record",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Change attendance status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateAttendanceRequest"
                        }
                    }
                ]
            }
        },
        "/test-results": {
            "get": {
                "tags": [
                    "TestResults"
                ],
                "summary": "List test results",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "classId",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "studentId",
                        "in": "query",
                        "description": "Student profile ID",
                        "type": "integer"
                    }
                ]
            },
            "post": {
                "tags": [
                    "TestResults"
                ],
                "summary": "Record a test result",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateTestResultRequest"
                        }
                    }
                ]
            }
        },
        "/test-results/class": {
            "post": {
                "tags": [
                    "TestResults"
                ],
                "summary": "Record one test for several students",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateClassResultsRequest"
                        }
                    }
                ]
            }
        },
        "/test-results/{id}": {
            "get": {
                "tags": [
                    "TestResults"
                ],
                "summary": "Get test result",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            },
            "put": {
                "tags": [
                    "TestResults"
                ],
                "summary": "Update score and status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateTestResultRequest"
                        }
                    }
                ]
            }
        },
        "/installments": {
            "get": {
                "tags": [
                    "Finance"
                ],
                "summary": "List installments",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "query",
                        "description": "Student profile ID",
                        "type": "integer"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Finance"
                ],
                "summary": "Schedule an installment",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateInstallmentRequest"
                        }
                    }
                ]
            }
        },
        "/installments/{id}": {
            "get": {
                "tags": [
                    "Finance"
                ],
                "summary": "Get installment",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Finance"
                ],
                "summary": "Change installment status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateInstallmentRequest"
                        }
                    }
                ]
            }
        },
        "/teacher-payments": {
            "get": {
                "tags": [
                    "Finance"
                ],
                "summary": "List teacher payments",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "integer"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Finance"
                ],
                "summary": "Record a teacher payment",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateTeacherPaymentRequest"
                        }
                    }
                ]
            }
        },
        "/teacher-payments/{id}": {
            "get": {
                "tags": [
                    "Finance"
                ],
                "summary": "Get teacher payment",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Finance"
                ],
                "summary": "Change teacher payment status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateTeacherPaymentRequest"
                        }
                    }
                ]
            }
        },
        "/events": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "List events",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "upcoming",
                        "in": "query",
                        "type": "boolean"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "type": "string"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Create event",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateEventRequest"
                        }
                    }
                ]
            }
        },
        "/events/{id}": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "Get event",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/publications": {
            "get": {
                "tags": [
                    "Publications"
                ],
                "summary": "List publications",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "grade",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "lowStock",
                        "in": "query",
                        "type": "boolean"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Publications"
                ],
                "summary": "Create publication",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreatePublicationRequest"
                        }
                    }
                ]
            }
        },
        "/publications/{id}": {
            "get": {
                "tags": [
                    "Publications"
                ],
                "summary": "Get publication",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/publications/{id}/stock": {
            "put": {
                "tags": [
                    "Publications"
                ],
                "summary": "Overwrite stock counters",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RestockRequest"
                        }
                    }
                ]
            }
        },
        "/lendings": {
            "get": {
                "tags": [
                    "Publications"
                ],
                "summary": "List lendings",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "query",
                        "description": "Student profile ID",
                        "type": "integer"
                    },
                    {
                        "name": "noteId",
                        "in": "query",
                        "type": "integer"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Publications"
                ],
                "summary": "Lend a copy to a student",
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "OUT_OF_STOCK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/IssueNoteRequest"
                        }
                    }
                ]
            }
        },
        "/lendings/{id}": {
            "get": {
                "tags": [
                    "Publications"
                ],
                "summary": "Get lending",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/lendings/{id}/return": {
            "post": {
                "tags": [
                    "Publications"
                ],
                "summary": "Mark a lending returned",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReturnNoteRequest"
                        }
                    }
                ]
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": [
                    "Metrics"
                ],
                "summary": "Metrics summary",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {
                    "type": "string"
                }
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "username",
                "password"
            ]
        },
        "ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "oldPassword": {
                    "type": "string"
                },
                "newPassword": {
                    "type": "string"
                }
            },
            "required": [
                "oldPassword",
                "newPassword"
            ]
        },
        "CreateUserRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "profile": {
                    "type": "object"
                }
            },
            "required": [
                "username",
                "password",
                "fullName",
                "email",
                "role"
            ]
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "teacherId": {
                    "type": "integer"
                },
                "schedule": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "grade"
            ]
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "properties": {
                "studentId": {
                    "description": "Student profile ID",
                    "type": "integer"
                },
                "classId": {
                    "type": "integer"
                },
                "date": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "studentId",
                "classId",
                "date",
                "status"
            ]
        },
        "UpdateAttendanceRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "CreateTestResultRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "studentId": {
                    "description": "Student profile ID",
                    "type": "integer"
                },
                "classId": {
                    "type": "integer"
                },
                "date": {
                    "type": "string"
                },
                "score": {
                    "type": "number"
                },
                "maxScore": {
                    "type": "number"
                },
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "studentId",
                "classId",
                "date"
            ]
        },
        "CreateClassResultsRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "classId": {
                    "type": "integer"
                },
                "date": {
                    "type": "string"
                },
                "maxScore": {
                    "type": "number"
                },
                "status": {
                    "type": "string"
                },
                "scores": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "studentId": {
                                "type": "integer"
                            },
                            "score": {
                                "type": "number"
                            }
                        }
                    }
                }
            },
            "required": [
                "name",
                "classId",
                "date",
                "scores"
            ]
        },
        "UpdateTestResultRequest": {
            "type": "object",
            "properties": {
                "score": {
                    "type": "number"
                },
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "CreateInstallmentRequest": {
            "type": "object",
            "properties": {
                "studentId": {
                    "description": "Student profile ID",
                    "type": "integer"
                },
                "amount": {
                    "type": "number"
                },
                "dueDate": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "studentId",
                "amount",
                "dueDate"
            ]
        },
        "UpdateInstallmentRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "paymentDate": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "CreateTeacherPaymentRequest": {
            "type": "object",
            "properties": {
                "teacherId": {
                    "type": "integer"
                },
                "amount": {
                    "type": "number"
                },
                "month": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "teacherId",
                "amount",
                "month"
            ]
        },
        "UpdateTeacherPaymentRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "paymentDate": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "time": {
                    "type": "string"
                },
                "targetGrades": {
                    "type": "string"
                }
            },
            "required": [
                "title",
                "date"
            ]
        },
        "CreatePublicationRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "totalStock": {
                    "type": "integer"
                },
                "availableStock": {
                    "type": "integer"
                },
                "lowStockThreshold": {
                    "type": "integer"
                },
                "description": {
                    "type": "string"
                }
            },
            "required": [
                "title",
                "subject",
                "grade"
            ]
        },
        "RestockRequest": {
            "type": "object",
            "properties": {
                "totalStock": {
                    "type": "integer"
                },
                "availableStock": {
                    "type": "integer"
                }
            }
        },
        "IssueNoteRequest": {
            "type": "object",
            "properties": {
                "studentId": {
                    "description": "Student profile ID",
                    "type": "integer"
                },
                "noteId": {
                    "type": "integer"
                },
                "dateIssued": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            },
            "required": [
                "studentId",
                "noteId"
            ]
        },
        "ReturnNoteRequest": {
            "type": "object",
            "properties": {
                "returnDate": {
                    "type": "string"
                },
                "condition": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            }
        }
    }
}`

// BasePath is substituted into the document. main sets it to the configured API prefix.
var BasePath = "/api/v1"

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	tpl, err := template.New("swagger").Parse(docTemplate)
	if err != nil {
		return docTemplate
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, struct{ BasePath string }{BasePath}); err != nil {
		return docTemplate
	}
	return buf.String()
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
