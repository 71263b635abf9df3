// Package docs registers the Swagger document served at /swagger/index.html.
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
		"/auth/register": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Register an instructor or moderator account",
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Log in and receive a bearer token",
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/me": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Get the authenticated user",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/courses": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Courses"
				],
				"summary": "List courses",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Courses"
				],
				"summary": "Create a course",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/courses/{course_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Courses"
				],
				"summary": "Get a course",
				"parameters": [
					{
						"type": "integer",
						"description": "course_id",
						"name": "course_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/questions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Questions"
				],
				"summary": "List questions, optionally for one course",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Questions"
				],
				"summary": "Add a question to a course's question bank",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/questions/{question_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Questions"
				],
				"summary": "Get a question",
				"parameters": [
					{
						"type": "integer",
						"description": "question_id",
						"name": "question_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/papers": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Papers"
				],
				"summary": "List question papers",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Papers"
				],
				"summary": "Create a question paper",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/papers/{paper_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Papers"
				],
				"summary": "Get a question paper",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Papers"
				],
				"summary": "Update a draft paper",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Papers"
				],
				"summary": "Delete a draft paper",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/papers/{paper_id}/submit": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Papers"
				],
				"summary": "Submit a draft paper for moderation",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/papers/{paper_id}/questions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Paper Questions"
				],
				"summary": "List the questions of a paper in sequence order",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Paper Questions"
				],
				"summary": "Add a question to a draft paper",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/paper-questions/{pq_id}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Paper Questions"
				],
				"summary": "Remove a question from a draft paper",
				"parameters": [
					{
						"type": "integer",
						"description": "pq_id",
						"name": "pq_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/paper-moderation/claim/{paper_id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Paper Moderation"
				],
				"summary": "(Moderator) Claim a paper for moderation",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/paper-moderation/paper/{paper_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Paper Moderation"
				],
				"summary": "List paper moderation records of a paper",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/paper-moderation/my": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Paper Moderation"
				],
				"summary": "(Moderator) List my paper moderation records",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/paper-moderation/{id}/approve": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Paper Moderation"
				],
				"summary": "Approve a paper moderation record",
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/paper-moderation/{id}/reject": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Paper Moderation"
				],
				"summary": "Reject a paper moderation record",
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/question-moderation/claim/{paper_id}/{question_id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Question Moderation"
				],
				"summary": "(Moderator) Claim a question of a paper for moderation",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "question_id",
						"name": "question_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/question-moderation/paper/{paper_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Question Moderation"
				],
				"summary": "List question moderation records of a paper",
				"parameters": [
					{
						"type": "integer",
						"description": "paper_id",
						"name": "paper_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/question-moderation/question/{question_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Question Moderation"
				],
				"summary": "List moderation records of a question across papers",
				"parameters": [
					{
						"type": "integer",
						"description": "question_id",
						"name": "question_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/question-moderation/my": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Question Moderation"
				],
				"summary": "(Moderator) List my question moderation records",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/question-moderation/{id}/approve": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Question Moderation"
				],
				"summary": "Approve a question moderation record",
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/question-moderation/{id}/reject": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Question Moderation"
				],
				"summary": "Reject a question moderation record",
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/logs": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "(Admin) List audit log entries, newest first",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/logs/user/{user_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "(Admin) List audit log entries written by one user",
				"parameters": [
					{
						"type": "integer",
						"description": "user_id",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/logs/{log_id}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "(Admin) Delete an audit log entry",
				"parameters": [
					{
						"type": "integer",
						"description": "log_id",
						"name": "log_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/users": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "(Admin) List user accounts",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/users/{user_id}/activate": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "(Admin) Re-activate a user account",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/users/{user_id}/deactivate": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "(Admin) Deactivate a user account",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"details": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"expected": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
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
	Version:		  "1.0",
	Host:			 "localhost:8080",
	BasePath:		 "/api/v1",
	Schemes:		  []string{"http", "https"},
	Title:			"Question Paper Moderation System API",
	Description:	  "Courses, question papers and the paper-level and question-level moderation workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
