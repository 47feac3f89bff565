// Package docs holds the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g internal/platform/httpserver/server.go -o internal/platform/httpserver/docs
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
		"/v1/forms/kinds/{kind}/current": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"form-registry"
				],
				"summary": "Get the active form config",
				"parameters": [
					{
						"type": "string",
						"name": "kind",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/forms/configs/{config_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"form-registry"
				],
				"summary": "Get a form config version",
				"parameters": [
					{
						"type": "string",
						"name": "config_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/forms/validate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"form-registry"
				],
				"summary": "Dry-run validate a payload",
				"parameters": [
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/admin/forms": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"form-registry-admin"
				],
				"summary": "List form config versions",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "kind",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"form-registry-admin"
				],
				"summary": "Publish a form config version",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/admin/forms/{config_id}/activate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"form-registry-admin"
				],
				"summary": "Activate a form config version",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "config_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/admin/forms/{config_id}/deactivate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"form-registry-admin"
				],
				"summary": "Deactivate a form config version",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "config_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/surveys/submissions": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"surveys"
				],
				"summary": "Submit the active survey",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"surveys"
				],
				"summary": "List the caller's survey submissions",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"name": "page",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/surveys/submissions/{submission_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"surveys"
				],
				"summary": "Get one of the caller's survey submissions",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "submission_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/admin/surveys/submissions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"surveys-admin"
				],
				"summary": "List survey submissions for a config",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "config_id",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "page",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/tasks": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks"
				],
				"summary": "List claimable tasks",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "offset",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/tasks/{task_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks"
				],
				"summary": "Get a task with the caller's claim",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "task_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/tasks/{task_id}/claim": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks"
				],
				"summary": "Claim a task",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "task_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/claims": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"claims"
				],
				"summary": "List the caller's claims",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "status",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/claims/stats": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"claims"
				],
				"summary": "Get the caller's claim statistics",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/claims/{claim_id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"claims"
				],
				"summary": "Get a claim with its task and submission",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "claim_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/claims/{claim_id}/submit": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"claims"
				],
				"summary": "Submit work for a claim",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "claim_id",
						"in": "path",
						"required": true
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/claims/{claim_id}/cancel": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"claims"
				],
				"summary": "Cancel a claim",
				"parameters": [
					{
						"type": "string",
						"name": "X-User-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "claim_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/admin/tasks": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks-admin"
				],
				"summary": "Create a task",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/admin/tasks/{task_id}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks-admin"
				],
				"summary": "Edit a task's title, reward or participant cap",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "task_id",
						"in": "path",
						"required": true
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					},
					"409": {
						"description": "Conflict"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/admin/tasks/{task_id}/status": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks-admin"
				],
				"summary": "Change a task status",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "task_id",
						"in": "path",
						"required": true
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/v1/admin/submissions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks-admin"
				],
				"summary": "List submissions awaiting review",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/v1/admin/submissions/history": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks-admin"
				],
				"summary": "List submissions in any review state",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "task_id",
						"in": "query",
						"required": false
					},
					{
						"type": "string",
						"name": "status",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query",
						"required": false
					},
					{
						"type": "integer",
						"name": "offset",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					}
				}
			}
		},
		"/v1/admin/submissions/{submission_id}/review": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks-admin"
				],
				"summary": "Review a submission",
				"parameters": [
					{
						"type": "string",
						"name": "X-Admin-Id",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "submission_id",
						"in": "path",
						"required": true
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"404": {
						"description": "Not Found"
					}
				},
				"consumes": [
					"application/json"
				]
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
	Title:            "taskhall API",
	Description:      "Form registry, surveys and the task claim lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
