// Package docs registers the swagger spec served at /api/swagger.
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
				"tags": [
					"health"
				],
				"summary": "health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				}
			}
		},
		"/health/live": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "liveness probe",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				}
			}
		},
		"/health/ready": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "readiness probe, pings the database and redis",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				}
			}
		},
		"/v1/farms": {
			"post": {
				"tags": [
					"farm"
				],
				"summary": "create a farm",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "name, location, settings"
						}
					}
				]
			},
			"get": {
				"tags": [
					"farm"
				],
				"summary": "list farms",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "query",
						"name": "name",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "page",
						"type": "integer",
						"description": ""
					},
					{
						"in": "query",
						"name": "page_size",
						"type": "integer",
						"description": ""
					}
				]
			}
		},
		"/v1/farms/{farm_id}": {
			"get": {
				"tags": [
					"farm"
				],
				"summary": "get a farm",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "farm_id",
						"type": "string",
						"required": true,
						"description": "id"
					}
				]
			}
		},
		"/v1/farms/{farm_id}/fields": {
			"post": {
				"tags": [
					"farm"
				],
				"summary": "create a field",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "farm_id",
						"type": "string",
						"required": true,
						"description": "id"
					},
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "name, notes"
						}
					}
				]
			},
			"get": {
				"tags": [
					"farm"
				],
				"summary": "list fields",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "farm_id",
						"type": "string",
						"required": true,
						"description": "id"
					}
				]
			}
		},
		"/v1/crops": {
			"post": {
				"tags": [
					"farm"
				],
				"summary": "create a crop",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "name, variety"
						}
					}
				]
			},
			"get": {
				"tags": [
					"farm"
				],
				"summary": "list crops",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				}
			}
		},
		"/v1/contracts": {
			"post": {
				"tags": [
					"contract"
				],
				"summary": "create a contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "farm_id, contract_type, partner_name, crop_id, quantity, unit, price_per_unit, total_value, start_date, end_date, status, delivery_terms, payment_terms, notes"
						}
					}
				]
			},
			"get": {
				"tags": [
					"contract"
				],
				"summary": "list contracts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "query",
						"name": "farm_id",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "crop_id",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "status",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "contract_type",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "partner",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "active_on",
						"type": "string",
						"description": "YYYY-MM-DD"
					},
					{
						"in": "query",
						"name": "page",
						"type": "integer",
						"description": ""
					},
					{
						"in": "query",
						"name": "page_size",
						"type": "integer",
						"description": ""
					}
				]
			}
		},
		"/v1/contracts/{id}": {
			"get": {
				"tags": [
					"contract"
				],
				"summary": "get a contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					}
				]
			},
			"put": {
				"tags": [
					"contract"
				],
				"summary": "update a contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					},
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "changed fields and clear"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"contract"
				],
				"summary": "delete a draft contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					}
				]
			}
		},
		"/v1/contracts/{id}/status": {
			"patch": {
				"tags": [
					"contract"
				],
				"summary": "change contract status",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					},
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "status"
						}
					}
				]
			}
		},
		"/v1/infrastructures": {
			"post": {
				"tags": [
					"infrastructure"
				],
				"summary": "create an asset",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "farm_id, field_id, name, type, sub_type, status, construction_date, cost, area_sqm, perimeter, boundary_manual, boundary (GeoJSON Polygon) or boundary_wkt, notes"
						}
					}
				]
			},
			"get": {
				"tags": [
					"infrastructure"
				],
				"summary": "list assets",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "query",
						"name": "farm_id",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "field_id",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "type",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "status",
						"type": "string",
						"description": ""
					},
					{
						"in": "query",
						"name": "page",
						"type": "integer",
						"description": ""
					},
					{
						"in": "query",
						"name": "page_size",
						"type": "integer",
						"description": ""
					}
				]
			}
		},
		"/v1/infrastructures/catalog": {
			"get": {
				"tags": [
					"infrastructure"
				],
				"summary": "suggested types and sub types",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				}
			}
		},
		"/v1/infrastructures/geojson": {
			"get": {
				"tags": [
					"infrastructure"
				],
				"summary": "farm footprints as a FeatureCollection",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "query",
						"name": "farm_id",
						"type": "string",
						"description": "",
						"required": true
					},
					{
						"in": "query",
						"name": "status",
						"type": "string",
						"description": ""
					}
				]
			}
		},
		"/v1/infrastructures/{id}": {
			"get": {
				"tags": [
					"infrastructure"
				],
				"summary": "get an asset",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					}
				]
			},
			"put": {
				"tags": [
					"infrastructure"
				],
				"summary": "update an asset",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					},
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "changed fields and clear"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"infrastructure"
				],
				"summary": "delete an asset",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					},
					{
						"in": "query",
						"name": "detach",
						"type": "boolean",
						"description": "null activities.infrastructure_id first"
					}
				]
			}
		},
		"/v1/infrastructures/{id}/status": {
			"patch": {
				"tags": [
					"infrastructure"
				],
				"summary": "change asset status",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					},
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "status"
						}
					}
				]
			}
		},
		"/v1/infrastructures/{id}/activities": {
			"post": {
				"tags": [
					"infrastructure"
				],
				"summary": "log an activity",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					},
					{
						"in": "body",
						"name": "req",
						"required": true,
						"schema": {
							"type": "object",
							"description": "title, activity_type, performed_on, notes, details"
						}
					}
				]
			},
			"get": {
				"tags": [
					"infrastructure"
				],
				"summary": "list activities",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ok",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					},
					"400": {
						"description": "validation or geometry error",
						"schema": {
							"$ref": "#/definitions/common.Resp"
						}
					}
				},
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"type": "string",
						"required": true,
						"description": "id"
					},
					{
						"in": "query",
						"name": "page",
						"type": "integer",
						"description": ""
					},
					{
						"in": "query",
						"name": "page_size",
						"type": "integer",
						"description": ""
					}
				]
			}
		},
		"/v1/ws/farms/{farm_id}": {
			"get": {
				"tags": [
					"live"
				],
				"summary": "websocket feed of farm changes",
				"parameters": [
					{
						"in": "path",
						"name": "farm_id",
						"type": "string",
						"required": true,
						"description": "id"
					}
				],
				"responses": {
					"101": {
						"description": "switching protocols"
					},
					"404": {
						"description": "farm not found"
					}
				}
			}
		}
	},
	"definitions": {
		"common.Resp": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"kind": {
					"type": "string"
				},
				"msg": {
					"type": "string"
				},
				"fields": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				},
				"data": {},
				"timestamp": {
					"type": "integer"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "osfarm API",
	Description:      "Farm contracts, infrastructure and their farms, fields and crops.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
