// Package docs registers the OpenAPI description served at /docs.
// Keep it in step with the handler annotations (swag init regenerates it).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "EPL 2024-2025"},
        "license": {"name": "MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/overview": {
            "get": {
                "tags": ["dashboard"],
                "summary": "League overview",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "club", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "position", "in": "query"},
                    {"type": "number", "name": "min_minutes", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/players": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Player list",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "club", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "position", "in": "query"},
                    {"type": "number", "name": "min_minutes", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "name": "order", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/players/compare": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Compare players",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "player", "in": "query", "required": true},
                    {"enum": ["offensive", "defensive", "possession"], "type": "string", "name": "set", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/leaders": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Leaders",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "default": "Forward_Score", "name": "by", "in": "query"},
                    {"type": "integer", "default": 10, "name": "n", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/teams": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Team analysis",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "club", "in": "query", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "position", "in": "query"},
                    {"type": "number", "name": "min_minutes", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/positions": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Position analysis",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/advanced": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Advanced metrics",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/meta/columns": {
            "get": {"tags": ["meta"], "summary": "Column listing", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}}
        },
        "/meta/clubs": {
            "get": {"tags": ["meta"], "summary": "Club listing", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}}
        },
        "/meta/dataset": {
            "get": {"tags": ["meta"], "summary": "Dataset load summary", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}}
        }
    },
    "definitions": {
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "EPL 2024/25 Player Stats API",
	Description:      "Season player statistics with per-90 rates, role scores and league-relative normalization, served as dashboard views.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
