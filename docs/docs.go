// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/backcast": {
            "get": {
                "description": "Noon-nearest observations for each of the five days before today at a location",
                "produces": ["application/json"],
                "tags": ["Backcast"],
                "summary": "Get the five-day backcast",
                "parameters": [
                    {"type": "number", "description": "Latitude (-90 to 90)", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude (-180 to 180)", "name": "lon", "in": "query", "required": true},
                    {"type": "string", "description": "Temperature unit: C or F", "name": "temp", "in": "query"},
                    {"type": "string", "description": "Speed unit: m/s or km/h", "name": "speed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.BackcastResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/users/{user}/backcast": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get the user's backcast view",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "user", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ViewResponse"}}
                }
            }
        },
        "/users/{user}/location": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Search a location and load its backcast",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "user", "in": "path", "required": true},
                    {"description": "Coordinates", "name": "location", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.LocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ViewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/users/{user}/preferences": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Preferences"],
                "summary": "Get the user's preferences",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "user", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Preferences"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Preferences"],
                "summary": "Update units and dark mode",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "user", "in": "path", "required": true},
                    {"description": "Changes", "name": "preferences", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PreferencesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Preferences"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/users/{user}/favorites/{city}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Preferences"],
                "summary": "Add or remove a favorite city",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "user", "in": "path", "required": true},
                    {"type": "string", "description": "City name", "name": "city", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Preferences"}}
                }
            }
        },
        "/users/{user}/units/{kind}/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Preferences"],
                "summary": "Toggle the temperature or speed unit",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "user", "in": "path", "required": true},
                    {"enum": ["temp", "speed"], "type": "string", "description": "Unit kind", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Preferences"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.BackcastResponse": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number", "example": 52.52},
                "longitude": {"type": "number", "example": 13.41},
                "units": {"$ref": "#/definitions/models.Units"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/http.DayResponse"}}
            }
        },
        "http.DayResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-06-05"},
                "source_time": {"type": "string", "example": "2025-06-05T12:00"},
                "hour": {"type": "integer", "example": 12},
                "temperature": {"type": "number", "example": 21},
                "humidity": {"type": "number", "example": 63},
                "wind_speed": {"type": "number", "example": 3},
                "weather_code": {"type": "integer", "example": 3},
                "icon": {"$ref": "#/definitions/http.IconResponse"}
            }
        },
        "http.IconResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "cloudy"},
                "is_day": {"type": "boolean", "example": true},
                "code": {"type": "string", "example": "03d"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Missing required parameter: lat"},
                "kind": {"type": "string", "example": "transport"},
                "status": {"type": "integer", "example": 503}
            }
        },
        "http.LocationRequest": {
            "type": "object",
            "properties": {
                "lat": {"type": "number", "example": 52.52},
                "lon": {"type": "number", "example": 13.41}
            }
        },
        "http.PreferencesRequest": {
            "type": "object",
            "properties": {
                "units": {"$ref": "#/definitions/models.Units"},
                "dark_mode": {"type": "boolean", "example": true}
            }
        },
        "http.ViewResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "latitude": {"type": "number", "example": 52.52},
                "longitude": {"type": "number", "example": 13.41},
                "units": {"$ref": "#/definitions/models.Units"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/http.DayResponse"}},
                "error": {"type": "string"},
                "error_kind": {"type": "string", "example": "transport"},
                "transport_status": {"type": "integer", "example": 503},
                "generation": {"type": "integer", "example": 1},
                "load_id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Preferences": {
            "type": "object",
            "properties": {
                "units": {"$ref": "#/definitions/models.Units"},
                "favorites": {"type": "array", "items": {"type": "string"}},
                "dark_mode": {"type": "boolean"}
            }
        },
        "models.Units": {
            "type": "object",
            "properties": {
                "temp": {"type": "string", "example": "C"},
                "speed": {"type": "string", "example": "m/s"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Weather Backcast API",
	Description:      "Noon-nearest historical weather for the five days before today, built with Go and Fiber.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
