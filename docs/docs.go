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
        "/forecast/request": {
            "get": {
                "description": "Builds the forecast request URL for one provider",
                "produces": ["application/json"],
                "tags": ["Forecast"],
                "summary": "Build a forecast request URL",
                "parameters": [
                    {"type": "string", "description": "Provider name, defaults to the first configured", "name": "provider", "in": "query"},
                    {"type": "number", "description": "Latitude (-90 to 90)", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude (-180 to 180)", "name": "lon", "in": "query", "required": true},
                    {"type": "string", "enum": ["de", "en"], "name": "lang", "in": "query"},
                    {"type": "string", "enum": ["auto", "ca", "si", "uk2", "us"], "name": "units", "in": "query"},
                    {"type": "string", "description": "Comma separated blocks: currently,minutely,hourly,daily,alerts,flags", "name": "exclude", "in": "query"},
                    {"type": "string", "enum": ["hourly"], "name": "extend", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RequestURL"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            }
        },
        "/forecast/requests": {
            "get": {
                "description": "Builds the forecast request URL for every configured provider",
                "produces": ["application/json"],
                "tags": ["Forecast"],
                "summary": "Build forecast request URLs for all providers",
                "parameters": [
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true},
                    {"type": "string", "enum": ["de", "en"], "name": "lang", "in": "query"},
                    {"type": "string", "enum": ["auto", "ca", "si", "uk2", "us"], "name": "units", "in": "query"},
                    {"type": "string", "name": "exclude", "in": "query"},
                    {"type": "string", "enum": ["hourly"], "name": "extend", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.RequestsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "httpserver.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.RequestURL": {
            "type": "object",
            "properties": {
                "provider": {"type": "string", "example": "darksky"},
                "url": {"type": "string"}
            }
        },
        "http.RequestsResponse": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "requests": {"type": "object", "additionalProperties": {"type": "string"}}
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
	Title:            "Forecast Request API",
	Description:      "Builds validated Dark Sky compatible forecast request URLs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
