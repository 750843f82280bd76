// Package docs Restaurant Locator API.
//
// Сгенерировано swag по аннотациям в cmd/api и internal/delivery/http/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/location-info": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Ищет рестораны в радиусе 1 км от точки и сохраняет их в базе",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Location"],
                "summary": "Nearby restaurants",
                "parameters": [
                    {"maximum": 90, "minimum": -90, "type": "number", "description": "Широта", "name": "lat", "in": "query", "required": true},
                    {"maximum": 180, "minimum": -180, "type": "number", "description": "Долгота", "name": "lng", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LocationLookupResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/sync-profile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Создаёт или обновляет пользователя по subject из токена. Email из тела имеет приоритет над email из токена.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Sync user profile",
                "parameters": [
                    {"description": "Профиль", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.SyncProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SyncProfileResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.PhotoRef": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "widthPx": {"type": "integer"},
                "heightPx": {"type": "integer"}
            }
        },
        "domain.Review": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "text": {"type": "string"},
                "rating": {"type": "number"},
                "publishTime": {"type": "string"}
            }
        },
        "domain.Place": {
            "type": "object",
            "properties": {
                "externalPlaceId": {"type": "string"},
                "name": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "formattedAddress": {"type": "string"},
                "internationalPhoneNumber": {"type": "string"},
                "websiteUri": {"type": "string"},
                "primaryTypeDisplayName": {"type": "string"},
                "rating": {"type": "number"},
                "userRatingCount": {"type": "integer"},
                "reviews": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}},
                "priceLevel": {"type": "integer"},
                "regularOpeningHours": {"type": "object"},
                "takeout": {"type": "boolean"},
                "dineIn": {"type": "boolean"},
                "curbsidePickup": {"type": "boolean"},
                "delivery": {"type": "boolean"},
                "outdoorSeating": {"type": "boolean"},
                "parkingOptions": {"type": "object"},
                "allowsDogs": {"type": "boolean"},
                "servesVegetarianFood": {"type": "boolean"},
                "editorialSummary": {"type": "string"},
                "photos": {"type": "array", "items": {"$ref": "#/definitions/domain.PhotoRef"}},
                "plusCode": {"type": "string"},
                "distance": {"type": "number"}
            }
        },
        "domain.UserProfile": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "subjectId": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "dto.LocationLookupResponse": {
            "type": "object",
            "properties": {
                "nearbyRestaurants": {"type": "array", "items": {"$ref": "#/definitions/domain.Place"}}
            }
        },
        "dto.SyncProfileRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "dto.SyncProfileResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.UserProfile"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Firebase ID token: Bearer <token>",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Restaurant Locator API",
	Description:      "Поиск ресторанов рядом с пользователем через Google Places API с сохранением результатов в PostgreSQL.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
