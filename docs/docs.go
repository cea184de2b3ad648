// Package docs registra el spec OpenAPI generado por swag.
// Regenerar con: swag init -g cmd/api/main.go
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
        "/babies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["babies"],
                "summary": "Listar mis perfiles",
                "description": "Perfiles alcanzables vía los grants del usuario autenticado.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/babies.babyResponse"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["babies"],
                "summary": "Crear perfil de bebé",
                "description": "Crea el perfil y el grant owner del creador en la misma operación.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/babies.createBabyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/babies.babyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/babies/{babyID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["babies"],
                "summary": "Ver un perfil",
                "description": "Devuelve el perfil si el actor tiene un grant, cualquier rol.",
                "parameters": [
                    {"type": "string", "name": "babyID", "in": "path", "required": true, "description": "ID del perfil"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/babies.babyResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/babies/{babyID}/caregivers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["caregivers"],
                "summary": "Listar grants de un perfil",
                "description": "Lista los accesos (owner y caregivers) de un perfil. Solo el owner.",
                "parameters": [
                    {"type": "string", "name": "babyID", "in": "path", "required": true, "description": "ID del perfil"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/caregivers.grantResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            }
        },
        "/babies/{babyID}/caregivers/{userID}": {
            "delete": {
                "tags": ["caregivers"],
                "summary": "Revocar el acceso de un caregiver",
                "description": "Elimina el grant de un caregiver sobre el perfil. Solo el owner. El grant owner no se puede revocar.",
                "parameters": [
                    {"type": "string", "name": "babyID", "in": "path", "required": true, "description": "ID del perfil"},
                    {"type": "string", "name": "userID", "in": "path", "required": true, "description": "ID del caregiver a revocar"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}},
                    "409": {"description": "Conflict", "schema": {"type": "string"}}
                }
            }
        },
        "/babies/{babyID}/invitations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invitations"],
                "summary": "Listar invitaciones de un perfil",
                "description": "Historial de invitaciones del perfil, con expiración derivada aplicada al status. Solo el owner.",
                "parameters": [
                    {"type": "string", "name": "babyID", "in": "path", "required": true, "description": "ID del perfil"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/invitations.invitationResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invitations"],
                "summary": "Invitar un caregiver por email",
                "description": "Ofrece acceso caregiver a un email. Si el email ya tiene cuenta, otorga el grant directo; si no, crea una invitación pending con token de 7 días y manda el mail (best-effort). Solo el owner.",
                "parameters": [
                    {"type": "string", "name": "babyID", "in": "path", "required": true, "description": "ID del perfil"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/invitations.inviteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/invitations.inviteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}},
                    "409": {"description": "Conflict", "schema": {"type": "string"}}
                }
            }
        },
        "/invitations/{invitationID}/cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["invitations"],
                "summary": "Cancelar una invitación",
                "description": "Marca cancelled una invitación pending. Idempotente sobre estados terminales. Solo el owner.",
                "parameters": [
                    {"type": "string", "name": "invitationID", "in": "path", "required": true, "description": "ID de la invitación"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitations.invitationResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/invitations/token/{token}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invitations"],
                "summary": "Ver una invitación por token",
                "description": "Valida el token sin requerir sesión. Devuelve awaiting_auth si la invitación es aceptable, o el motivo específico si no.",
                "parameters": [
                    {"type": "string", "name": "token", "in": "path", "required": true, "description": "Token de la invitación"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitations.acceptOutcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/invitations.acceptOutcomeResponse"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/invitations.acceptOutcomeResponse"}}
                }
            }
        },
        "/invitations/token/{token}/accept": {
            "post": {
                "produces": ["application/json"],
                "tags": ["invitations"],
                "summary": "Aceptar una invitación",
                "description": "Convierte (token, sesión autenticada) en un grant caregiver, exactamente una vez en efecto. Sin sesión devuelve awaiting_auth. Email distinto al invitado => 403 recuperable.",
                "parameters": [
                    {"type": "string", "name": "token", "in": "path", "required": true, "description": "Token de la invitación"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invitations.acceptOutcomeResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/invitations.acceptOutcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/invitations.acceptOutcomeResponse"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/invitations.acceptOutcomeResponse"}}
                }
            }
        },
        "/me/grants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["caregivers"],
                "summary": "Listar mis grants",
                "description": "Lista los grants del usuario autenticado (los perfiles que puede ver).",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/caregivers.grantResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/babies/{babyID}/records": {
            "get": {
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Listar registros de cuidado",
                "description": "Lista registros del perfil, con filtros kind y limit. Requiere un grant, cualquier rol.",
                "parameters": [
                    {"type": "string", "name": "babyID", "in": "path", "required": true, "description": "ID del perfil"},
                    {"type": "string", "name": "kind", "in": "query", "description": "Filtrar por tipo"},
                    {"type": "integer", "name": "limit", "in": "query", "description": "Máximo de filas"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/records.recordResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Crear registro de cuidado",
                "description": "Crea un registro (feeding, sleep, diaper, ...). Requiere un grant sobre el perfil, cualquier rol.",
                "parameters": [
                    {"type": "string", "name": "babyID", "in": "path", "required": true, "description": "ID del perfil"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.createRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/records.recordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            }
        },
        "/babies/{babyID}/records/{recordID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Ver un registro de cuidado",
                "description": "Devuelve un registro puntual del perfil. Requiere un grant, cualquier rol.",
                "parameters": [
                    {"type": "string", "name": "babyID", "in": "path", "required": true, "description": "ID del perfil"},
                    {"type": "string", "name": "recordID", "in": "path", "required": true, "description": "ID del registro"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/records.recordResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "babies.createBabyRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "sex": {"type": "string"},
                "birth_date": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "babies.babyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "sex": {"type": "string"},
                "birth_date": {"type": "string"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "caregivers.grantResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "baby_id": {"type": "string"},
                "user_id": {"type": "string"},
                "role": {"type": "string"},
                "granted_at": {"type": "string"},
                "granted_by": {"type": "string"}
            }
        },
        "invitations.inviteRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "invitations.inviteResponse": {
            "type": "object",
            "properties": {
                "granted_directly": {"type": "boolean"},
                "grant": {"$ref": "#/definitions/caregivers.grantResponse"},
                "invitation": {"$ref": "#/definitions/invitations.invitationResponse"},
                "token": {"type": "string"},
                "accept_url": {"type": "string"},
                "warning": {"type": "string"}
            }
        },
        "invitations.invitationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "baby_id": {"type": "string"},
                "invited_email": {"type": "string"},
                "invited_by": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"},
                "expires_at": {"type": "string"},
                "accepted_at": {"type": "string"}
            }
        },
        "invitations.acceptOutcomeResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string"},
                "reason": {"type": "string"},
                "invitation": {"$ref": "#/definitions/invitations.invitationResponse"},
                "grant": {"$ref": "#/definitions/caregivers.grantResponse"},
                "message": {"type": "string"},
                "warning": {"type": "string"}
            }
        },
        "records.createRecordRequest": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "occurred_at": {"type": "string"},
                "note": {"type": "string"},
                "amount": {"type": "number"}
            }
        },
        "records.recordResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "baby_id": {"type": "string"},
                "kind": {"type": "string"},
                "occurred_at": {"type": "string"},
                "note": {"type": "string"},
                "amount": {"type": "number"},
                "recorded_by": {"type": "string"},
                "created_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Baby Tracker API",
	Description:      "Perfiles de bebé compartidos: grants, invitaciones por email y registros de cuidado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
