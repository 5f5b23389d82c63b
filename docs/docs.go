// Package docs holds the Swagger document served under -tags=swagger.
// Regenerate with `swag init -g cmd/orcad/docs.go -o docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "orcad maintainers"
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
        "/status": {
            "get": {
                "description": "Tier, VRAM and RAM usage, and active models. Cached for about one second.",
                "produces": ["application/json"],
                "tags": ["orchestrator"],
                "summary": "Hardware snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/prepare": {
            "post": {
                "description": "Returns the keep-alive directive for the current tier and records the model as active.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orchestrator"],
                "summary": "Prepare for a model load",
                "parameters": [
                    {"description": "Model to prepare", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PrepareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.Directive"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/advise": {
            "get": {
                "description": "Recommends gpu, cpu or auto for a model given current free VRAM.",
                "produces": ["application/json"],
                "tags": ["orchestrator"],
                "summary": "Device placement advice",
                "parameters": [
                    {"type": "string", "description": "Model name", "name": "model", "in": "query", "required": true},
                    {"type": "string", "description": "Provider id; offline forces cpu", "name": "provider", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.Advice"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/recommend": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orchestrator"],
                "summary": "Model recommendation for the current tier",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.Recommendation"}}
                }
            }
        },
        "/providers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "List providers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/types.ProviderInfo"}}}
                }
            }
        },
        "/providers/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Probe every provider",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/types.ProviderHealth"}}}
                }
            }
        },
        "/providers/{id}/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Probe one provider",
                "parameters": [
                    {"type": "string", "description": "Provider id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ProviderHealth"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/providers/{id}/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "List a provider's models",
                "parameters": [
                    {"type": "string", "description": "Provider id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ProviderModelsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ActiveModel": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "LLM"},
                "last_active": {"type": "number", "example": 1718000000.5}
            }
        },
        "types.Advice": {
            "type": "object",
            "properties": {
                "device": {"type": "string", "example": "gpu"},
                "reason": {"type": "string", "example": "Fits comfortably. Free VRAM: 12000MB vs Est: 6000MB"},
                "safe": {"type": "boolean", "example": true},
                "estimated_mb": {"type": "integer", "example": 6000},
                "free_mb": {"type": "integer", "example": 12000}
            }
        },
        "types.Directive": {
            "type": "object",
            "properties": {
                "keep_alive": {"description": "0 or -1 as numbers, durations as strings", "example": -1},
                "blocked": {"type": "boolean", "example": false},
                "evicted": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400}
            }
        },
        "types.PrepareRequest": {
            "type": "object",
            "properties": {
                "model_type": {"type": "string", "example": "LLM"},
                "model_name": {"type": "string", "example": "llama3:8b"}
            }
        },
        "types.ProviderHealth": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "ollama"},
                "ok": {"type": "boolean", "example": true},
                "detail": {"type": "string", "example": "up"},
                "latency_ms": {"type": "number", "example": 3.2}
            }
        },
        "types.ProviderInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "ollama"},
                "label": {"type": "string", "example": "Ollama"},
                "capabilities": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ProviderModelsResponse": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.RAMUsage": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "available": {"type": "integer"},
                "percent": {"type": "number"}
            }
        },
        "types.Recommendation": {
            "type": "object",
            "properties": {
                "tier": {"type": "string", "example": "MID"},
                "llm": {"type": "string", "example": "llama3:8b-fp16"},
                "tts": {"type": "string", "example": "orpheus_standard"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "tier": {"type": "string", "example": "MID"},
                "device_name": {"type": "string", "example": "NVIDIA GeForce RTX 4080"},
                "total_vram_mb": {"type": "integer", "example": 16376},
                "usage": {"$ref": "#/definitions/types.VRAMUsage"},
                "ram": {"$ref": "#/definitions/types.RAMUsage"},
                "active_models": {"type": "object", "additionalProperties": {"$ref": "#/definitions/types.ActiveModel"}},
                "timestamp": {"type": "number"},
                "degraded": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.VRAMUsage": {
            "type": "object",
            "properties": {
                "used": {"type": "integer"},
                "free": {"type": "integer"},
                "percent": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "orcad API",
	Description:      "GPU-aware model residency orchestration for local model hosts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
