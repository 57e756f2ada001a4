package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the Swagger UI page and the OpenAPI document.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>grandshipper-api Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "grandshipper-api", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Error": { "type": "object", "properties": { "error": { "type": "string" } } },
      "Type": { "type": "object", "properties": { "_id": { "type": "string" }, "name": { "type": "string", "minLength": 5, "maxLength": 50 } } },
      "TypeInput": { "type": "object", "required": ["name"], "properties": { "name": { "type": "string", "minLength": 5, "maxLength": 50 } } },
      "Blog": { "type": "object", "properties": { "_id": { "type": "string" }, "title": { "type": "string" }, "type": { "$ref": "#/components/schemas/Type" }, "content": { "type": "string" }, "author": { "type": "string" } } },
      "BlogInput": { "type": "object", "required": ["typeId", "title", "content", "author"], "properties": { "typeId": { "type": "string" }, "title": { "type": "string", "minLength": 5, "maxLength": 255 }, "content": { "type": "string", "minLength": 5, "maxLength": 255 }, "author": { "type": "string", "minLength": 5, "maxLength": 50 } } },
      "User": { "type": "object", "properties": { "_id": { "type": "string" }, "name": { "type": "string" }, "email": { "type": "string" }, "isAdmin": { "type": "boolean" } } }
    }
  },
  "paths": {
    "/api/types": {
      "get": { "summary": "List types sorted by name", "responses": { "200": { "description": "types" } } },
      "post": { "summary": "Create a type", "security": [{ "bearer": [] }], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/TypeInput" } } } }, "responses": { "200": { "description": "created type" }, "400": { "description": "validation or save failure" }, "401": { "description": "no token" } } }
    },
    "/api/types/{id}": {
      "get": { "summary": "Get a type", "responses": { "200": { "description": "type" }, "400": { "description": "bad id" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace a type", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/TypeInput" } } } }, "responses": { "200": { "description": "updated type" }, "400": { "description": "validation or save failure" } } },
      "delete": { "summary": "Delete a type", "security": [{ "bearer": [] }], "responses": { "200": { "description": "deleted type" }, "400": { "description": "bad id or delete failure" }, "401": { "description": "no token" }, "403": { "description": "not an admin" } } }
    },
    "/api/blogs": {
      "get": { "summary": "List blogs sorted by title", "responses": { "200": { "description": "blogs" } } },
      "post": { "summary": "Create a blog", "security": [{ "bearer": [] }], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/BlogInput" } } } }, "responses": { "200": { "description": "created blog" }, "400": { "description": "validation failure or unknown type" }, "401": { "description": "no token" } } }
    },
    "/api/blogs/{id}": {
      "get": { "summary": "Get a blog", "responses": { "200": { "description": "blog" }, "400": { "description": "bad id" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace a blog", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/BlogInput" } } } }, "responses": { "200": { "description": "updated blog" }, "400": { "description": "validation or save failure" } } },
      "delete": { "summary": "Delete a blog", "responses": { "200": { "description": "deleted blog" }, "400": { "description": "bad id or delete failure" } } }
    },
    "/api/blogs/archive": {
      "post": { "summary": "Upload a JSON snapshot of all blogs", "security": [{ "bearer": [] }], "responses": { "200": { "description": "key, presigned url and count" }, "401": { "description": "no token" }, "403": { "description": "not an admin" } } }
    },
    "/api/users": {
      "post": { "summary": "Register a user", "responses": { "200": { "description": "user; token in x-auth-token header" }, "400": { "description": "validation failure or already registered" } } }
    },
    "/api/users/me": {
      "get": { "summary": "Current user", "security": [{ "bearer": [] }], "responses": { "200": { "description": "user" }, "401": { "description": "no token" } } }
    },
    "/api/auth": {
      "post": { "summary": "Log in", "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "email": { "type": "string" }, "password": { "type": "string" } } } } } }, "responses": { "200": { "description": "token and refreshToken" }, "400": { "description": "invalid email or password" } } }
    },
    "/api/auth/refresh": {
      "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "refreshToken": { "type": "string" } } } } } }, "responses": { "200": { "description": "new token" }, "401": { "description": "invalid refresh" } } }
    },
    "/api/auth/logout": {
      "post": { "summary": "Drop the refresh session and revoke the bearer token", "responses": { "200": { "description": "logged out" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
