package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// swaggerJSON is a minimal Swagger 2.0 document for the search API.
const swaggerJSON = `{
  "swagger": "2.0",
  "info": {
    "title": "IMDb Search API",
    "version": "1.0.0",
    "description": "Gin + MySQL service returning the characters an actor played, keyed by title."
  },
  "basePath": "/",
  "schemes": ["http"],
  "paths": {
    "/health": {
      "get": {
        "summary": "Health check (pings the database)",
        "produces": ["application/json"],
        "responses": {
          "200": {
            "description": "OK"
          },
          "503": {
            "description": "Database unreachable"
          }
        }
      }
    },
    "/search": {
      "get": {
        "summary": "Characters played by an actor, keyed by title",
        "produces": ["application/json"],
        "parameters": [
          {
            "name": "actor",
            "in": "query",
            "required": true,
            "type": "string",
            "description": "Exact actor name, e.g. Tom Hardy"
          }
        ],
        "responses": {
          "200": {
            "description": "Object mapping title to an array of character names, or \"N/A\"; {} when nothing matches"
          },
          "400": {
            "description": "actor parameter missing"
          },
          "500": {
            "description": "Query failed"
          },
          "503": {
            "description": "Database unreachable"
          }
        }
      }
    }
  }
}`

// swaggerHTML is the /swagger page: Swagger UI pinned to one release,
// pointed at swaggerJSON.
const swaggerHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>IMDb Search API</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>SwaggerUIBundle({url: "/swagger/doc.json", dom_id: "#swagger-ui"});</script>
</body>
</html>`

func serveSwaggerUI(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, swaggerHTML)
}
