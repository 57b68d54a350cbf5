package openapi

import "maps"

// BearerScheme is the component name of the JWT bearer security scheme.
const BearerScheme = "bearerAuth"

// Shared error responses keyed by component name. Every one carries the
// Error schema so clients decode failures the same way.
var errorResponses = map[string]string{
	"BadRequest":   "Invalid request",
	"Unauthorized": "Missing or invalid bearer token",
	"Forbidden":    "Caller may not perform this operation",
	"NotFound":     "Resource not found",
	"Conflict":     "Resource conflict",
	"Internal":     "Dependency or internal failure",
}

// NewComponents returns the components every elib document starts from:
// the Error and PageRequest schemas, the shared error responses, and the
// bearer security scheme.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"status", "message"},
				Properties: map[string]*Schema{
					"status":  {Type: "integer", Description: "HTTP status code", Example: 404},
					"message": {Type: "string", Description: "Error message"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: Title,-CreatedAt"},
				},
			},
		},
		Responses: make(map[string]*Response, len(errorResponses)),
		SecuritySchemes: map[string]*SecurityScheme{
			BearerScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		},
	}

	for name, desc := range errorResponses {
		c.Responses[name] = &Response{Description: desc, Content: content(mimeJSON, SchemaRef("Error"))}
	}
	return c
}

// AddSchemas merges schemas into the component schemas, replacing any
// with the same name.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

// Envelope wraps data in the success envelope every elib handler writes.
func Envelope(data *Schema) *Schema {
	return &Schema{
		Type:     "object",
		Required: []string{"status_code", "success"},
		Properties: map[string]*Schema{
			"status_code": {Type: "integer"},
			"data":        data,
			"message":     {Type: "string"},
			"success":     {Type: "boolean"},
		},
	}
}
