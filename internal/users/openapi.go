package users

import "github.com/JaimeStill/elib/pkg/openapi"

type spec struct {
	Register *openapi.Operation
	Login    *openapi.Operation
	Me       *openapi.Operation
}

// Spec holds the OpenAPI operations for account endpoints.
var Spec = spec{
	Register: &openapi.Operation{
		Summary:     "Register",
		Description: "Creates an account and returns an access token for it.",
		RequestBody: openapi.RequestBodyJSON("RegisterCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseEnvelope("Account created", openapi.SchemaRef("Session")),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Login: &openapi.Operation{
		Summary:     "Log in",
		RequestBody: openapi.RequestBodyJSON("LoginCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Logged in", openapi.SchemaRef("Session")),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Me: &openapi.Operation{
		Summary: "Current account",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Account found", openapi.SchemaRef("User")),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the component schemas referenced by account operations.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"name":       {Type: "string"},
				"email":      {Type: "string", Format: "email"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"user":         openapi.SchemaRef("User"),
				"access_token": {Type: "string"},
				"expires_at":   {Type: "string", Format: "date-time"},
			},
		},
		"RegisterCommand": {
			Type:     "object",
			Required: []string{"name", "email", "password"},
			Properties: map[string]*openapi.Schema{
				"name":     {Type: "string", Example: "Frank Herbert"},
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string", Format: "password", MinLength: intPtr(8)},
			},
		},
		"LoginCommand": {
			Type:     "object",
			Required: []string{"email", "password"},
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string", Format: "password"},
			},
		},
	}
}

func intPtr(v int) *int { return &v }
