package openapi

const (
	mimeJSON      = "application/json"
	mimeMultipart = "multipart/form-data"
)

func content(mime string, schema *Schema) map[string]*MediaType {
	return map[string]*MediaType{mime: {Schema: schema}}
}

// SchemaRef returns a Schema pointing at the named component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// ResponseRef returns a Response pointing at the named component response.
func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// RequestBodyJSON is a JSON body whose schema is the named component.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{Required: required, Content: content(mimeJSON, SchemaRef(schemaName))}
}

// RequestBodyMultipart is a multipart/form-data body described inline by schema.
func RequestBodyMultipart(schema *Schema, required bool) *RequestBody {
	return &RequestBody{Required: required, Content: content(mimeMultipart, schema)}
}

// ResponseJSON is a JSON response whose body is the named component.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{Description: description, Content: content(mimeJSON, SchemaRef(schemaName))}
}

// ResponseEnvelope is a JSON response whose body is the success envelope
// around data.
func ResponseEnvelope(description string, data *Schema) *Response {
	return &Response{Description: description, Content: content(mimeJSON, Envelope(data))}
}

// PathParam is a required UUID path parameter.
func PathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string", Format: "uuid"},
	}
}

// QueryParam is a query parameter of the given JSON Schema type.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}

// BearerSecurity requires the JWT bearer scheme with no scopes.
func BearerSecurity() []SecurityRequirement {
	return []SecurityRequirement{{BearerScheme: {}}}
}
