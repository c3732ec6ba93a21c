package dispatch

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema returns the JSON schema advertised to MCP clients for the tool's input.
func (s *Spec) Schema() *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(s.Params)),
	}

	for _, p := range s.Params {
		prop := &jsonschema.Schema{
			Type:        string(p.Type),
			Description: p.Description,
		}

		enum := enumValues(p.Enum)
		if p.Type == TypeArray {
			if p.Items != "" {
				prop.Items = &jsonschema.Schema{Type: string(p.Items), Enum: enum}
			}
		} else {
			prop.Enum = enum
		}

		schema.Properties[p.Name] = prop
	}

	schema.Required = s.RequiredParams()

	return schema
}

func enumValues(values []string) []any {
	if len(values) == 0 {
		return nil
	}

	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}

	return enum
}
