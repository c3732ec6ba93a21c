package dispatch

import (
	"net/http"
)

// Type is the JSON type of a tool argument.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Location tells where an argument ends up in the upstream request.
type Location int

const (
	// InPath arguments are substituted into {name} placeholders of the route.
	InPath Location = iota
	InQuery
	InBody
	// InCustom arguments are consumed by Spec.Body.
	InCustom
)

// Param declares a single tool argument.
type Param struct {
	Name        string
	Type        Type
	Items       Type // element type of TypeArray
	Required    bool
	In          Location
	Key         string // upstream name, defaults to Name
	Enum        []string
	Description string
}

func (p Param) key() string {
	if p.Key != "" {
		return p.Key
	}

	return p.Name
}

// Route is a method and path template. When names the argument whose presence selects
// the route; routes without When always match.
type Route struct {
	When   string
	Method string
	Path   string
}

// Spec declares one tool: its arguments, the upstream call and the result projection.
type Spec struct {
	Name        string
	Description string
	Params      []Param
	// OneOf lists argument groups of which exactly one member must be given.
	OneOf  [][]string
	Routes []Route
	// Body builds the request body instead of collecting InBody arguments.
	Body       func(Args) (any, error)
	Projection Projection
}

// Get returns a single GET route.
func Get(path string) []Route {
	return []Route{{Method: http.MethodGet, Path: path}}
}

// Post returns a single POST route.
func Post(path string) []Route {
	return []Route{{Method: http.MethodPost, Path: path}}
}

// Put returns a single PUT route.
func Put(path string) []Route {
	return []Route{{Method: http.MethodPut, Path: path}}
}

// Delete returns a single DELETE route.
func Delete(path string) []Route {
	return []Route{{Method: http.MethodDelete, Path: path}}
}

// PathParam declares a required, non-empty string identifier substituted into the path.
func PathParam(name, description string) Param {
	return Param{Name: name, Type: TypeString, Required: true, In: InPath, Description: description}
}

// RequiredParams returns the names of all required arguments in declaration order.
func (s *Spec) RequiredParams() []string {
	var required []string
	for _, p := range s.Params {
		if p.Required {
			required = append(required, p.Name)
		}
	}

	return required
}

// Enum converts typed string constants into Param.Enum values.
func Enum[T ~string](values ...T) []string {
	enum := make([]string, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}

	return enum
}
