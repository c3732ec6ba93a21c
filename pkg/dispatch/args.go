package dispatch

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
)

// Args holds validated arguments. Values are normalized to string, int64, float64, bool,
// []any or map[string]any according to the declared Type.
type Args map[string]any

// Has reports whether the argument was given.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns a string argument or "".
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// List returns an array argument or nil.
func (a Args) List(name string) []any {
	l, _ := a[name].([]any)
	return l
}

// Validate checks raw against the declared parameters and returns the normalized arguments.
// Optional empty strings count as omitted. Unknown arguments are dropped.
func (s *Spec) Validate(raw map[string]any) (Args, error) {
	args := make(Args, len(s.Params))

	for _, p := range s.Params {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, api.InvalidArgument("missing required argument %q", p.Name)
			}
			continue
		}

		nv, err := normalize(p.Type, p.Items, v)
		if err != nil {
			return nil, api.InvalidArgument("argument %q: %s", p.Name, err)
		}

		switch t := nv.(type) {
		case string:
			if strings.TrimSpace(t) == "" {
				if p.Required {
					return nil, api.InvalidArgument("argument %q must not be empty", p.Name)
				}
				continue
			}
			if p.In == InPath && (t == "." || t == "..") {
				return nil, api.InvalidArgument("argument %q must not be a dot segment, got %q", p.Name, t)
			}
			if len(p.Enum) > 0 && !slices.Contains(p.Enum, t) {
				return nil, api.InvalidArgument("argument %q must be one of %s, got %q",
					p.Name, strings.Join(p.Enum, ", "), t)
			}
		case []any:
			if p.Required && len(t) == 0 {
				return nil, api.InvalidArgument("argument %q must not be empty", p.Name)
			}
			if len(p.Enum) > 0 {
				for _, item := range t {
					if s, ok := item.(string); ok && !slices.Contains(p.Enum, s) {
						return nil, api.InvalidArgument("argument %q: each item must be one of %s, got %q",
							p.Name, strings.Join(p.Enum, ", "), s)
					}
				}
			}
		}

		args[p.Name] = nv
	}

	for _, group := range s.OneOf {
		given := 0
		for _, name := range group {
			if args.Has(name) {
				given++
			}
		}
		if given != 1 {
			return nil, api.InvalidArgument("exactly one of %s is required", quoteAll(group))
		}
	}

	return args, nil
}

type typeError struct {
	want Type
	got  any
}

func (e typeError) Error() string {
	return "expected " + string(e.want) + ", got " + jsonTypeOf(e.got)
}

func normalize(t, items Type, v any) (any, error) {
	switch t {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeInteger:
		return toInteger(v)
	case TypeNumber:
		return toNumber(v)
	case TypeObject:
		if m, ok := v.(map[string]any); ok {
			return m, nil
		}
	case TypeArray:
		var list []any
		switch l := v.(type) {
		case []any:
			list = l
		case []string:
			list = make([]any, len(l))
			for i, s := range l {
				list[i] = s
			}
		default:
			return nil, typeError{TypeArray, v}
		}

		out := make([]any, len(list))
		for i, item := range list {
			if items == "" {
				out[i] = item
				continue
			}
			ni, err := normalize(items, "", item)
			if err != nil {
				return nil, errors.Wrapf(err, "item %d", i)
			}
			out[i] = ni
		}

		return out, nil
	}

	return nil, typeError{t, v}
}

func toInteger(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < 1<<53 {
			return int64(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}

	return nil, typeError{TypeInteger, v}
}

func toNumber(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, nil
		}
	}

	return nil, typeError{TypeNumber, v}
}

func jsonTypeOf(v any) string {
	switch n := v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		if n == math.Trunc(n) {
			return "integer"
		}
		return "number"
	case int, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	}

	return "unsupported value"
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}

	return strings.Join(quoted, ", ")
}
