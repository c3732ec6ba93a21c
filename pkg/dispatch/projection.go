package dispatch

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
)

// Shape is the overall form of a tool result.
type Shape int

const (
	ShapeObject Shape = iota
	ShapeList
	ShapeAck
)

// Field is a whitelisted result field. From names the upstream key when it differs from Name.
// Fields narrows a nested object.
type Field struct {
	Name   string
	From   string
	Fields []Field
}

// F returns plain fields for the given names.
func F(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n}
	}

	return fields
}

// Rename returns a field read from upstream key from and emitted as name.
func Rename(name, from string) Field {
	return Field{Name: name, From: from}
}

// Nested returns a field whose object value is narrowed to fields.
func Nested(name, from string, fields ...Field) Field {
	return Field{Name: name, From: from, Fields: fields}
}

// Projection narrows an upstream response to the fields a tool documents.
type Projection struct {
	Shape Shape
	// Envelope is the key wrapping the payload, e.g. "hosts" in {"hosts":[...]}.
	// A response without it is taken as the payload itself.
	Envelope string
	// Fields of each object. A list projection without fields keeps its items as they are.
	Fields []Field
}

// ObjectOf projects a single object.
func ObjectOf(envelope string, fields ...Field) Projection {
	return Projection{Shape: ShapeObject, Envelope: envelope, Fields: fields}
}

// ListOf projects a list of objects.
func ListOf(envelope string, fields ...Field) Projection {
	return Projection{Shape: ShapeList, Envelope: envelope, Fields: fields}
}

// Ack reduces a response to {"success": bool}.
func Ack() Projection {
	return Projection{Shape: ShapeAck}
}

// Apply projects a raw upstream body.
func (p Projection) Apply(raw json.RawMessage) (any, error) {
	if p.Shape == ShapeAck {
		return ack(raw), nil
	}

	body, err := decode(raw)
	if err != nil {
		return nil, api.Internal("can't decode upstream response: %s", err)
	}

	payload := body
	if obj, ok := body.(map[string]any); ok && p.Envelope != "" {
		if inner, ok := obj[p.Envelope]; ok {
			payload = inner
		}
	}

	switch p.Shape {
	case ShapeList:
		items, ok := payload.([]any)
		if !ok {
			return nil, api.Internal("expected a list in upstream response, got %s", jsonTypeOf(payload))
		}

		out := make([]any, 0, len(items))
		for i, item := range items {
			if p.Fields == nil {
				out = append(out, item)
				continue
			}

			obj, ok := item.(map[string]any)
			if !ok {
				return nil, api.Internal("expected an object at index %d of upstream list, got %s", i, jsonTypeOf(item))
			}
			projected, err := project(obj, p.Fields)
			if err != nil {
				return nil, err
			}
			out = append(out, projected)
		}

		return out, nil
	default:
		obj, ok := payload.(map[string]any)
		if !ok {
			return nil, api.Internal("expected an object in upstream response, got %s", jsonTypeOf(payload))
		}

		return project(obj, p.Fields)
	}
}

// project copies the whitelisted fields of src. Absent fields become null.
func project(src map[string]any, fields []Field) (map[string]any, error) {
	out := make(map[string]any, len(fields))

	for _, f := range fields {
		from := f.From
		if from == "" {
			from = f.Name
		}

		v := src[from]
		if f.Fields != nil && v != nil {
			obj, ok := v.(map[string]any)
			if !ok {
				return nil, api.Internal("expected an object for upstream field %q, got %s", from, jsonTypeOf(v))
			}

			nested, err := project(obj, f.Fields)
			if err != nil {
				return nil, err
			}
			v = nested
		}

		out[f.Name] = v
	}

	return out, nil
}

// ack honors an explicit upstream success flag. Anything else behind a 2xx status is a success.
func ack(raw json.RawMessage) map[string]any {
	var body struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Success != nil {
		return map[string]any{"success": *body.Success}
	}

	return map[string]any{"success": true}
}

func decode(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	return v, nil
}
