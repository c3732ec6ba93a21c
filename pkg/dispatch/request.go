package dispatch

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
)

// Request builds the upstream request from validated arguments.
func (s *Spec) Request(args Args) (api.Request, error) {
	route, ok := s.route(args)
	if !ok {
		return api.Request{}, api.Internal("tool %s has no route for the given arguments", s.Name)
	}

	path, err := expandPath(route.Path, args)
	if err != nil {
		return api.Request{}, err
	}

	req := api.Request{Method: route.Method, Path: path}

	query := url.Values{}
	body := map[string]any{}
	for _, p := range s.Params {
		v, ok := args[p.Name]
		if !ok {
			continue
		}

		switch p.In {
		case InQuery:
			if list, ok := v.([]any); ok {
				for _, item := range list {
					query.Add(p.key(), formatScalar(item))
				}
			} else {
				query.Set(p.key(), formatScalar(v))
			}
		case InBody:
			body[p.key()] = v
		}
	}
	if len(query) > 0 {
		req.Query = query
	}

	switch {
	case s.Body != nil:
		custom, err := s.Body(args)
		if err != nil {
			return api.Request{}, err
		}
		req.Body = custom
	case route.Method == http.MethodPost || route.Method == http.MethodPut:
		req.Body = body
	}

	return req, nil
}

func (s *Spec) route(args Args) (Route, bool) {
	for _, r := range s.Routes {
		if r.When == "" || args.Has(r.When) {
			return r, true
		}
	}

	return Route{}, false
}

// expandPath substitutes {name} placeholders with escaped argument values.
func expandPath(template string, args Args) (string, error) {
	var b strings.Builder

	for rest := template; rest != ""; {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", api.Internal("unterminated placeholder in path %q", template)
		}

		name := rest[open+1 : open+end]
		v, ok := args[name]
		if !ok {
			return "", api.Internal("path %q needs argument %q", template, name)
		}

		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(formatScalar(v)))
		rest = rest[open+end+1:]
	}

	return b.String(), nil
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}

	return fmt.Sprint(v)
}
