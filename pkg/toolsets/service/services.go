package service

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
)

func serviceSpecs() []dispatch.Spec {
	serviceName := dispatch.PathParam("service_name", "Service name")

	return []dispatch.Spec{
		{
			Name:        "list_services",
			Description: "List services registered in Mackerel with their role names",
			Routes:      dispatch.Get("/services"),
			Projection:  dispatch.ListOf("services", dispatch.F("name", "roles")...),
		},
		{
			Name:        "get_service",
			Description: "Get a single Mackerel service by name",
			Params:      []dispatch.Param{serviceName},
			Routes:      dispatch.Get("/services/{service_name}"),
			Projection:  dispatch.ObjectOf("service", dispatch.F("name", "roles")...),
		},
		{
			Name:        "list_service_roles",
			Description: "List the roles defined in a service",
			Params:      []dispatch.Param{serviceName},
			Routes:      dispatch.Get("/services/{service_name}/roles"),
			Projection:  dispatch.ListOf("roles", dispatch.F("name", "memo")...),
		},
	}
}
