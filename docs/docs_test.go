package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDoc_ListsEveryRoute(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc must be valid json: %v", err)
	}
	if doc.BasePath != "/v1" {
		t.Fatalf("unexpected base path %q", doc.BasePath)
	}

	want := map[string][]string{
		"/ping":                                  {"get"},
		"/estimates/quote":                       {"post"},
		"/projects":                              {"get", "post"},
		"/projects/{id}":                         {"get", "put", "delete"},
		"/projects/{id}/export":                  {"get"},
		"/projects/{id}/payments/{index}/settle": {"post"},
	}
	for path, methods := range want {
		ops, ok := doc.Paths[path]
		if !ok {
			t.Fatalf("missing path %s", path)
		}
		for _, m := range methods {
			if _, ok := ops[m]; !ok {
				t.Fatalf("missing %s %s", m, path)
			}
		}
	}
}
