package tool

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/charla-ai/charla/bot/contract"
)

func stubInfo(name string) *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: name,
		Desc: "stub",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"q": {Type: schema.String, Desc: "query", Required: true},
		}),
	}
}

func stubHandler(name string) Handler {
	return func(ctx context.Context, args map[string]any) contractx.ToolResult {
		return contractx.ToolResult{Tool: name, Summary: "ok"}
	}
}

func TestRegistryKeepsDeclarationOrder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	names := []string{"c.tool", "a.tool", "b.tool"}
	for _, name := range names {
		if err := reg.Register(stubInfo(name), stubHandler(name)); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	decls := reg.Declarations()
	if len(decls) != len(names) {
		t.Fatalf("got %d declarations, want %d", len(decls), len(names))
	}
	for i, name := range names {
		if decls[i].Name != name {
			t.Fatalf("declaration[%d] = %s, want %s", i, decls[i].Name, name)
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register(stubInfo("x.tool"), stubHandler("x.tool")); err != nil {
		t.Fatalf("first Register error = %v", err)
	}
	if err := reg.Register(stubInfo("x.tool"), stubHandler("x.tool")); err == nil {
		t.Fatal("duplicate Register must fail")
	}
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register(stubInfo("x.tool"), stubHandler("x.tool")); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	h, ok := reg.Lookup("x.tool")
	if !ok || h == nil {
		t.Fatal("Lookup must find the registered handler")
	}
	if _, ok := reg.Lookup("y.tool"); ok {
		t.Fatal("Lookup must miss unregistered names")
	}
}

func TestDefaultRegistryOrder(t *testing.T) {
	t.Parallel()

	reg, err := DefaultRegistry(Config{})
	if err != nil {
		t.Fatalf("DefaultRegistry error = %v", err)
	}

	want := []string{ToolWeather, ToolNews, ToolWikipedia, ToolDeezer, ToolFlights, ToolYouTube}
	decls := reg.Declarations()
	if len(decls) != len(want) {
		t.Fatalf("got %d declarations, want %d", len(decls), len(want))
	}
	for i, name := range want {
		if decls[i].Name != name {
			t.Fatalf("declaration[%d] = %s, want %s", i, decls[i].Name, name)
		}
	}
}
