package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reviewforge/reviewgen/pkg/schema"
)

type fakeRenderer struct{ name string }

func (f fakeRenderer) Name() string        { return f.name }
func (f fakeRenderer) ContentType() string { return "text/plain" }
func (f fakeRenderer) Render(context.Context, schema.FormStructure, Options) ([]byte, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(fakeRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(fakeRenderer{name: "vanilla"}); err == nil {
		t.Fatal("duplicate registration must fail")
	}
	if err := registry.Register(fakeRenderer{}); err == nil {
		t.Fatal("empty name must fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("nil renderer must fail")
	}

	renderer, err := registry.Get("vanilla")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected renderer %q", renderer.Name())
	}

	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("missing renderer must error")
	}
	if !registry.Has("vanilla") || registry.Has("missing") {
		t.Fatal("Has reported wrong membership")
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"tui", "vanilla", "json"} {
		if err := registry.Register(fakeRenderer{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	if diff := cmp.Diff([]string{"json", "tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
