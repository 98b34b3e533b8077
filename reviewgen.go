// Package reviewgen exposes the high-level entry points: generate a review
// form schema for a product type and render it with a registered renderer.
package reviewgen

import (
	"context"

	"github.com/reviewforge/reviewgen/pkg/generate"
	"github.com/reviewforge/reviewgen/pkg/render"
	"github.com/reviewforge/reviewgen/pkg/renderers/vanilla"
	"github.com/reviewforge/reviewgen/pkg/schema"
)

// FormStructure aliases the generated schema type for callers that only
// import the root package.
type FormStructure = schema.FormStructure

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.Options

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(client generate.ChatClient, options ...generate.GeneratorOption) *generate.Generator {
	return generate.New(client, options...)
}

// DefaultRegistry returns a renderer registry with the HTML renderer
// registered under its canonical name.
func DefaultRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(vanilla.New())
	return registry
}

// GenerateHTML generates a form schema for the product type and renders it as
// an HTML fragment. It is the simplest entry point for callers that just want
// markup.
func GenerateHTML(ctx context.Context, generator *generate.Generator, productType string, opts RenderOptions) ([]byte, error) {
	structure, err := generator.Generate(ctx, productType)
	if err != nil {
		return nil, err
	}
	if opts.ProductType == "" {
		opts.ProductType = productType
	}
	return vanilla.New().Render(ctx, structure, opts)
}
