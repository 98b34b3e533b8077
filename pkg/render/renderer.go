// Package render defines the contract between generated form schemas and the
// concrete renderers that turn them into interactive representations.
package render

import (
	"context"

	"github.com/reviewforge/reviewgen/pkg/schema"
)

// Renderer converts a FormStructure into a byte representation (HTML for the
// web client, serialized values for the terminal driver).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.FormStructure, opts Options) ([]byte, error)
}

// Options carries per-request rendering inputs: the ambient product type, the
// endpoint the form submits to, prefill values, and server-side validation
// errors keyed by field name.
type Options struct {
	ProductType string
	SubmitURL   string
	Values      map[string]any
	Errors      map[string][]string
}
