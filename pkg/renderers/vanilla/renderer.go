// Package vanilla renders a generated FormStructure as plain HTML with one
// interactive control per recognized field type.
package vanilla

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/reviewforge/reviewgen/pkg/render"
	"github.com/reviewforge/reviewgen/pkg/schema"
)

// widgetFunc writes the control markup for a single field. The dispatch table
// below is the closed mapping from field type to widget; anything outside it
// renders nothing.
type widgetFunc func(b *strings.Builder, field schema.Field, ctx widgetContext)

type widgetContext struct {
	value     any
	sanitizer *bluemonday.Policy
}

// Renderer implements render.Renderer producing an HTML fragment.
type Renderer struct {
	sanitizer *bluemonday.Policy
	widgets   map[schema.FieldType]widgetFunc
}

// New constructs the vanilla renderer. Generated schemas come from an
// untrusted language model, so every schema-supplied string is stripped of
// markup before it reaches the page.
func New() *Renderer {
	return &Renderer{
		sanitizer: bluemonday.StrictPolicy(),
		widgets: map[schema.FieldType]widgetFunc{
			schema.FieldTypeText:     inputWidget,
			schema.FieldTypeEmail:    inputWidget,
			schema.FieldTypeNumber:   inputWidget,
			schema.FieldTypeTextarea: textareaWidget,
			schema.FieldTypeSelect:   selectWidget,
			schema.FieldTypeRadio:    radioWidget,
			schema.FieldTypeCheckbox: checkboxWidget,
			schema.FieldTypeDate:     dateWidget,
			schema.FieldTypeRange:    rangeWidget,
			schema.FieldTypeRating:   ratingWidget,
		},
	}
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form fragment: title, grouped field controls, and a
// submit button. Fields with unrecognized types are skipped silently.
func (r *Renderer) Render(ctx context.Context, form schema.FormStructure, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.Grow(1024)

	action := opts.SubmitURL
	if action == "" {
		action = "/api/reviews"
	}

	b.WriteString(`<form class="review-form" method="post" action="`)
	b.WriteString(html.EscapeString(action))
	b.WriteString(`" data-product-type="`)
	b.WriteString(html.EscapeString(opts.ProductType))
	b.WriteString("\">\n")

	b.WriteString(`  <h2 class="form-title">`)
	b.WriteString(r.clean(form.Title))
	b.WriteString("</h2>\n")

	if len(form.Sections) == 0 {
		for _, field := range form.Fields {
			r.writeField(&b, field, opts)
		}
	} else {
		grouped := form.FieldsBySection()
		for _, section := range form.Sections {
			r.writeSection(&b, section, grouped[section], opts)
		}
		if catchAll := grouped[""]; len(catchAll) > 0 {
			r.writeSection(&b, schema.CatchAllSection, catchAll, opts)
		}
	}

	b.WriteString("  <button type=\"submit\" class=\"submit-button\">Submit Review</button>\n")
	b.WriteString("</form>\n")
	return []byte(b.String()), nil
}

func (r *Renderer) writeSection(b *strings.Builder, title string, fields []schema.Field, opts render.Options) {
	if len(fields) == 0 {
		return
	}
	b.WriteString(`  <fieldset class="form-section" data-section="`)
	b.WriteString(html.EscapeString(title))
	b.WriteString("\">\n")
	b.WriteString(`    <legend class="section-title">`)
	b.WriteString(r.clean(title))
	b.WriteString("</legend>\n")
	for _, field := range fields {
		r.writeField(b, field, opts)
	}
	b.WriteString("  </fieldset>\n")
}

func (r *Renderer) writeField(b *strings.Builder, field schema.Field, opts render.Options) {
	widget, ok := r.widgets[field.Type]
	if !ok {
		// Unknown types are tolerated, not rendered.
		return
	}

	b.WriteString(`  <div class="field" data-field="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" data-type="`)
	b.WriteString(html.EscapeString(string(field.Type)))
	b.WriteString("\">\n")

	if field.Type != schema.FieldTypeCheckbox {
		b.WriteString(`    <label for="`)
		b.WriteString(controlID(field.Name))
		b.WriteString(`" class="field-label">`)
		b.WriteString(r.clean(field.Label))
		if field.Required {
			b.WriteString(` <span class="required-marker">*</span>`)
		}
		b.WriteString("</label>\n")
	}

	widget(b, field, widgetContext{
		value:     opts.Values[field.Name],
		sanitizer: r.sanitizer,
	})

	if messages := opts.Errors[field.Name]; len(messages) > 0 {
		for _, msg := range messages {
			b.WriteString(`    <p class="field-error">`)
			b.WriteString(html.EscapeString(msg))
			b.WriteString("</p>\n")
		}
	}

	b.WriteString("  </div>\n")
}

// clean strips markup from an untrusted schema string and escapes what is
// left for embedding.
func (r *Renderer) clean(raw string) string {
	return r.sanitizer.Sanitize(raw)
}

func controlID(name string) string {
	return "rf-" + html.EscapeString(name)
}

func formatNumber(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
}
