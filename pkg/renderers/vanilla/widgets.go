package vanilla

import (
	"fmt"
	"html"
	"strings"

	"github.com/reviewforge/reviewgen/pkg/schema"
)

func inputWidget(b *strings.Builder, field schema.Field, ctx widgetContext) {
	b.WriteString(`    <input id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" type="`)
	b.WriteString(string(field.Type))
	b.WriteString(`" class="field-input"`)
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(ctx.sanitizer.Sanitize(field.Placeholder)))
		b.WriteString(`"`)
	}
	if field.Min != nil {
		b.WriteString(` min="`)
		b.WriteString(formatNumber(*field.Min))
		b.WriteString(`"`)
	}
	if field.Max != nil {
		b.WriteString(` max="`)
		b.WriteString(formatNumber(*field.Max))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	if value := stringValue(ctx.value); value != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
	}
	b.WriteString(">\n")
}

func textareaWidget(b *strings.Builder, field schema.Field, ctx widgetContext) {
	b.WriteString(`    <textarea id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" rows="3" class="field-textarea"`)
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(ctx.sanitizer.Sanitize(field.Placeholder)))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(`>`)
	if value := stringValue(ctx.value); value != "" {
		b.WriteString(html.EscapeString(value))
	}
	b.WriteString("</textarea>\n")
}

func selectWidget(b *strings.Builder, field schema.Field, ctx widgetContext) {
	current := stringValue(ctx.value)

	b.WriteString(`    <select id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" class="field-select"`)
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(">\n")

	// No default selection: the placeholder entry carries an empty value.
	placeholder := field.Placeholder
	if placeholder == "" {
		placeholder = "Select an option"
	}
	b.WriteString(`      <option value=""`)
	if current == "" {
		b.WriteString(` selected`)
	}
	b.WriteString(` disabled>`)
	b.WriteString(ctx.sanitizer.Sanitize(placeholder))
	b.WriteString("</option>\n")

	for _, option := range field.Options {
		b.WriteString(`      <option value="`)
		b.WriteString(html.EscapeString(option.Value))
		b.WriteString(`"`)
		if current != "" && current == option.Value {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(ctx.sanitizer.Sanitize(option.Label))
		b.WriteString("</option>\n")
	}
	b.WriteString("    </select>\n")
}

func radioWidget(b *strings.Builder, field schema.Field, ctx widgetContext) {
	current := stringValue(ctx.value)

	b.WriteString("    <div class=\"radio-group\" role=\"radiogroup\">\n")
	for _, option := range field.Options {
		id := controlID(field.Name) + "-" + html.EscapeString(option.Value)
		b.WriteString(`      <label class="radio-option" for="`)
		b.WriteString(id)
		b.WriteString("\">\n")
		b.WriteString(`        <input id="`)
		b.WriteString(id)
		b.WriteString(`" type="radio" name="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(option.Value))
		b.WriteString(`"`)
		if current != "" && current == option.Value {
			b.WriteString(` checked`)
		}
		if field.Required {
			b.WriteString(` required`)
		}
		b.WriteString(">\n        ")
		b.WriteString(ctx.sanitizer.Sanitize(option.Label))
		b.WriteString("\n      </label>\n")
	}
	b.WriteString("    </div>\n")
}

// checkboxWidget renders a single boolean toggle. The required flag is not
// wired through: an unchecked box stands for "no".
func checkboxWidget(b *strings.Builder, field schema.Field, ctx widgetContext) {
	b.WriteString(`    <label class="checkbox-option" for="`)
	b.WriteString(controlID(field.Name))
	b.WriteString("\">\n")
	b.WriteString(`      <input id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" type="checkbox" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`"`)
	if checked, ok := ctx.value.(bool); ok && checked {
		b.WriteString(` checked`)
	}
	b.WriteString(">\n      ")
	b.WriteString(ctx.sanitizer.Sanitize(field.Label))
	b.WriteString("\n    </label>\n")
}

func dateWidget(b *strings.Builder, field schema.Field, ctx widgetContext) {
	b.WriteString(`    <input id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" type="date" class="field-input"`)
	if field.Required {
		b.WriteString(` required`)
	}
	if value := stringValue(ctx.value); value != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
	}
	b.WriteString(">\n")
}

func rangeWidget(b *strings.Builder, field schema.Field, ctx widgetContext) {
	min, max := field.RangeBounds()

	position := min
	if v, ok := numberValue(ctx.value); ok {
		position = v
	}

	b.WriteString("    <div class=\"range-control\">\n")
	b.WriteString(`      <input id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" type="range" min="`)
	b.WriteString(formatNumber(min))
	b.WriteString(`" max="`)
	b.WriteString(formatNumber(max))
	b.WriteString(`" step="1" value="`)
	b.WriteString(formatNumber(position))
	b.WriteString("\">\n")
	b.WriteString(`      <output class="range-readout" for="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`">`)
	b.WriteString(formatNumber(position))
	b.WriteString("/")
	b.WriteString(formatNumber(max))
	b.WriteString("</output>\n")
	b.WriteString("    </div>\n")
}

// ratingWidget renders five star buttons, the live readout, and a hidden
// input carrying the selected value. The unrated state keeps the hidden input
// empty, which is distinct from every rating 1..5.
func ratingWidget(b *strings.Builder, field schema.Field, ctx widgetContext) {
	rating, rated := intValue(ctx.value)

	b.WriteString(`    <div class="rating-control" data-rating-field="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString("\">\n")
	for k := 1; k <= 5; k++ {
		b.WriteString(`      <button type="button" class="rating-star`)
		if rated && k <= rating {
			b.WriteString(" rating-star-active")
		}
		b.WriteString(`" data-value="`)
		b.WriteString(fmt.Sprintf("%d", k))
		b.WriteString(`" aria-label="Rate `)
		b.WriteString(fmt.Sprintf("%d", k))
		b.WriteString(` out of 5">&#9733;</button>` + "\n")
	}
	b.WriteString(`      <span class="rating-readout">`)
	if rated {
		b.WriteString(fmt.Sprintf("%d/5", rating))
	} else {
		b.WriteString("Not rated")
	}
	b.WriteString("</span>\n")
	b.WriteString(`      <input type="hidden" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" value="`)
	if rated {
		b.WriteString(fmt.Sprintf("%d", rating))
	}
	b.WriteString("\">\n")
	b.WriteString("    </div>\n")
}

func stringValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return formatNumber(typed)
	case int:
		return fmt.Sprintf("%d", typed)
	default:
		return ""
	}
}

func numberValue(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	default:
		return 0, false
	}
}

func intValue(v any) (int, bool) {
	switch typed := v.(type) {
	case int:
		return typed, typed >= 1 && typed <= 5
	case float64:
		k := int(typed)
		return k, k >= 1 && k <= 5
	default:
		return 0, false
	}
}
