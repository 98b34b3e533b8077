package vanilla

import (
	"context"
	"strings"
	"testing"

	"github.com/reviewforge/reviewgen/pkg/render"
	"github.com/reviewforge/reviewgen/pkg/schema"
)

func renderString(t *testing.T, form schema.FormStructure, opts render.Options) string {
	t.Helper()
	out, err := New().Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestControlCountMatchesRecognizedFields(t *testing.T) {
	form := schema.FormStructure{
		Title: "Headphones Review Form",
		Fields: []schema.Field{
			{Name: "reviewTitle", Label: "Review Title", Type: schema.FieldTypeText},
			{Name: "pros", Label: "What You Liked", Type: schema.FieldTypeTextarea},
			{Name: "signature", Label: "Signature", Type: "signature"},
			{Name: "overallRating", Label: "Overall Rating", Type: schema.FieldTypeRating},
			{Name: "hologram", Label: "Hologram", Type: "hologram"},
		},
	}

	html := renderString(t, form, render.Options{})

	if got := strings.Count(html, `data-field="`); got != 3 {
		t.Fatalf("expected 3 rendered controls, got %d:\n%s", got, html)
	}
	for _, unknown := range []string{"signature", "hologram"} {
		if strings.Contains(html, unknown) {
			t.Errorf("unrecognized field %q must render nothing", unknown)
		}
	}
}

func TestEveryRecognizedTypeRendersOneControl(t *testing.T) {
	fields := make([]schema.Field, 0, len(schema.FieldTypes()))
	for i, ft := range schema.FieldTypes() {
		field := schema.Field{
			Name:  "field" + string(rune('A'+i)),
			Label: "Field " + string(ft),
			Type:  ft,
		}
		if ft.RequiresOptions() {
			field.Options = []schema.Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}}
		}
		fields = append(fields, field)
	}
	form := schema.FormStructure{Title: "All Types", Fields: fields}

	html := renderString(t, form, render.Options{})

	if got := strings.Count(html, `data-field="`); got != len(fields) {
		t.Fatalf("expected %d controls, got %d", len(fields), got)
	}
}

func TestSectionGroupingAndCatchAllOrder(t *testing.T) {
	form := schema.FormStructure{
		Title:    "Camera Review Form",
		Sections: []string{"General", "Optics"},
		Fields: []schema.Field{
			{Name: "stray", Label: "Stray", Type: schema.FieldTypeText, Section: "Undeclared"},
			{Name: "reviewTitle", Label: "Review Title", Type: schema.FieldTypeText, Section: "General"},
			{Name: "zoomQuality", Label: "Zoom Quality", Type: schema.FieldTypeRating, Section: "Optics"},
			{Name: "notes", Label: "Notes", Type: schema.FieldTypeTextarea},
		},
	}

	html := renderString(t, form, render.Options{})

	general := strings.Index(html, `data-section="General"`)
	optics := strings.Index(html, `data-section="Optics"`)
	catchAll := strings.Index(html, `data-section="Additional Information"`)

	if general == -1 || optics == -1 || catchAll == -1 {
		t.Fatalf("missing section markers:\n%s", html)
	}
	if !(general < optics && optics < catchAll) {
		t.Fatalf("sections out of order: general=%d optics=%d catchAll=%d", general, optics, catchAll)
	}

	// Fields with undeclared or missing sections render exactly once, in the
	// catch-all bucket.
	for _, name := range []string{"stray", "notes"} {
		marker := `data-field="` + name + `"`
		if got := strings.Count(html, marker); got != 1 {
			t.Errorf("expected %q rendered once, got %d", name, got)
		}
		if strings.Index(html, marker) < catchAll {
			t.Errorf("expected %q under the catch-all section", name)
		}
	}
}

func TestNoSectionsRendersFlat(t *testing.T) {
	form := schema.FormStructure{
		Title: "Flat Form",
		Fields: []schema.Field{
			{Name: "a", Label: "A", Type: schema.FieldTypeText, Section: "Ignored"},
			{Name: "b", Label: "B", Type: schema.FieldTypeText},
		},
	}

	html := renderString(t, form, render.Options{})

	if strings.Contains(html, "data-section=") {
		t.Fatal("no section markup expected when sections are empty")
	}
	if strings.Index(html, `data-field="a"`) > strings.Index(html, `data-field="b"`) {
		t.Fatal("declared field order must be preserved")
	}
}

func TestCatchAllOmittedWhenEmpty(t *testing.T) {
	form := schema.FormStructure{
		Title:    "Tidy Form",
		Sections: []string{"General"},
		Fields: []schema.Field{
			{Name: "reviewTitle", Label: "Review Title", Type: schema.FieldTypeText, Section: "General"},
		},
	}

	html := renderString(t, form, render.Options{})
	if strings.Contains(html, schema.CatchAllSection) {
		t.Fatal("catch-all section must not render without members")
	}
}

func TestRangeWidgetBounds(t *testing.T) {
	lo, hi := 2.0, 8.0
	form := schema.FormStructure{
		Title: "Range Form",
		Fields: []schema.Field{
			{Name: "bounded", Label: "Bounded", Type: schema.FieldTypeRange, Min: &lo, Max: &hi},
			{Name: "defaulted", Label: "Defaulted", Type: schema.FieldTypeRange},
		},
	}

	html := renderString(t, form, render.Options{})

	for _, want := range []string{`min="2"`, `max="8"`, `min="1"`, `max="5"`, `step="1"`, "2/8", "1/5"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in range markup:\n%s", want, html)
		}
	}
}

func TestRatingWidgetStates(t *testing.T) {
	form := schema.FormStructure{
		Title: "Rating Form",
		Fields: []schema.Field{
			{Name: "overallRating", Label: "Overall Rating", Type: schema.FieldTypeRating, Required: true},
		},
	}

	unrated := renderString(t, form, render.Options{})
	if !strings.Contains(unrated, "Not rated") {
		t.Fatal("unrated state must show the Not rated readout")
	}
	if got := strings.Count(unrated, "rating-star"); got < 5 {
		t.Fatalf("expected five star buttons, got %d", got)
	}

	rated := renderString(t, form, render.Options{Values: map[string]any{"overallRating": 4}})
	if !strings.Contains(rated, "4/5") {
		t.Fatal("rated state must show k/5 readout")
	}
	if strings.Contains(rated, "Not rated") {
		t.Fatal("rated state must not show the unrated readout")
	}
	if got := strings.Count(rated, "rating-star-active"); got != 4 {
		t.Fatalf("expected 4 active stars, got %d", got)
	}
}

func TestRequiredMarkersAndCheckboxQuirk(t *testing.T) {
	form := schema.FormStructure{
		Title: "Required Form",
		Fields: []schema.Field{
			{Name: "reviewTitle", Label: "Review Title", Type: schema.FieldTypeText, Required: true},
			{Name: "wouldBuyAgain", Label: "Would Buy Again", Type: schema.FieldTypeCheckbox, Required: true},
		},
	}

	html := renderString(t, form, render.Options{})

	if !strings.Contains(html, "required-marker") {
		t.Fatal("required text field must carry the marker")
	}

	checkbox := html[strings.Index(html, `data-field="wouldBuyAgain"`):]
	if strings.Contains(checkbox, " required") {
		t.Fatal("checkbox required flag must not be enforced")
	}
}

func TestSelectPlaceholderAndNoDefaultSelection(t *testing.T) {
	form := schema.FormStructure{
		Title: "Select Form",
		Fields: []schema.Field{
			{
				Name:    "recommendProduct",
				Label:   "Would You Recommend This Product?",
				Type:    schema.FieldTypeSelect,
				Options: []schema.Option{{Label: "Yes", Value: "yes"}, {Label: "Maybe", Value: "maybe"}},
			},
		},
	}

	html := renderString(t, form, render.Options{})

	if !strings.Contains(html, "Select an option") {
		t.Fatal("expected default placeholder entry")
	}
	if !strings.Contains(html, `<option value="" selected disabled>`) {
		t.Fatal("placeholder must be the only selected entry")
	}
}

func TestSchemaStringsAreSanitized(t *testing.T) {
	form := schema.FormStructure{
		Title: `Review <script>alert("x")</script> Form`,
		Fields: []schema.Field{
			{
				Name:        "reviewTitle",
				Label:       `Title <img src=x onerror=alert(1)>`,
				Type:        schema.FieldTypeText,
				Placeholder: `<b>type here</b>`,
			},
		},
	}

	html := renderString(t, form, render.Options{})

	for _, forbidden := range []string{"<script>", "<img", "<b>type"} {
		if strings.Contains(html, forbidden) {
			t.Errorf("unsanitized markup %q leaked into output:\n%s", forbidden, html)
		}
	}
}

func TestInlineErrorsRendered(t *testing.T) {
	form := schema.FormStructure{
		Title: "Error Form",
		Fields: []schema.Field{
			{Name: "reviewTitle", Label: "Review Title", Type: schema.FieldTypeText, Required: true},
		},
	}

	html := renderString(t, form, render.Options{
		Errors: map[string][]string{"reviewTitle": {"This field is required"}},
	})

	if !strings.Contains(html, `class="field-error"`) || !strings.Contains(html, "This field is required") {
		t.Fatalf("expected inline error markup:\n%s", html)
	}
}
