package schema

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormStructureRoundTripsJSON(t *testing.T) {
	min, max := 1.0, 10.0
	original := FormStructure{
		Title:    "Headphone Review Form",
		Sections: []string{"General", "Sound"},
		Fields: []Field{
			{Name: "reviewTitle", Label: "Review Title", Type: FieldTypeText, Required: true, Section: "General"},
			{Name: "overallRating", Label: "Overall Rating", Type: FieldTypeRating, Required: true, Section: "General"},
			{
				Name:    "recommendProduct",
				Label:   "Would You Recommend This Product?",
				Type:    FieldTypeRadio,
				Options: []Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}},
				Section: "General",
			},
			{Name: "bassLevel", Label: "Bass Level", Type: FieldTypeRange, Min: &min, Max: &max, Section: "Sound"},
		},
	}

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded FormStructure
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldTypeRecognized(t *testing.T) {
	for _, ft := range FieldTypes() {
		if !ft.Recognized() {
			t.Errorf("expected %q to be recognized", ft)
		}
	}
	for _, raw := range []string{"", "file", "color", "TEXT"} {
		if FieldType(raw).Recognized() {
			t.Errorf("expected %q to be unrecognized", raw)
		}
	}
}

func TestRangeBoundsDefaults(t *testing.T) {
	field := Field{Name: "comfort", Type: FieldTypeRange}
	min, max := field.RangeBounds()
	if min != 1 || max != 5 {
		t.Fatalf("expected default bounds [1, 5], got [%v, %v]", min, max)
	}

	lo, hi := 2.0, 8.0
	field.Min, field.Max = &lo, &hi
	min, max = field.RangeBounds()
	if min != 2 || max != 8 {
		t.Fatalf("expected declared bounds [2, 8], got [%v, %v]", min, max)
	}
}

func TestFieldsBySection(t *testing.T) {
	fs := FormStructure{
		Title:    "Camera Review",
		Sections: []string{"General", "Optics"},
		Fields: []Field{
			{Name: "reviewTitle", Label: "Title", Type: FieldTypeText, Section: "General"},
			{Name: "zoom", Label: "Zoom", Type: FieldTypeRating, Section: "Optics"},
			{Name: "notes", Label: "Notes", Type: FieldTypeTextarea},
			{Name: "stray", Label: "Stray", Type: FieldTypeText, Section: "NotDeclared"},
		},
	}

	grouped := fs.FieldsBySection()

	wantNames := func(section string, names ...string) {
		t.Helper()
		fields := grouped[section]
		got := make([]string, len(fields))
		for i, f := range fields {
			got[i] = f.Name
		}
		if diff := cmp.Diff(names, got); diff != "" {
			t.Errorf("section %q mismatch (-want +got):\n%s", section, diff)
		}
	}

	wantNames("General", "reviewTitle")
	wantNames("Optics", "zoom")
	// Undeclared and missing sections both fall into the catch-all bucket.
	wantNames("", "notes", "stray")
}
