package schema

import (
	"errors"
	"strings"
	"testing"
)

func validStructure() FormStructure {
	return FormStructure{
		Title:    "Laptop Review Form",
		Sections: []string{"General"},
		Fields: []Field{
			{Name: "reviewTitle", Label: "Review Title", Type: FieldTypeText, Required: true, Section: "General"},
			{Name: "overallRating", Label: "Overall Rating", Type: FieldTypeRating, Required: true, Section: "General"},
		},
	}
}

func TestValidateAcceptsWellFormedStructure(t *testing.T) {
	if err := validStructure().Validate(); err != nil {
		t.Fatalf("expected valid structure, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*FormStructure)
		wantPath string
	}{
		{
			name:     "missing title",
			mutate:   func(fs *FormStructure) { fs.Title = "  " },
			wantPath: "title",
		},
		{
			name:     "no fields",
			mutate:   func(fs *FormStructure) { fs.Fields = nil },
			wantPath: "fields",
		},
		{
			name:     "missing field name",
			mutate:   func(fs *FormStructure) { fs.Fields[0].Name = "" },
			wantPath: "fields.0.name",
		},
		{
			name:     "missing label",
			mutate:   func(fs *FormStructure) { fs.Fields[1].Label = "" },
			wantPath: "fields.1.label",
		},
		{
			name:     "unknown type",
			mutate:   func(fs *FormStructure) { fs.Fields[0].Type = "signature" },
			wantPath: "fields.0.type",
		},
		{
			name: "select without options",
			mutate: func(fs *FormStructure) {
				fs.Fields[0].Type = FieldTypeSelect
				fs.Fields[0].Options = nil
			},
			wantPath: "fields.0.options",
		},
		{
			name:     "duplicate names",
			mutate:   func(fs *FormStructure) { fs.Fields[1].Name = fs.Fields[0].Name },
			wantPath: "fields.1.name",
		},
		{
			name: "inverted bounds",
			mutate: func(fs *FormStructure) {
				lo, hi := 9.0, 3.0
				fs.Fields[0].Type = FieldTypeRange
				fs.Fields[0].Min, fs.Fields[0].Max = &lo, &hi
			},
			wantPath: "fields.0.min",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := validStructure()
			tc.mutate(&fs)

			err := fs.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if _, ok := verr.Details[tc.wantPath]; !ok {
				t.Fatalf("expected detail at %q, got %v", tc.wantPath, verr.Details)
			}
		})
	}
}

func TestValidationErrorMessageListsPaths(t *testing.T) {
	fs := FormStructure{}
	err := fs.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, fragment := range []string{"title", "fields"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("expected message to mention %q, got %q", fragment, msg)
		}
	}
}
