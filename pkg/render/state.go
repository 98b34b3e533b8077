package render

import (
	"fmt"

	"github.com/reviewforge/reviewgen/pkg/schema"
)

// NotRated is the readout shown while a rating field holds no value. The
// unrated state is distinct from every rating 1..5.
const NotRated = "Not rated"

// FormState is the single owner of a form session's data: collected values,
// rating positions, and per-field validation outcomes. All mutation happens
// through explicit setters so there is no implicit registration state to keep
// in sync with a side mapping.
type FormState struct {
	values   map[string]any
	ratings  map[string]int
	problems map[string]string
}

// NewFormState creates an empty form state.
func NewFormState() *FormState {
	return &FormState{
		values:   make(map[string]any),
		ratings:  make(map[string]int),
		problems: make(map[string]string),
	}
}

// SetValue records the current value for a field.
func (s *FormState) SetValue(name string, value any) {
	s.values[name] = value
	delete(s.problems, name)
}

// Value returns the recorded value for a field.
func (s *FormState) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// SetRating records a rating click at position k (1..5). Clicking the same
// position again leaves the value unchanged. Both the rating map and the
// value map are updated together.
func (s *FormState) SetRating(name string, k int) error {
	if k < 1 || k > 5 {
		return fmt.Errorf("render: rating %d out of range 1..5", k)
	}
	s.ratings[name] = k
	s.values[name] = k
	delete(s.problems, name)
	return nil
}

// Rating returns the current rating and whether the field has been rated at
// all. An unrated field reports ok=false; it is never conflated with any
// integer rating.
func (s *FormState) Rating(name string) (int, bool) {
	k, ok := s.ratings[name]
	return k, ok
}

// RatingLabel renders the live readout for a rating field.
func (s *FormState) RatingLabel(name string) string {
	if k, ok := s.ratings[name]; ok {
		return fmt.Sprintf("%d/5", k)
	}
	return NotRated
}

// Problem returns the validation message recorded for a field.
func (s *FormState) Problem(name string) (string, bool) {
	msg, ok := s.problems[name]
	return msg, ok
}

// Values returns a copy of the collected field values, ready to submit as
// reviewData.
func (s *FormState) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Validate enforces required fields and records an outcome per violation.
// Checkbox required flags are deliberately not enforced: an unchecked box is
// treated as a valid "no" answer. Range fields always hold a slider position
// so they cannot be empty. Returns the names of violating fields in declared
// order.
func (s *FormState) Validate(form schema.FormStructure) []string {
	var violations []string
	for _, field := range form.Fields {
		if !field.Required || !requiredEnforced(field.Type) {
			continue
		}
		if s.fieldHasValue(field) {
			continue
		}
		s.problems[field.Name] = "This field is required"
		violations = append(violations, field.Name)
	}
	return violations
}

func (s *FormState) fieldHasValue(field schema.Field) bool {
	if field.Type == schema.FieldTypeRating {
		_, rated := s.ratings[field.Name]
		return rated
	}
	value, ok := s.values[field.Name]
	if !ok || value == nil {
		return false
	}
	if str, isString := value.(string); isString {
		return str != ""
	}
	return true
}

func requiredEnforced(t schema.FieldType) bool {
	switch t {
	case schema.FieldTypeCheckbox, schema.FieldTypeRange:
		return false
	default:
		return true
	}
}
