package schema

// FieldType enumerates the input kinds a generated review form may declare.
// The set is closed: renderers dispatch over it and the structural validator
// rejects anything outside it.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
	FieldTypeRange    FieldType = "range"
	FieldTypeRating   FieldType = "rating"
)

// FieldTypes lists every recognized field type in a stable order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeTextarea,
		FieldTypeNumber,
		FieldTypeEmail,
		FieldTypeSelect,
		FieldTypeRadio,
		FieldTypeCheckbox,
		FieldTypeDate,
		FieldTypeRange,
		FieldTypeRating,
	}
}

// Recognized reports whether the type belongs to the closed enumeration.
func (t FieldType) Recognized() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeEmail,
		FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox, FieldTypeDate,
		FieldTypeRange, FieldTypeRating:
		return true
	default:
		return false
	}
}

// RequiresOptions reports whether fields of this type must carry an options
// list. Options on any other type are ignored by renderers.
func (t FieldType) RequiresOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio
}

// Option is one choice inside a select or radio field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field describes a single input inside a generated form. Name doubles as the
// key under which the submitted value is stored.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Section     string    `json:"section,omitempty"`
}

// RangeBounds resolves the slider interval for range fields, applying the
// 1..5 defaults when the schema leaves either end open.
func (f Field) RangeBounds() (min, max float64) {
	min, max = 1, 5
	if f.Min != nil {
		min = *f.Min
	}
	if f.Max != nil {
		max = *f.Max
	}
	return min, max
}

// FormStructure is the generated schema describing one review form: a title,
// an optional section display order, and the ordered field list. A value is
// built fresh per generation request and never persisted.
type FormStructure struct {
	Title    string   `json:"title"`
	Sections []string `json:"sections,omitempty"`
	Fields   []Field  `json:"fields"`
}

// CatchAllSection is the bucket fields fall into when they declare a section
// that is absent from Sections, or none at all, while Sections is non-empty.
const CatchAllSection = "Additional Information"

// FieldsBySection partitions fields by their section key preserving declared
// field order inside each bucket. Fields without a section land under the
// empty key; the renderer decides how to title that bucket.
func (fs FormStructure) FieldsBySection() map[string][]Field {
	grouped := make(map[string][]Field)
	declared := make(map[string]struct{}, len(fs.Sections))
	for _, name := range fs.Sections {
		declared[name] = struct{}{}
	}
	for _, field := range fs.Fields {
		key := field.Section
		if key != "" {
			if _, ok := declared[key]; !ok {
				key = ""
			}
		}
		grouped[key] = append(grouped[key], field)
	}
	return grouped
}
