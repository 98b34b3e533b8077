package schema

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError collects structural violations keyed by the dotted path of
// the offending element ("fields.2.options", "title", ...). It is the error
// surfaced when an upstream model returns JSON that parses but does not
// satisfy the FormStructure contract.
type ValidationError struct {
	Details map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Details) == 0 {
		return "schema: invalid form structure"
	}
	paths := make([]string, 0, len(e.Details))
	for path := range e.Details {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var builder strings.Builder
	builder.WriteString("schema: invalid form structure: ")
	for i, path := range paths {
		if i > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(path)
		builder.WriteString(": ")
		builder.WriteString(strings.Join(e.Details[path], ", "))
	}
	return builder.String()
}

func (e *ValidationError) add(path, message string) {
	if e.Details == nil {
		e.Details = make(map[string][]string)
	}
	e.Details[path] = append(e.Details[path], message)
}

// Validate checks the structure against the schema contract. This is the real
// enforcement point for generated forms: the upstream model's output is
// untrusted free text, so a parsed document must be re-validated before it
// reaches a renderer. Returns nil or a *ValidationError.
func (fs FormStructure) Validate() error {
	verr := &ValidationError{}

	if strings.TrimSpace(fs.Title) == "" {
		verr.add("title", "title is required")
	}
	for i, name := range fs.Sections {
		if strings.TrimSpace(name) == "" {
			verr.add(fmt.Sprintf("sections.%d", i), "section name must not be empty")
		}
	}
	if len(fs.Fields) == 0 {
		verr.add("fields", "at least one field is required")
	}

	seen := make(map[string]int, len(fs.Fields))
	for i, field := range fs.Fields {
		path := fmt.Sprintf("fields.%d", i)

		name := strings.TrimSpace(field.Name)
		if name == "" {
			verr.add(path+".name", "name is required")
		} else if prev, dup := seen[name]; dup {
			verr.add(path+".name", fmt.Sprintf("duplicate field name %q (first declared at fields.%d)", name, prev))
		} else {
			seen[name] = i
		}

		if strings.TrimSpace(field.Label) == "" {
			verr.add(path+".label", "label is required")
		}

		if field.Type == "" {
			verr.add(path+".type", "type is required")
		} else if !field.Type.Recognized() {
			verr.add(path+".type", fmt.Sprintf("unknown field type %q", field.Type))
		}

		if field.Type.RequiresOptions() && len(field.Options) == 0 {
			verr.add(path+".options", fmt.Sprintf("options are required for %s fields", field.Type))
		}
		for j, option := range field.Options {
			if strings.TrimSpace(option.Value) == "" {
				verr.add(fmt.Sprintf("%s.options.%d.value", path, j), "option value must not be empty")
			}
		}

		if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
			verr.add(path+".min", "min must not exceed max")
		}
	}

	if len(verr.Details) == 0 {
		return nil
	}
	return verr
}
