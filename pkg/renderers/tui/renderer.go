// Package tui renders a generated FormStructure as an interactive terminal
// session, prompting field by field and serializing the collected answers.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/reviewforge/reviewgen/pkg/render"
	"github.com/reviewforge/reviewgen/pkg/schema"
)

// Renderer implements render.Renderer for terminal-driven review sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Render walks the form in section order, prompting for every recognized
// field, and returns the collected answers serialized per the output format.
func (r *Renderer) Render(ctx context.Context, form schema.FormStructure, opts render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := render.NewFormState()
	seedState(state, form, opts.Values)

	if form.Title != "" {
		if err := r.driver.Info(ctx, form.Title); err != nil {
			return nil, err
		}
	}

	if len(form.Sections) == 0 {
		for _, field := range form.Fields {
			if err := r.promptField(ctx, field, state); err != nil {
				return nil, err
			}
		}
	} else {
		grouped := form.FieldsBySection()
		for _, section := range form.Sections {
			if err := r.promptSection(ctx, section, grouped[section], state); err != nil {
				return nil, err
			}
		}
		if catchAll := grouped[""]; len(catchAll) > 0 {
			if err := r.promptSection(ctx, schema.CatchAllSection, catchAll, state); err != nil {
				return nil, err
			}
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(values)
}

func (r *Renderer) promptSection(ctx context.Context, title string, fields []schema.Field, state *render.FormState) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.driver.Info(ctx, "-- "+title+" --"); err != nil {
		return err
	}
	for _, field := range fields {
		if err := r.promptField(ctx, field, state); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field schema.Field, state *render.FormState) error {
	switch field.Type {
	case schema.FieldTypeText, schema.FieldTypeEmail, schema.FieldTypeDate:
		return r.promptText(ctx, field, state)
	case schema.FieldTypeTextarea:
		return r.promptTextArea(ctx, field, state)
	case schema.FieldTypeNumber:
		return r.promptNumber(ctx, field, state)
	case schema.FieldTypeSelect, schema.FieldTypeRadio:
		return r.promptChoice(ctx, field, state)
	case schema.FieldTypeCheckbox:
		return r.promptCheckbox(ctx, field, state)
	case schema.FieldTypeRange:
		return r.promptRange(ctx, field, state)
	case schema.FieldTypeRating:
		return r.promptRating(ctx, field, state)
	default:
		// Unknown types are tolerated, not prompted.
		return nil
	}
}

func (r *Renderer) promptText(ctx context.Context, field schema.Field, state *render.FormState) error {
	cfg := InputConfig{
		Message: displayLabel(field),
		Default: currentString(state, field.Name),
		Help:    displayHelp(field),
	}
	if field.Type == schema.FieldTypeEmail {
		cfg.Validator = validateEmail(field.Required)
	} else if field.Required {
		cfg.Validator = validateRequired
	}

	response, err := r.driver.Input(ctx, cfg)
	if err != nil {
		return err
	}
	state.SetValue(field.Name, response)
	return nil
}

func (r *Renderer) promptTextArea(ctx context.Context, field schema.Field, state *render.FormState) error {
	for {
		response, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: displayLabel(field),
			Default: currentString(state, field.Name),
			Help:    displayHelp(field),
		})
		if err != nil {
			return err
		}
		if field.Required && strings.TrimSpace(response) == "" {
			if err := r.driver.Info(ctx, field.Label+" is required"); err != nil {
				return err
			}
			continue
		}
		state.SetValue(field.Name, response)
		return nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field schema.Field, state *render.FormState) error {
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: currentString(state, field.Name),
			Help:    displayHelp(field),
		})
		if err != nil {
			return err
		}

		if strings.TrimSpace(input) == "" {
			if field.Required {
				if err := r.driver.Info(ctx, field.Label+" is required"); err != nil {
					return err
				}
				continue
			}
			return nil
		}

		parsed, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			if err := r.driver.Info(ctx, "Enter a number for "+field.Label); err != nil {
				return err
			}
			continue
		}
		if field.Min != nil && parsed < *field.Min {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s must be at least %v", field.Label, *field.Min)); err != nil {
				return err
			}
			continue
		}
		if field.Max != nil && parsed > *field.Max {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s must be at most %v", field.Label, *field.Max)); err != nil {
				return err
			}
			continue
		}

		state.SetValue(field.Name, parsed)
		return nil
	}
}

const skipChoice = "(skip)"

func (r *Renderer) promptChoice(ctx context.Context, field schema.Field, state *render.FormState) error {
	options := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		options = append(options, skipChoice)
	}
	for _, option := range field.Options {
		options = append(options, option.Label)
	}

	defaultIdx := -1
	if current := currentString(state, field.Name); current != "" {
		for i, option := range field.Options {
			if option.Value == current {
				defaultIdx = i
				if !field.Required {
					defaultIdx++
				}
				break
			}
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         displayHelp(field),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("tui: selection out of range for %s", field.Name)
	}
	if !field.Required {
		if idx == 0 {
			return nil
		}
		idx--
	}
	state.SetValue(field.Name, field.Options[idx].Value)
	return nil
}

func (r *Renderer) promptCheckbox(ctx context.Context, field schema.Field, state *render.FormState) error {
	current := false
	if v, ok := state.Value(field.Name); ok {
		current, _ = v.(bool)
	}
	// The required flag is not enforced: answering no is a valid answer.
	response, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: current,
		Help:    displayHelp(field),
	})
	if err != nil {
		return err
	}
	state.SetValue(field.Name, response)
	return nil
}

func (r *Renderer) promptRange(ctx context.Context, field schema.Field, state *render.FormState) error {
	min, max := field.RangeBounds()
	lo, hi := int(min), int(max)

	options := make([]string, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		options = append(options, strconv.Itoa(k))
	}

	// The slider always has a position; the low bound is the starting one.
	defaultIdx := 0
	if v, ok := state.Value(field.Name); ok {
		if f, ok := v.(float64); ok && int(f) >= lo && int(f) <= hi {
			defaultIdx = int(f) - lo
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         displayHelp(field),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("tui: selection out of range for %s", field.Name)
	}
	state.SetValue(field.Name, float64(lo+idx))
	return nil
}

func (r *Renderer) promptRating(ctx context.Context, field schema.Field, state *render.FormState) error {
	options := []string{render.NotRated, "1/5", "2/5", "3/5", "4/5", "5/5"}

	defaultIdx := 0
	if k, rated := state.Rating(field.Name); rated {
		defaultIdx = k
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         displayHelp(field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("tui: selection out of range for %s", field.Name)
		}
		if idx == 0 {
			if field.Required {
				if err := r.driver.Info(ctx, field.Label+" is required"); err != nil {
					return err
				}
				continue
			}
			return nil
		}
		return state.SetRating(field.Name, idx)
	}
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(values)), nil
	}
	return json.Marshal(values)
}

func seedState(state *render.FormState, form schema.FormStructure, values map[string]any) {
	if len(values) == 0 {
		return
	}
	ratingFields := make(map[string]bool, len(form.Fields))
	for _, field := range form.Fields {
		if field.Type == schema.FieldTypeRating {
			ratingFields[field.Name] = true
		}
	}
	for name, value := range values {
		if ratingFields[name] {
			switch k := value.(type) {
			case int:
				_ = state.SetRating(name, k)
			case float64:
				_ = state.SetRating(name, int(k))
			}
			continue
		}
		state.SetValue(name, value)
	}
}

func displayLabel(field schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field schema.Field) string {
	if field.Required {
		return "required"
	}
	return ""
}

func currentString(state *render.FormState, name string) string {
	v, ok := state.Value(name)
	if !ok {
		return ""
	}
	switch typed := v.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}

func validateRequired(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("required")
	}
	return nil
}

func validateEmail(required bool) func(string) error {
	return func(value string) error {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			if required {
				return errors.New("required")
			}
			return nil
		}
		if !strings.Contains(trimmed, "@") {
			return errors.New("not a valid email address")
		}
		return nil
	}
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}
