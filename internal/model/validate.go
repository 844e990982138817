package model

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.json
var schemaFS embed.FS

// FieldError is a single schema violation, addressed by its JSON path
// (for example "experience.0.endDate").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when form data does not satisfy its schema.
type ValidationError struct {
	Schema string       `json:"schema"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(msgs, "; "))
}

// Has reports whether field is among the violations.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ValidateDraft validates a resume draft against schema/resume.schema.json.
func ValidateDraft(d ResumeDraft) error {
	return validate("resume", d)
}

// ValidateOnboarding validates the onboarding form.
func ValidateOnboarding(o Onboarding) error {
	return validate("onboarding", o)
}

// ValidateCoverLetterInput validates a cover letter request.
func ValidateCoverLetterInput(in CoverLetterInput) error {
	return validate("cover_letter", in)
}

func validate(name string, v interface{}) error {
	schema, err := schemaFS.ReadFile("schema/" + name + ".schema.json")
	if err != nil {
		return err
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewGoLoader(v))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	verr := &ValidationError{Schema: name}
	seen := map[string]bool{}
	for _, e := range res.Errors() {
		// if/then failures repeat the nested violation one level up
		if e.Type() == "condition_then" {
			continue
		}
		field := e.Field()
		if e.Type() == "required" {
			if p, ok := e.Details()["property"].(string); ok && !strings.HasSuffix(field, p) {
				field = strings.TrimPrefix(field+"."+p, "(root).")
			}
		}
		key := field + "|" + e.Description()
		if seen[key] {
			continue
		}
		seen[key] = true
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: e.Description()})
	}
	sort.Slice(verr.Fields, func(i, j int) bool { return verr.Fields[i].Field < verr.Fields[j].Field })
	return verr
}
