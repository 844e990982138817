package usecase

import (
	"strings"

	"github.com/IdiotCoffee/jobforge/internal/model"
	"github.com/pkg/errors"
)

// FieldKind names a draft field that can be sent for an AI suggestion.
type FieldKind string

const (
	FieldSummary    FieldKind = "summary"
	FieldSkills     FieldKind = "skills"
	FieldExperience FieldKind = "experience"
	FieldEducation  FieldKind = "education"
	FieldProject    FieldKind = "project"
)

// ParseFieldKind accepts the kind names used by the form ("projects" is
// accepted for "project").
func ParseFieldKind(s string) (FieldKind, error) {
	switch k := FieldKind(strings.ToLower(strings.TrimSpace(s))); k {
	case FieldSummary, FieldSkills, FieldExperience, FieldEducation, FieldProject:
		return k, nil
	case "projects":
		return FieldProject, nil
	}
	return "", errors.Errorf("unknown field kind %q", s)
}

// FieldRef addresses one field of a draft. Index is used for entry kinds and
// selects the entry whose description is targeted.
type FieldRef struct {
	Kind  FieldKind `json:"type"`
	Index int       `json:"index"`
}

func (f FieldRef) entries(d *model.ResumeDraft) *[]model.Entry {
	switch f.Kind {
	case FieldExperience:
		return &d.Experience
	case FieldEducation:
		return &d.Education
	case FieldProject:
		return &d.Projects
	}
	return nil
}

// Read returns the current value of the field.
func (f FieldRef) Read(d model.ResumeDraft) (string, error) {
	switch f.Kind {
	case FieldSummary:
		return d.Summary, nil
	case FieldSkills:
		return d.Skills, nil
	}
	list := f.entries(&d)
	if list == nil {
		return "", errors.Errorf("unknown field kind %q", f.Kind)
	}
	if f.Index < 0 || f.Index >= len(*list) {
		return "", errors.Errorf("%s entry %d does not exist", f.Kind, f.Index)
	}
	return (*list)[f.Index].Description, nil
}

// Write returns a copy of d with the field replaced by v.
func (f FieldRef) Write(d model.ResumeDraft, v string) (model.ResumeDraft, error) {
	out := d.Clone()
	switch f.Kind {
	case FieldSummary:
		out.Summary = v
		return out, nil
	case FieldSkills:
		out.Skills = v
		return out, nil
	}
	list := f.entries(&out)
	if list == nil {
		return d, errors.Errorf("unknown field kind %q", f.Kind)
	}
	if f.Index < 0 || f.Index >= len(*list) {
		return d, errors.Errorf("%s entry %d does not exist", f.Kind, f.Index)
	}
	(*list)[f.Index].Description = v
	return out, nil
}

// SplitSkills turns a comma separated skills string into trimmed tokens.
func SplitSkills(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
