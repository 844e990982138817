package usecase

import (
	"regexp"
	"strings"

	"github.com/IdiotCoffee/jobforge/internal/model"
)

const (
	headingSummary    = "Professional Summary"
	headingSkills     = "Skills"
	headingExperience = "Work Experience"
	headingEducation  = "Education"
	headingProjects   = "Projects"
)

// Assemble flattens a draft into the canonical markdown document. It is a
// pure function of its arguments; the draft is assumed to be valid.
func Assemble(d model.ResumeDraft, authorName string) string {
	blocks := []string{
		contactBlock(d.Contact, authorName),
		section(headingSummary, d.Summary),
		section(headingSkills, d.Skills),
		entriesBlock(headingExperience, d.Experience),
		entriesBlock(headingEducation, d.Education),
		entriesBlock(headingProjects, d.Projects),
	}
	out := blocks[:0]
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n\n")
}

func contactBlock(c model.Contact, authorName string) string {
	var parts []string
	if v := strings.TrimSpace(c.Email); v != "" {
		parts = append(parts, "Email: "+v)
	}
	for _, f := range []struct{ label, value string }{
		{"Phone", c.Mobile},
		{"LinkedIn", c.LinkedIn},
		{"Twitter", c.Twitter},
	} {
		if v := strings.TrimSpace(f.value); v != "" {
			parts = append(parts, f.label+": ["+v+"]("+v+")")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "# " + strings.TrimSpace(authorName) + "\n\n" + strings.Join(parts, " | ")
}

func section(heading, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	return "## " + heading + "\n\n" + body
}

func entriesBlock(heading string, entries []model.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(entries)+1)
	blocks = append(blocks, "## "+heading)
	for _, e := range entries {
		end := strings.TrimSpace(e.EndDate)
		if e.Current {
			end = "Present"
		}
		blocks = append(blocks,
			"### "+strings.TrimSpace(e.Title)+" @ "+strings.TrimSpace(e.Organization)+"\n"+
				strings.TrimSpace(e.StartDate)+" – "+end+"\n\n"+
				strings.TrimSpace(e.Description))
	}
	return strings.Join(blocks, "\n\n")
}

var blankRun = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)*`)

// NormalizeContent collapses runs of blank lines into one and trims the
// document. It is applied to content before it is stored.
func NormalizeContent(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(blankRun.ReplaceAllString(s, "\n\n"))
}
