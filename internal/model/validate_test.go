package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() ResumeDraft {
	return ResumeDraft{
		Contact: Contact{Email: "a@b.com"},
		Summary: "Built X",
		Skills:  "Go, SQL",
		Experience: []Entry{
			{Title: "Engineer", Organization: "Acme", StartDate: "2020-01", EndDate: "2022-03", Description: "Shipped things"},
			{Title: "Lead", Organization: "Globex", StartDate: "2022-04", Current: true, Description: "Leads things"},
		},
	}
}

func TestValidateDraft_Valid(t *testing.T) {
	require.NoError(t, ValidateDraft(validDraft()))
}

func TestValidateDraft_MissingSkillsRejected(t *testing.T) {
	d := ResumeDraft{Contact: Contact{Email: "a@b.com"}, Summary: "Built X"}

	err := ValidateDraft(d)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("skills"), "fields: %+v", verr.Fields)
	assert.False(t, verr.Has("summary"))
}

func TestValidateDraft_WhitespaceSummaryRejected(t *testing.T) {
	d := validDraft()
	d.Summary = "   "

	var verr *ValidationError
	require.ErrorAs(t, ValidateDraft(d), &verr)
	assert.True(t, verr.Has("summary"))
}

func TestValidateDraft_WhitespaceEntryRejected(t *testing.T) {
	d := validDraft()
	d.Experience = []Entry{{Title: " ", Organization: " ", StartDate: " ", EndDate: " ", Description: " "}}

	var verr *ValidationError
	require.ErrorAs(t, ValidateDraft(d), &verr)
	for _, f := range []string{
		"experience.0.title",
		"experience.0.organization",
		"experience.0.startDate",
		"experience.0.endDate",
		"experience.0.description",
	} {
		assert.True(t, verr.Has(f), "missing %s in %+v", f, verr.Fields)
	}
}

func TestValidateDraft_WhitespaceEndDateAllowedWhenCurrent(t *testing.T) {
	d := validDraft()
	d.Experience[1].EndDate = " "

	require.NoError(t, ValidateDraft(d))
}

func TestValidateDraft_EndDateRequiredUnlessCurrent(t *testing.T) {
	d := validDraft()
	d.Experience[0].EndDate = ""

	var verr *ValidationError
	require.ErrorAs(t, ValidateDraft(d), &verr)
	assert.True(t, verr.Has("experience.0.endDate"), "fields: %+v", verr.Fields)
	assert.False(t, verr.Has("experience.1.endDate"))
}

func TestValidateDraft_EntryRequiredFields(t *testing.T) {
	d := validDraft()
	d.Projects = []Entry{{StartDate: "2021", EndDate: "2022"}}

	var verr *ValidationError
	require.ErrorAs(t, ValidateDraft(d), &verr)
	for _, f := range []string{"projects.0.title", "projects.0.organization", "projects.0.description"} {
		assert.True(t, verr.Has(f), "missing %s in %+v", f, verr.Fields)
	}
}

func TestValidateDraft_Email(t *testing.T) {
	d := validDraft()
	d.Contact.Email = "not-an-email"

	var verr *ValidationError
	require.ErrorAs(t, ValidateDraft(d), &verr)
	assert.True(t, verr.Has("contactInfo.email"))
	assert.Contains(t, verr.Error(), "resume validation failed")
}

func TestValidateOnboarding(t *testing.T) {
	require.NoError(t, ValidateOnboarding(Onboarding{Industry: "tech", SubIndustry: "software", Experience: 4}))

	var verr *ValidationError
	require.ErrorAs(t, ValidateOnboarding(Onboarding{Industry: "tech", SubIndustry: "software", Experience: 51}), &verr)
	assert.True(t, verr.Has("experience"))

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	require.ErrorAs(t, ValidateOnboarding(Onboarding{Industry: "tech", SubIndustry: "software", Bio: string(long)}), &verr)
	assert.True(t, verr.Has("bio"))
}

func TestValidateCoverLetterInput(t *testing.T) {
	require.NoError(t, ValidateCoverLetterInput(CoverLetterInput{CompanyName: "Acme", JobTitle: "Engineer", JobDescription: "Build"}))

	var verr *ValidationError
	require.ErrorAs(t, ValidateCoverLetterInput(CoverLetterInput{CompanyName: "Acme"}), &verr)
	assert.True(t, verr.Has("jobTitle"))
	assert.True(t, verr.Has("jobDescription"))

	require.ErrorAs(t, ValidateCoverLetterInput(CoverLetterInput{CompanyName: "  ", JobTitle: "Engineer", JobDescription: "\t\n"}), &verr)
	assert.True(t, verr.Has("companyName"))
	assert.True(t, verr.Has("jobDescription"))
	assert.False(t, verr.Has("jobTitle"))
}

func TestResumeDraftClone(t *testing.T) {
	d := validDraft()
	c := d.Clone()
	c.Experience[0].Description = "changed"
	assert.Equal(t, "Shipped things", d.Experience[0].Description)
}
