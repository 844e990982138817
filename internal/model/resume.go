package model

// Go models that match the form schemas under schema/ used for validation.

type Contact struct {
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
	LinkedIn string `json:"linkedIn,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Entry is one experience, education or project item.
type Entry struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	Description  string `json:"description"`
	Current      bool   `json:"current"`
}

type ResumeDraft struct {
	Contact    Contact `json:"contactInfo"`
	Summary    string  `json:"summary"`
	Skills     string  `json:"skills"`
	Experience []Entry `json:"experience"`
	Education  []Entry `json:"education"`
	Projects   []Entry `json:"projects"`
}

// Clone returns a copy whose entry slices can be modified without touching d.
func (d ResumeDraft) Clone() ResumeDraft {
	out := d
	out.Experience = append([]Entry(nil), d.Experience...)
	out.Education = append([]Entry(nil), d.Education...)
	out.Projects = append([]Entry(nil), d.Projects...)
	return out
}

// Onboarding is the industry profile collected before the builder opens.
type Onboarding struct {
	Industry    string `json:"industry"`
	SubIndustry string `json:"subIndustry"`
	Bio         string `json:"bio,omitempty"`
	Experience  int    `json:"experience"`
	Skills      string `json:"skills,omitempty"`
}

type CoverLetterInput struct {
	CompanyName    string `json:"companyName"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
}
