// Package prompts builds the prompts sent to the completion model and
// cleans up what comes back.
package prompts

import (
	"fmt"
	"strings"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/IdiotCoffee/jobforge/internal/model"
)

func industryOrDefault(industry string) string {
	if strings.TrimSpace(industry) == "" {
		return "general"
	}
	return industry
}

// Summary asks for a rewritten professional summary.
func Summary(current, industry string) string {
	return fmt.Sprintf(`As an expert resume writer, improve the following professional summary for a %s professional.
Make it more impactful and aligned with industry standards.
Current content: %q

Requirements:
1. Use action verbs if possible
2. Highlight relevant technical skills
3. Keep it concise but detailed
4. Focus on achievements and responsibilities
5. Use industry-specific keywords
6. Highlight interests and achievements

Format the response in 2 to 3 sentences without any additional text or explanations.`, industryOrDefault(industry), current)
}

// Skills asks for a tightened skills list.
func Skills(current, industry string) string {
	return fmt.Sprintf(`As an expert resume writer, improve the following skills list for a %s professional.
Current content: %q

Requirements:
1. Keep every skill that is relevant to the industry
2. Use the standard spelling of each technology or skill
3. Remove duplicates
4. Add at most three closely related skills the candidate most likely has

Format the response as a single comma separated list without any additional text or explanations.`, industryOrDefault(industry), current)
}

// Description asks for an improved experience, education or project
// description.
func Description(kind, current, industry string) string {
	return fmt.Sprintf(`As an expert resume writer, improve the following %s description for a %s professional.
Make it more impactful, quantifiable, and aligned with industry standards.
Current content: %q

Requirements:
1. Use action verbs
2. Include metrics and results where possible
3. Highlight relevant technical skills
4. Keep it concise but detailed
5. Focus on achievements over responsibilities
6. Use industry-specific keywords

Format the response in 2 to 3 points without any additional text or explanations.`, kind, industryOrDefault(industry), current)
}

// Improve picks the prompt for a field kind.
func Improve(kind, current, industry string) string {
	switch kind {
	case "summary":
		return Summary(current, industry)
	case "skills":
		return Skills(current, industry)
	}
	return Description(kind, current, industry)
}

// CoverLetter asks for a markdown cover letter based on the user's profile.
func CoverLetter(u domain.User, in model.CoverLetterInput) string {
	return fmt.Sprintf(`Write a professional cover letter for a %s position at %s.

About the candidate:
- Industry: %s
- Years of Experience: %d
- Skills: %s
- Professional Background: %s

Job Description:
%s

Requirements:
1. Use a professional, enthusiastic tone
2. Highlight relevant skills and experience
3. Show understanding of the company's needs
4. Keep it under 400 words
5. Use proper business letter formatting in markdown
6. Include specific examples of achievements
7. Relate candidate's background to job requirements

Format the letter in markdown.`,
		in.JobTitle, in.CompanyName,
		industryOrDefault(u.IndustryContext()), u.ExperienceYears,
		strings.Join(u.Skills, ", "), u.Bio,
		in.JobDescription)
}

// Clean trims model output and removes a surrounding code fence.
func Clean(out string) string {
	s := strings.TrimSpace(out)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag line
		s = s[i+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
