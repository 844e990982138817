package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the acting user as reported by the identity provider.
type Identity struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

func (i Identity) Valid() bool { return i.UserID != "" }

type User struct {
	ID              uuid.UUID `json:"id"`
	ExternalID      string    `json:"externalId"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	SubIndustry     string    `json:"subIndustry,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ExperienceYears int       `json:"experience"`
	Skills          []string  `json:"skills"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Onboarded reports whether the user has picked an industry.
func (u *User) Onboarded() bool { return u != nil && u.Industry != "" }

// IndustryContext is the industry label handed to the AI client.
func (u *User) IndustryContext() string {
	if u == nil || u.Industry == "" {
		return ""
	}
	if u.SubIndustry == "" {
		return u.Industry
	}
	return u.Industry + "-" + u.SubIndustry
}
