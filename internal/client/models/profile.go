package models

import (
	"github.com/dmitrijs2005/househunt/internal/timex"
)

// Profile is the account record returned by the role-scoped "me" endpoint.
// Renter and agent payloads share the common block; the remaining fields are
// filled only for the role that has them.
type Profile struct {
	// Role is set by the API client from the endpoint the profile came from.
	Role Role `json:"-"`

	ID             int64           `json:"id"`
	Email          string          `json:"email"`
	Username       string          `json:"username"`
	FullName       string          `json:"full_name"`
	Phone          string          `json:"phone,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	ProfilePicture string          `json:"profile_picture,omitempty"`
	IsActive       bool            `json:"is_active"`
	IsVerified     bool            `json:"is_verified"`
	CreatedAt      timex.Timestamp `json:"created_at"`
	UpdatedAt      timex.Timestamp `json:"updated_at"`

	// IsAdmin is a display label on renter accounts. It grants nothing.
	IsAdmin bool `json:"is_admin,omitempty"`

	Title           string   `json:"title,omitempty"`
	LicenseNumber   string   `json:"license_number,omitempty"`
	Company         string   `json:"company,omitempty"`
	Specialties     []string `json:"specialties,omitempty"`
	ServiceAreas    []string `json:"service_areas,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	YearsExperience int      `json:"years_experience,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	TotalReviews    int      `json:"total_reviews,omitempty"`
}

// DisplayName prefers the full name and falls back to the username.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}

// Clone returns a deep copy so snapshots handed to readers cannot be mutated
// behind the session's back.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Specialties = cloneStrings(p.Specialties)
	c.ServiceAreas = cloneStrings(p.ServiceAreas)
	c.Languages = cloneStrings(p.Languages)
	c.Certifications = cloneStrings(p.Certifications)
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
