package models

import (
	"strings"
	"time"

	"github.com/guregu/null/v5"
)

// BoardMember is the public profile of a board member. Username links the
// profile to the login carried in the access token.
type BoardMember struct {
	ID          uint    `gorm:"primaryKey"`
	Gender      string  `gorm:"not null"`
	FirstName   string  `gorm:"not null"`
	LastName    string  `gorm:"not null"`
	Address     string  `gorm:"not null"`
	PostalCode  string  `gorm:"not null"`
	City        string  `gorm:"not null"`
	Username    string  `gorm:"not null;uniqueIndex"`
	Phone       string  `gorm:"not null"`
	Email       string  `gorm:"not null"`
	Role        string  `gorm:"not null"`
	Description *string `gorm:"type:text"`
	Photo       *string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BoardMember) TableName() string {
	return "vorstand"
}

// MissingFields lists the required profile fields that are blank, in form
// order.
func (m BoardMember) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"geschlecht", m.Gender},
		{"vorname", m.FirstName},
		{"nachname", m.LastName},
		{"adresse", m.Address},
		{"plz", m.PostalCode},
		{"ort", m.City},
		{"benutzername", m.Username},
		{"telefon", m.Phone},
		{"email", m.Email},
		{"rolle", m.Role},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// BoardProfile is what a logged in user sees of themselves. Member is nil
// when the user has no board profile.
type BoardProfile struct {
	ActorID  int64
	Username string
	Member   *BoardMember
}

// BoardMemberPatch updates the own profile. Description and Photo can be
// cleared with an explicit null.
type BoardMemberPatch struct {
	Gender      null.String
	FirstName   null.String
	LastName    null.String
	Address     null.String
	PostalCode  null.String
	City        null.String
	Username    null.String
	Phone       null.String
	Email       null.String
	Role        null.String
	Description Null[string]
	Photo       Null[string]
}

func (p BoardMemberPatch) IsEmpty() bool {
	return len(p.Assignments()) == 0
}

// Assignments maps the sent fields to their columns. Photo is expected to be
// normalized already.
func (p BoardMemberPatch) Assignments() map[string]any {
	required := map[string]null.String{
		"gender":      p.Gender,
		"first_name":  p.FirstName,
		"last_name":   p.LastName,
		"address":     p.Address,
		"postal_code": p.PostalCode,
		"city":        p.City,
		"username":    p.Username,
		"phone":       p.Phone,
		"email":       p.Email,
		"role":        p.Role,
	}

	assignments := map[string]any{}
	for column, value := range required {
		if value.Valid {
			assignments[column] = value.String
		}
	}
	if p.Description.Set {
		assignments["description"] = p.Description.Assignment()
	}
	if p.Photo.Set {
		assignments["photo"] = p.Photo.Assignment()
	}
	return assignments
}

// BlankRequired returns the first required column that the patch sets to an
// empty string.
func (p BoardMemberPatch) BlankRequired() (string, bool) {
	fields := []struct {
		name  string
		value null.String
	}{
		{"geschlecht", p.Gender},
		{"vorname", p.FirstName},
		{"nachname", p.LastName},
		{"adresse", p.Address},
		{"plz", p.PostalCode},
		{"ort", p.City},
		{"benutzername", p.Username},
		{"telefon", p.Phone},
		{"email", p.Email},
		{"rolle", p.Role},
	}
	for _, field := range fields {
		if field.value.Valid && strings.TrimSpace(field.value.String) == "" {
			return field.name, true
		}
	}
	return "", false
}
