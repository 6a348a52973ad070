package models

import (
	"strings"
	"time"
)

const (
	SubscriberStatusActive   = "aktiv"
	SubscriberStatusInactive = "inaktiv"
)

type Newsletter struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	SendDate  time.Time `gorm:"not null"`
	SentAt    *time.Time
	Sections  []NewsletterSection `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time           `gorm:"index"`
}

// NewsletterSection is one block of a newsletter. Position keeps the order
// the sections were submitted in.
type NewsletterSection struct {
	ID           uint    `gorm:"primaryKey"`
	NewsletterID uint    `gorm:"not null;index"`
	Position     int     `gorm:"not null"`
	Subtitle     string  `gorm:"not null;default:''"`
	Text         string  `gorm:"type:text;not null;default:''"`
	Image        *string `gorm:"type:text"`
}

type NewsletterInput struct {
	Title    string
	SendDate string
	Sections []SectionInput
}

type SectionInput struct {
	Subtitle string
	Text     string
	Image    string
}

// Subscriber is a newsletter recipient. Unsubscribing keeps the row so the
// address can be reactivated later.
type Subscriber struct {
	ID               uint      `gorm:"primaryKey"`
	FirstName        string    `gorm:"not null"`
	LastName         string    `gorm:"not null"`
	Email            string    `gorm:"not null;uniqueIndex"`
	UnsubscribeToken string    `gorm:"not null;uniqueIndex"`
	OptIn            bool      `gorm:"not null;default:false"`
	SubscribedAt     time.Time `gorm:"not null;index"`
	UnsubscribedAt   *time.Time
}

func (Subscriber) TableName() string {
	return "newsletter_subscribers"
}

func (s Subscriber) Active() bool {
	return s.UnsubscribedAt == nil
}

func (s Subscriber) Status() string {
	if s.Active() {
		return SubscriberStatusActive
	}
	return SubscriberStatusInactive
}

type SubscriberInput struct {
	FirstName string
	LastName  string
	Email     string
	OptIn     bool
}

// Complete reports whether names and email are all present.
func (in SubscriberInput) Complete() bool {
	return strings.TrimSpace(in.FirstName) != "" &&
		strings.TrimSpace(in.LastName) != "" &&
		strings.TrimSpace(in.Email) != ""
}

// NormalizeEmail trims and lowercases an address so lookups match regardless
// of how it was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
