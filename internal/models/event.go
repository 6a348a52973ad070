package models

import (
	"database/sql/driver"
	"time"

	"github.com/guregu/null/v5"
	"gorm.io/gorm"
)

const (
	EventStatusActive = "active"
	EventStatusEnded  = "ended"
)

type Event struct {
	ID               uint      `gorm:"primaryKey"`
	Title            string    `gorm:"not null"`
	Description      string    `gorm:"type:text;not null"`
	Location         string    `gorm:"not null"`
	StartTime        time.Time `gorm:"not null;index"`
	EndTime          time.Time `gorm:"not null;index"`
	Status           string    `gorm:"not null;default:active;index"`
	Image            *string   `gorm:"type:text"`
	ImageCaption     *string
	OpenToAll        bool           `gorm:"not null;default:false"`
	HasSupporterTier bool           `gorm:"not null;default:false"`
	Prices           []EventPrice   `gorm:"constraint:OnDelete:CASCADE"`
	FormFields       []FormField    `gorm:"constraint:OnDelete:CASCADE"`
	Registrations    []Registration `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.Status == "" {
		event.Status = EventStatusActive
	}
	return
}

// Expired reports whether an active event has passed its end time.
func (event Event) Expired(now time.Time) bool {
	return event.Status == EventStatusActive && event.EndTime.Before(now)
}

type EventPrice struct {
	ID          uint    `gorm:"primaryKey"`
	EventID     uint    `gorm:"not null;index"`
	Description *string `gorm:"type:text"`
	Cost        float64 `gorm:"not null;default:0"`
}

func ValidEventStatus(status string) bool {
	return status == EventStatusActive || status == EventStatusEnded
}

type PriceInput struct {
	Description *string
	Cost        *float64
}

// NewEventPrices drops tiers that carry neither a description nor a cost.
// A missing cost is stored as zero.
func NewEventPrices(eventID uint, inputs []PriceInput) []EventPrice {
	prices := make([]EventPrice, 0, len(inputs))
	for _, in := range inputs {
		hasDescription := in.Description != nil && *in.Description != ""
		if !hasDescription && in.Cost == nil {
			continue
		}
		price := EventPrice{EventID: eventID}
		if hasDescription {
			price.Description = in.Description
		}
		if in.Cost != nil {
			price.Cost = *in.Cost
		}
		prices = append(prices, price)
	}
	return prices
}

// EventInput carries the fields of a new event. Image is the raw data URI
// as sent by the client.
type EventInput struct {
	Title            string
	Description      string
	Location         string
	StartTime        time.Time
	EndTime          time.Time
	Image            string
	ImageCaption     *string
	OpenToAll        bool
	HasSupporterTier bool
	Prices           []PriceInput
}

// EventPatch is a partial update. Only valid fields are written; a nil
// Prices or FormFields slice leaves the tiers or the schema untouched.
type EventPatch struct {
	Title            null.String
	Description      null.String
	Location         null.String
	StartTime        null.Time
	EndTime          null.Time
	Status           null.String
	Image            null.String
	ImageCaption     null.String
	OpenToAll        null.Bool
	HasSupporterTier null.Bool
	Prices           []PriceInput
	FormFields       []FormFieldInput
}

// Assignments builds the column set of the update from the fields present
// in the patch.
func (p EventPatch) Assignments() map[string]any {
	columns := map[string]driver.Valuer{
		"title":              p.Title,
		"description":        p.Description,
		"location":           p.Location,
		"start_time":         p.StartTime,
		"end_time":           p.EndTime,
		"status":             p.Status,
		"image":              p.Image,
		"image_caption":      p.ImageCaption,
		"open_to_all":        p.OpenToAll,
		"has_supporter_tier": p.HasSupporterTier,
	}

	assignments := make(map[string]any, len(columns))
	for column, value := range columns {
		v, err := value.Value()
		if err != nil || v == nil {
			continue
		}
		assignments[column] = v
	}
	return assignments
}

func (p EventPatch) IsEmpty() bool {
	return len(p.Assignments()) == 0 && p.Prices == nil && p.FormFields == nil
}

// EventUpdate is the storage level form of a validated EventPatch.
type EventUpdate struct {
	Assignments   map[string]any
	ReplacePrices bool
	Prices        []EventPrice
	ReplaceFields bool
	Fields        []FormField
}
