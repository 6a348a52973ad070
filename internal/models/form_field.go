package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	FieldTypeText   = "text"
	FieldTypeSelect = "select"
)

// FormField is one entry of an event's registration form. An event has at
// most one field set; storing a new set replaces the previous one.
type FormField struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	Position  int    `gorm:"not null;default:0"`
	Name      string `gorm:"not null"`
	Type      string `gorm:"not null;default:text"`
	Required  bool   `gorm:"not null;default:false"`
	Options   datatypes.JSONSlice[string]
	CreatedAt time.Time
}

// Choices returns the option list. Fields without options yield an empty
// slice.
func (f FormField) Choices() []string {
	if len(f.Options) == 0 {
		return []string{}
	}
	return []string(f.Options)
}

type FormFieldInput struct {
	Name     string
	Type     string
	Required bool
	Options  []string
}

// NewFormFields validates the inputs and converts them into storable fields
// in the given order. Select fields must carry choices; other types never
// store any.
func NewFormFields(eventID uint, inputs []FormFieldInput) ([]FormField, error) {
	fields := make([]FormField, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, BadRequest("form field %d has no name", i+1)
		}

		typ := strings.TrimSpace(in.Type)
		if typ == "" {
			typ = FieldTypeText
		}

		field := FormField{
			EventID:  eventID,
			Position: i,
			Name:     name,
			Type:     typ,
			Required: in.Required,
		}

		if typ == FieldTypeSelect {
			if len(in.Options) == 0 {
				return nil, BadRequest("select field %q needs at least one option", name)
			}
			field.Options = datatypes.NewJSONSlice(in.Options)
		}

		fields = append(fields, field)
	}
	return fields, nil
}
