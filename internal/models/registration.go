package models

import (
	"time"

	"gorm.io/datatypes"
)

// Registration is an immutable form submission. Data is stored verbatim,
// including keys the form schema does not declare.
type Registration struct {
	ID        uint              `gorm:"primaryKey"`
	EventID   uint              `gorm:"not null;index"`
	Data      datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt time.Time         `gorm:"index"`
}

// MissingRequiredField returns the first required field, in schema order,
// that is absent, null or an empty string in data.
func MissingRequiredField(fields []FormField, data map[string]any) (string, bool) {
	for _, field := range fields {
		if !field.Required {
			continue
		}
		value, ok := data[field.Name]
		if !ok || value == nil {
			return field.Name, true
		}
		if s, isString := value.(string); isString && s == "" {
			return field.Name, true
		}
	}
	return "", false
}

// ProjectedRegistration is a registration reduced to the current schema.
type ProjectedRegistration struct {
	ID        uint
	Data      map[string]any
	CreatedAt time.Time
}

type RegistrationListing struct {
	Fields        []string
	Registrations []ProjectedRegistration
}

// Project keeps only the keys of data named in fieldNames. Stale keys from
// a superseded schema are dropped.
func Project(fieldNames []string, data map[string]any) map[string]any {
	projected := make(map[string]any, len(fieldNames))
	for _, name := range fieldNames {
		if value, ok := data[name]; ok {
			projected[name] = value
		}
	}
	return projected
}

func FieldNames(fields []FormField) []string {
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	return names
}
