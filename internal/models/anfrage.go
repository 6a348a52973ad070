package models

import "time"

// Anfrage is an inquiry submitted through the contact form.
type Anfrage struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Anfrage) TableName() string {
	return "anfragen"
}
