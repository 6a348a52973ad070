package models

import "github.com/guregu/null/v5"

// Donation holds the bank details shown on the donation page. At most one
// record exists.
type Donation struct {
	ID        uint   `gorm:"primaryKey"`
	IBAN      string `gorm:"column:iban;not null"`
	Bank      string `gorm:"not null"`
	Clearing  *string
	Swift     *string
	Postcheck *string
	Note      *string `gorm:"type:text"`
}

// DonationPatch leaves absent fields untouched. The optional columns can be
// cleared with an explicit null, iban and bank cannot.
type DonationPatch struct {
	IBAN      null.String
	Bank      null.String
	Clearing  Null[string]
	Swift     Null[string]
	Postcheck Null[string]
	Note      Null[string]
}

func (p DonationPatch) Assignments() map[string]any {
	assignments := map[string]any{}
	if p.IBAN.Valid {
		assignments["iban"] = p.IBAN.String
	}
	if p.Bank.Valid {
		assignments["bank"] = p.Bank.String
	}

	optional := map[string]Null[string]{
		"clearing":  p.Clearing,
		"swift":     p.Swift,
		"postcheck": p.Postcheck,
		"note":      p.Note,
	}
	for column, value := range optional {
		if value.Set {
			assignments[column] = value.Assignment()
		}
	}
	return assignments
}
