package model

import "strings"

type Address struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	UserID  uint    `gorm:"not null;index" json:"user_id"`
	LineOne string  `gorm:"not null;type:varchar(255)" json:"line_one"`
	LineTwo *string `gorm:"type:varchar(255)" json:"line_two"`
	City    string  `gorm:"not null;type:varchar(100)" json:"city"`
	Country string  `gorm:"not null;type:varchar(100)" json:"country"`
	Pincode string  `gorm:"not null;type:varchar(6)" json:"pincode"`
	BaseModel
}

// FormattedAddress 組成單行地址: lineOne, [lineTwo, ]city, country-pincode
func (a *Address) FormattedAddress() string {
	parts := []string{a.LineOne}
	if a.LineTwo != nil && strings.TrimSpace(*a.LineTwo) != "" {
		parts = append(parts, *a.LineTwo)
	}
	parts = append(parts, a.City, a.Country+"-"+a.Pincode)
	return strings.Join(parts, ", ")
}
