package models

import "time"

type FinancialCategory struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Type string `gorm:"size:10;not null" json:"type"`

	IsRecurring   bool     `gorm:"default:false" json:"is_recurring"`
	DefaultAmount *float64 `json:"default_amount"`
	DueDay        *int     `json:"due_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
