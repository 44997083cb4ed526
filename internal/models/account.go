package models

import "time"

// Conta financeira; o saldo é mantido por efeito colateral das transações pagas
type Account struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	Name    string  `gorm:"size:100;not null" json:"name"`
	Type    string  `gorm:"size:10;default:'bank'" json:"type"`
	Balance float64 `json:"balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
