package models

import "time"

// Caixa diário por usuário; no máximo um aberto por usuário
type CashRegister struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	OpeningBalance float64  `json:"opening_balance"`
	ClosingBalance *float64 `json:"closing_balance"`

	Status string `gorm:"size:10;default:'open'" json:"status"`

	OpeningDate time.Time  `json:"opening_date"`
	ClosingDate *time.Time `json:"closing_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
