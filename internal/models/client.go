package models

import "time"

// Cliente da clínica, sem login próprio
type Client struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	CPF   string `gorm:"size:14" json:"cpf"`
	Notes string `gorm:"size:500" json:"notes"`

	BillingCustomerID string `gorm:"size:50" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
