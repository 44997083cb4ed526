package models

import "time"

type Transaction struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	Description string  `gorm:"size:255;not null" json:"description"`
	Amount      float64 `json:"amount"`

	Type   string `gorm:"size:10;not null" json:"type"`
	Status string `gorm:"size:10;default:'pending'" json:"status"`

	DueDate *time.Time `json:"due_date"`
	PaidAt  *time.Time `json:"paid_at"`

	CategoryID *uint              `json:"category_id"`
	Category   *FinancialCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	AccountID *uint    `json:"account_id"`
	Account   *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"account,omitempty"`

	PaymentMethodID *uint          `json:"payment_method_id"`
	PaymentMethod   *PaymentMethod `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"payment_method,omitempty"`

	ClientID *uint `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	BudgetID  *uint `json:"budget_id"`
	PackageID *uint `json:"package_id"`

	CashRegisterID *uint `json:"cash_register_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
