package models

import "time"

// Orçamento; quando aprovado vira venda e alimenta o gerador de parcelas
type Budget struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	ReferenceCode string `gorm:"size:40;uniqueIndex" json:"reference_code"`

	Status      string    `gorm:"size:20;default:'pendente'" json:"status"`
	TotalAmount float64   `json:"total_amount"`
	ValidUntil  time.Time `json:"valid_until"`

	Items []BudgetItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BudgetItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BudgetID uint `json:"budget_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Quantity        int     `json:"quantity"`
	PricePerSession float64 `json:"price_per_session"`
}
