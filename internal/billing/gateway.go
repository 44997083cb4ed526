package billing

import (
	"context"
	"time"
)

type Customer struct {
	Name  string
	Email string
	CPF   string
	Phone string
}

type Charge struct {
	CustomerEmail string
	Value         float64
	DueDate       time.Time
	Description   string
	Reference     string
}

type ChargeResult struct {
	ID         string
	InvoiceURL string
}

// Gateway é o integrador de cobrança externo. Falhas aqui são logadas e
// engolidas pelos fluxos de venda: a venda nunca depende do gateway.
type Gateway interface {
	CreateCustomer(ctx context.Context, c Customer) (string, error)
	CreateCharge(ctx context.Context, ch Charge) (*ChargeResult, error)
}

// Noop é usado quando não há token configurado.
type Noop struct{}

func (Noop) CreateCustomer(context.Context, Customer) (string, error) {
	return "", nil
}

func (Noop) CreateCharge(context.Context, Charge) (*ChargeResult, error) {
	return &ChargeResult{}, nil
}
