package billing

import (
	"context"
	"strconv"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/customer"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

type MercadoPago struct {
	customers customer.Client
	payments  payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{
		customers: customer.NewClient(cfg),
		payments:  payment.NewClient(cfg),
	}, nil
}

func (g *MercadoPago) CreateCustomer(
	ctx context.Context,
	c Customer,
) (string, error) {

	first, last := splitName(c.Name)

	req := customer.Request{
		Email:     c.Email,
		FirstName: first,
		LastName:  last,
	}

	if c.CPF != "" {
		req.Identification = &customer.IdentificationRequest{
			Type:   "CPF",
			Number: c.CPF,
		}
	}

	resource, err := g.customers.Create(ctx, req)
	if err != nil {
		return "", err
	}

	return resource.ID, nil
}

func (g *MercadoPago) CreateCharge(
	ctx context.Context,
	ch Charge,
) (*ChargeResult, error) {

	due := ch.DueDate

	req := payment.Request{
		TransactionAmount: ch.Value,
		Description:       ch.Description,
		PaymentMethodID:   "pix",
		ExternalReference: ch.Reference,
		DateOfExpiration:  &due,
		Payer: &payment.PayerRequest{
			Email: ch.CustomerEmail,
		},
	}

	resource, err := g.payments.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &ChargeResult{
		ID:         strconv.Itoa(resource.ID),
		InvoiceURL: resource.PointOfInteraction.TransactionData.TicketURL,
	}, nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
