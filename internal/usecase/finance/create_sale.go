package finance

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lumesistemas/clinic-manager/internal/audit"
	"github.com/lumesistemas/clinic-manager/internal/billing"
	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SaleItem struct {
	ServiceID       uint
	Quantity        int
	PricePerSession float64
}

type CreateSaleInput struct {
	ClinicID uint
	UserID   uint
	ClientID uint

	Items []SaleItem

	PaymentMethodID uint
	Installments    int
	PaidNow         bool
	AccountID       *uint

	// SaleDate permite registrar uma venda feita mais cedo; vazio usa agora.
	SaleDate *time.Time
}

type CreateSaleOutput struct {
	Budget       *models.Budget       `json:"budget"`
	Transactions []models.Transaction `json:"transactions"`
	InvoiceURL   string               `json:"invoice_url,omitempty"`
	Message      string               `json:"message"`
}

// ======================================================
// USE CASE
// ======================================================

// CreateSale converte um carrinho de serviços em um orçamento aprovado e
// N parcelas financeiras. Todo o fluxo roda em uma transação do banco:
// qualquer falha desfaz orçamento, itens e parcelas.
type CreateSale struct {
	repo    domain.Repository
	gateway billing.Gateway
	audit   *audit.Dispatcher
}

func NewCreateSale(
	repo domain.Repository,
	gateway billing.Gateway,
	audit *audit.Dispatcher,
) *CreateSale {
	return &CreateSale{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *CreateSale) Execute(
	ctx context.Context,
	in CreateSaleInput,
) (*CreateSaleOutput, error) {

	if len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("empty_cart")
	}
	if in.Installments < 1 {
		return nil, httperr.ErrBusiness("invalid_installments")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	client, err := uc.repo.GetClient(ctx, in.ClinicID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	if _, err := uc.repo.GetPaymentMethod(ctx, in.ClinicID, in.PaymentMethodID); err != nil {
		return nil, httperr.ErrBusiness("payment_method_not_found")
	}

	if in.PaidNow && in.AccountID != nil {
		if _, err := uc.repo.GetAccount(ctx, in.ClinicID, *in.AccountID); err != nil {
			return nil, httperr.ErrBusiness("account_not_found")
		}
	}

	saleDate := timezone.NowIn(clinic.Timezone)
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	var total float64
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, httperr.ErrBusiness("invalid_item_quantity")
		}
		total += float64(item.Quantity) * item.PricePerSession
	}

	installmentValue := total / float64(in.Installments)
	dueDates := domain.InstallmentDueDates(saleDate, in.Installments)

	register, err := uc.repo.FindOpenCashRegister(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		ClinicID:      in.ClinicID,
		ClientID:      in.ClientID,
		UserID:        in.UserID,
		ReferenceCode: uuid.NewString(),
		Status:        string(domain.BudgetApproved),
		TotalAmount:   total,
		ValidUntil:    saleDate.AddDate(0, 0, 30),
	}
	for _, item := range in.Items {
		budget.Items = append(budget.Items, models.BudgetItem{
			ServiceID:       item.ServiceID,
			Quantity:        item.Quantity,
			PricePerSession: item.PricePerSession,
		})
	}

	var transactions []models.Transaction

	err = uc.repo.Atomically(ctx, func(r domain.Repository) error {

		if err := r.CreateBudget(ctx, budget); err != nil {
			return err
		}

		for i, due := range dueDates {
			dueDate := due

			tr := models.Transaction{
				ClinicID: in.ClinicID,
				Description: fmt.Sprintf(
					"Venda %s - parcela %d/%d",
					budget.ReferenceCode[:8], i+1, in.Installments,
				),
				Amount:          installmentValue,
				Type:            string(domain.TypeIncome),
				Status:          string(domain.StatusPending),
				DueDate:         &dueDate,
				PaymentMethodID: &in.PaymentMethodID,
				ClientID:        &in.ClientID,
				BudgetID:        &budget.ID,
			}

			if i == 0 && in.PaidNow {
				paidAt := saleDate
				tr.Status = string(domain.StatusPaid)
				tr.PaidAt = &paidAt
				tr.AccountID = in.AccountID
				if register != nil {
					tr.CashRegisterID = &register.ID
				}
			}

			if err := r.CreateTransaction(ctx, &tr); err != nil {
				return err
			}

			if tr.Status == string(domain.StatusPaid) && tr.AccountID != nil {
				delta := domain.BalanceDelta(domain.TypeIncome, tr.Amount)
				if err := r.AdjustAccountBalance(ctx, *tr.AccountID, delta); err != nil {
					return err
				}
			}

			transactions = append(transactions, tr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	invoiceURL := uc.syncCharge(ctx, client, budget, transactions)

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   "sale_created",
		Entity:   "budget",
		EntityID: &budget.ID,
		Metadata: map[string]any{
			"total":        total,
			"installments": in.Installments,
		},
	})

	return &CreateSaleOutput{
		Budget:       budget,
		Transactions: transactions,
		InvoiceURL:   invoiceURL,
		Message: fmt.Sprintf(
			"Venda de R$ %.2f registrada em %d parcela(s).",
			total, in.Installments,
		),
	}, nil
}

// syncCharge envia a primeira parcela em aberto para o gateway de cobrança.
// Falha aqui é logada e engolida: a venda já está registrada.
func (uc *CreateSale) syncCharge(
	ctx context.Context,
	client *models.Client,
	budget *models.Budget,
	transactions []models.Transaction,
) string {

	var pending *models.Transaction
	for i := range transactions {
		if transactions[i].Status == string(domain.StatusPending) {
			pending = &transactions[i]
			break
		}
	}
	if pending == nil || pending.DueDate == nil {
		return ""
	}

	if client.BillingCustomerID == "" {
		id, err := uc.gateway.CreateCustomer(ctx, billing.Customer{
			Name:  client.Name,
			Email: client.Email,
			CPF:   client.CPF,
			Phone: client.Phone,
		})
		if err != nil {
			log.Println("billing customer sync:", err)
			return ""
		}
		if id != "" {
			client.BillingCustomerID = id
			if err := uc.repo.UpdateClient(ctx, client); err != nil {
				log.Println("billing customer persist:", err)
			}
		}
	}

	result, err := uc.gateway.CreateCharge(ctx, billing.Charge{
		CustomerEmail: client.Email,
		Value:         pending.Amount,
		DueDate:       *pending.DueDate,
		Description:   pending.Description,
		Reference:     budget.ReferenceCode,
	})
	if err != nil {
		log.Println("billing charge sync:", err)
		return ""
	}

	return result.InvoiceURL
}
