package packages

import (
	"context"
	"fmt"
	"log"

	"github.com/lumesistemas/clinic-manager/internal/audit"
	"github.com/lumesistemas/clinic-manager/internal/billing"
	finance "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	pkgdomain "github.com/lumesistemas/clinic-manager/internal/domain/packages"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

type SellPackageInput struct {
	ClinicID uint
	UserID   uint
	ClientID uint

	ServiceID     uint
	TotalSessions int
	Price         float64

	PaymentMethodID uint
	Installments    int
	PaidNow         bool
	AccountID       *uint
}

type SellPackageOutput struct {
	Package      *models.Package      `json:"package"`
	Transactions []models.Transaction `json:"transactions"`
	InvoiceURL   string               `json:"invoice_url,omitempty"`
}

// SellPackage cria o pacote pré-pago e as parcelas da compra em uma única
// transação do banco, e sincroniza a cobrança com o gateway em melhor
// esforço.
type SellPackage struct {
	repo    finance.Repository
	gateway billing.Gateway
	audit   *audit.Dispatcher
}

func NewSellPackage(
	repo finance.Repository,
	gateway billing.Gateway,
	audit *audit.Dispatcher,
) *SellPackage {
	return &SellPackage{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *SellPackage) Execute(
	ctx context.Context,
	in SellPackageInput,
) (*SellPackageOutput, error) {

	if in.TotalSessions <= 0 {
		return nil, httperr.ErrBusiness("invalid_session_count")
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

	service, err := uc.repo.GetService(ctx, in.ClinicID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if _, err := uc.repo.GetPaymentMethod(ctx, in.ClinicID, in.PaymentMethodID); err != nil {
		return nil, httperr.ErrBusiness("payment_method_not_found")
	}

	now := timezone.NowIn(clinic.Timezone)
	installmentValue := in.Price / float64(in.Installments)
	dueDates := finance.InstallmentDueDates(now, in.Installments)

	register, err := uc.repo.FindOpenCashRegister(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	pkg := &models.Package{
		ClinicID:          in.ClinicID,
		ClientID:          in.ClientID,
		ServiceID:         in.ServiceID,
		TotalSessions:     in.TotalSessions,
		RemainingSessions: in.TotalSessions,
		Price:             in.Price,
		Status:            string(pkgdomain.StatusActive),
	}

	var transactions []models.Transaction

	err = uc.repo.Atomically(ctx, func(r finance.Repository) error {

		if err := r.CreatePackage(ctx, pkg); err != nil {
			return err
		}

		for i, due := range dueDates {
			dueDate := due

			tr := models.Transaction{
				ClinicID: in.ClinicID,
				Description: fmt.Sprintf(
					"Pacote %s (%dx) - parcela %d/%d",
					service.Name, in.TotalSessions, i+1, in.Installments,
				),
				Amount:          installmentValue,
				Type:            string(finance.TypeIncome),
				Status:          string(finance.StatusPending),
				DueDate:         &dueDate,
				PaymentMethodID: &in.PaymentMethodID,
				ClientID:        &in.ClientID,
				PackageID:       &pkg.ID,
			}

			if i == 0 && in.PaidNow {
				paidAt := now
				tr.Status = string(finance.StatusPaid)
				tr.PaidAt = &paidAt
				tr.AccountID = in.AccountID
				if register != nil {
					tr.CashRegisterID = &register.ID
				}
			}

			if err := r.CreateTransaction(ctx, &tr); err != nil {
				return err
			}

			if tr.Status == string(finance.StatusPaid) && tr.AccountID != nil {
				delta := finance.BalanceDelta(finance.TypeIncome, tr.Amount)
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

	invoiceURL := uc.syncCharge(ctx, client, pkg, transactions)

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   "package_sold",
		Entity:   "package",
		EntityID: &pkg.ID,
		Metadata: map[string]any{
			"sessions": in.TotalSessions,
			"price":    in.Price,
		},
	})

	return &SellPackageOutput{
		Package:      pkg,
		Transactions: transactions,
		InvoiceURL:   invoiceURL,
	}, nil
}

func (uc *SellPackage) syncCharge(
	ctx context.Context,
	client *models.Client,
	pkg *models.Package,
	transactions []models.Transaction,
) string {

	var pending *models.Transaction
	for i := range transactions {
		if transactions[i].Status == string(finance.StatusPending) {
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
		Reference:     fmt.Sprintf("package-%d", pkg.ID),
	})
	if err != nil {
		log.Println("billing charge sync:", err)
		return ""
	}

	return result.InvoiceURL
}
