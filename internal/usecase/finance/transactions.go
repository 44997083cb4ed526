package finance

import (
	"context"
	"time"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

type CreateTransactionInput struct {
	ClinicID uint
	UserID   uint

	Description string
	Amount      float64
	Type        domain.TransactionType
	Paid        bool

	DueDate         *time.Time
	CategoryID      *uint
	AccountID       *uint
	PaymentMethodID *uint
	ClientID        *uint
}

// ManageTransactions cobre criação, baixa e remoção de lançamentos.
// O saldo da conta é mantido por efeito colateral: toda transição
// pago/não-pago ajusta a conta junto com a escrita do lançamento.
type ManageTransactions struct {
	repo domain.Repository
}

func NewManageTransactions(repo domain.Repository) *ManageTransactions {
	return &ManageTransactions{repo: repo}
}

func (uc *ManageTransactions) Create(
	ctx context.Context,
	in CreateTransactionInput,
) (*models.Transaction, error) {

	if in.Description == "" {
		return nil, httperr.ErrBusiness("missing_description")
	}
	if in.Type != domain.TypeIncome && in.Type != domain.TypeExpense {
		return nil, httperr.ErrBusiness("invalid_transaction_type")
	}
	if in.Amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	if in.AccountID != nil {
		if _, err := uc.repo.GetAccount(ctx, in.ClinicID, *in.AccountID); err != nil {
			return nil, httperr.ErrBusiness("account_not_found")
		}
	}

	register, err := uc.repo.FindOpenCashRegister(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	tr := &models.Transaction{
		ClinicID:        in.ClinicID,
		Description:     in.Description,
		Amount:          in.Amount,
		Type:            string(in.Type),
		Status:          string(domain.StatusPending),
		DueDate:         in.DueDate,
		CategoryID:      in.CategoryID,
		AccountID:       in.AccountID,
		PaymentMethodID: in.PaymentMethodID,
		ClientID:        in.ClientID,
	}

	if register != nil {
		tr.CashRegisterID = &register.ID
	}

	if in.Paid {
		now := timezone.Now()
		tr.Status = string(domain.StatusPaid)
		tr.PaidAt = &now
	}

	err = uc.repo.Atomically(ctx, func(r domain.Repository) error {
		if err := r.CreateTransaction(ctx, tr); err != nil {
			return err
		}

		if tr.Status == string(domain.StatusPaid) && tr.AccountID != nil {
			delta := domain.BalanceDelta(in.Type, tr.Amount)
			return r.AdjustAccountBalance(ctx, *tr.AccountID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tr, nil
}

func (uc *ManageTransactions) MarkPaid(
	ctx context.Context,
	clinicID uint,
	transactionID uint,
	accountID *uint,
) (*models.Transaction, error) {

	tr, err := uc.repo.GetTransaction(ctx, clinicID, transactionID)
	if err != nil {
		return nil, httperr.ErrBusiness("transaction_not_found")
	}

	if tr.Status == string(domain.StatusPaid) {
		return nil, httperr.ErrBusiness("already_paid")
	}

	if accountID != nil {
		if _, err := uc.repo.GetAccount(ctx, clinicID, *accountID); err != nil {
			return nil, httperr.ErrBusiness("account_not_found")
		}
		tr.AccountID = accountID
	}

	now := timezone.Now()
	tr.Status = string(domain.StatusPaid)
	tr.PaidAt = &now

	err = uc.repo.Atomically(ctx, func(r domain.Repository) error {
		if err := r.UpdateTransaction(ctx, tr); err != nil {
			return err
		}

		if tr.AccountID != nil {
			delta := domain.BalanceDelta(domain.TransactionType(tr.Type), tr.Amount)
			return r.AdjustAccountBalance(ctx, *tr.AccountID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tr, nil
}

func (uc *ManageTransactions) Delete(
	ctx context.Context,
	clinicID uint,
	transactionID uint,
) error {

	tr, err := uc.repo.GetTransaction(ctx, clinicID, transactionID)
	if err != nil {
		return httperr.ErrBusiness("transaction_not_found")
	}

	return uc.repo.Atomically(ctx, func(r domain.Repository) error {
		// Apagar um lançamento pago desfaz o efeito dele no saldo.
		if tr.Status == string(domain.StatusPaid) && tr.AccountID != nil {
			delta := -domain.BalanceDelta(domain.TransactionType(tr.Type), tr.Amount)
			if err := r.AdjustAccountBalance(ctx, *tr.AccountID, delta); err != nil {
				return err
			}
		}

		return r.DeleteTransaction(ctx, tr)
	})
}

func (uc *ManageTransactions) ListForPeriod(
	ctx context.Context,
	clinicID uint,
	start time.Time,
	end time.Time,
) ([]models.Transaction, error) {
	return uc.repo.ListTransactionsForPeriod(ctx, clinicID, start, end)
}
