package finance

import (
	"context"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

// ManageCashRegister controla o caixa diário: no máximo um aberto por
// usuário, garantido pela consulta antes de abrir.
type ManageCashRegister struct {
	repo domain.Repository
}

func NewManageCashRegister(repo domain.Repository) *ManageCashRegister {
	return &ManageCashRegister{repo: repo}
}

func (uc *ManageCashRegister) Open(
	ctx context.Context,
	clinicID uint,
	userID uint,
	openingBalance float64,
) (*models.CashRegister, error) {

	open, err := uc.repo.FindOpenCashRegister(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, httperr.ErrBusiness("register_already_open")
	}

	register := &models.CashRegister{
		ClinicID:       clinicID,
		UserID:         userID,
		OpeningBalance: openingBalance,
		Status:         string(domain.RegisterOpen),
		OpeningDate:    timezone.Now(),
	}

	if err := uc.repo.CreateCashRegister(ctx, register); err != nil {
		return nil, err
	}

	return register, nil
}

func (uc *ManageCashRegister) Close(
	ctx context.Context,
	userID uint,
) (*models.CashRegister, error) {

	register, err := uc.repo.FindOpenCashRegister(ctx, userID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, httperr.ErrBusiness("no_open_register")
	}

	paid, err := uc.repo.SumRegisterPaidAmount(ctx, register.ID)
	if err != nil {
		return nil, err
	}

	closing := register.OpeningBalance + paid
	now := timezone.Now()

	register.ClosingBalance = &closing
	register.ClosingDate = &now
	register.Status = string(domain.RegisterClosed)

	if err := uc.repo.UpdateCashRegister(ctx, register); err != nil {
		return nil, err
	}

	return register, nil
}
