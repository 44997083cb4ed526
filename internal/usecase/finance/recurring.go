package finance

import (
	"context"
	"time"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

// CheckRecurring gera as transações recorrentes do mês. É chamado na
// abertura da tela de transações, não por um agendador: um cron preguiçoso.
// Idempotente por categoria por mês pela checagem de existência.
type CheckRecurring struct {
	repo domain.Repository
}

func NewCheckRecurring(repo domain.Repository) *CheckRecurring {
	return &CheckRecurring{repo: repo}
}

func (uc *CheckRecurring) Execute(
	ctx context.Context,
	clinicID uint,
) (int, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return 0, err
	}

	now := timezone.NowIn(clinic.Timezone)
	monthStart, monthEnd := domain.MonthWindow(now)

	categories, err := uc.repo.ListRecurringCategories(ctx, clinicID)
	if err != nil {
		return 0, err
	}

	created := 0

	for _, cat := range categories {
		dueDay := 1
		if cat.DueDay != nil {
			dueDay = *cat.DueDay
		}

		if dueDay > now.Day() {
			continue
		}

		exists, err := uc.repo.HasCategoryTransactionBetween(
			ctx,
			cat.ID,
			monthStart,
			monthEnd,
		)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		var amount float64
		if cat.DefaultAmount != nil {
			amount = *cat.DefaultAmount
		}

		dueDate := time.Date(
			now.Year(), now.Month(), dueDay,
			0, 0, 0, 0,
			now.Location(),
		)

		categoryID := cat.ID
		tr := models.Transaction{
			ClinicID:    clinicID,
			Description: cat.Name,
			Amount:      amount,
			Type:        cat.Type,
			Status:      string(domain.StatusPending),
			DueDate:     &dueDate,
			CategoryID:  &categoryID,
		}

		if err := uc.repo.CreateTransaction(ctx, &tr); err != nil {
			return created, err
		}

		created++
	}

	return created, nil
}
