package finance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

func seedRecurringCategory(repo *fakeFinanceRepo, id uint, dueDay int, amount float64) {
	day := dueDay
	value := amount
	repo.categories = append(repo.categories, models.FinancialCategory{
		ID:            id,
		ClinicID:      1,
		Name:          "Aluguel",
		Type:          string(domain.TypeExpense),
		IsRecurring:   true,
		DefaultAmount: &value,
		DueDay:        &day,
	})
}

func TestCheckRecurring(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending transactions with category defaults", func(t *testing.T) {
		repo := newFakeFinanceRepo()
		repo.seedBasics()
		seedRecurringCategory(repo, 60, 1, 2500)

		created, err := NewCheckRecurring(repo).Execute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, created)

		require.Len(t, repo.transactions, 1)
		for _, tr := range repo.transactions {
			assert.Equal(t, "Aluguel", tr.Description)
			assert.Equal(t, 2500.0, tr.Amount)
			assert.Equal(t, string(domain.TypeExpense), tr.Type)
			assert.Equal(t, string(domain.StatusPending), tr.Status)
			require.NotNil(t, tr.DueDate)
			assert.Equal(t, 1, tr.DueDate.Day())
		}
	})

	t.Run("idempotent within the same month", func(t *testing.T) {
		repo := newFakeFinanceRepo()
		repo.seedBasics()
		seedRecurringCategory(repo, 60, 1, 2500)

		uc := NewCheckRecurring(repo)

		created, err := uc.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, created)

		created, err = uc.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, created)

		assert.Len(t, repo.transactions, 1)
	})

	t.Run("waits for the due day", func(t *testing.T) {
		repo := newFakeFinanceRepo()
		repo.seedBasics()

		// Vencimento depois de hoje: nada a gerar ainda.
		future := time.Now().Day() + 1
		if future <= 31 {
			seedRecurringCategory(repo, 61, future, 800)

			created, err := NewCheckRecurring(repo).Execute(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, 0, created)
			assert.Empty(t, repo.transactions)
		}
	})

	t.Run("non recurring categories are ignored", func(t *testing.T) {
		repo := newFakeFinanceRepo()
		repo.seedBasics()
		repo.categories = append(repo.categories, models.FinancialCategory{
			ID: 62, ClinicID: 1, Name: "Avulsa", Type: string(domain.TypeExpense),
		})

		created, err := NewCheckRecurring(repo).Execute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, created)
	})
}
