package finance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
)

func TestManageBudgets(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeFinanceRepo, *ManageBudgets) {
		t.Helper()
		repo := newFakeFinanceRepo()
		repo.seedBasics()
		return repo, NewManageBudgets(repo)
	}

	createInput := func() CreateBudgetInput {
		return CreateBudgetInput{
			ClinicID: 1,
			UserID:   99,
			ClientID: 10,
			Items: []BudgetItemInput{
				{ServiceID: 20, Quantity: 10, PricePerSession: 90},
			},
		}
	}

	t.Run("create starts pending with computed total", func(t *testing.T) {
		_, uc := setup(t)

		budget, err := uc.Create(ctx, createInput())
		require.NoError(t, err)

		assert.Equal(t, string(domain.BudgetPending), budget.Status)
		assert.Equal(t, 900.0, budget.TotalAmount)
		assert.NotEmpty(t, budget.ReferenceCode)
		assert.False(t, budget.ValidUntil.IsZero())
	})

	t.Run("update items replaces everything and recomputes", func(t *testing.T) {
		repo, uc := setup(t)

		budget, err := uc.Create(ctx, createInput())
		require.NoError(t, err)

		updated, err := uc.UpdateItems(ctx, 1, budget.ID, []BudgetItemInput{
			{ServiceID: 20, Quantity: 5, PricePerSession: 80},
			{ServiceID: 20, Quantity: 2, PricePerSession: 150},
		})
		require.NoError(t, err)

		assert.Equal(t, 700.0, updated.TotalAmount)
		assert.Len(t, updated.Items, 2)
		assert.Len(t, repo.budgets[budget.ID].Items, 2)
	})

	t.Run("status transitions", func(t *testing.T) {
		_, uc := setup(t)

		budget, err := uc.Create(ctx, createInput())
		require.NoError(t, err)

		approved, err := uc.SetStatus(ctx, 1, budget.ID, domain.BudgetApproved)
		require.NoError(t, err)
		assert.Equal(t, string(domain.BudgetApproved), approved.Status)

		_, err = uc.SetStatus(ctx, 1, budget.ID, domain.BudgetStatus("arquivado"))
		assert.True(t, httperr.IsBusiness(err, "invalid_budget_status"))
	})

	t.Run("validations", func(t *testing.T) {
		_, uc := setup(t)

		in := createInput()
		in.Items = nil
		_, err := uc.Create(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "empty_budget"))

		in = createInput()
		in.ClientID = 777
		_, err = uc.Create(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "client_not_found"))

		in = createInput()
		in.Items[0].Quantity = 0
		_, err = uc.Create(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_item_quantity"))

		_, err = uc.UpdateItems(ctx, 1, 777, []BudgetItemInput{{ServiceID: 20, Quantity: 1, PricePerSession: 10}})
		assert.True(t, httperr.IsBusiness(err, "budget_not_found"))
	})
}
