package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
	"github.com/lumesistemas/clinic-manager/internal/timezone"
)

type BudgetItemInput struct {
	ServiceID       uint
	Quantity        int
	PricePerSession float64
}

type CreateBudgetInput struct {
	ClinicID uint
	UserID   uint
	ClientID uint

	Items      []BudgetItemInput
	ValidUntil *time.Time
}

type ManageBudgets struct {
	repo domain.Repository
}

func NewManageBudgets(repo domain.Repository) *ManageBudgets {
	return &ManageBudgets{repo: repo}
}

func itemsTotal(items []models.BudgetItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.PricePerSession
	}
	return total
}

func buildItems(in []BudgetItemInput) ([]models.BudgetItem, error) {
	items := make([]models.BudgetItem, 0, len(in))
	for _, item := range in {
		if item.Quantity <= 0 {
			return nil, httperr.ErrBusiness("invalid_item_quantity")
		}
		items = append(items, models.BudgetItem{
			ServiceID:       item.ServiceID,
			Quantity:        item.Quantity,
			PricePerSession: item.PricePerSession,
		})
	}
	return items, nil
}

func (uc *ManageBudgets) Create(
	ctx context.Context,
	in CreateBudgetInput,
) (*models.Budget, error) {

	if len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("empty_budget")
	}

	if _, err := uc.repo.GetClient(ctx, in.ClinicID, in.ClientID); err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	items, err := buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	validUntil := timezone.Now().AddDate(0, 0, 30)
	if in.ValidUntil != nil {
		validUntil = *in.ValidUntil
	}

	budget := &models.Budget{
		ClinicID:      in.ClinicID,
		ClientID:      in.ClientID,
		UserID:        in.UserID,
		ReferenceCode: uuid.NewString(),
		Status:        string(domain.BudgetPending),
		TotalAmount:   itemsTotal(items),
		ValidUntil:    validUntil,
		Items:         items,
	}

	if err := uc.repo.CreateBudget(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

// UpdateItems troca todos os itens do orçamento de uma vez (delete-all +
// recreate, nunca patch item a item) e recalcula o total.
func (uc *ManageBudgets) UpdateItems(
	ctx context.Context,
	clinicID uint,
	budgetID uint,
	in []BudgetItemInput,
) (*models.Budget, error) {

	if len(in) == 0 {
		return nil, httperr.ErrBusiness("empty_budget")
	}

	budget, err := uc.repo.GetBudget(ctx, clinicID, budgetID)
	if err != nil {
		return nil, httperr.ErrBusiness("budget_not_found")
	}

	items, err := buildItems(in)
	if err != nil {
		return nil, err
	}

	err = uc.repo.Atomically(ctx, func(r domain.Repository) error {
		if err := r.ReplaceBudgetItems(ctx, budget.ID, items); err != nil {
			return err
		}

		budget.TotalAmount = itemsTotal(items)
		return r.UpdateBudget(ctx, budget)
	})
	if err != nil {
		return nil, err
	}

	budget.Items = items
	return budget, nil
}

func (uc *ManageBudgets) SetStatus(
	ctx context.Context,
	clinicID uint,
	budgetID uint,
	status domain.BudgetStatus,
) (*models.Budget, error) {

	switch status {
	case domain.BudgetPending, domain.BudgetApproved, domain.BudgetRejected:
	default:
		return nil, httperr.ErrBusiness("invalid_budget_status")
	}

	budget, err := uc.repo.GetBudget(ctx, clinicID, budgetID)
	if err != nil {
		return nil, httperr.ErrBusiness("budget_not_found")
	}

	budget.Status = string(status)
	if err := uc.repo.UpdateBudget(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

func (uc *ManageBudgets) List(
	ctx context.Context,
	clinicID uint,
) ([]models.Budget, error) {
	return uc.repo.ListBudgets(ctx, clinicID)
}

func (uc *ManageBudgets) Get(
	ctx context.Context,
	clinicID uint,
	budgetID uint,
) (*models.Budget, error) {

	budget, err := uc.repo.GetBudget(ctx, clinicID, budgetID)
	if err != nil {
		return nil, httperr.ErrBusiness("budget_not_found")
	}
	return budget, nil
}
