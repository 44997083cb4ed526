package finance

import (
	"context"
	"time"

	"github.com/lumesistemas/clinic-manager/internal/models"
)

type Repository interface {
	// Atomically executa fn com um repositório preso a uma transação do
	// banco; qualquer erro desfaz todas as escritas feitas dentro de fn.
	Atomically(
		ctx context.Context,
		fn func(Repository) error,
	) error

	// -------- Lookups --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	GetClient(
		ctx context.Context,
		clinicID uint,
		clientID uint,
	) (*models.Client, error)

	UpdateClient(
		ctx context.Context,
		client *models.Client,
	) error

	GetService(
		ctx context.Context,
		clinicID uint,
		serviceID uint,
	) (*models.Service, error)

	GetPaymentMethod(
		ctx context.Context,
		clinicID uint,
		paymentMethodID uint,
	) (*models.PaymentMethod, error)

	GetAccount(
		ctx context.Context,
		clinicID uint,
		accountID uint,
	) (*models.Account, error)

	// -------- Budget --------
	CreateBudget(
		ctx context.Context,
		budget *models.Budget,
	) error

	GetBudget(
		ctx context.Context,
		clinicID uint,
		budgetID uint,
	) (*models.Budget, error)

	UpdateBudget(
		ctx context.Context,
		budget *models.Budget,
	) error

	ReplaceBudgetItems(
		ctx context.Context,
		budgetID uint,
		items []models.BudgetItem,
	) error

	ListBudgets(
		ctx context.Context,
		clinicID uint,
	) ([]models.Budget, error)

	// -------- Transaction --------
	CreateTransaction(
		ctx context.Context,
		tr *models.Transaction,
	) error

	GetTransaction(
		ctx context.Context,
		clinicID uint,
		transactionID uint,
	) (*models.Transaction, error)

	UpdateTransaction(
		ctx context.Context,
		tr *models.Transaction,
	) error

	DeleteTransaction(
		ctx context.Context,
		tr *models.Transaction,
	) error

	ListTransactionsForPeriod(
		ctx context.Context,
		clinicID uint,
		start time.Time,
		end time.Time,
	) ([]models.Transaction, error)

	// -------- Account balance --------
	AdjustAccountBalance(
		ctx context.Context,
		accountID uint,
		delta float64,
	) error

	// -------- Cash register --------
	FindOpenCashRegister(
		ctx context.Context,
		userID uint,
	) (*models.CashRegister, error)

	CreateCashRegister(
		ctx context.Context,
		register *models.CashRegister,
	) error

	UpdateCashRegister(
		ctx context.Context,
		register *models.CashRegister,
	) error

	SumRegisterPaidAmount(
		ctx context.Context,
		registerID uint,
	) (float64, error)

	// -------- Recurring categories --------
	ListRecurringCategories(
		ctx context.Context,
		clinicID uint,
	) ([]models.FinancialCategory, error)

	HasCategoryTransactionBetween(
		ctx context.Context,
		categoryID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Package sale --------
	CreatePackage(
		ctx context.Context,
		pkg *models.Package,
	) error
}
