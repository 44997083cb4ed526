package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

type FinanceGormRepository struct {
	db *gorm.DB
}

func NewFinanceGormRepository(db *gorm.DB) *FinanceGormRepository {
	return &FinanceGormRepository{db: db}
}

// Atomically roda fn com um repositório preso a uma transação; o retorno
// de erro desfaz tudo que fn escreveu.
func (r *FinanceGormRepository) Atomically(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&FinanceGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *FinanceGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *FinanceGormRepository) GetClient(
	ctx context.Context,
	clinicID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", clientID, clinicID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *FinanceGormRepository) UpdateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *FinanceGormRepository) GetService(
	ctx context.Context,
	clinicID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", serviceID, clinicID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *FinanceGormRepository) GetPaymentMethod(
	ctx context.Context,
	clinicID uint,
	paymentMethodID uint,
) (*models.PaymentMethod, error) {

	var method models.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", paymentMethodID, clinicID).
		First(&method).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *FinanceGormRepository) GetAccount(
	ctx context.Context,
	clinicID uint,
	accountID uint,
) (*models.Account, error) {

	var account models.Account
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", accountID, clinicID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// --------------------------------------------------
// Budget
// --------------------------------------------------

func (r *FinanceGormRepository) CreateBudget(
	ctx context.Context,
	budget *models.Budget,
) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *FinanceGormRepository) GetBudget(
	ctx context.Context,
	clinicID uint,
	budgetID uint,
) (*models.Budget, error) {

	var budget models.Budget
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND clinic_id = ?", budgetID, clinicID).
		First(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *FinanceGormRepository) UpdateBudget(
	ctx context.Context,
	budget *models.Budget,
) error {
	return r.db.WithContext(ctx).
		Omit("Items").
		Save(budget).Error
}

// ReplaceBudgetItems troca todos os itens de uma vez: apaga e recria.
func (r *FinanceGormRepository) ReplaceBudgetItems(
	ctx context.Context,
	budgetID uint,
	items []models.BudgetItem,
) error {

	if err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Delete(&models.BudgetItem{}).Error; err != nil {
		return err
	}

	for i := range items {
		items[i].ID = 0
		items[i].BudgetID = budgetID
	}

	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *FinanceGormRepository) ListBudgets(
	ctx context.Context,
	clinicID uint,
) ([]models.Budget, error) {

	var budgets []models.Budget
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Client").
		Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *FinanceGormRepository) CreateTransaction(
	ctx context.Context,
	tr *models.Transaction,
) error {
	return r.db.WithContext(ctx).Create(tr).Error
}

func (r *FinanceGormRepository) GetTransaction(
	ctx context.Context,
	clinicID uint,
	transactionID uint,
) (*models.Transaction, error) {

	var tr models.Transaction
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", transactionID, clinicID).
		First(&tr).Error; err != nil {
		return nil, err
	}
	return &tr, nil
}

func (r *FinanceGormRepository) UpdateTransaction(
	ctx context.Context,
	tr *models.Transaction,
) error {
	return r.db.WithContext(ctx).Save(tr).Error
}

func (r *FinanceGormRepository) DeleteTransaction(
	ctx context.Context,
	tr *models.Transaction,
) error {
	return r.db.WithContext(ctx).Delete(tr).Error
}

func (r *FinanceGormRepository) ListTransactionsForPeriod(
	ctx context.Context,
	clinicID uint,
	start time.Time,
	end time.Time,
) ([]models.Transaction, error) {

	var trs []models.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Account").
		Preload("PaymentMethod").
		Where(
			"clinic_id = ? AND (due_date >= ? AND due_date < ? OR due_date IS NULL AND created_at >= ? AND created_at < ?)",
			clinicID, start, end, start, end,
		).
		Order("due_date ASC").
		Find(&trs).Error; err != nil {
		return nil, err
	}
	return trs, nil
}

// --------------------------------------------------
// Account balance
// --------------------------------------------------

func (r *FinanceGormRepository) AdjustAccountBalance(
	ctx context.Context,
	accountID uint,
	delta float64,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error
}

// --------------------------------------------------
// Cash register
// --------------------------------------------------

func (r *FinanceGormRepository) FindOpenCashRegister(
	ctx context.Context,
	userID uint,
) (*models.CashRegister, error) {

	var register models.CashRegister
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(domain.RegisterOpen)).
		First(&register).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &register, nil
}

func (r *FinanceGormRepository) CreateCashRegister(
	ctx context.Context,
	register *models.CashRegister,
) error {
	return r.db.WithContext(ctx).Create(register).Error
}

func (r *FinanceGormRepository) UpdateCashRegister(
	ctx context.Context,
	register *models.CashRegister,
) error {
	return r.db.WithContext(ctx).Save(register).Error
}

func (r *FinanceGormRepository) SumRegisterPaidAmount(
	ctx context.Context,
	registerID uint,
) (float64, error) {

	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = 'expense' THEN -amount ELSE amount END), 0)").
		Where("cash_register_id = ? AND status = ?", registerID, string(domain.StatusPaid)).
		Scan(&total).Error

	return total, err
}

// --------------------------------------------------
// Recurring categories
// --------------------------------------------------

func (r *FinanceGormRepository) ListRecurringCategories(
	ctx context.Context,
	clinicID uint,
) ([]models.FinancialCategory, error) {

	var categories []models.FinancialCategory
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND is_recurring = true", clinicID).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *FinanceGormRepository) HasCategoryTransactionBetween(
	ctx context.Context,
	categoryID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where(
			"category_id = ? AND due_date >= ? AND due_date < ?",
			categoryID, start, end,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Package sale
// --------------------------------------------------

func (r *FinanceGormRepository) CreatePackage(
	ctx context.Context,
	pkg *models.Package,
) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}
