package finance

import (
	"context"
	"time"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/httperr"
	"github.com/lumesistemas/clinic-manager/internal/models"
)

// fakeFinanceRepo guarda tudo em memória. Atomically só executa fn com o
// próprio repositório: os testes de rollback não dependem dele.
type fakeFinanceRepo struct {
	clinics  map[uint]*models.Clinic
	clients  map[uint]*models.Client
	services map[uint]*models.Service
	methods  map[uint]*models.PaymentMethod
	accounts map[uint]*models.Account

	budgets      map[uint]*models.Budget
	transactions map[uint]*models.Transaction
	registers    map[uint]*models.CashRegister
	categories   []models.FinancialCategory
	packages     map[uint]*models.Package

	nextID uint
}

func newFakeFinanceRepo() *fakeFinanceRepo {
	return &fakeFinanceRepo{
		clinics:      map[uint]*models.Clinic{},
		clients:      map[uint]*models.Client{},
		services:     map[uint]*models.Service{},
		methods:      map[uint]*models.PaymentMethod{},
		accounts:     map[uint]*models.Account{},
		budgets:      map[uint]*models.Budget{},
		transactions: map[uint]*models.Transaction{},
		registers:    map[uint]*models.CashRegister{},
		packages:     map[uint]*models.Package{},
		nextID:       1,
	}
}

func (f *fakeFinanceRepo) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

// -------- seeds --------

func (f *fakeFinanceRepo) seedBasics() {
	f.clinics[1] = &models.Clinic{ID: 1, Name: "Clínica Teste", Timezone: "America/Sao_Paulo"}
	f.clients[10] = &models.Client{ID: 10, ClinicID: 1, Name: "Cliente", Email: "cliente@example.com"}
	f.services[20] = &models.Service{ID: 20, ClinicID: 1, Name: "Sessão", DurationMin: 60, Price: 100}
	f.methods[30] = &models.PaymentMethod{ID: 30, ClinicID: 1, Name: "Pix", Active: true}
}

func (f *fakeFinanceRepo) seedAccount(id uint, balance float64) {
	f.accounts[id] = &models.Account{ID: id, ClinicID: 1, Name: "Conta", Type: "bank", Balance: balance}
}

// -------- Repository --------

func (f *fakeFinanceRepo) Atomically(_ context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

func (f *fakeFinanceRepo) GetClinicByID(_ context.Context, id uint) (*models.Clinic, error) {
	c, ok := f.clinics[id]
	if !ok {
		return nil, httperr.ErrBusiness("clinic_not_found")
	}
	return c, nil
}

func (f *fakeFinanceRepo) GetClient(_ context.Context, clinicID, clientID uint) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok || c.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return c, nil
}

func (f *fakeFinanceRepo) UpdateClient(_ context.Context, client *models.Client) error {
	f.clients[client.ID] = client
	return nil
}

func (f *fakeFinanceRepo) GetService(_ context.Context, clinicID, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return s, nil
}

func (f *fakeFinanceRepo) GetPaymentMethod(_ context.Context, clinicID, methodID uint) (*models.PaymentMethod, error) {
	m, ok := f.methods[methodID]
	if !ok || m.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("payment_method_not_found")
	}
	return m, nil
}

func (f *fakeFinanceRepo) GetAccount(_ context.Context, clinicID, accountID uint) (*models.Account, error) {
	a, ok := f.accounts[accountID]
	if !ok || a.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("account_not_found")
	}
	return a, nil
}

func (f *fakeFinanceRepo) CreateBudget(_ context.Context, budget *models.Budget) error {
	budget.ID = f.id()
	for i := range budget.Items {
		budget.Items[i].ID = f.id()
		budget.Items[i].BudgetID = budget.ID
	}
	cp := *budget
	f.budgets[budget.ID] = &cp
	return nil
}

func (f *fakeFinanceRepo) GetBudget(_ context.Context, clinicID, budgetID uint) (*models.Budget, error) {
	b, ok := f.budgets[budgetID]
	if !ok || b.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("budget_not_found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeFinanceRepo) UpdateBudget(_ context.Context, budget *models.Budget) error {
	cp := *budget
	f.budgets[budget.ID] = &cp
	return nil
}

func (f *fakeFinanceRepo) ReplaceBudgetItems(_ context.Context, budgetID uint, items []models.BudgetItem) error {
	b, ok := f.budgets[budgetID]
	if !ok {
		return httperr.ErrBusiness("budget_not_found")
	}
	b.Items = nil
	for i := range items {
		items[i].ID = f.id()
		items[i].BudgetID = budgetID
		b.Items = append(b.Items, items[i])
	}
	return nil
}

func (f *fakeFinanceRepo) ListBudgets(_ context.Context, clinicID uint) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range f.budgets {
		if b.ClinicID == clinicID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeFinanceRepo) CreateTransaction(_ context.Context, tr *models.Transaction) error {
	tr.ID = f.id()
	cp := *tr
	f.transactions[tr.ID] = &cp
	return nil
}

func (f *fakeFinanceRepo) GetTransaction(_ context.Context, clinicID, transactionID uint) (*models.Transaction, error) {
	tr, ok := f.transactions[transactionID]
	if !ok || tr.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("transaction_not_found")
	}
	cp := *tr
	return &cp, nil
}

func (f *fakeFinanceRepo) UpdateTransaction(_ context.Context, tr *models.Transaction) error {
	cp := *tr
	f.transactions[tr.ID] = &cp
	return nil
}

func (f *fakeFinanceRepo) DeleteTransaction(_ context.Context, tr *models.Transaction) error {
	delete(f.transactions, tr.ID)
	return nil
}

func (f *fakeFinanceRepo) ListTransactionsForPeriod(_ context.Context, clinicID uint, start, end time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tr := range f.transactions {
		if tr.ClinicID != clinicID || tr.DueDate == nil {
			continue
		}
		if tr.DueDate.Before(start) || !tr.DueDate.Before(end) {
			continue
		}
		out = append(out, *tr)
	}
	return out, nil
}

func (f *fakeFinanceRepo) AdjustAccountBalance(_ context.Context, accountID uint, delta float64) error {
	a, ok := f.accounts[accountID]
	if !ok {
		return httperr.ErrBusiness("account_not_found")
	}
	a.Balance += delta
	return nil
}

func (f *fakeFinanceRepo) FindOpenCashRegister(_ context.Context, userID uint) (*models.CashRegister, error) {
	for _, r := range f.registers {
		if r.UserID == userID && r.Status == string(domain.RegisterOpen) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFinanceRepo) CreateCashRegister(_ context.Context, register *models.CashRegister) error {
	register.ID = f.id()
	cp := *register
	f.registers[register.ID] = &cp
	return nil
}

func (f *fakeFinanceRepo) UpdateCashRegister(_ context.Context, register *models.CashRegister) error {
	cp := *register
	f.registers[register.ID] = &cp
	return nil
}

func (f *fakeFinanceRepo) SumRegisterPaidAmount(_ context.Context, registerID uint) (float64, error) {
	var sum float64
	for _, tr := range f.transactions {
		if tr.CashRegisterID == nil || *tr.CashRegisterID != registerID {
			continue
		}
		if tr.Status != string(domain.StatusPaid) {
			continue
		}
		sum += domain.BalanceDelta(domain.TransactionType(tr.Type), tr.Amount)
	}
	return sum, nil
}

func (f *fakeFinanceRepo) ListRecurringCategories(_ context.Context, clinicID uint) ([]models.FinancialCategory, error) {
	var out []models.FinancialCategory
	for _, cat := range f.categories {
		if cat.ClinicID == clinicID && cat.IsRecurring {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (f *fakeFinanceRepo) HasCategoryTransactionBetween(_ context.Context, categoryID uint, start, end time.Time) (bool, error) {
	for _, tr := range f.transactions {
		if tr.CategoryID == nil || *tr.CategoryID != categoryID || tr.DueDate == nil {
			continue
		}
		if !tr.DueDate.Before(start) && tr.DueDate.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFinanceRepo) CreatePackage(_ context.Context, pkg *models.Package) error {
	pkg.ID = f.id()
	cp := *pkg
	f.packages[pkg.ID] = &cp
	return nil
}
