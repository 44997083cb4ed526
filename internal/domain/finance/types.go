package finance

// ===============================
// Transaction
// ===============================

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusPaid    TransactionStatus = "paid"
)

// BalanceDelta é o efeito de uma transação paga sobre o saldo da conta.
func BalanceDelta(t TransactionType, amount float64) float64 {
	if t == TypeExpense {
		return -amount
	}
	return amount
}

// ===============================
// Budget
// ===============================

type BudgetStatus string

const (
	BudgetPending  BudgetStatus = "pendente"
	BudgetApproved BudgetStatus = "aprovado"
	BudgetRejected BudgetStatus = "reprovado"
)

// ===============================
// Account / Cash Register
// ===============================

type AccountType string

const (
	AccountBank AccountType = "bank"
	AccountCash AccountType = "cash"
)

type RegisterStatus string

const (
	RegisterOpen   RegisterStatus = "open"
	RegisterClosed RegisterStatus = "closed"
)
