package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/middleware"
	"github.com/lumesistemas/clinic-manager/internal/models"
	usecase "github.com/lumesistemas/clinic-manager/internal/usecase/finance"
)

type FinanceHandler struct {
	db           *gorm.DB
	transactions *usecase.ManageTransactions
	recurring    *usecase.CheckRecurring
}

func NewFinanceHandler(
	db *gorm.DB,
	transactions *usecase.ManageTransactions,
	recurring *usecase.CheckRecurring,
) *FinanceHandler {
	return &FinanceHandler{
		db:           db,
		transactions: transactions,
		recurring:    recurring,
	}
}

// ======================================================
// ACCOUNTS
// ======================================================

type CreateAccountRequest struct {
	Name    string  `json:"name" binding:"required"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var accounts []models.Account
	if err := h.db.
		Where("clinic_id = ?", clinicID).
		Order("id ASC").
		Find(&accounts).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_accounts"})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *FinanceHandler) CreateAccount(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	accType := req.Type
	if accType != string(domain.AccountBank) && accType != string(domain.AccountCash) {
		accType = string(domain.AccountBank)
	}

	account := models.Account{
		ClinicID: clinicID,
		Name:     req.Name,
		Type:     accType,
		Balance:  req.Balance,
	}

	if err := h.db.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_account"})
		return
	}

	c.JSON(http.StatusCreated, account)
}

// ======================================================
// FINANCIAL CATEGORIES
// ======================================================

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`

	IsRecurring   bool     `json:"is_recurring"`
	DefaultAmount *float64 `json:"default_amount,omitempty"`
	DueDay        *int     `json:"due_day,omitempty"`
}

func (h *FinanceHandler) ListCategories(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.Where("clinic_id = ?", clinicID)
	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}

	var categories []models.FinancialCategory
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *FinanceHandler) CreateCategory(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Type != string(domain.TypeIncome) && req.Type != string(domain.TypeExpense) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_category_type"})
		return
	}

	if req.DueDay != nil && (*req.DueDay < 1 || *req.DueDay > 31) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_due_day"})
		return
	}

	category := models.FinancialCategory{
		ClinicID:      clinicID,
		Name:          req.Name,
		Type:          req.Type,
		IsRecurring:   req.IsRecurring,
		DefaultAmount: req.DefaultAmount,
		DueDay:        req.DueDay,
	}

	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ======================================================
// PAYMENT METHODS
// ======================================================

type CreatePaymentMethodRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *FinanceHandler) ListPaymentMethods(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var methods []models.PaymentMethod
	if err := h.db.
		Where("clinic_id = ? AND active = ?", clinicID, true).
		Order("id ASC").
		Find(&methods).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_payment_methods"})
		return
	}

	c.JSON(http.StatusOK, methods)
}

func (h *FinanceHandler) CreatePaymentMethod(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	method := models.PaymentMethod{
		ClinicID: clinicID,
		Name:     req.Name,
		Active:   true,
	}

	if err := h.db.Create(&method).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_payment_method"})
		return
	}

	c.JSON(http.StatusCreated, method)
}

// ======================================================
// TRANSACTIONS
// ======================================================

type CreateTransactionRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Paid        bool    `json:"paid"`

	DueDate         *time.Time `json:"due_date,omitempty"`
	CategoryID      *uint      `json:"category_id,omitempty"`
	AccountID       *uint      `json:"account_id,omitempty"`
	PaymentMethodID *uint      `json:"payment_method_id,omitempty"`
	ClientID        *uint      `json:"client_id,omitempty"`
}

type MarkPaidRequest struct {
	AccountID *uint `json:"account_id,omitempty"`
}

func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	tr, err := h.transactions.Create(c.Request.Context(), usecase.CreateTransactionInput{
		ClinicID:        clinicID,
		UserID:          userID,
		Description:     req.Description,
		Amount:          req.Amount,
		Type:            domain.TransactionType(req.Type),
		Paid:            req.Paid,
		DueDate:         req.DueDate,
		CategoryID:      req.CategoryID,
		AccountID:       req.AccountID,
		PaymentMethodID: req.PaymentMethodID,
		ClientID:        req.ClientID,
	})
	if err != nil {
		writeUsecaseError(c, err, "failed_to_create_transaction", "Não foi possível criar o lançamento.")
		return
	}

	c.JSON(http.StatusCreated, tr)
}

func (h *FinanceHandler) MarkTransactionPaid(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_transaction_id"})
		return
	}

	// Corpo é opcional: sem conta informada a baixa não mexe em saldo.
	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"details": err.Error(),
			})
			return
		}
	}

	tr, err := h.transactions.MarkPaid(c.Request.Context(), clinicID, uint(id), req.AccountID)
	if err != nil {
		writeUsecaseError(c, err, "failed_to_pay_transaction", "Não foi possível dar baixa no lançamento.")
		return
	}

	c.JSON(http.StatusOK, tr)
}

func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_transaction_id"})
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), clinicID, uint(id)); err != nil {
		writeUsecaseError(c, err, "failed_to_delete_transaction", "Não foi possível remover o lançamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lançamento removido."})
}

// ListTransactions materializa as recorrências do mês antes de listar; a
// geração é idempotente, então chamadas repetidas não duplicam despesas.
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_start"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end"})
		return
	}

	if _, err := h.recurring.Execute(c.Request.Context(), clinicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_recurring"})
		return
	}

	transactions, err := h.transactions.ListForPeriod(
		c.Request.Context(),
		clinicID,
		start,
		end.Add(24*time.Hour),
	)
	if err != nil {
		writeUsecaseError(c, err, "failed_to_list_transactions", "Não foi possível listar os lançamentos.")
		return
	}

	c.JSON(http.StatusOK, transactions)
}
