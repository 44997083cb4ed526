package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/finance"
	"github.com/lumesistemas/clinic-manager/internal/middleware"
	usecase "github.com/lumesistemas/clinic-manager/internal/usecase/finance"
)

type BudgetHandler struct {
	budgets *usecase.ManageBudgets
	sale    *usecase.CreateSale
}

func NewBudgetHandler(
	budgets *usecase.ManageBudgets,
	sale *usecase.CreateSale,
) *BudgetHandler {
	return &BudgetHandler{
		budgets: budgets,
		sale:    sale,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BudgetItemRequest struct {
	ServiceID       uint    `json:"service_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,min=1"`
	PricePerSession float64 `json:"price_per_session" binding:"required"`
}

type CreateBudgetRequest struct {
	ClientID   uint                `json:"client_id" binding:"required"`
	Items      []BudgetItemRequest `json:"items" binding:"required"`
	ValidUntil *time.Time          `json:"valid_until,omitempty"`
}

type UpdateBudgetItemsRequest struct {
	Items []BudgetItemRequest `json:"items" binding:"required"`
}

type SetBudgetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateSaleRequest struct {
	ClientID uint                `json:"client_id" binding:"required"`
	Items    []BudgetItemRequest `json:"items" binding:"required"`

	PaymentMethodID uint  `json:"payment_method_id" binding:"required"`
	Installments    int   `json:"installments" binding:"required,min=1"`
	PaidNow         bool  `json:"paid_now"`
	AccountID       *uint `json:"account_id,omitempty"`

	SaleDate *time.Time `json:"sale_date,omitempty"`
}

func toItemInputs(items []BudgetItemRequest) []usecase.BudgetItemInput {
	out := make([]usecase.BudgetItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, usecase.BudgetItemInput{
			ServiceID:       it.ServiceID,
			Quantity:        it.Quantity,
			PricePerSession: it.PricePerSession,
		})
	}
	return out
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BudgetHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	budget, err := h.budgets.Create(c.Request.Context(), usecase.CreateBudgetInput{
		ClinicID:   clinicID,
		UserID:     userID,
		ClientID:   req.ClientID,
		Items:      toItemInputs(req.Items),
		ValidUntil: req.ValidUntil,
	})
	if err != nil {
		writeUsecaseError(c, err, "failed_to_create_budget", "Não foi possível criar o orçamento.")
		return
	}

	c.JSON(http.StatusCreated, budget)
}

func (h *BudgetHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	budgets, err := h.budgets.List(c.Request.Context(), clinicID)
	if err != nil {
		writeUsecaseError(c, err, "failed_to_list_budgets", "Não foi possível listar os orçamentos.")
		return
	}

	c.JSON(http.StatusOK, budgets)
}

func (h *BudgetHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_budget_id"})
		return
	}

	budget, err := h.budgets.Get(c.Request.Context(), clinicID, uint(id))
	if err != nil {
		writeUsecaseError(c, err, "failed_to_get_budget", "Não foi possível consultar o orçamento.")
		return
	}

	c.JSON(http.StatusOK, budget)
}

func (h *BudgetHandler) UpdateItems(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_budget_id"})
		return
	}

	var req UpdateBudgetItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	budget, err := h.budgets.UpdateItems(c.Request.Context(), clinicID, uint(id), toItemInputs(req.Items))
	if err != nil {
		writeUsecaseError(c, err, "failed_to_update_budget", "Não foi possível atualizar o orçamento.")
		return
	}

	c.JSON(http.StatusOK, budget)
}

func (h *BudgetHandler) SetStatus(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_budget_id"})
		return
	}

	var req SetBudgetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	budget, err := h.budgets.SetStatus(c.Request.Context(), clinicID, uint(id), domain.BudgetStatus(req.Status))
	if err != nil {
		writeUsecaseError(c, err, "failed_to_update_budget", "Não foi possível atualizar o orçamento.")
		return
	}

	c.JSON(http.StatusOK, budget)
}

// CreateSale fecha um carrinho direto: orçamento aprovado + parcelas em um
// único passo, sem passar pelo fluxo de aprovação.
func (h *BudgetHandler) CreateSale(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	items := make([]usecase.SaleItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.SaleItem{
			ServiceID:       it.ServiceID,
			Quantity:        it.Quantity,
			PricePerSession: it.PricePerSession,
		})
	}

	out, err := h.sale.Execute(c.Request.Context(), usecase.CreateSaleInput{
		ClinicID:        clinicID,
		UserID:          userID,
		ClientID:        req.ClientID,
		Items:           items,
		PaymentMethodID: req.PaymentMethodID,
		Installments:    req.Installments,
		PaidNow:         req.PaidNow,
		AccountID:       req.AccountID,
		SaleDate:        req.SaleDate,
	})
	if err != nil {
		writeUsecaseError(c, err, "failed_to_create_sale", "Não foi possível registrar a venda.")
		return
	}

	c.JSON(http.StatusCreated, out)
}
