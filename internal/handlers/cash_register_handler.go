package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lumesistemas/clinic-manager/internal/middleware"
	"github.com/lumesistemas/clinic-manager/internal/models"
	usecase "github.com/lumesistemas/clinic-manager/internal/usecase/finance"
)

type CashRegisterHandler struct {
	db       *gorm.DB
	register *usecase.ManageCashRegister
}

func NewCashRegisterHandler(
	db *gorm.DB,
	register *usecase.ManageCashRegister,
) *CashRegisterHandler {
	return &CashRegisterHandler{
		db:       db,
		register: register,
	}
}

type OpenCashRegisterRequest struct {
	OpeningBalance float64 `json:"opening_balance"`
}

func (h *CashRegisterHandler) Open(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req OpenCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	register, err := h.register.Open(c.Request.Context(), clinicID, userID, req.OpeningBalance)
	if err != nil {
		writeUsecaseError(c, err, "failed_to_open_register", "Não foi possível abrir o caixa.")
		return
	}

	c.JSON(http.StatusCreated, register)
}

func (h *CashRegisterHandler) Close(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	register, err := h.register.Close(c.Request.Context(), userID)
	if err != nil {
		writeUsecaseError(c, err, "failed_to_close_register", "Não foi possível fechar o caixa.")
		return
	}

	c.JSON(http.StatusOK, register)
}

// Current devolve o caixa aberto do usuário, ou null se não houver.
func (h *CashRegisterHandler) Current(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var register models.CashRegister
	err := h.db.
		Where("user_id = ? AND status = ?", userID, "open").
		First(&register).Error

	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"register": nil})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_register"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"register": register})
}
