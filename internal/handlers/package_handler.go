package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumesistemas/clinic-manager/internal/middleware"
	usecase "github.com/lumesistemas/clinic-manager/internal/usecase/packages"
)

type PackageHandler struct {
	sell       *usecase.SellPackage
	listActive *usecase.ListActiveForClient
}

func NewPackageHandler(
	sell *usecase.SellPackage,
	listActive *usecase.ListActiveForClient,
) *PackageHandler {
	return &PackageHandler{
		sell:       sell,
		listActive: listActive,
	}
}

type SellPackageRequest struct {
	ClientID      uint    `json:"client_id" binding:"required"`
	ServiceID     uint    `json:"service_id" binding:"required"`
	TotalSessions int     `json:"total_sessions" binding:"required,min=1"`
	Price         float64 `json:"price" binding:"required"`

	PaymentMethodID uint  `json:"payment_method_id" binding:"required"`
	Installments    int   `json:"installments" binding:"required,min=1"`
	PaidNow         bool  `json:"paid_now"`
	AccountID       *uint `json:"account_id,omitempty"`
}

func (h *PackageHandler) Sell(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SellPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	out, err := h.sell.Execute(c.Request.Context(), usecase.SellPackageInput{
		ClinicID:        clinicID,
		UserID:          userID,
		ClientID:        req.ClientID,
		ServiceID:       req.ServiceID,
		TotalSessions:   req.TotalSessions,
		Price:           req.Price,
		PaymentMethodID: req.PaymentMethodID,
		Installments:    req.Installments,
		PaidNow:         req.PaidNow,
		AccountID:       req.AccountID,
	})
	if err != nil {
		writeUsecaseError(c, err, "failed_to_sell_package", "Não foi possível vender o pacote.")
		return
	}

	c.JSON(http.StatusCreated, out)
}

// ListActive devolve os pacotes do cliente com sessões restantes; o filtro
// opcional service_id restringe aos pacotes do serviço a agendar.
func (h *PackageHandler) ListActive(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	clientID, err := strconv.ParseUint(c.Param("clientId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_client_id"})
		return
	}

	var serviceID *uint
	if raw := c.Query("service_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_service_id"})
			return
		}
		id := uint(v)
		serviceID = &id
	}

	packages, err := h.listActive.Execute(c.Request.Context(), clinicID, uint(clientID), serviceID)
	if err != nil {
		writeUsecaseError(c, err, "failed_to_list_packages", "Não foi possível listar os pacotes.")
		return
	}

	c.JSON(http.StatusOK, packages)
}
