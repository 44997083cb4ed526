package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/lumesistemas/clinic-manager/internal/domain/appointment"
	"github.com/lumesistemas/clinic-manager/internal/middleware"
	usecase "github.com/lumesistemas/clinic-manager/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create       *usecase.CreateAppointment
	reschedule   *usecase.RescheduleAppointment
	updateStatus *usecase.UpdateAppointmentStatus
	listByDate   *usecase.ListAppointmentsByDate
	listByMonth  *usecase.ListAppointmentsByMonth
	blocks       *usecase.ManageCalendarBlocks
}

func NewAppointmentHandler(
	create *usecase.CreateAppointment,
	reschedule *usecase.RescheduleAppointment,
	updateStatus *usecase.UpdateAppointmentStatus,
	listByDate *usecase.ListAppointmentsByDate,
	listByMonth *usecase.ListAppointmentsByMonth,
	blocks *usecase.ManageCalendarBlocks,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		reschedule:   reschedule,
		updateStatus: updateStatus,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		blocks:       blocks,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint  `json:"client_id" binding:"required"`
	ServiceID uint  `json:"service_id" binding:"required"`
	RoomID    *uint `json:"room_id,omitempty"`
	PackageID *uint `json:"package_id,omitempty"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:MM
	Notes string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	NewStart       time.Time `json:"new_start" binding:"required"`
	NewEnd         time.Time `json:"new_end" binding:"required"`
	CascadeSameDay bool      `json:"cascade_same_day"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateCalendarBlockRequest struct {
	ProfessionalID *uint     `json:"professional_id,omitempty"`
	Start          time.Time `json:"start" binding:"required"`
	End            time.Time `json:"end" binding:"required"`
	Reason         string    `json:"reason"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	appointment, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		ClinicID:       clinicID,
		ProfessionalID: userID,
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		RoomID:         req.RoomID,
		PackageID:      req.PackageID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		writeUsecaseError(c, err, "failed_to_create_appointment", "Não foi possível criar o agendamento.")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_appointment_id"})
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	appointment, err := h.reschedule.Execute(c.Request.Context(), userID, usecase.RescheduleAppointmentInput{
		ClinicID:       clinicID,
		AppointmentID:  uint(id),
		NewStart:       req.NewStart,
		NewEnd:         req.NewEnd,
		CascadeSameDay: req.CascadeSameDay,
	})
	if err != nil {
		writeUsecaseError(c, err, "failed_to_reschedule", "Não foi possível remarcar o agendamento.")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_appointment_id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := h.updateStatus.Execute(
		c.Request.Context(),
		clinicID,
		userID,
		uint(id),
		domain.Status(req.Status),
	); err != nil {
		writeUsecaseError(c, err, "failed_to_update_status", "Não foi possível atualizar o status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status atualizado."})
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), userID, clinicID, date)
	if err != nil {
		writeUsecaseError(c, err, "failed_to_list_appointments", "Não foi possível listar os agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_month"})
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), userID, clinicID, year, month)
	if err != nil {
		writeUsecaseError(c, err, "failed_to_list_appointments", "Não foi possível listar os agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// CALENDAR BLOCKS
// ======================================================

func (h *AppointmentHandler) CreateBlock(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateCalendarBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	block, err := h.blocks.Create(c.Request.Context(), usecase.CreateCalendarBlockInput{
		ClinicID:       clinicID,
		ProfessionalID: req.ProfessionalID,
		Start:          req.Start,
		End:            req.End,
		Reason:         req.Reason,
	})
	if err != nil {
		writeUsecaseError(c, err, "failed_to_create_block", "Não foi possível criar o bloqueio.")
		return
	}

	c.JSON(http.StatusCreated, block)
}

func (h *AppointmentHandler) ListBlocks(c *gin.Context) {
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

	blocks, err := h.blocks.List(c.Request.Context(), clinicID, start, end.Add(24*time.Hour))
	if err != nil {
		writeUsecaseError(c, err, "failed_to_list_blocks", "Não foi possível listar os bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *AppointmentHandler) DeleteBlock(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_id"})
		return
	}

	if err := h.blocks.Delete(c.Request.Context(), clinicID, uint(id)); err != nil {
		writeUsecaseError(c, err, "failed_to_delete_block", "Não foi possível remover o bloqueio.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bloqueio removido."})
}
