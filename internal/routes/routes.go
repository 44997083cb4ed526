package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/lumesistemas/clinic-manager/internal/audit"
	"github.com/lumesistemas/clinic-manager/internal/billing"
	"github.com/lumesistemas/clinic-manager/internal/cache"
	"github.com/lumesistemas/clinic-manager/internal/config"
	"github.com/lumesistemas/clinic-manager/internal/handlers"
	infraRepo "github.com/lumesistemas/clinic-manager/internal/infra/repository"
	"github.com/lumesistemas/clinic-manager/internal/middleware"
	ucAppointment "github.com/lumesistemas/clinic-manager/internal/usecase/appointment"
	ucFinance "github.com/lumesistemas/clinic-manager/internal/usecase/finance"
	ucPackages "github.com/lumesistemas/clinic-manager/internal/usecase/packages"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	packageRepo := infraRepo.NewPackageGormRepository(db)
	financeRepo := infraRepo.NewFinanceGormRepository(db)

	calendarCache := cache.NewCalendar(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var gateway billing.Gateway = billing.Noop{}
	if cfg.MercadoPagoToken != "" {
		mp, err := billing.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("billing: gateway desabilitado: %v", err)
		} else {
			gateway = mp
		}
	}

	// ======================================================
	// 🧠 USE CASES — AGENDA
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		calendarCache,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		calendarCache,
		auditDispatcher,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		calendarCache,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
		calendarCache,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	calendarBlocksUC := ucAppointment.NewManageCalendarBlocks(appointmentRepo)

	// ======================================================
	// 🧠 USE CASES — FINANCEIRO
	// ======================================================
	createSaleUC := ucFinance.NewCreateSale(financeRepo, gateway, auditDispatcher)
	budgetsUC := ucFinance.NewManageBudgets(financeRepo)
	transactionsUC := ucFinance.NewManageTransactions(financeRepo)
	recurringUC := ucFinance.NewCheckRecurring(financeRepo)
	cashRegisterUC := ucFinance.NewManageCashRegister(financeRepo)

	sellPackageUC := ucPackages.NewSellPackage(financeRepo, gateway, auditDispatcher)
	listActivePackagesUC := ucPackages.NewListActiveForClient(packageRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	roomHandler := handlers.NewRoomHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		updateStatusUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		calendarBlocksUC,
	)

	packageHandler := handlers.NewPackageHandler(sellPackageUC, listActivePackagesUC)
	budgetHandler := handlers.NewBudgetHandler(budgetsUC, createSaleUC)
	financeHandler := handlers.NewFinanceHandler(db, transactionsUC, recurringUC)
	cashRegisterHandler := handlers.NewCashRegisterHandler(db, cashRegisterUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/me/clinic", clinicHandler.UpdateMeClinic)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/rooms", roomHandler.List)
			secured.POST("/me/rooms", roomHandler.Create)
			secured.PATCH("/me/rooms/:id", roomHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)

			secured.POST("/me/calendar-blocks", appointmentHandler.CreateBlock)
			secured.GET("/me/calendar-blocks", appointmentHandler.ListBlocks)
			secured.DELETE("/me/calendar-blocks/:id", appointmentHandler.DeleteBlock)

			// ------------------------------
			// PACKAGES
			// ------------------------------
			secured.POST("/me/packages", packageHandler.Sell)
			secured.GET("/me/clients/:clientId/packages", packageHandler.ListActive)

			// ------------------------------
			// BUDGETS & SALES
			// ------------------------------
			secured.POST("/me/budgets", budgetHandler.Create)
			secured.GET("/me/budgets", budgetHandler.List)
			secured.GET("/me/budgets/:id", budgetHandler.Get)
			secured.PUT("/me/budgets/:id/items", budgetHandler.UpdateItems)
			secured.PATCH("/me/budgets/:id/status", budgetHandler.SetStatus)
			secured.POST("/me/sales", budgetHandler.CreateSale)

			// ------------------------------
			// FINANCE
			// ------------------------------
			secured.GET("/me/accounts", financeHandler.ListAccounts)
			secured.POST("/me/accounts", financeHandler.CreateAccount)

			secured.GET("/me/categories", financeHandler.ListCategories)
			secured.POST("/me/categories", financeHandler.CreateCategory)

			secured.GET("/me/payment-methods", financeHandler.ListPaymentMethods)
			secured.POST("/me/payment-methods", financeHandler.CreatePaymentMethod)

			secured.GET("/me/transactions", financeHandler.ListTransactions)
			secured.POST("/me/transactions", financeHandler.CreateTransaction)
			secured.PATCH("/me/transactions/:id/pay", financeHandler.MarkTransactionPaid)
			secured.DELETE("/me/transactions/:id", financeHandler.DeleteTransaction)

			secured.GET("/me/cash-register", cashRegisterHandler.Current)
			secured.POST("/me/cash-register/open", cashRegisterHandler.Open)
			secured.POST("/me/cash-register/close", cashRegisterHandler.Close)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
