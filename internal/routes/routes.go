package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/audit"
	"github.com/navaro-app/navaro-api/internal/config"
	"github.com/navaro-app/navaro-api/internal/handlers"
	infraRepo "github.com/navaro-app/navaro-api/internal/infra/repository"
	"github.com/navaro-app/navaro-api/internal/kvstore"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/payments"
	"github.com/navaro-app/navaro-api/internal/settings"
	"github.com/navaro-app/navaro-api/internal/storage"
	ucAppointment "github.com/navaro-app/navaro-api/internal/usecase/appointment"
	ucAuth "github.com/navaro-app/navaro-api/internal/usecase/auth"
	ucGoal "github.com/navaro-app/navaro-api/internal/usecase/goal"
	ucPayment "github.com/navaro-app/navaro-api/internal/usecase/payment"
	ucQueue "github.com/navaro-app/navaro-api/internal/usecase/queue"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

// Deps carrega os singletons criados no main e compartilhados com
// partes fora do HTTP (o scheduler usa o notifier, por exemplo).
type Deps struct {
	Codes    *kvstore.Store
	Settings *settings.Service
	Notifier *notification.Service
	Uploader *storage.Uploader
	Provider payments.Provider
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)
	queueRepo := infraRepo.NewQueueGormRepository(db)
	walletRepo := infraRepo.NewWalletGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)
	goalRepo := infraRepo.NewGoalGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	walletService := wallet.NewService(walletRepo)

	// ======================================================
	// 🧠 USE CASES — AUTH
	// ======================================================
	requestOTPUC := ucAuth.NewRequestOTP(deps.Codes, cfg.OTPLogCodes)
	verifyOTPUC := ucAuth.NewVerifyOTP(userRepo, deps.Codes, cfg.JWTSecret)
	registerUC := ucAuth.NewRegister(userRepo, cfg.JWTSecret)
	loginUC := ucAuth.NewLogin(userRepo, cfg.JWTSecret)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	settler := ucAppointment.NewSettler(deps.Settings)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		schedulingRepo,
		deps.Notifier,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		schedulingRepo,
		deps.Notifier,
		auditDispatcher,
	)

	updateAppointmentStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		schedulingRepo,
		settler,
		deps.Notifier,
		auditDispatcher,
	)

	listMyAppointmentsUC := ucAppointment.NewListMyAppointments(schedulingRepo)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(schedulingRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(schedulingRepo)
	getAvailabilityUC := ucAppointment.NewGetAvailability(schedulingRepo)

	// ======================================================
	// 🧠 USE CASES — PAYMENTS
	// ======================================================
	createIntentUC := ucPayment.NewCreateIntent(paymentRepo, deps.Provider)
	payWithWalletUC := ucPayment.NewPayWithWallet(paymentRepo, deps.Notifier)
	refundUC := ucPayment.NewRefundPayment(paymentRepo, deps.Provider, deps.Notifier)
	topUpUC := ucPayment.NewTopUpWallet(paymentRepo, deps.Provider)
	webhookUC := ucPayment.NewHandleWebhook(paymentRepo, deps.Provider, deps.Notifier)

	// ======================================================
	// 🧠 USE CASES — QUEUE
	// ======================================================
	joinQueueUC := ucQueue.NewJoinQueue(queueRepo, auditDispatcher)
	updateQueueStatusUC := ucQueue.NewUpdateQueueStatus(
		queueRepo,
		deps.Settings,
		deps.Notifier,
		auditDispatcher,
	)
	leaveQueueUC := ucQueue.NewLeaveQueue(queueRepo, auditDispatcher)
	listQueueUC := ucQueue.NewListQueue(queueRepo)

	// ======================================================
	// 🧠 USE CASES — GOALS
	// ======================================================
	createGoalUC := ucGoal.NewCreateGoal(goalRepo)
	listGoalsUC := ucGoal.NewListGoals(goalRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(requestOTPUC, verifyOTPUC, registerUC, loginUC)
	meHandler := handlers.NewMeHandler(db, deps.Notifier)
	publicHandler := handlers.NewPublicHandler(db, getAvailabilityUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		updateAppointmentStatusUC,
		listMyAppointmentsUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	paymentHandler := handlers.NewPaymentHandler(
		createIntentUC,
		payWithWalletUC,
		refundUC,
		topUpUC,
		webhookUC,
	)

	queueHandler := handlers.NewQueueHandler(
		joinQueueUC,
		updateQueueStatusUC,
		leaveQueueUC,
		listQueueUC,
	)

	walletHandler := handlers.NewWalletHandler(walletService)
	debtHandler := handlers.NewDebtHandler(db)
	goalHandler := handlers.NewGoalHandler(createGoalUC, listGoalsUC)
	settingsHandler := handlers.NewSettingsHandler(deps.Settings)
	establishmentHandler := handlers.NewEstablishmentHandler(db, auditDispatcher)
	catalogHandler := handlers.NewCatalogHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	portfolioHandler := handlers.NewPortfolioHandler(db, deps.Uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// Buckets separados: estourar o limite de login não pode travar reservas.
	authLimit := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	bookingLimit := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)

	staffRoles := middleware.RequireRoles(models.RoleOwner, models.RoleStaff, models.RoleAdmin)
	ownerRoles := middleware.RequireRoles(models.RoleOwner, models.RoleAdmin)

	// ======================================================
	// 🌍 OPERACIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🔐 AUTH
	// ======================================================
	auth := r.Group("/auth")
	auth.Use(authLimit)
	{
		auth.POST("/otp/request", authHandler.RequestOTP)
		auth.POST("/otp/verify", authHandler.VerifyOTP)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// ======================================================
	// 🌐 PÚBLICO (vitrine por slug)
	// ======================================================
	public := r.Group("/public")
	{
		public.GET("/establishments/:slug", publicHandler.GetProfile)
		public.GET("/establishments/:slug/availability", publicHandler.GetAvailability)
	}

	// Sem auth: o provedor assina o corpo e a validação acontece lá dentro.
	r.POST("/webhooks/payments/:provider", paymentHandler.Webhook)

	// ======================================================
	// 🔐 API PRIVADA
	// ======================================================
	secured := r.Group("/api/v1")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// ME
		// ------------------------------
		secured.GET("/me", meHandler.GetMe)
		secured.PATCH("/me", meHandler.UpdateMe)
		secured.GET("/me/notifications", meHandler.Notifications)
		secured.POST("/me/notifications/:id/read", meHandler.MarkNotificationRead)
		secured.GET("/me/establishment", establishmentHandler.GetMine)
		secured.GET("/me/customers", ownerRoles, customerHandler.List)
		secured.GET("/me/audit-logs", ownerRoles, auditLogsHandler.List)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.POST("/appointments", bookingLimit, appointmentHandler.Create)
		secured.GET("/appointments", appointmentHandler.ListMine)
		secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
		secured.PATCH("/appointments/:id/status", staffRoles, appointmentHandler.UpdateStatus)

		// ------------------------------
		// PAYMENTS / WALLET / DEBTS
		// ------------------------------
		secured.POST("/payments/intent", paymentHandler.CreateIntent)
		secured.POST("/payments/wallet", paymentHandler.PayWithWallet)
		secured.POST("/payments/:id/refund", ownerRoles, paymentHandler.Refund)

		secured.GET("/wallet", walletHandler.Balance)
		secured.GET("/wallet/transactions", walletHandler.Transactions)
		secured.POST("/wallet/topup", paymentHandler.TopUp)

		secured.GET("/debts", debtHandler.ListMine)

		// ------------------------------
		// QUEUE
		// ------------------------------
		secured.POST("/queue/join", bookingLimit, queueHandler.Join)
		secured.GET("/queue", queueHandler.List)
		secured.PATCH("/queue/:id/status", staffRoles, queueHandler.UpdateStatus)
		secured.POST("/queue/:id/leave", queueHandler.Leave)

		// ------------------------------
		// ESTABLISHMENTS (DONO)
		// ------------------------------
		secured.POST("/establishments", establishmentHandler.Create)

		owner := secured.Group("/establishments/:id")
		owner.Use(ownerRoles, middleware.RequireOwnEstablishment())
		{
			owner.PATCH("", establishmentHandler.Update)
			owner.GET("/appointments", appointmentHandler.ListForEstablishment)

			owner.GET("/staff", staffHandler.List)
			owner.POST("/staff", staffHandler.Create)

			owner.GET("/services", catalogHandler.ListServices)
			owner.POST("/services", catalogHandler.CreateService)
			owner.PATCH("/services/:serviceId", catalogHandler.UpdateService)

			owner.GET("/bundles", catalogHandler.ListBundles)
			owner.POST("/bundles", catalogHandler.CreateBundle)

			owner.GET("/portfolio", portfolioHandler.List)
			owner.POST("/portfolio", portfolioHandler.Upload)
		}

		// ------------------------------
		// STAFF (escala, bloqueios, metas)
		// ------------------------------
		staff := secured.Group("/staff/:id")
		staff.Use(ownerRoles)
		{
			staff.PATCH("", staffHandler.Update)
			staff.POST("/blocks", staffHandler.CreateBlock)
			staff.GET("/blocks", staffHandler.ListBlocks)
			staff.POST("/goals", goalHandler.Create)
			staff.GET("/goals", goalHandler.List)
		}

		// ------------------------------
		// SETTINGS (ADMIN)
		// ------------------------------
		admin := secured.Group("/settings")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/:key", settingsHandler.Get)
			admin.PUT("/:key", settingsHandler.Put)
		}
	}
}
