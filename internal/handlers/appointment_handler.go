package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
	ucAppointment "github.com/navaro-app/navaro-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	cancel       *ucAppointment.CancelAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
	listMine     *ucAppointment.ListMyAppointments
	listByDate   *ucAppointment.ListAppointmentsByDate
	listByMonth  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	listMine *ucAppointment.ListMyAppointments,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		cancel:       cancel,
		updateStatus: updateStatus,
		listMine:     listMine,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	EstablishmentID uint   `json:"establishment_id" binding:"required"`
	StaffID         uint   `json:"staff_id" binding:"required"`
	ServiceID       *uint  `json:"service_id"`
	BundleID        *uint  `json:"bundle_id"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = "card"
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID:          userID,
		EstablishmentID: req.EstablishmentID,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		BundleID:        req.BundleID,
		Date:            req.Date,
		Time:            req.Time,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LISTAGENS
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	appointments, err := h.listMine.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, appointments)
}

// ListForEstablishment atende a visão do dono: ?date=YYYY-MM-DD para o
// dia, ?month=YYYY-MM para o mês. Sem filtro, o dia de hoje.
func (h *AppointmentHandler) ListForEstablishment(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	pathID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if pathID != estID {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	loc := timezone.Location(timezone.Default())

	if monthStr := c.Query("month"); monthStr != "" {
		ref, err := time.ParseInLocation("2006-01", monthStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_month", "Mês inválido, use YYYY-MM.")
			return
		}

		list, err := h.listByMonth.Execute(
			c.Request.Context(), estID, ref.Year(), int(ref.Month()),
		)
		if err != nil {
			respondError(c, err)
			return
		}
		httpresp.List(c, list)
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = timezone.Now().Format("2006-01-02")
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida, use YYYY-MM-DD.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), estID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// TRANSIÇÕES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
			return
		}
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		AppointmentID:   id,
		ActorID:         userID,
		Reason:          req.Reason,
		IsOwner:         role == models.RoleOwner || role == models.RoleAdmin,
		EstablishmentID: estID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		EstablishmentID: estID,
		ActorID:         userID,
		AppointmentID:   id,
		Status:          req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
