package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name string `json:"name" binding:"required"`

	// Vincula a um usuário da plataforma para comissão cair na carteira.
	UserID *uint `json:"user_id"`

	WorkSchedule   models.WeekSchedule `json:"work_schedule"`
	CommissionRate *float64            `json:"commission_rate"`
}

type UpdateStaffRequest struct {
	Name           *string             `json:"name,omitempty"`
	UserID         *uint               `json:"user_id,omitempty"`
	WorkSchedule   models.WeekSchedule `json:"work_schedule,omitempty"`
	CommissionRate *float64            `json:"commission_rate,omitempty"`
	Active         *bool               `json:"active,omitempty"`
}

type CreateBlockRequest struct {
	StartAt string `json:"start_at" binding:"required"` // 2006-01-02 15:04
	EndAt   string `json:"end_at" binding:"required"`
	Reason  string `json:"reason"`
}

// --------- Equipe ---------

func (h *StaffHandler) List(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var staff []models.StaffMember
	if err := h.db.
		Where("establishment_id = ?", estID).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "staff_list_failed", "Erro ao listar equipe.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	staff := models.StaffMember{
		EstablishmentID: estID,
		Name:            req.Name,
		UserID:          req.UserID,
		WorkSchedule:    req.WorkSchedule,
		CommissionRate:  req.CommissionRate,
		Active:          true,
	}

	if err := h.db.Create(&staff).Error; err != nil {
		httperr.Internal(c, "staff_create_failed", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var staff models.StaffMember
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.UserID != nil {
		staff.UserID = req.UserID
	}
	if req.WorkSchedule != nil {
		staff.WorkSchedule = req.WorkSchedule
	}
	if req.CommissionRate != nil {
		staff.CommissionRate = req.CommissionRate
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "staff_update_failed", "Erro ao atualizar profissional.")
		return
	}

	httpresp.OK(c, staff)
}

// --------- Bloqueios de agenda ---------

func (h *StaffHandler) CreateBlock(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	staffID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var staff models.StaffMember
	if err := h.db.
		Where("id = ? AND establishment_id = ?", staffID, estID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	loc := timezone.Location(timezone.Default())

	startAt, err := time.ParseInLocation("2006-01-02 15:04", req.StartAt, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Início inválido.")
		return
	}
	endAt, err := time.ParseInLocation("2006-01-02 15:04", req.EndAt, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fim inválido.")
		return
	}
	if !endAt.After(startAt) {
		httperr.BadRequest(c, "invalid_period", "Fim deve ser depois do início.")
		return
	}

	block := models.StaffBlock{
		StaffID: staffID,
		StartAt: startAt,
		EndAt:   endAt,
		Reason:  req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "block_create_failed", "Erro ao criar bloqueio.")
		return
	}

	httpresp.Created(c, block)
}

func (h *StaffHandler) ListBlocks(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	staffID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var staff models.StaffMember
	if err := h.db.
		Where("id = ? AND establishment_id = ?", staffID, estID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	// Bloqueios passados não interessam à agenda.
	var blocks []models.StaffBlock
	if err := h.db.
		Where("staff_id = ? AND end_at >= ?", staffID, timezone.Now()).
		Order("start_at ASC").
		Find(&blocks).Error; err != nil {
		httperr.Internal(c, "block_list_failed", "Erro ao listar bloqueios.")
		return
	}

	httpresp.List(c, blocks)
}
