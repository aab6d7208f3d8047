package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/audit"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type EstablishmentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEstablishmentHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *EstablishmentHandler {
	return &EstablishmentHandler{db: db, audit: dispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateEstablishmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`

	BusinessHours models.WeekSchedule `json:"business_hours"`
}

type UpdateEstablishmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`

	BusinessHours models.WeekSchedule `json:"business_hours"`

	CancellationFeeFixed *float64 `json:"cancellation_fee_fixed"`
	NoShowFeePercent     *float64 `json:"no_show_fee_percent"`
	DepositPercent       *float64 `json:"deposit_percent"`

	Active *bool `json:"active"`
}

// ======================================================
// CREATE
// ======================================================

// Create abre o estabelecimento e promove o usuário a dono.
func (h *EstablishmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Establishment{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "Endereço público já está em uso.")
		return
	}

	h.db.Model(&models.Establishment{}).Where("owner_id = ?", userID).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "already_has_establishment", "Você já possui um estabelecimento.")
		return
	}

	est := models.Establishment{
		OwnerID:       userID,
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Phone:         req.Phone,
		Address:       req.Address,
		BusinessHours: req.BusinessHours,
		Active:        true,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&est).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("role", models.RoleOwner).Error
	})
	if err != nil {
		httperr.Internal(c, "establishment_create_failed", "Erro ao criar estabelecimento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		EstablishmentID: est.ID,
		ActorID:         &userID,
		Action:          "establishment_created",
		Entity:          "establishment",
		EntityID:        &est.ID,
	})

	// O token atual não carrega o estabelecimento novo; o cliente deve
	// reautenticar para receber o estId.
	httpresp.Created(c, est)
}

// ======================================================
// READ / UPDATE
// ======================================================

func (h *EstablishmentHandler) GetMine(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var est models.Establishment
	if err := h.db.First(&est, estID).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	httpresp.OK(c, est)
}

func (h *EstablishmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	pathID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if pathID != estID {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	var req UpdateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.BusinessHours != nil {
		updates["business_hours"] = req.BusinessHours
	}
	if req.CancellationFeeFixed != nil {
		updates["cancellation_fee_fixed"] = *req.CancellationFeeFixed
	}
	if req.NoShowFeePercent != nil {
		updates["no_show_fee_percent"] = *req.NoShowFeePercent
	}
	if req.DepositPercent != nil {
		updates["deposit_percent"] = *req.DepositPercent
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, "empty_update", "Nada para atualizar.")
		return
	}

	if err := h.db.Model(&models.Establishment{}).
		Where("id = ?", estID).
		Updates(updates).Error; err != nil {
		httperr.Internal(c, "establishment_update_failed", "Erro ao atualizar estabelecimento.")
		return
	}

	var est models.Establishment
	h.db.First(&est, estID)

	h.audit.Dispatch(audit.Event{
		EstablishmentID: estID,
		ActorID:         &userID,
		Action:          "establishment_updated",
		Entity:          "establishment",
		EntityID:        &estID,
	})

	httpresp.OK(c, est)
}
