package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
)

// CatalogHandler administra o que o estabelecimento vende: serviços
// avulsos e combos.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
	DepositRequired bool    `json:"deposit_required"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	DepositRequired *bool    `json:"deposit_required,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

type CreateBundleRequest struct {
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
}

// --------- Serviços ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Where("establishment_id = ?", estID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "service_list_failed", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	service := models.Service{
		EstablishmentID: estID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		DepositRequired: req.DepositRequired,
		Active:          true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "service_create_failed", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, ok := uintParam(c, "serviceId")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, estID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.DepositRequired != nil {
		service.DepositRequired = *req.DepositRequired
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "service_update_failed", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, service)
}

// --------- Combos ---------

func (h *CatalogHandler) ListBundles(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var bundles []models.ServiceBundle
	if err := h.db.
		Where("establishment_id = ?", estID).
		Order("id ASC").
		Find(&bundles).Error; err != nil {
		httperr.Internal(c, "bundle_list_failed", "Erro ao listar combos.")
		return
	}

	httpresp.List(c, bundles)
}

func (h *CatalogHandler) CreateBundle(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	bundle := models.ServiceBundle{
		EstablishmentID: estID,
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}

	if err := h.db.Create(&bundle).Error; err != nil {
		httperr.Internal(c, "bundle_create_failed", "Erro ao criar combo.")
		return
	}

	httpresp.Created(c, bundle)
}
