package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
	ucAppt "github.com/navaro-app/navaro-api/internal/usecase/appointment"
)

type PublicHandler struct {
	db           *gorm.DB
	availability *ucAppt.GetAvailability
}

func NewPublicHandler(db *gorm.DB, availability *ucAppt.GetAvailability) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
	}
}

// ======================================================
// PERFIL PÚBLICO
// ======================================================
func (h *PublicHandler) GetProfile(c *gin.Context) {
	slug := c.Param("slug")

	var est models.Establishment
	if err := h.db.
		Where("slug = ? AND active = true", slug).
		First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	var services []models.Service
	h.db.Where("establishment_id = ? AND active = true", est.ID).
		Order("id ASC").
		Find(&services)

	var bundles []models.ServiceBundle
	h.db.Where("establishment_id = ? AND active = true", est.ID).
		Order("id ASC").
		Find(&bundles)

	var staff []models.StaffMember
	h.db.Where("establishment_id = ? AND active = true", est.ID).
		Order("id ASC").
		Find(&staff)

	var portfolio []models.PortfolioItem
	h.db.Where("establishment_id = ?", est.ID).
		Order("created_at DESC").
		Find(&portfolio)

	// Saldo de taxas acumuladas é assunto interno; fica fora do perfil.
	httpresp.OK(c, gin.H{
		"establishment": gin.H{
			"id":                     est.ID,
			"name":                   est.Name,
			"slug":                   est.Slug,
			"description":            est.Description,
			"phone":                  est.Phone,
			"address":                est.Address,
			"business_hours":         est.BusinessHours,
			"deposit_percent":        est.DepositPercent,
			"cancellation_fee_fixed": est.CancellationFeeFixed,
			"no_show_fee_percent":    est.NoShowFeePercent,
		},
		"services":  services,
		"bundles":   bundles,
		"staff":     staff,
		"portfolio": portfolio,
	})
}

// ======================================================
// DISPONIBILIDADE
// ======================================================
func (h *PublicHandler) GetAvailability(c *gin.Context) {
	slug := c.Param("slug")

	var est models.Establishment
	if err := h.db.
		Where("slug = ? AND active = true", slug).
		First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	staffID, ok := uintQuery(c, "staff_id")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	loc := timezone.Location(timezone.Default())

	date := timezone.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data inválida, use YYYY-MM-DD.")
			return
		}
		date = parsed
	}

	slots, err := h.availability.Execute(c.Request.Context(), ucAppt.GetAvailabilityInput{
		EstablishmentID: est.ID,
		StaffID:         staffID,
		ServiceID:       serviceID,
		Date:            date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, slots)
}
