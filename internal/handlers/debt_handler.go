package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
)

type DebtHandler struct {
	db *gorm.DB
}

func NewDebtHandler(db *gorm.DB) *DebtHandler {
	return &DebtHandler{db: db}
}

// ListMine devolve as pendências do cliente; ?establishment_id= filtra
// por estabelecimento.
func (h *DebtHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.
		Where("user_id = ? AND status = ?", userID, models.DebtPending)

	if estStr := c.Query("establishment_id"); estStr != "" {
		estID, err := strconv.ParseUint(estStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_establishment_id", "Identificador inválido.")
			return
		}
		q = q.Where("establishment_id = ?", uint(estID))
	}

	var debts []models.UserDebt
	if err := q.Order("created_at DESC").Find(&debts).Error; err != nil {
		httperr.Internal(c, "debt_list_failed", "Erro ao listar pendências.")
		return
	}

	httpresp.List(c, debts)
}
