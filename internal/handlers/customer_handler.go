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

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ======================================================
// LIST CUSTOMERS (DONO)
// ======================================================
// Cliente do estabelecimento é quem já agendou lá pelo menos uma vez;
// não existe cadastro separado por estabelecimento.
func (h *CustomerHandler) List(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	booked := h.db.
		Model(&models.Appointment{}).
		Select("user_id").
		Where("establishment_id = ?", estID)

	q := h.db.Model(&models.User{}).Where("id IN (?)", booked)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.User
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		httperr.Internal(c, "customer_list_failed", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, customers)
}
