package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
)

type MeHandler struct {
	db            *gorm.DB
	notifications *notification.Service
}

func NewMeHandler(db *gorm.DB, notifications *notification.Service) *MeHandler {
	return &MeHandler{db: db, notifications: notifications}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	out := gin.H{"user": user}

	// Dono enxerga o próprio estabelecimento junto.
	var est models.Establishment
	if err := h.db.Where("owner_id = ?", userID).First(&est).Error; err == nil {
		out["establishment"] = est
	}

	httpresp.OK(c, out)
}

type UpdateMeRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	PushToken string `json:"push_token"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.PushToken != "" {
		updates["push_token"] = req.PushToken
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Erro ao atualizar perfil.")
			return
		}
	}

	httpresp.OK(c, gin.H{"user": user})
}

// --------- Notificações ---------

func (h *MeHandler) Notifications(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	items, err := h.notifications.ListForUser(userID, limit)
	if err != nil {
		httperr.Internal(c, "notification_list_failed", "Erro ao listar notificações.")
		return
	}

	httpresp.List(c, items)
}

func (h *MeHandler) MarkNotificationRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(userID, id); err != nil {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	httpresp.OK(c, gin.H{"status": "read"})
}
