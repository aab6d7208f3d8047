package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/settings"
)

type SettingsHandler struct {
	settings *settings.Service
}

func NewSettingsHandler(s *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: s}
}

type UpdateSettingRequest struct {
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	key := strings.ToUpper(c.Param("key"))

	value, found := h.settings.Get(c.Request.Context(), key)
	if !found {
		httperr.NotFound(c, "setting_not_found", "Configuração não encontrada.")
		return
	}

	httpresp.OK(c, gin.H{"key": key, "value": value})
}

func (h *SettingsHandler) Put(c *gin.Context) {
	key := strings.ToUpper(c.Param("key"))

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.settings.Set(c.Request.Context(), key, req.Value, req.Description); err != nil {
		httperr.Internal(c, "setting_update_failed", "Erro ao gravar configuração.")
		return
	}

	httpresp.OK(c, gin.H{"key": key, "value": req.Value})
}
