package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
	ucQueue "github.com/navaro-app/navaro-api/internal/usecase/queue"
)

// ======================================================
// HANDLER
// ======================================================

type QueueHandler struct {
	join         *ucQueue.JoinQueue
	updateStatus *ucQueue.UpdateQueueStatus
	leave        *ucQueue.LeaveQueue
	list         *ucQueue.ListQueue
}

func NewQueueHandler(
	join *ucQueue.JoinQueue,
	updateStatus *ucQueue.UpdateQueueStatus,
	leave *ucQueue.LeaveQueue,
	list *ucQueue.ListQueue,
) *QueueHandler {
	return &QueueHandler{
		join:         join,
		updateStatus: updateStatus,
		leave:        leave,
		list:         list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type JoinQueueRequest struct {
	EstablishmentID uint `json:"establishment_id" binding:"required"`
}

type UpdateQueueStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *QueueHandler) Join(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.join.Execute(c.Request.Context(), req.EstablishmentID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, entry)
}

func (h *QueueHandler) List(c *gin.Context) {
	estID, err := strconv.ParseUint(c.Query("establishment_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_establishment_id", "Informe establishment_id.")
		return
	}

	entries, listErr := h.list.Execute(c.Request.Context(), uint(estID))
	if listErr != nil {
		respondError(c, listErr)
		return
	}

	httpresp.List(c, entries)
}

func (h *QueueHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateQueueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.updateStatus.Execute(c.Request.Context(), ucQueue.UpdateStatusInput{
		EstablishmentID: estID,
		ActorID:         userID,
		EntryID:         id,
		Status:          req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *QueueHandler) Leave(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.leave.Execute(c.Request.Context(), ucQueue.LeaveQueueInput{
		EntryID:         id,
		ActorID:         userID,
		IsOwner:         role == models.RoleOwner || role == models.RoleAdmin,
		EstablishmentID: estID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, entry)
}
