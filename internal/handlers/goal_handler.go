package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	ucGoal "github.com/navaro-app/navaro-api/internal/usecase/goal"
)

type GoalHandler struct {
	create *ucGoal.CreateGoal
	list   *ucGoal.ListGoals
}

func NewGoalHandler(create *ucGoal.CreateGoal, list *ucGoal.ListGoals) *GoalHandler {
	return &GoalHandler{create: create, list: list}
}

func (h *GoalHandler) Create(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	staffID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var in ucGoal.CreateGoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in.EstablishmentID = estID
	in.StaffID = staffID

	g, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, g)
}

func (h *GoalHandler) List(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	staffID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	goals, err := h.list.Execute(c.Request.Context(), estID, staffID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, goals)
}
