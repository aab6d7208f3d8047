package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	ucAuth "github.com/navaro-app/navaro-api/internal/usecase/auth"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	requestOTP *ucAuth.RequestOTP
	verifyOTP  *ucAuth.VerifyOTP
	register   *ucAuth.Register
	login      *ucAuth.Login
}

func NewAuthHandler(
	requestOTP *ucAuth.RequestOTP,
	verifyOTP *ucAuth.VerifyOTP,
	register *ucAuth.Register,
	login *ucAuth.Login,
) *AuthHandler {
	return &AuthHandler{
		requestOTP: requestOTP,
		verifyOTP:  verifyOTP,
		register:   register,
		login:      login,
	}
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var in ucAuth.RequestOTPInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.requestOTP.Execute(c.Request.Context(), in); err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"status": "sent"})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var in ucAuth.VerifyOTPInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.verifyOTP.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in ucAuth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.register.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in ucAuth.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.login.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, out)
}
