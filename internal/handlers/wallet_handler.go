package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

type WalletHandler struct {
	wallet *wallet.Service
}

func NewWalletHandler(w *wallet.Service) *WalletHandler {
	return &WalletHandler{wallet: w}
}

func (h *WalletHandler) Balance(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	balance, err := h.wallet.Balance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"balance": balance})
}

func (h *WalletHandler) Transactions(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	txs, err := h.wallet.Ledger(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, txs)
}
