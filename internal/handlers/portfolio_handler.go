package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/httpresp"
	"github.com/navaro-app/navaro-api/internal/middleware"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/storage"
)

const maxPortfolioImageBytes = 10 << 20 // 10 MB

type PortfolioHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewPortfolioHandler(db *gorm.DB, uploader *storage.Uploader) *PortfolioHandler {
	return &PortfolioHandler{db: db, uploader: uploader}
}

// ======================================================
// UPLOAD (multipart: image + caption)
// ======================================================
func (h *PortfolioHandler) Upload(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Envie o campo 'image' no multipart.")
		return
	}
	if file.Size > maxPortfolioImageBytes {
		httperr.BadRequest(c, "image_too_large", "Imagem acima de 10MB.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "image_read_failed", "Erro ao ler a imagem.")
		return
	}
	defer src.Close()

	full, thumb, err := storage.ProcessImage(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Arquivo não é uma imagem válida.")
		return
	}

	// Nome aleatório: upload repetido nunca sobrescreve o anterior.
	base := fmt.Sprintf("portfolio/%d/%s", estID, strings.ReplaceAll(uuid.NewString(), "-", ""))

	ctx := c.Request.Context()

	imageURL, err := h.uploader.Upload(ctx, base+".webp", full, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar a imagem.")
		return
	}
	thumbURL, err := h.uploader.Upload(ctx, base+"_thumb.webp", thumb, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar a miniatura.")
		return
	}

	item := models.PortfolioItem{
		EstablishmentID: estID,
		ImageURL:        imageURL,
		ThumbnailURL:    thumbURL,
		Caption:         c.PostForm("caption"),
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "portfolio_create_failed", "Erro ao salvar no portfólio.")
		return
	}

	httpresp.Created(c, item)
}

// ======================================================
// LIST (DONO)
// ======================================================
func (h *PortfolioHandler) List(c *gin.Context) {
	estID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var items []models.PortfolioItem
	if err := h.db.
		Where("establishment_id = ?", estID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "portfolio_list_failed", "Erro ao listar portfólio.")
		return
	}

	httpresp.List(c, items)
}
