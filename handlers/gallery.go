package handlers

import (
	"net/http"

	"glowbook/middleware"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListGalleryHandler handles GET /api/gallery-images, returning the calling
// provider's images newest first.
func (h *HandlerBundle) ListGalleryHandler(c *gin.Context) {
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}
	images, err := h.Gallery.List(c.Request.Context(), ident)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// UploadGalleryImageHandler handles POST /api/gallery-images with a
// multipart "file" field.
func (h *HandlerBundle) UploadGalleryImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, utils.NewError(utils.KindInvalidInput, "No file provided."))
		return
	}
	data, err := readUpload(header)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	img, err := h.Gallery.Upload(c.Request.Context(), ident, data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		logger.Warn("Gallery upload failed", zap.String("provider_id", ident.ProviderID), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// DeleteGalleryImageHandler handles DELETE /api/gallery-images/:id.
func (h *HandlerBundle) DeleteGalleryImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}
	id := c.Param("id")
	if err := h.Gallery.Delete(c.Request.Context(), ident, id); err != nil {
		logger.Warn("Gallery delete failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
