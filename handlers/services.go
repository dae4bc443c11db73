package handlers

import (
	"encoding/json"
	"net/http"

	"glowbook/middleware"
	"glowbook/services/service"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListServicesHandler handles GET /api/services.
func (h *HandlerBundle) ListServicesHandler(c *gin.Context) {
	services, err := h.Catalog.List()
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetServiceHandler handles GET /api/services/:id.
func (h *HandlerBundle) GetServiceHandler(c *gin.Context) {
	svc, err := h.Catalog.Get(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateServiceHandler handles POST /api/services (providers only).
func (h *HandlerBundle) CreateServiceHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}

	var req service.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.WrapError(utils.KindInvalidInput, err, "Invalid request body."))
		return
	}

	svc, err := h.Catalog.Create(ident, req)
	if err != nil {
		logger.Warn("Service creation failed", zap.String("provider_id", ident.ProviderID), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateServiceHandler handles PUT /api/services/:id with a partial JSON body.
func (h *HandlerBundle) UpdateServiceHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}
	id := c.Param("id")

	var update service.Update
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		utils.JSONError(c, utils.WrapError(utils.KindInvalidInput, err, "Invalid request body."))
		return
	}

	svc, err := h.Catalog.Update(ident, id, update)
	if err != nil {
		logger.Warn("Service update failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteServiceHandler handles DELETE /api/services/:id.
func (h *HandlerBundle) DeleteServiceHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ident, ok := middleware.Identity(c)
	if !ok {
		utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
		return
	}
	id := c.Param("id")
	if err := h.Catalog.Delete(ident, id); err != nil {
		logger.Warn("Service delete failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
