package handlers

import (
	"encoding/json"
	"net/http"

	"glowbook/middleware"
	"glowbook/models"
	"glowbook/services/provider"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListProvidersHandler handles GET /api/service-providers.
func (h *HandlerBundle) ListProvidersHandler(c *gin.Context) {
	accounts, err := h.Providers.List()
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetProviderHandler handles GET /api/service-providers/:id.
func (h *HandlerBundle) GetProviderHandler(c *gin.Context) {
	account, err := h.Providers.Get(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateProviderHandler handles PUT /api/service-providers/:id with a
// partial JSON body covering account and profile fields.
func (h *HandlerBundle) UpdateProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := requireOwnProviderOrAdmin(c, id); err != nil {
		utils.JSONError(c, err)
		return
	}

	var update provider.ProfileUpdate
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		utils.JSONError(c, utils.WrapError(utils.KindInvalidInput, err, "Invalid request body."))
		return
	}

	account, err := h.Providers.Update(id, update)
	if err != nil {
		logger.Warn("Provider update failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteProviderHandler handles DELETE /api/service-providers/:id, removing
// the profile, its user account and every dependent record.
func (h *HandlerBundle) DeleteProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := requireOwnProviderOrAdmin(c, id); err != nil {
		utils.JSONError(c, err)
		return
	}
	if err := h.Providers.Delete(id); err != nil {
		logger.Error("Provider delete failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service provider deleted"})
}

func requireOwnProviderOrAdmin(c *gin.Context, providerID string) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return utils.NewError(utils.KindUnauthenticated, "Authentication required.")
	}
	if ident.Role == models.RoleAdmin {
		return nil
	}
	if ident.Role != models.RoleServiceProvider || ident.ProviderID != providerID {
		return utils.NewError(utils.KindForbidden, "You do not have access to this resource.")
	}
	return nil
}
