package handlers

import (
	"encoding/json"
	"net/http"

	"glowbook/middleware"
	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/services/user"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListClientsHandler handles GET /api/clients (admin only).
func (h *HandlerBundle) ListClientsHandler(c *gin.Context) {
	if err := requireRole(c, models.RoleAdmin); err != nil {
		utils.JSONError(c, err)
		return
	}
	clients, err := h.Users.ListClients()
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientHandler handles GET /api/clients/:id.
func (h *HandlerBundle) GetClientHandler(c *gin.Context) {
	if _, err := requireSelfOrAdmin(c, c.Param("id")); err != nil {
		utils.JSONError(c, err)
		return
	}
	client, err := h.Users.GetClient(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClientHandler handles PUT /api/clients/:id with a partial JSON body.
func (h *HandlerBundle) UpdateClientHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if _, err := requireSelfOrAdmin(c, id); err != nil {
		utils.JSONError(c, err)
		return
	}

	var update user.ClientUpdate
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		utils.JSONError(c, utils.WrapError(utils.KindInvalidInput, err, "Invalid request body."))
		return
	}

	updated, err := h.Users.UpdateClient(id, update)
	if err != nil {
		logger.Warn("Client update failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteClientHandler handles DELETE /api/clients/:id, removing the account
// and every dependent record.
func (h *HandlerBundle) DeleteClientHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if _, err := requireSelfOrAdmin(c, id); err != nil {
		utils.JSONError(c, err)
		return
	}
	if err := h.Users.DeleteClient(id); err != nil {
		logger.Error("Client delete failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

// requireRole rejects callers whose role differs from the given one.
func requireRole(c *gin.Context, role string) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return utils.NewError(utils.KindUnauthenticated, "Authentication required.")
	}
	if ident.Role != role {
		return utils.NewError(utils.KindForbidden, "You do not have access to this resource.")
	}
	return nil
}

// requireSelfOrAdmin allows the account owner or an admin through.
func requireSelfOrAdmin(c *gin.Context, userID string) (auth.Claims, error) {
	ident, ok := middleware.Identity(c)
	if !ok {
		return auth.Claims{}, utils.NewError(utils.KindUnauthenticated, "Authentication required.")
	}
	if ident.UserID != userID && ident.Role != models.RoleAdmin {
		return auth.Claims{}, utils.NewError(utils.KindForbidden, "You do not have access to this resource.")
	}
	return ident, nil
}
