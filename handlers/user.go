package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-errand-api/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me resolves the current mock identity, optionally by ?id=
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.GetOrCreateMock(c.Query("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Switch creates a fresh random mock user for testing
func (h *UserHandler) Switch(c *gin.Context) {
	user, err := h.users.SwitchUser()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List returns recent users for the identity switcher
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.ListRecent()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type UpdatePreferencesRequest struct {
	ID          string          `json:"id" binding:"required"`
	Preferences json.RawMessage `json:"preferences" binding:"required"`
}

// UpdatePreferences replaces the caller's stored preference blob
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.users.UpdatePreferences(req.ID, req.Preferences); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type UpdateProfileRequest struct {
	ID        string `json:"id" binding:"required"`
	Nickname  string `json:"nickname" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfile changes nickname and avatar
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.users.UpdateProfile(req.ID, req.Nickname, req.AvatarURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
