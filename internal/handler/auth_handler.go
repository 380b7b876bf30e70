package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"event-crm/internal/services"
	"event-crm/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Refresh token is required")
		return
	}

	token, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		respondMessage(c, http.StatusOK, "Logged out")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), parts[1]); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Logged out")
}

func (h *AuthHandler) Profile(c *gin.Context) {
	principal := utils.CurrentPrincipal(c)
	profile, err := h.auth.Profile(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile)
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	principal := utils.CurrentPrincipal(c)
	if err := h.auth.UpdateProfile(c.Request.Context(), principal, req.FirstName, req.LastName, req.Email); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Profile updated")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Old and new passwords are required")
		return
	}

	principal := utils.CurrentPrincipal(c)
	if err := h.auth.ChangePassword(c.Request.Context(), principal, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Password changed")
}
