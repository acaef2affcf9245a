package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login exchanges an email or CIN plus password for an access token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// Verify returns the claims of the bearer token.
// POST /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		response.Unauthorized(c, 10002, "missing bearer token")
		return
	}

	result, err := h.authSvc.Verify(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// Me returns the authenticated user.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, user)
}

// Logout revokes the current token until it expires.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if claims.ExpiresAt == nil {
		response.Unauthorized(c, 10002, "token has no expiry")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, dto.MessageResponse{Message: "logged out"})
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
