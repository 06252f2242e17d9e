package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bouyesaturnin/linkvault-app/internal/application"
	"github.com/bouyesaturnin/linkvault-app/pkg/helpers"
	"github.com/bouyesaturnin/linkvault-app/pkg/response"
	"github.com/bouyesaturnin/linkvault-app/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,pwd"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type tokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Register POST /api/register/
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, application.ErrUsernameTaken) {
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "username already taken", map[string]string{"username": "already taken"}))
			return
		}
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}, "user registered", nil))
}

// TokenObtain POST /api/token/
// Exchanges username+password for an access/refresh pair. The pair is
// returned in the body and also set as HttpOnly cookies for browsers.
func (h *AuthHandler) TokenObtain(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	_, pair, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Uniform answer for unknown username and wrong password.
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil))
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	}, "token pair issued", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	}))
}

// TokenRefresh POST /api/token/refresh/
// Reads the refresh token from the body, falling back to the cookie.
func (h *AuthHandler) TokenRefresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	refresh := req.Refresh
	if refresh == "" {
		refresh, _ = c.Cookie("refresh_token")
	}
	if refresh == "" {
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil))
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", refreshErrorDetail(err)))
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	}))
}

// Logout POST /api/logout — clears the browser cookies. Issued tokens
// stay valid until expiry; there is no revocation list.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.JSON(c, response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil))
}

func refreshErrorDetail(err error) any {
	switch {
	case errors.Is(err, helpers.ErrTokenExpired),
		errors.Is(err, helpers.ErrTokenSignature),
		errors.Is(err, helpers.ErrTokenMalformed):
		return err.Error()
	default:
		return nil
	}
}
