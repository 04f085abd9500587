package handlers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jammission/backend/internal/hash"
	"github.com/jammission/backend/internal/models"
	"github.com/jammission/backend/internal/mykafka"
	"github.com/jammission/backend/internal/service/token"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte

	// BootstrapToken mints the first technical admin on a fresh
	// deployment. Empty disables bootstrap registration entirely.
	BootstrapToken string

	Producer *mykafka.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username       string `json:"username"`
		Password       string `json:"password"`
		BootstrapToken string `json:"bootstrap_token"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return errorResponse(c, http.StatusBadRequest, "username and password are required")
	}

	// New accounts carry no capabilities until a technical admin
	// assigns a role. The bootstrap token is the one exception: it
	// registers a technical admin so role granting has an entry point.
	role := models.RoleNone
	if req.BootstrapToken != "" {
		if h.BootstrapToken == "" ||
			subtle.ConstantTimeCompare([]byte(req.BootstrapToken), []byte(h.BootstrapToken)) != 1 {
			return errorResponse(c, http.StatusForbidden, "invalid bootstrap token")
		}
		role = models.RoleTechAdmin
	}

	var existing models.User
	err := h.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return errorResponse(c, http.StatusConflict, "user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return errorResponse(c, http.StatusUnauthorized, "invalid username or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return errorResponse(c, http.StatusUnauthorized, "invalid username or password")
	}

	access, err := token.SignAccessToken(user.ID, user.Role, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	refresh, err := token.SignRefreshToken(user.ID, user.Role, h.RefreshSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := token.SaveRefreshToken(h.DB, refresh, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.SetCookie(token.CreateCookie("accessToken", access, "/", time.Now().Add(token.AccessTTL)))
	c.SetCookie(token.CreateCookie("refreshToken", refresh, "/", time.Now().Add(token.RefreshTTL)))

	publishEvent(c, h.Producer, fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	// The client routes staff to their dashboard from this.
	dashboard := "/"
	switch user.Role {
	case models.RoleTechAdmin:
		dashboard = "/admin/tech/dashboard"
	case models.RoleOwner:
		dashboard = "/admin/owner/dashboard"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"access_token":  access,
		"refresh_token": refresh,
		"role":          user.Role,
		"dashboard":     dashboard,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie("refreshToken"); err == nil {
		h.DB.Model(&models.RefreshToken{}).
			Where("token = ?", ck.Value).
			Update("revoked", true)
	}
	expired := time.Now().Add(-time.Hour)
	c.SetCookie(token.CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(token.CreateCookie("refreshToken", "", "/", expired))
	return c.NoContent(http.StatusNoContent)
}

// SetRole lets a technical admin grant or revoke staff capabilities.
func (h *AuthHandler) SetRole(c echo.Context) error {
	id := parseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	switch req.Role {
	case models.RoleOwner, models.RoleTechAdmin, models.RoleNone:
	default:
		return errorResponse(c, http.StatusBadRequest, "unknown role")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user.Role = req.Role
	if err := h.DB.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_role_changed",
		"userID": user.ID,
		"role":   user.Role,
	})

	return c.JSON(http.StatusOK, user)
}
