package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jammission/backend/internal/config"
	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTokenService(t *testing.T) *TokenService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return &TokenService{
		DB:            db,
		JWTSecret:     []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func newContext(e *echo.Echo, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/admin/owner/dashboard", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAccessTokenRoundTrip(t *testing.T) {
	ts := newTokenService(t)
	signed, err := SignAccessToken(7, models.RoleOwner, ts.JWTSecret)
	require.NoError(t, err)

	c, _ := newContext(echo.New(), &http.Cookie{Name: "accessToken", Value: signed})
	access, refresh, claims, err := ts.CheckCookie(c)
	require.NoError(t, err)
	require.Equal(t, signed, access)
	require.Empty(t, refresh)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, models.RoleOwner, claims["role"])
}

func TestCheckCookieRotatesOnExpiredAccess(t *testing.T) {
	ts := newTokenService(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(7),
		"role": models.RoleOwner,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	expiredAccess, err := expired.SignedString(ts.JWTSecret)
	require.NoError(t, err)

	refresh, err := SignRefreshToken(7, models.RoleOwner, ts.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(ts.DB, refresh, 7))

	c, _ := newContext(echo.New(),
		&http.Cookie{Name: "accessToken", Value: expiredAccess},
		&http.Cookie{Name: "refreshToken", Value: refresh},
	)
	newAccess, newRefresh, claims, err := ts.CheckCookie(c)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)
	require.NotEqual(t, refresh, newRefresh)
	require.Equal(t, models.RoleOwner, claims["role"])

	var count int64
	require.NoError(t, ts.DB.Model(&models.RefreshToken{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestCheckCookieRejectsRevokedRefresh(t *testing.T) {
	ts := newTokenService(t)

	refresh, err := SignRefreshToken(7, models.RoleOwner, ts.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(ts.DB, refresh, 7))
	require.NoError(t, ts.DB.Model(&models.RefreshToken{}).
		Where("token = ?", refresh).
		Update("revoked", true).Error)

	c, _ := newContext(echo.New(), &http.Cookie{Name: "refreshToken", Value: refresh})
	_, _, _, err = ts.CheckCookie(c)
	require.Error(t, err)
}

func TestValidateRefreshRejectsAccessToken(t *testing.T) {
	ts := newTokenService(t)

	// an access token signed with the refresh secret still lacks typ
	access, err := SignAccessToken(7, models.RoleOwner, ts.RefreshSecret)
	require.NoError(t, err)

	_, err = ValidateRefresh(access, ts.RefreshSecret, ts.DB)
	require.ErrorContains(t, err, "not a refresh token")
}

func TestAutoRefreshRedirectsWithoutCookies(t *testing.T) {
	ts := newTokenService(t)
	e := echo.New()
	c, rec := newContext(e)

	handler := ts.AutoRefresh(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireRoleGates(t *testing.T) {
	ts := newTokenService(t)
	e := echo.New()
	gate := ts.RequireRole(models.RoleOwner)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	c, rec := newContext(e)
	c.Set("role", models.RoleTechAdmin)
	require.NoError(t, gate(c))
	require.Equal(t, http.StatusFound, rec.Code)

	c, rec = newContext(e)
	c.Set("role", models.RoleOwner)
	require.NoError(t, gate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// no principal resolves to no capabilities
	c, rec = newContext(e)
	require.NoError(t, gate(c))
	require.Equal(t, http.StatusFound, rec.Code)
}
