package token

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func SignAccessToken(userID uint, role string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(AccessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func SignRefreshToken(userID uint, role string, secret []byte) (string, error) {
	// jti keeps tokens unique even when two are minted within the
	// same second, which the unique column on refresh_tokens requires.
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(RefreshTTL).Unix(),
		"typ":  "refresh",
		"jti":  uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func SaveRefreshToken(db *gorm.DB, token string, userID uint) error {
	rt := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(RefreshTTL).Unix(),
	}
	if err := db.Create(&rt).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func ValidateRefresh(rawToken string, refreshSecret []byte, db *gorm.DB) (jwt.MapClaims, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return refreshSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("cannot parse claims")
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, errors.New("not a refresh token")
	}

	var stored models.RefreshToken
	if err := db.Where("token = ?", rawToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, errors.New("refresh token expired")
	}

	return claims, nil
}

func (t *TokenService) RotateToken(rawToken string) (string, string, jwt.MapClaims, error) {
	claims, err := ValidateRefresh(rawToken, t.RefreshSecret, t.DB)
	if err != nil {
		return "", "", nil, err
	}

	userID := uint(claims["sub"].(float64))
	role, _ := claims["role"].(string)

	newAccess, err := SignAccessToken(userID, role, t.JWTSecret)
	if err != nil {
		return "", "", nil, err
	}
	newRefresh, err := SignRefreshToken(userID, role, t.RefreshSecret)
	if err != nil {
		return "", "", nil, err
	}
	if err := SaveRefreshToken(t.DB, newRefresh, userID); err != nil {
		return "", "", nil, err
	}

	return newAccess, newRefresh, claims, nil
}

// CheckCookie resolves the principal from the access cookie, rotating
// through the refresh cookie when the access token has expired. Returns
// the (possibly renewed) token pair; newRefresh is empty when no
// rotation happened.
func (t *TokenService) CheckCookie(c echo.Context) (newAccess, newRefresh string, claims jwt.MapClaims, err error) {
	asCookie, cerr := c.Cookie("accessToken")
	if cerr == nil {
		tok, perr := jwt.Parse(asCookie.Value, func(j *jwt.Token) (interface{}, error) {
			return t.JWTSecret, nil
		})
		if perr == nil && tok.Valid {
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			return asCookie.Value, "", claims, nil
		}
		if !errors.Is(perr, jwt.ErrTokenExpired) {
			return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
	}

	rfCookie, cerr := c.Cookie("refreshToken")
	if cerr != nil {
		return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}
	newAccess, newRefresh, claims, err = t.RotateToken(rfCookie.Value)
	if err != nil {
		return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return newAccess, newRefresh, claims, nil
}
