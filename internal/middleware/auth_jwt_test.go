package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmmarket/internal/config"
	"farmmarket/internal/domain/model"
	"farmmarket/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, sub interface{}, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func doRequest(authz string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	_ = h(c)
	return rec, c
}

func TestAuthJWT_ValidTokenSetsContext(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, float64(42), "FARMER")

	rec, c := doRequest("Bearer "+token, middleware.AuthJWT(cfg))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "FARMER", c.Get(middleware.CtxUserRoleKey))
}

func TestAuthJWT_StringSubAccepted(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, "42", "CUSTOMER")

	rec, c := doRequest("Bearer "+token, middleware.AuthJWT(cfg))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), c.Get(middleware.CtxUserIDKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	rec, _ := doRequest("", middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	rec, _ := doRequest("Token abc", middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSignature(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, "other-secret", float64(42), "FARMER")

	rec, _ := doRequest("Bearer "+token, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	claims := jwt.MapClaims{
		"sub":  float64(42),
		"role": "FARMER",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	rec, _ := doRequest("Bearer "+signed, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingRoleClaim(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	claims := jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	rec, _ := doRequest("Bearer "+signed, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGuard_MatchingRolePasses(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, float64(42), "FARMER")

	rec, _ := doRequest("Bearer "+token,
		middleware.AuthJWT(cfg), middleware.RoleGuard(model.RoleFarmer))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleGuard_WrongRoleForbidden(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, float64(42), "CUSTOMER")

	rec, _ := doRequest("Bearer "+token,
		middleware.AuthJWT(cfg), middleware.RoleGuard(model.RoleFarmer))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleGuard_NoAuthContext(t *testing.T) {
	rec, _ := doRequest("", middleware.RoleGuard(model.RoleFarmer))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
