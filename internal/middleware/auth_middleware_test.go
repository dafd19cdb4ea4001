package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/pkg/auth"
)

func testRouter(m *AuthMiddleware, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   CurrentUserID(c),
			"role": string(CurrentRole(c)),
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func issueToken(t *testing.T, svc *auth.JWTService, role models.RoleType) string {
	t.Helper()
	token, err := svc.GenerateToken(&models.User{ID: 9, Nome: "Teste", Email: "t@exemplo.com", Role: role})
	require.NoError(t, err)
	return token
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestJWTAuthMissingToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "t"})
	router := testRouter(NewAuthMiddleware(svc))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token não fornecido.", errorBody(t, w))
}

func TestJWTAuthInvalidToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "t"})
	router := testRouter(NewAuthMiddleware(svc))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token inválido.", errorBody(t, w))
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: -time.Minute, TokenIssuer: "t"})
	router := testRouter(NewAuthMiddleware(expired))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, expired, models.RoleAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expirado.", errorBody(t, w))
}

func TestJWTAuthValidTokenSetsIdentity(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "t"})
	router := testRouter(NewAuthMiddleware(svc))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, models.RoleGuardian))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(9), body["id"])
	assert.Equal(t, "responsavel", body["role"])
}

func TestJWTAuthRawTokenWithoutPrefix(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "t"})
	router := testRouter(NewAuthMiddleware(svc))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", issueToken(t, svc, models.RoleAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequired(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "t"})
	m := NewAuthMiddleware(svc)
	router := testRouter(m, m.RoleRequired(models.RoleAdmin))

	// Guardian hits the role gate.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, models.RoleGuardian))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Acesso negado.", errorBody(t, w))

	// Admin passes.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, models.RoleAdmin))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
