package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aeducacao_backend/internal/config"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "segredo-de-teste"
	return cfg
}

func protectedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(cfg), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := protectedRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	r := protectedRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAdminOnlyRejectsNonAdminRole(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg)

	token, err := util.GenerateJWT("aluno", "student", cfg.JWT.Secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAdminTokenPassesViaHeaderAndQuery(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg)

	token, err := util.GenerateJWT("admin", "admin", cfg.JWT.Secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("header token: status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin?token="+token, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("query token: status = %d, want 200", w.Code)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg)

	token, err := util.GenerateJWT("admin", "admin", cfg.JWT.Secret, -time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
