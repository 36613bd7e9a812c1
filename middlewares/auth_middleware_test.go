package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"atfplatform/backend/utils"
)

const testSecret = "test-secret"

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatInt(c.GetInt64("user_id"), 10))
	})
	return r
}

func TestAuthBearerToken(t *testing.T) {
	token, err := utils.GenerateJWT(testSecret, 42, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if w.Body.String() != "42" {
		t.Fatalf("user_id: got %q", w.Body.String())
	}
}

func TestAuthCookieFallback(t *testing.T) {
	token, err := utils.GenerateJWT(testSecret, 7, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	protectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if w.Body.String() != "7" {
		t.Fatalf("user_id: got %q", w.Body.String())
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	expired, err := utils.GenerateJWT(testSecret, 42, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := utils.GenerateJWT("other-secret", 42, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"missing":      "",
		"expired":      expired,
		"wrong secret": foreign,
		"garbage":      "not-a-jwt",
	}
	for name, token := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		protectedRouter().ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s token: got %d, want 401", name, w.Code)
		}
	}
}

func TestTokenFromRequestPrefersBearerHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token"})
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	if got := TokenFromRequest(c); got != "header-token" {
		t.Fatalf("got %q", got)
	}
}

func adminRouter(isAdmin func(c *gin.Context, userID int64) bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", Auth(testSecret), AdminOnly(isAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestAdminOnly(t *testing.T) {
	token, err := utils.GenerateJWT(testSecret, 42, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	allow := adminRouter(func(c *gin.Context, userID int64) bool { return userID == 42 })
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	allow.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin caller: got %d", w.Code)
	}

	deny := adminRouter(func(c *gin.Context, userID int64) bool { return false })
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	deny.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin caller: got %d, want 403", w.Code)
	}
}

func TestAdminOnlyWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Miswired route: AdminOnly without Auth in front must still deny.
	r.GET("/admin", AdminOnly(func(c *gin.Context, userID int64) bool { return true }), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403", w.Code)
	}
}
