package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transio/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "11111111-1111-1111-1111-111111111111",
		"role": role,
		"exp":  time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(GetJWTSecret())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newAuthRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "role": c.GetString("userRole")})
	})
	return r
}

func TestRequireAuthMissingToken(t *testing.T) {
	r := newAuthRouter(RequireAuth())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r := newAuthRouter(RequireAuth())
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	r := newAuthRouter(RequireAuth())
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleDispecer, -time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthBearerToken(t *testing.T) {
	r := newAuthRouter(RequireAuth())
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleDispecer, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestRequireAuthCookieToken(t *testing.T) {
	r := newAuthRouter(RequireAuth())
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: signTestToken(t, model.RoleAdmin, time.Hour)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestSetTokenCookieAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		SetTokenCookie(c, "tok")
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: got %d want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != TokenCookieName {
		t.Fatalf("name: got %q want %q", cookie.Name, TokenCookieName)
	}
	if cookie.MaxAge != 3600*24*7 {
		t.Fatalf("max-age: got %d want %d", cookie.MaxAge, 3600*24*7)
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("samesite: got %v want Strict", cookie.SameSite)
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
}

func TestClearTokenCookieExpires(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/logout", func(c *gin.Context) {
		ClearTokenCookie(c)
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/logout", nil))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: got %d want 1", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Fatalf("max-age: got %d want negative", cookies[0].MaxAge)
	}
}

func TestRequireAdminRejectsDispatcher(t *testing.T) {
	r := newAuthRouter(RequireAdmin())
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleDispecer, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusForbidden)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	r := newAuthRouter(RequireAdmin())
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleAdmin, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusOK)
	}
}
