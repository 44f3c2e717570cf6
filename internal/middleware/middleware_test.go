package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_storefront/internal/cache"
	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/utils"
	"github.com/GTDGit/gtd_storefront/internal/workspace"
)

type noProducts struct{}

func (noProducts) ListProducts(context.Context) ([]models.Product, error) { return nil, nil }

func newTestRouter(t *testing.T) (*gin.Engine, *workspace.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := workspace.NewRegistry(cache.NewMemoryStore(), nil, noProducts{})
	r := gin.New()
	r.Use(NewClientMiddleware("secret", false, registry).Handle())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetWorkspace(c).ID)
	})
	r.GET("/gated", SessionGate(), func(c *gin.Context) {
		c.String(http.StatusOK, "inside")
	})
	return r, registry
}

func clientCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == ClientCookie {
			return c
		}
	}
	t.Fatalf("cookie %s not set", ClientCookie)
	return nil
}

func TestClientMiddlewareIssuesAndReusesIdentity(t *testing.T) {
	r, registry := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookie := clientCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	id := w.Body.String()

	claims, err := utils.ParseClientToken("secret", cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ClientID)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "valid cookie is not reissued")
	assert.Equal(t, 1, registry.Len())
}

func TestClientMiddlewareReplacesForgedCookie(t *testing.T) {
	r, _ := newTestRouter(t)

	forged, err := utils.GenerateClientToken("other-secret", "victim", 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "victim", w.Body.String())
	clientCookie(t, w)
}

func TestSessionGate(t *testing.T) {
	r, registry := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gated", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
	cookie := clientCookie(t, w)

	claims, err := utils.ParseClientToken("secret", cookie.Value)
	require.NoError(t, err)
	ws, ok := registry.Lookup(claims.ClientID)
	require.True(t, ok)
	ws.Session.Login("alice")

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "inside", w.Body.String())
}

func TestInvalidLoginRateLimiter(t *testing.T) {
	rl := NewInvalidLoginRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.Allow("1.1.1.1"))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, rl.Prune())
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"shop.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://shop.example:443")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://shop.example:443", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
