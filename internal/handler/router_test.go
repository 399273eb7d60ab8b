package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptohub/internal/app/auth"
	"cryptohub/internal/app/live"
	"cryptohub/internal/app/storage"
	"cryptohub/internal/app/user"
	"cryptohub/internal/configs"
	"cryptohub/internal/pkg/auth/jwt"
	"cryptohub/internal/pkg/errs"
	"cryptohub/internal/pkg/resp"
)

type testApp struct {
	deps    *AppDeps
	store   *auth.MemoryStore
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg, err := configs.FromEnv(func(key string) string {
		if key == "ASSET_BASE_URL" {
			return "https://cdn.example.com/brand"
		}
		return ""
	})
	require.NoError(t, err)

	store := auth.NewMemoryStore()
	deps := &AppDeps{
		Config:   cfg,
		Manager:  live.NewManager(),
		Sessions: store,
		Assets:   storage.NewStaticAssets(cfg.AssetBaseURL),
		Version:  "2.3.4",
	}

	h, stop := Router(deps)
	t.Cleanup(func() {
		deps.Manager.Shutdown()
		stop()
	})

	return &testApp{deps: deps, store: store, handler: h}
}

// signIn creates a session and returns its token.
func (a *testApp) signIn(t *testing.T, provider string) (string, *auth.Session) {
	t.Helper()

	u := user.User{ID: "u-1", Email: "alice@example.com", Provider: provider}
	sess := auth.NewSession(u, time.Hour)
	require.NoError(t, a.store.Create(context.Background(), sess))

	token, err := jwt.GenerateToken(&jwt.Payload{SessionID: sess.ID, Email: u.Email, Provider: u.Provider}, u.ID, a.deps.Config.JWTSecret, time.Hour)
	require.NoError(t, err)
	return token, sess
}

func (a *testApp) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, r)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) resp.JSONResponse {
	t.Helper()

	var body resp.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Zero(t, body.Code)
	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "CryptoHub", data["service"])
}

func TestMetrics(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cryptohub_live_sessions")
}

func TestStaticShim(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/static/navbar.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "navbar-root")
}

func TestStaticShimDismissesOnlyFromOverlay(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/static/navbar.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	start := strings.Index(body, "mousedown: function")
	require.NotEqual(t, -1, start)
	end := strings.Index(body[start:], "keydown: function")
	require.NotEqual(t, -1, end)

	handler := body[start : start+end]
	assert.Contains(t, handler, `closest(".sidebar-overlay")`)
	assert.NotContains(t, handler, ".sidebar-menu")
	assert.Equal(t, 1, strings.Count(handler, `send("overlay_click")`))
}

func TestDefaultLogoIsServed(t *testing.T) {
	cfg, err := configs.FromEnv(func(string) string { return "" })
	require.NoError(t, err)

	deps := &AppDeps{
		Config:   cfg,
		Manager:  live.NewManager(),
		Sessions: auth.NewMemoryStore(),
		Assets:   storage.NewStaticAssets(cfg.AssetBaseURL),
	}
	h, stop := Router(deps)
	t.Cleanup(func() {
		deps.Manager.Shutdown()
		stop()
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="/static/crypto-logo.svg"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/crypto-logo.svg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestPageAnonymous(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/pricing?ref=ad", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!doctype html>"), body[:20])
	assert.Contains(t, body, `href="/pricing" class="navbar-link active"`)
	assert.Contains(t, body, "LOGIN")
	assert.Contains(t, body, `src="https://cdn.example.com/brand/crypto-logo.svg"`)
	assert.Contains(t, body, "Version 2.3.4")
	assert.Contains(t, body, `src="/static/navbar.js"`)
}

func TestPageAuthenticatedFromCookie(t *testing.T) {
	app := newTestApp(t)
	token, _ := app.signIn(t, user.ProviderPassword)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: token})
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})

	body := app.do(req).Body.String()
	assert.Contains(t, body, "alice@example.com")
	assert.Contains(t, body, "Change Password")
	assert.Contains(t, body, `data-theme="dark"`)
	assert.NotContains(t, body, "navbar-menu", "dashboard hides the inline menu")
}

func TestMe(t *testing.T) {
	app := newTestApp(t)

	body := decodeEnvelope(t, app.do(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)))
	data := body.Data.(map[string]any)
	assert.Equal(t, false, data["authenticated"])

	token, _ := app.signIn(t, user.ProviderGitHub)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	body = decodeEnvelope(t, app.do(req))
	data = body.Data.(map[string]any)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, false, data["isEmailProvider"])
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	token, sess := app.signIn(t, user.ProviderPassword)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := app.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeEnvelope(t, rec).Code)

	cookie := rec.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Equal(t, jwt.CookieName, cookie[0].Name)
	assert.Negative(t, cookie[0].MaxAge)

	stored, err := app.store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.RevokedAt)

	// the same token no longer identifies anyone
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, errs.ErrSessionRevoked, decodeEnvelope(t, app.do(req)).Code)
}

func TestLogoutRequiresToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errs.ErrUnauthorized, decodeEnvelope(t, rec).Code)
}

func TestWebSocketRequiresPath(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/ws/navbar", nil))
	assert.Equal(t, errs.ErrInvalidParams, decodeEnvelope(t, rec).Code)
}

func TestWebSocketSession(t *testing.T) {
	app := newTestApp(t)
	token, _ := app.signIn(t, user.ProviderPassword)

	srv := httptest.NewServer(app.handler)
	t.Cleanup(srv.Close)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/navbar?path=/leaderboard"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg struct {
		Type    live.MessageType   `json:"type"`
		Payload live.RenderPayload `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, live.TypeRender, msg.Type)
	assert.Equal(t, "/leaderboard", msg.Payload.Path)
	assert.Contains(t, msg.Payload.HTML, "alice@example.com")
	assert.Contains(t, msg.Payload.HTML, `href="/leaderboard" class="navbar-link active"`)
}
