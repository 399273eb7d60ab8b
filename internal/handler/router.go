/*
Package handler provides the HTTP handlers and routing setup for the CryptoHub server.

This file defines the main Router, applying the shared middleware (CORS, request IDs, logging,
panic recovery) and mounting the page, API, WebSocket, static and operational routes.
*/
package handler

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"cryptohub/internal/pkg/auth/jwt"
	"cryptohub/internal/pkg/limiter"
	"cryptohub/internal/pkg/logx"
	"cryptohub/internal/pkg/resp"
)

// Per-IP limits for WebSocket connects and for the JSON API.
const (
	ConnectRate  = 1
	ConnectBurst = 10

	APIRate  = 5
	APIBurst = 20
)

//go:embed static
var staticFiles embed.FS

// Router sets up the main HTTP routing table for the application. The returned stop function
// ends the background work of the rate limiters.
func Router(deps *AppDeps) (http.Handler, func()) {
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)
	apiLimiter := limiter.NewIPRateLimiter(rate.Limit(APIRate), APIBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status":       "ok",
			"service":      deps.Config.BrandName,
			"liveSessions": deps.Manager.Count(),
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Handle("/metrics", promhttp.Handler())

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logx.Fatal(err, "Embedded static files are missing")
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Group(func(identified chi.Router) {
		identified.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		identified.Route("/api", func(api chi.Router) {
			api.Use(apiLimiter.Middleware)

			api.Route("/auth", func(auth chi.Router) {
				auth.Post("/logout", HandleLogout(deps))
				auth.Get("/me", HandleMe(deps))
			})
		})

		identified.Get("/ws/navbar", HandleWebSocket(wsUpgrader, connectLimiter, deps))

		identified.Get("/*", HandlePage(deps))
	})

	stop := func() {
		connectLimiter.Stop()
		apiLimiter.Stop()
	}
	return r, stop
}
