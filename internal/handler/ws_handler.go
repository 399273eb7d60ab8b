/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains HandleWebSocket, which rate limits the connection, resolves the visitor's
session and theme, upgrades the connection and hands it to a live navbar session.
*/
package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"cryptohub/internal/app/auth"
	"cryptohub/internal/app/live"
	"cryptohub/internal/app/theme"
	"cryptohub/internal/pkg/auth/jwt"
	"cryptohub/internal/pkg/errs"
	"cryptohub/internal/pkg/limiter"
	"cryptohub/internal/pkg/logx"
	"cryptohub/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc that turns a connection into a live navbar session.
// The browser passes the page pathname as the path query parameter.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.Allow(ip) {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", logx.AnonymizeIP(ip))
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		path := r.URL.Query().Get("path")
		if path == "" {
			logx.Warn("WebSocket request rejected: Missing path query parameter")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		provider := auth.Resolve(r.Context(), deps.Sessions, jwt.GetPayloadFromContext(r))
		opts := deps.navbarOptions(r.Context())
		themeProvider := theme.NewProvider(theme.FromRequest(r))

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		session, err := deps.Manager.Open(conn, live.SessionConfig{
			InitialPath: path,
			Auth:        provider,
			Theme:       themeProvider,
			Options:     opts,
		})
		if err != nil {
			if errors.Is(err, live.ErrShuttingDown) {
				logx.Info("WebSocket connection refused during shutdown.")
			} else {
				logx.Error(err, "Failed to open live session")
			}
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteMessage(websocket.CloseMessage, msg)
			_ = conn.Close()
			return
		}

		logx.Info("Live navbar session established.", "session_id", session.ID, "path", path, "authenticated", provider.CurrentUser() != nil)

		session.Serve()
	}
}
