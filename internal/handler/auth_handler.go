/*
Package handler provides HTTP handler functions for the session endpoints used outside the
live navbar: logout without JavaScript and a lookup of the current user.
*/
package handler

import (
	"errors"
	"net/http"

	"cryptohub/internal/app/auth"
	"cryptohub/internal/app/user"
	"cryptohub/internal/pkg/auth/jwt"
	"cryptohub/internal/pkg/errs"
	"cryptohub/internal/pkg/logx"
	"cryptohub/internal/pkg/resp"
)

// MeResponse describes the visitor as the navbar sees them.
type MeResponse struct {
	Authenticated   bool       `json:"authenticated"`
	User            *user.User `json:"user,omitempty"`
	IsEmailProvider bool       `json:"isEmailProvider"`
}

// HandleMe returns the current user resolved from the session token.
func HandleMe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := auth.Resolve(r.Context(), deps.Sessions, jwt.GetPayloadFromContext(r))
		u := provider.CurrentUser()

		resp.RespondSuccess(w, r, MeResponse{
			Authenticated:   u != nil,
			User:            u,
			IsEmailProvider: provider.IsEmailProvider(),
		})
	}
}

// HandleLogout revokes the current session and clears the session cookie.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		provider := auth.Resolve(r.Context(), deps.Sessions, payload)

		if err := provider.Logout(r.Context()); err != nil {
			if errors.Is(err, auth.ErrNoSession) {
				clearSessionCookie(w, deps)
				resp.RespondError(w, r, errs.NewError(errs.ErrSessionRevoked))
				return
			}

			logx.Error(err, "Logout failed", "session_id", payload.SessionID)
			resp.RespondError(w, r, errs.NewError(errs.ErrLogoutFailed))
			return
		}

		clearSessionCookie(w, deps)
		resp.RespondSuccess(w, r, map[string]any{"redirect": "/"})
	}
}

func clearSessionCookie(w http.ResponseWriter, deps *AppDeps) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !deps.Config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	})
}
