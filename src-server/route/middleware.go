package route

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"guestlist/src-server/jwt"
	"guestlist/src-server/model"
	"guestlist/src-server/register"
	"guestlist/src-server/utils"
)

type ActorCtxKeyType string

const (
	ActorCtxKey         ActorCtxKeyType = "actor"
	SessionCookieName   string          = "session-token"
	authorizationPrefix string          = "Bearer "
)

// requestToken pulls the session token from the Authorization header or the
// session cookie.
func requestToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, authorizationPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, authorizationPrefix))
	}
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err == nil {
		return strings.TrimSpace(sessionCookie.Value)
	}
	return ""
}

// AuthMiddleware resolves the acting attendee/organizer from the bearer token
// (or session cookie), checks the token's session row still exists in the
// store (deleting the row revokes the token), and injects an explicit
// register.Actor into the request context. Core calls never read auth from
// ambient state.
func AuthMiddleware(as *utils.AppState, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		token := requestToken(r)
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Session token not found"))
			return
		}

		payload, err := jwt.Decode(token, as.Config.GetJWTSecret())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid session token"))
			return
		}
		if time.Unix(payload.IssuedAt, 0).UTC().
			Add(as.Config.GetJWTExpire()).Before(time.Now()) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Session expired"))
			return
		}

		startTimer := time.Now()
		sessionModel := new(model.Session)
		err = as.BunDB.
			NewSelect().
			Model(sessionModel).
			Where("secret = ?", payload.Secret).
			Where("purpose = ?", model.SESSION_MODEL_PURPOSE_SESSION).
			Scan(r.Context())
		switch {
		case errors.Is(err, sql.ErrNoRows):
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Session revoked"))
			return
		case err != nil:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't find session model in DB"))
			slog.Error("can't find session model in DB", "error", err)
			return
		}
		as.MetricChans.DatabaseRead <- float64(time.Since(startTimer).Microseconds())

		// the session row is authoritative for who the actor is
		actor := register.Actor{
			ID:   sessionModel.ActorID,
			Role: sessionModel.Role,
		}
		ctx := context.WithValue(r.Context(), ActorCtxKey, actor)
		next(w, r.WithContext(ctx))
	}
}
