package route

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"guestlist/src-server/jwt"
	"guestlist/src-server/model"
	"guestlist/src-server/utils"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func Auth(muxer *http.ServeMux, as *utils.AppState) {
	// logout: revoke the session row server-side, then clear the cookie
	muxer.HandleFunc("DELETE /auth", func(w http.ResponseWriter, r *http.Request) {
		if token := requestToken(r); token != "" {
			if payload, err := jwt.Decode(token, as.Config.GetJWTSecret()); err == nil {
				if _, err := as.BunDB.
					NewDelete().
					Model((*model.Session)(nil)).
					Where("secret = ?", payload.Secret).
					Where("purpose = ?", model.SESSION_MODEL_PURPOSE_SESSION).
					Exec(r.Context()); err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte("Can't delete session model in DB"))
					return
				}
			}
		}
		w.Header().Set("Set-Cookie", SessionCookieName+"=; Path=/; HttpOnly; SameSite=Lax")

		w.WriteHeader(http.StatusOK)
	})

	type AuthReqBody struct {
		TempKey string `json:"tempKey"`
	}

	// exchange a one-time key provisioned by the identity service for a
	// session token
	muxer.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		var reqBody AuthReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		var tokenStr string
		allowThrough := false
		err := as.BunDB.RunInTx(r.Context(), &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			tempKeySessionModel := new(model.Session)
			if err := tx.
				NewSelect().
				Model(tempKeySessionModel).
				Where("secret = ?", reqBody.TempKey).
				Where("purpose = ?", model.SESSION_MODEL_PURPOSE_TEMP).
				Scan(ctx); err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Invalid temp key"))
				return nil
			}

			// one-time use
			if _, err := tx.
				NewDelete().
				Model((*model.Session)(nil)).
				Where("secret = ?", reqBody.TempKey).
				Where("purpose = ?", model.SESSION_MODEL_PURPOSE_TEMP).
				Exec(ctx); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't delete temp key in DB"))
				return fmt.Errorf("can't delete temp key: %w", err)
			}

			if time.Unix(tempKeySessionModel.CreatedAtUnixUTC, 0).UTC().
				Add(time.Minute * 5).Before(time.Now()) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Temp key expired"))
				return nil
			}

			sessionSecret := uuid.NewString()
			if _, err := tx.
				NewInsert().
				Model(&model.Session{
					Secret:           sessionSecret,
					Purpose:          model.SESSION_MODEL_PURPOSE_SESSION,
					ActorID:          tempKeySessionModel.ActorID,
					Role:             tempKeySessionModel.Role,
					CreatedAtUnixUTC: time.Now().UTC().Unix(),
				}).
				Exec(ctx); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't insert session model to DB"))
				return fmt.Errorf("can't insert session: %w", err)
			}

			var err error
			tokenStr, err = jwt.Encode(jwt.Payload{
				ActorID:  tempKeySessionModel.ActorID,
				Role:     string(tempKeySessionModel.Role),
				Secret:   sessionSecret,
				IssuedAt: time.Now().UTC().Unix(),
			}, as.Config.GetJWTSecret())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't encode session token"))
				return fmt.Errorf("can't encode session token: %w", err)
			}

			allowThrough = true
			return nil
		})
		switch {
		case err != nil:
			return
		case !allowThrough:
			return
		}

		w.Header().Set("Set-Cookie", SessionCookieName+"="+tokenStr+"; Path=/; HttpOnly; SameSite=Lax")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(fmt.Sprintf(`{"token": "%s"}`, tokenStr)))
	})
}
