package model

import (
	"github.com/uptrace/bun"
)

type SessionModelPurposeType string

const (
	// one-time secret handed out for the client to exchange for a session
	SESSION_MODEL_PURPOSE_TEMP = SessionModelPurposeType("temp")
	// for the web client to keep the session
	SESSION_MODEL_PURPOSE_SESSION = SessionModelPurposeType("session")
)

type ActorRole string

const (
	ACTOR_ROLE_ATTENDEE  = ActorRole("attendee")
	ACTOR_ROLE_ORGANIZER = ActorRole("organizer")
)

type Session struct {
	bun.BaseModel `bun:"table:sessions"`

	Secret           string                  `bun:"secret,pk"`                    // required
	Purpose          SessionModelPurposeType `bun:"purpose,notnull,type:varchar"` // required
	ActorID          string                  `bun:"actor_id,notnull"`             // required
	Role             ActorRole               `bun:"role,notnull,type:varchar"`    // required
	CreatedAtUnixUTC int64                   `bun:"created_at,notnull"`           // required
}
