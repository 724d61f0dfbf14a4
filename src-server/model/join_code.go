package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// JoinCode binds a short opaque token 1:1 to a registration. It has no
// lifecycle of its own: it is consumable exactly while the registration is
// below capacity and not in a dead status. Stored uppercase; lookups must
// normalize the same way.
type JoinCode struct {
	bun.BaseModel `bun:"table:join_codes"`

	Code           string `bun:"code,pk"`                        // required, uppercase
	RegistrationID string `bun:"registration_id,notnull,unique"` // required
	EventID        string `bun:"event_id,notnull"`               // required

	CreatedAtUnixUTC int64 `bun:"created_at,notnull"` // required

	Registration *Registration `bun:"rel:belongs-to,join:registration_id=id"`
}

func (j *JoinCode) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case j.Code == "":
		return fmt.Errorf("(*JoinCode).Insert: code is blank")
	case j.Code != strings.ToUpper(j.Code):
		return fmt.Errorf("(*JoinCode).Insert: code must be stored uppercase")
	case j.RegistrationID == "":
		return fmt.Errorf("(*JoinCode).Insert: registration id is blank")
	case j.EventID == "":
		return fmt.Errorf("(*JoinCode).Insert: event id is blank")
	}

	if _, err := db.NewInsert().
		Model(j).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*JoinCode).Insert: %w", err)
	}

	return nil
}
