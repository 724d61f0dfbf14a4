package model

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Ticket is issued once per member when a registration reaches paid. Immutable
// after issuance; resend is a notification side effect, not a state change.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID             string `bun:"id,pk"`                   // required
	RegistrationID string `bun:"registration_id,notnull"` // required
	MemberID       string `bun:"member_id,notnull,unique"` // required
	EventID        string `bun:"event_id,notnull"`        // required

	IssuedAtUnixUTC int64 `bun:"issued_at,notnull"` // required

	Registration *Registration `bun:"rel:belongs-to,join:registration_id=id"`
	Member       *Member       `bun:"rel:belongs-to,join:member_id=id"`
}

func (t *Ticket) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case t.ID == "":
		return fmt.Errorf("(*Ticket).Insert: ticket id is blank")
	case t.RegistrationID == "":
		return fmt.Errorf("(*Ticket).Insert: registration id is blank")
	case t.MemberID == "":
		return fmt.Errorf("(*Ticket).Insert: member id is blank")
	case t.EventID == "":
		return fmt.Errorf("(*Ticket).Insert: event id is blank")
	}
	if t.IssuedAtUnixUTC == 0 {
		t.IssuedAtUnixUTC = time.Now().UTC().Unix()
	}

	if _, err := db.NewInsert().
		Model(t).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Ticket).Insert: %w", err)
	}

	return nil
}
