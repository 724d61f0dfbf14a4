package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Member is one attendee attached to a registration. Ordinal 0 is the
// creator; join order is insertion order.
type Member struct {
	bun.BaseModel `bun:"table:members"`

	ID             string `bun:"id,pk"`                    // required
	RegistrationID string `bun:"registration_id,notnull"` // required
	AttendeeID     string `bun:"attendee_id,notnull"`     // required
	EventID        string `bun:"event_id,notnull"`        // required, denormalized for the one-registration-per-event check

	FullName string `bun:"full_name,notnull"` // required
	Gender   string `bun:"gender"`            // declared, may be blank
	NationalID string `bun:"national_id"`

	Email  string `bun:"email"`
	Phone  string `bun:"phone"`
	Handle string `bun:"handle"`

	Profession string `bun:"profession"`
	Bio        string `bun:"bio"`
	PictureURL string `bun:"picture_url"`

	Ordinal int `bun:"ordinal,notnull"`

	Registration *Registration `bun:"rel:belongs-to,join:registration_id=id"`
}

func (m *Member) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case m.ID == "":
		return fmt.Errorf("(*Member).Insert: member id is blank")
	case m.RegistrationID == "":
		return fmt.Errorf("(*Member).Insert: registration id is blank")
	case m.AttendeeID == "":
		return fmt.Errorf("(*Member).Insert: attendee id is blank")
	case m.EventID == "":
		return fmt.Errorf("(*Member).Insert: event id is blank")
	case m.FullName == "":
		return fmt.Errorf("(*Member).Insert: full name is blank")
	}

	if _, err := db.NewInsert().
		Model(m).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Member).Insert: %w", err)
	}

	return nil
}
