package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type PassGenderConstraint string

const (
	PASS_GENDER_CONSTRAINT_NONE   = PassGenderConstraint("none")
	PASS_GENDER_CONSTRAINT_MALE   = PassGenderConstraint("male-only")
	PASS_GENDER_CONSTRAINT_FEMALE = PassGenderConstraint("female-only")
)

type PassType string

const (
	PASS_TYPE_SINGLE = PassType("single")
	PASS_TYPE_COUPLE = PassType("couple")
	PASS_TYPE_GROUP  = PassType("group")
)

// Pass is a purchasable category for an event (solo, couple, group). The core
// only ever reads passes; seeding the catalog is an ops concern.
type Pass struct {
	bun.BaseModel `bun:"table:passes"`

	ID      string `bun:"id,pk"`            // required
	EventID string `bun:"event_id,notnull"` // required
	Name    string `bun:"name,notnull"`     // required
	Price   int64  `bun:"price"`            // smallest currency unit

	MaxMembers       int                  `bun:"max_members,notnull"` // required, >= 1
	Joinable         bool                 `bun:"joinable"`
	GenderConstraint PassGenderConstraint `bun:"gender_constraint,notnull,type:varchar"`
	Type             PassType             `bun:"type,notnull,type:varchar"`
}

func (p *Pass) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("(*Pass).Upsert: pass id is blank")
	case p.EventID == "":
		return fmt.Errorf("(*Pass).Upsert: event id is blank")
	case p.Name == "":
		return fmt.Errorf("(*Pass).Upsert: name is blank")
	case p.MaxMembers < 1:
		return fmt.Errorf("(*Pass).Upsert: max members must be at least 1")
	}
	if p.GenderConstraint == "" {
		p.GenderConstraint = PASS_GENDER_CONSTRAINT_NONE
	}
	if p.Type == "" {
		p.Type = PASS_TYPE_SINGLE
	}

	if _, err := db.NewInsert().
		Model(p).
		On("CONFLICT (id) DO UPDATE").
		Set("event_id = EXCLUDED.event_id").
		Set("name = EXCLUDED.name").
		Set("price = EXCLUDED.price").
		Set("max_members = EXCLUDED.max_members").
		Set("joinable = EXCLUDED.joinable").
		Set("gender_constraint = EXCLUDED.gender_constraint").
		Set("type = EXCLUDED.type").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Pass).Upsert: %w", err)
	}

	return nil
}
