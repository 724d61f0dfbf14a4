package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
)

type RegistrationStatus string

const (
	REGISTRATION_STATUS_PENDING    = RegistrationStatus("pending")
	REGISTRATION_STATUS_INCOMPLETE = RegistrationStatus("incomplete")
	REGISTRATION_STATUS_APPROVED   = RegistrationStatus("approved")
	REGISTRATION_STATUS_REJECTED   = RegistrationStatus("rejected")
	REGISTRATION_STATUS_PAID       = RegistrationStatus("paid")
	REGISTRATION_STATUS_REVOKED    = RegistrationStatus("revoked")
	REGISTRATION_STATUS_CANCELLED  = RegistrationStatus("cancelled")
)

// Registration holds one or more members against one pass. Status only moves
// through the transition table in the register package; membership only moves
// through join-code redemption.
type Registration struct {
	bun.BaseModel `bun:"table:registrations"`

	ID      string `bun:"id,pk"`            // required
	EventID string `bun:"event_id,notnull"` // required
	PassID  string `bun:"pass_id,notnull"`  // required

	Status     RegistrationStatus `bun:"status,notnull,type:varchar"` // required
	IsComplete bool               `bun:"is_complete"`

	CreatedAtUnixUTC int64 `bun:"created_at,notnull"` // required
	UpdatedAtUnixUTC int64 `bun:"updated_at"`

	Pass     *Pass     `bun:"rel:belongs-to,join:pass_id=id"`
	Members  []*Member `bun:"rel:has-many,join:id=registration_id"`
	JoinCode *JoinCode `bun:"rel:has-one,join:id=registration_id"`

	// derived on load, never the source of truth
	GenderMismatch bool `bun:"-"`
}

func (r *Registration) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case r.ID == "":
		return fmt.Errorf("(*Registration).Upsert: registration id is blank")
	case r.EventID == "":
		return fmt.Errorf("(*Registration).Upsert: event id is blank")
	case r.PassID == "":
		return fmt.Errorf("(*Registration).Upsert: pass id is blank")
	case r.Status == "":
		return fmt.Errorf("(*Registration).Upsert: status is blank")
	}
	if r.CreatedAtUnixUTC == 0 {
		r.CreatedAtUnixUTC = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Registration)(nil)).
		Where("id = ?", r.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Registration).Upsert: %w", err)
	}

	switch exists {
	case true:
		r.UpdatedAtUnixUTC = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(r).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Registration).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(r).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Registration).Upsert: %w", err)
		}
	}

	return nil
}

func (r *Registration) ToDiscordEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Registration %s", r.ID),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Status",
				Value:  string(r.Status),
				Inline: true,
			},
			{
				Name:   "Created",
				Value:  fmt.Sprintf("<t:%d:f>", r.CreatedAtUnixUTC),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: r.EventID,
		},
	}
	if r.Pass != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Pass",
			Value: r.Pass.Name,
		})
	}
	if len(r.Members) > 0 {
		memberStr := make([]string, len(r.Members))
		for i, member := range r.Members {
			memberStr[i] = member.FullName
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Members",
			Value: strings.Join(memberStr, ", "),
		})
	}

	return embed
}
