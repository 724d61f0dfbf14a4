package register

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guestlist/src-server/joincode"
	"guestlist/src-server/model"

	"github.com/uptrace/bun"
)

// Redeem attaches the acting attendee to the registration bound to the code.
// The capacity check runs inside the transaction so two near-capacity
// redemptions cannot both slip in. Redeeming a code the attendee already sits
// on is a no-op success.
func (s *Service) Redeem(ctx context.Context, actor Actor, code, eventID string) (*model.Registration, error) {
	return s.RedeemAs(ctx, actor, code, eventID, MemberInput{})
}

// RedeemAs is Redeem with an explicit member profile for the joiner.
func (s *Service) RedeemAs(ctx context.Context, actor Actor, code, eventID string, input MemberInput) (*model.Registration, error) {
	if !actor.isAttendee() {
		return nil, ErrForbidden
	}

	code = joincode.Normalize(code)
	if !joincode.Valid(code) {
		return nil, ErrNotFound
	}

	var registrationID string
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		joinCodeModel := new(model.JoinCode)
		if err := tx.NewSelect().
			Model(joinCodeModel).
			Where("code = ?", code).
			Where("event_id = ?", eventID).
			Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("can't look up join code: %w", err)
		}
		registrationID = joinCodeModel.RegistrationID

		registrationModel := new(model.Registration)
		if err := tx.NewSelect().
			Model(registrationModel).
			Where("registration.id = ?", registrationID).
			Relation("Members", sortMembers).
			Relation("Pass").
			Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("can't load registration: %w", err)
		}
		if registrationModel.Pass == nil {
			return ErrPassNotFound
		}

		// idempotent per (code, member): already on this registration
		for _, member := range registrationModel.Members {
			if member.AttendeeID == actor.ID {
				return nil
			}
		}

		// capacity first: a full registration reports Full even when its
		// status would also make it not joinable
		if len(registrationModel.Members) >= registrationModel.Pass.MaxMembers {
			return ErrFull
		}
		if deadForJoining(registrationModel.Status) {
			return ErrNotJoinable
		}

		registeredElsewhere, err := tx.NewSelect().
			Model((*model.Member)(nil)).
			Where("attendee_id = ?", actor.ID).
			Where("event_id = ?", eventID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("can't check existing membership: %w", err)
		}
		if registeredElsewhere {
			return ErrAlreadyRegistered
		}

		memberModel := input.toModel(actor, registrationID, eventID, len(registrationModel.Members))
		if memberModel.FullName == "" {
			memberModel.FullName = actor.ID
		}
		if err := memberModel.Insert(ctx, tx); err != nil {
			return err
		}

		// completeness covers every member, so a joiner with missing answers
		// drags the flag down
		registrationModel.IsComplete = allScreeningComplete(
			append(registrationModel.Members, memberModel),
		)
		return registrationModel.Upsert(ctx, tx)
	}); err != nil {
		switch {
		case errors.Is(err, ErrNotFound),
			errors.Is(err, ErrNotJoinable),
			errors.Is(err, ErrFull),
			errors.Is(err, ErrAlreadyRegistered),
			errors.Is(err, ErrPassNotFound):
			return nil, err
		}
		return nil, fmt.Errorf("(*Service).Redeem: %w", err)
	}

	return s.Get(ctx, registrationID)
}
