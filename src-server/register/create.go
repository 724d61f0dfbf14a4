package register

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guestlist/src-server/joincode"
	"guestlist/src-server/model"
	"guestlist/src-server/utils"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MemberInput is the attendee-supplied profile for one member, used both at
// creation (primary member) and at join-code redemption (linked members).
type MemberInput struct {
	FullName   string
	Gender     string
	NationalID string

	Email  string
	Phone  string
	Handle string

	Profession string
	Bio        string
	PictureURL string
}

func (in MemberInput) toModel(actor Actor, registrationID, eventID string, ordinal int) *model.Member {
	return &model.Member{
		ID:             uuid.NewString(),
		RegistrationID: registrationID,
		AttendeeID:     actor.ID,
		EventID:        eventID,
		FullName:       utils.CleanupString(in.FullName),
		Gender:         in.Gender,
		NationalID:     in.NationalID,
		Email:          in.Email,
		Phone:          in.Phone,
		Handle:         in.Handle,
		Profession:     in.Profession,
		Bio:            in.Bio,
		PictureURL:     in.PictureURL,
		Ordinal:        ordinal,
	}
}

// Create opens a new registration for the acting attendee against one pass.
// Multi-member passes get a join code for the remaining seats. Missing
// screening answers do not fail the call; they park the registration in
// incomplete.
func (s *Service) Create(ctx context.Context, actor Actor, eventID, passID string, input MemberInput) (*model.Registration, error) {
	if !actor.isAttendee() {
		return nil, ErrForbidden
	}
	if eventID == "" {
		return nil, fmt.Errorf("(*Service).Create: event id is blank")
	}

	passModel, err := s.Pass(ctx, passID)
	if err != nil {
		return nil, err
	}
	if passModel.EventID != eventID {
		return nil, ErrPassNotFound
	}

	registrationID := uuid.NewString()
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// one registration per attendee per event
		registered, err := tx.NewSelect().
			Model((*model.Member)(nil)).
			Where("attendee_id = ?", actor.ID).
			Where("event_id = ?", eventID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("can't check existing membership: %w", err)
		}
		if registered {
			return ErrAlreadyRegistered
		}

		memberModel := input.toModel(actor, registrationID, eventID, 0)

		registrationModel := model.Registration{
			ID:         registrationID,
			EventID:    eventID,
			PassID:     passModel.ID,
			Status:     model.REGISTRATION_STATUS_PENDING,
			IsComplete: screeningComplete(memberModel),
		}
		if !registrationModel.IsComplete {
			registrationModel.Status = model.REGISTRATION_STATUS_INCOMPLETE
		}
		if err := registrationModel.Upsert(ctx, tx); err != nil {
			return err
		}
		if err := memberModel.Insert(ctx, tx); err != nil {
			return err
		}

		if passModel.MaxMembers > 1 || passModel.Joinable {
			if err := s.issueJoinCode(ctx, tx, registrationID, eventID, passModel); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("(*Service).Create: %w", err)
	}

	return s.Get(ctx, registrationID)
}

// issueJoinCode generates a code unique across all live codes, retrying on
// collision.
func (s *Service) issueJoinCode(ctx context.Context, tx bun.Tx, registrationID, eventID string, passModel *model.Pass) error {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := joincode.Generate(string(passModel.Type))
		if err != nil {
			return err
		}
		taken, err := tx.NewSelect().
			Model((*model.JoinCode)(nil)).
			Where("code = ?", code).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("can't check join code collision: %w", err)
		}
		if taken {
			continue
		}

		joinCodeModel := model.JoinCode{
			Code:             code,
			RegistrationID:   registrationID,
			EventID:          eventID,
			CreatedAtUnixUTC: time.Now().UTC().Unix(),
		}
		return joinCodeModel.Insert(ctx, tx)
	}
	return fmt.Errorf("can't generate a unique join code")
}
