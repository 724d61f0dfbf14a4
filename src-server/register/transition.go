package register

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"guestlist/src-server/model"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Approve moves a pending or incomplete registration to approved.
func (s *Service) Approve(ctx context.Context, actor Actor, registrationID string) (*model.Registration, error) {
	return s.apply(ctx, actor, registrationID, ACTION_APPROVE)
}

// Reject moves a pending or incomplete registration to rejected.
func (s *Service) Reject(ctx context.Context, actor Actor, registrationID string) (*model.Registration, error) {
	return s.apply(ctx, actor, registrationID, ACTION_REJECT)
}

// Revoke returns an approved or rejected registration to pending.
func (s *Service) Revoke(ctx context.Context, actor Actor, registrationID string) (*model.Registration, error) {
	return s.apply(ctx, actor, registrationID, ACTION_REVOKE)
}

// MarkPaid moves an approved registration to paid and issues one ticket per
// member in the same transaction.
func (s *Service) MarkPaid(ctx context.Context, actor Actor, registrationID string) (*model.Registration, error) {
	return s.apply(ctx, actor, registrationID, ACTION_MARK_PAID)
}

// Cancel terminally cancels a pending or approved registration.
func (s *Service) Cancel(ctx context.Context, actor Actor, registrationID string) (*model.Registration, error) {
	return s.apply(ctx, actor, registrationID, ACTION_CANCEL)
}

// apply guards the transition with a compare-and-set on the old status so two
// concurrent calls on the same registration cannot both succeed. Notification
// dispatch happens after commit and its failure never reverts the transition.
func (s *Service) apply(ctx context.Context, actor Actor, registrationID string, action Action) (*model.Registration, error) {
	if !actor.isOrganizer() {
		return nil, ErrForbidden
	}
	if registrationID == "" {
		return nil, ErrNotFound
	}

	var oldStatus, newStatus model.RegistrationStatus
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		registrationModel := new(model.Registration)
		if err := tx.NewSelect().
			Model(registrationModel).
			Where("id = ?", registrationID).
			Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("can't load registration: %w", err)
		}
		oldStatus = registrationModel.Status

		next, err := Next(oldStatus, action)
		if err != nil {
			return err
		}
		newStatus = next

		res, err := tx.NewUpdate().
			Model((*model.Registration)(nil)).
			Set("status = ?", newStatus).
			Set("updated_at = ?", time.Now().UTC().Unix()).
			Where("id = ?", registrationID).
			Where("status = ?", oldStatus).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("can't update status: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("can't read rows affected: %w", err)
		}
		if affected == 0 {
			// someone else moved it first
			return ErrInvalidTransition
		}

		if newStatus == model.REGISTRATION_STATUS_PAID {
			if err := issueTickets(ctx, tx, registrationID); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidTransition):
			return nil, err
		}
		return nil, fmt.Errorf("(*Service).apply: %w", err)
	}

	registrationModel, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if notifiable(oldStatus, newStatus) {
		s.notify(registrationModel, oldStatus, newStatus)
	}

	return registrationModel, nil
}

// notifiable: leaving pending/incomplete toward approved/rejected, or
// reaching paid.
func notifiable(oldStatus, newStatus model.RegistrationStatus) bool {
	switch newStatus {
	case model.REGISTRATION_STATUS_PAID:
		return true
	case model.REGISTRATION_STATUS_APPROVED, model.REGISTRATION_STATUS_REJECTED:
		return oldStatus == model.REGISTRATION_STATUS_PENDING ||
			oldStatus == model.REGISTRATION_STATUS_INCOMPLETE
	}
	return false
}

func issueTickets(ctx context.Context, tx bun.Tx, registrationID string) error {
	memberModels := make([]model.Member, 0)
	if err := tx.NewSelect().
		Model(&memberModels).
		Where("registration_id = ?", registrationID).
		Order("ordinal ASC").
		Scan(ctx); err != nil {
		return fmt.Errorf("can't load members for tickets: %w", err)
	}

	for _, member := range memberModels {
		// tickets are immutable once issued; a re-run must not duplicate
		exists, err := tx.NewSelect().
			Model((*model.Ticket)(nil)).
			Where("member_id = ?", member.ID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("can't check existing ticket: %w", err)
		}
		if exists {
			slog.Debug("ticket already issued", "member", member.ID)
			continue
		}

		ticketModel := model.Ticket{
			ID:             uuid.NewString(),
			RegistrationID: registrationID,
			MemberID:       member.ID,
			EventID:        member.EventID,
		}
		if err := ticketModel.Insert(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}
