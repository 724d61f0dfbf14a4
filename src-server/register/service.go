package register

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guestlist/src-server/model"

	"github.com/uptrace/bun"
)

// Notifier is the outbound notification channel. Dispatch is best-effort:
// implementations log their own failures and never return them, so a dropped
// message can never roll back a committed transition.
type Notifier interface {
	Transition(registration *model.Registration, oldStatus, newStatus model.RegistrationStatus)
}

type Service struct {
	db       *bun.DB
	notifier Notifier
}

// New wires the core against its store. notifier may be nil.
func New(db *bun.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// Pass is the read-only catalog lookup.
func (s *Service) Pass(ctx context.Context, passID string) (*model.Pass, error) {
	passModel := new(model.Pass)
	if err := s.db.NewSelect().
		Model(passModel).
		Where("id = ?", passID).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPassNotFound
		}
		return nil, fmt.Errorf("(*Service).Pass: %w", err)
	}
	return passModel, nil
}

// Get returns one registration with members, pass, and join code hydrated and
// the derived flag recomputed.
func (s *Service) Get(ctx context.Context, registrationID string) (*model.Registration, error) {
	registrationModel := new(model.Registration)
	if err := s.db.NewSelect().
		Model(registrationModel).
		Where("registration.id = ?", registrationID).
		Relation("Members", sortMembers).
		Relation("Pass").
		Relation("JoinCode").
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("(*Service).Get: %w", err)
	}
	s.annotate(registrationModel)
	return registrationModel, nil
}

func sortMembers(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("ordinal ASC")
}

// annotate fills in everything derived rather than stored.
func (s *Service) annotate(registration *model.Registration) {
	if registration.Pass != nil {
		registration.GenderMismatch = GenderMismatch(
			registration.Pass.GenderConstraint,
			registration.Members,
		)
	}
}

func (s *Service) notify(registration *model.Registration, oldStatus, newStatus model.RegistrationStatus) {
	if s.notifier == nil {
		return
	}
	s.notifier.Transition(registration, oldStatus, newStatus)
}

// screeningComplete reports whether a member answered everything organizers
// screen on. A missing answer parks the registration in incomplete instead of
// failing creation outright.
func screeningComplete(member *model.Member) bool {
	return member.Email != "" &&
		member.Phone != "" &&
		member.Profession != "" &&
		member.Bio != ""
}

func allScreeningComplete(members []*model.Member) bool {
	for _, member := range members {
		if !screeningComplete(member) {
			return false
		}
	}
	return true
}
