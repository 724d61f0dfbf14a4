package register

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"guestlist/src-server/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Tickets lists every issued ticket for an event, sorted by registration id
// with numeric-aware ordering so reg-2 comes before reg-10.
func (s *Service) Tickets(ctx context.Context, actor Actor, eventID string) ([]*model.Ticket, error) {
	if !actor.isOrganizer() {
		return nil, ErrForbidden
	}

	ticketModels := make([]*model.Ticket, 0)
	if err := s.db.NewSelect().
		Model(&ticketModels).
		Where("ticket.event_id = ?", eventID).
		Relation("Member").
		Relation("Registration").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Service).Tickets: %w", err)
	}

	collator := collate.New(language.English, collate.Numeric)
	sort.SliceStable(ticketModels, func(i, j int) bool {
		if ticketModels[i].RegistrationID == ticketModels[j].RegistrationID {
			if ticketModels[i].Member != nil && ticketModels[j].Member != nil {
				return ticketModels[i].Member.Ordinal < ticketModels[j].Member.Ordinal
			}
			return ticketModels[i].ID < ticketModels[j].ID
		}
		return collator.CompareString(ticketModels[i].RegistrationID, ticketModels[j].RegistrationID) < 0
	})

	return ticketModels, nil
}

// ResendTicket re-dispatches the paid notification for the ticket's
// registration. No state changes; the ticket stays as issued.
func (s *Service) ResendTicket(ctx context.Context, actor Actor, ticketID string) error {
	if !actor.isOrganizer() {
		return ErrForbidden
	}

	ticketModel := new(model.Ticket)
	if err := s.db.NewSelect().
		Model(ticketModel).
		Where("id = ?", ticketID).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("(*Service).ResendTicket: %w", err)
	}

	registrationModel, err := s.Get(ctx, ticketModel.RegistrationID)
	if err != nil {
		return err
	}

	s.notify(registrationModel, registrationModel.Status, registrationModel.Status)
	return nil
}
