package register

import (
	"context"
	"fmt"
	"strings"

	"guestlist/src-server/model"
)

// Filter narrows List results. Zero values mean "no constraint": an empty
// status set matches every status and blank search text matches everyone.
// The three dimensions combine with AND.
type Filter struct {
	Statuses     []string
	Search       string
	MismatchOnly bool
}

func (f Filter) matchStatus(status model.RegistrationStatus) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, want := range f.Statuses {
		if strings.EqualFold(want, string(status)) {
			return true
		}
	}
	return false
}

func (f Filter) matchSearch(members []*model.Member) bool {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return true
	}
	for _, member := range members {
		if strings.Contains(strings.ToLower(member.FullName), needle) {
			return true
		}
	}
	return false
}

// List answers the organizer's list view: every registration for the event in
// creation order, derived flags recomputed, filters applied.
func (s *Service) List(ctx context.Context, actor Actor, eventID string, filter Filter) ([]*model.Registration, error) {
	if !actor.isOrganizer() {
		return nil, ErrForbidden
	}

	registrationModels := make([]*model.Registration, 0)
	if err := s.db.NewSelect().
		Model(&registrationModels).
		Where("registration.event_id = ?", eventID).
		Relation("Members", sortMembers).
		Relation("Pass").
		Relation("JoinCode").
		// rowid is a monotonic insertion sequence (registrations are never
		// deleted), unlike the second-granularity created_at
		Order("registration.rowid ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Service).List: %w", err)
	}

	filtered := make([]*model.Registration, 0, len(registrationModels))
	for _, registrationModel := range registrationModels {
		s.annotate(registrationModel)
		switch {
		case !filter.matchStatus(registrationModel.Status):
		case !filter.matchSearch(registrationModel.Members):
		case filter.MismatchOnly && !registrationModel.GenderMismatch:
		default:
			filtered = append(filtered, registrationModel)
		}
	}

	return filtered, nil
}

// Counts returns per-status totals for an event, feeding the list view's
// aggregate refresh.
func (s *Service) Counts(ctx context.Context, actor Actor, eventID string) (map[model.RegistrationStatus]int, error) {
	if !actor.isOrganizer() {
		return nil, ErrForbidden
	}

	rows := make([]struct {
		Status model.RegistrationStatus `bun:"status"`
		Count  int                      `bun:"count"`
	}, 0)
	if err := s.db.NewSelect().
		Model((*model.Registration)(nil)).
		Column("status").
		ColumnExpr("count(*) AS count").
		Where("event_id = ?", eventID).
		Group("status").
		Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("(*Service).Counts: %w", err)
	}

	counts := make(map[model.RegistrationStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
