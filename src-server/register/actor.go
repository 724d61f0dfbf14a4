package register

import "guestlist/src-server/model"

// Actor is the authenticated caller, passed explicitly into every core call
// instead of being read from ambient state.
type Actor struct {
	ID   string
	Role model.ActorRole
}

func (a Actor) isAttendee() bool {
	return a.ID != "" && a.Role == model.ACTOR_ROLE_ATTENDEE
}

func (a Actor) isOrganizer() bool {
	return a.ID != "" && a.Role == model.ACTOR_ROLE_ORGANIZER
}
