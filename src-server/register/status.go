package register

import "guestlist/src-server/model"

type Action string

const (
	ACTION_APPROVE   = Action("approve")
	ACTION_REJECT    = Action("reject")
	ACTION_REVOKE    = Action("revoke")
	ACTION_MARK_PAID = Action("mark_paid")
	ACTION_CANCEL    = Action("cancel")
)

// The full transition table. Anything not listed here is rejected, no matter
// which buttons a client happens to render. Revoke from approved or rejected
// always lands on pending, never incomplete, even when screening answers are
// still missing.
var transitions = map[model.RegistrationStatus]map[Action]model.RegistrationStatus{
	model.REGISTRATION_STATUS_PENDING: {
		ACTION_APPROVE: model.REGISTRATION_STATUS_APPROVED,
		ACTION_REJECT:  model.REGISTRATION_STATUS_REJECTED,
		ACTION_CANCEL:  model.REGISTRATION_STATUS_CANCELLED,
	},
	model.REGISTRATION_STATUS_INCOMPLETE: {
		ACTION_APPROVE: model.REGISTRATION_STATUS_APPROVED,
		ACTION_REJECT:  model.REGISTRATION_STATUS_REJECTED,
	},
	model.REGISTRATION_STATUS_APPROVED: {
		ACTION_MARK_PAID: model.REGISTRATION_STATUS_PAID,
		ACTION_REVOKE:    model.REGISTRATION_STATUS_PENDING,
		ACTION_CANCEL:    model.REGISTRATION_STATUS_CANCELLED,
	},
	model.REGISTRATION_STATUS_REJECTED: {
		ACTION_REVOKE: model.REGISTRATION_STATUS_PENDING,
	},
	// paid and cancelled have no forward transitions here; refund/void is a
	// payment-gateway concern
}

// Next returns the status the action leads to from the current one, or
// ErrInvalidTransition when the table has no such edge.
func Next(current model.RegistrationStatus, action Action) (model.RegistrationStatus, error) {
	actions, ok := transitions[current]
	if !ok {
		return "", ErrInvalidTransition
	}
	next, ok := actions[action]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// A registration in one of these states no longer accepts join-code
// redemptions.
func deadForJoining(status model.RegistrationStatus) bool {
	switch status {
	case model.REGISTRATION_STATUS_REJECTED,
		model.REGISTRATION_STATUS_REVOKED,
		model.REGISTRATION_STATUS_CANCELLED:
		return true
	}
	return false
}
