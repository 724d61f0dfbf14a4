package route

import (
	"errors"
	"log/slog"
	"net/http"

	"guestlist/src-server/register"
)

// writeDomainError maps each failure kind to a short, specific message.
// Anything unrecognized is a 500 with the details kept in the log.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, register.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("No registration matches that id or code"))
	case errors.Is(err, register.ErrPassNotFound):
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("That pass does not exist for this event"))
	case errors.Is(err, register.ErrInvalidTransition):
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("This registration cannot move to that status"))
	case errors.Is(err, register.ErrFull):
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("This registration already has all its members"))
	case errors.Is(err, register.ErrAlreadyRegistered):
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("You already have a registration for this event"))
	case errors.Is(err, register.ErrNotJoinable):
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("This code is no longer accepting members"))
	case errors.Is(err, register.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Your role cannot perform this action"))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Something went wrong"))
		slog.Error("unhandled domain error", "error", err)
	}
}
