package route

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"guestlist/src-server/model"
	"guestlist/src-server/register"
	"guestlist/src-server/utils"
)

// Approval wires the organizer's transition actions. Each route is a thin
// shell over the state machine; the table in the register package decides
// what is allowed, not which routes exist.
func Approval(muxer *http.ServeMux, as *utils.AppState, service *register.Service) {
	transitionRoute := func(
		pattern string,
		call func(ctx context.Context, actor register.Actor, registrationID string) (*model.Registration, error),
	) {
		muxer.HandleFunc(pattern, AuthMiddleware(as,
			func(w http.ResponseWriter, r *http.Request) {
				actor, ok := r.Context().Value(ActorCtxKey).(register.Actor)
				if !ok {
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte("Can't get actor from middleware"))
					return
				}

				w.Header().Set("Content-Type", "application/json")
				registrationID := r.PathValue("id")
				if registrationID == "" {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte("Please provide a registration id"))
					return
				}

				startTimer := time.Now()
				registrationModel, err := call(r.Context(), actor, registrationID)
				if err != nil {
					writeDomainError(w, err)
					return
				}
				as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())
				as.MetricChans.Transition <- string(registrationModel.Status)

				respBodyJson, err := json.Marshal(toRegistrationRespBody(registrationModel))
				if err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte("Can't marshal response body"))
					return
				}
				w.WriteHeader(http.StatusOK)
				w.Write(respBodyJson)
			}))
	}

	transitionRoute("POST /registrations/{id}/approve", service.Approve)
	transitionRoute("POST /registrations/{id}/reject", service.Reject)
	transitionRoute("POST /registrations/{id}/revoke", service.Revoke)
	transitionRoute("POST /registrations/{id}/pay", service.MarkPaid)
	transitionRoute("POST /registrations/{id}/cancel", service.Cancel)
}
