package route

import (
	"encoding/json"
	"net/http"
	"time"

	"guestlist/src-server/register"
	"guestlist/src-server/utils"
)

func Ticket(muxer *http.ServeMux, as *utils.AppState, service *register.Service) {
	type TicketRespBody struct {
		ID              string `json:"id"`
		RegistrationID  string `json:"registrationId"`
		MemberID        string `json:"memberId"`
		MemberName      string `json:"memberName,omitempty"`
		IssuedAtUnixUTC int64  `json:"issuedAtUnixUTC"`
	}

	// all issued tickets for an event, numeric-aware registration order
	muxer.HandleFunc("GET /tickets", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			actor, ok := r.Context().Value(ActorCtxKey).(register.Actor)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get actor from middleware"))
				return
			}

			w.Header().Set("Content-Type", "application/json")
			eventID := r.URL.Query().Get("event")
			if eventID == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event id"))
				return
			}

			startTimer := time.Now()
			ticketModels, err := service.Tickets(r.Context(), actor, eventID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			as.MetricChans.DatabaseRead <- float64(time.Since(startTimer).Microseconds())

			respBody := make([]TicketRespBody, 0, len(ticketModels))
			for _, ticketModel := range ticketModels {
				oneResp := TicketRespBody{
					ID:              ticketModel.ID,
					RegistrationID:  ticketModel.RegistrationID,
					MemberID:        ticketModel.MemberID,
					IssuedAtUnixUTC: ticketModel.IssuedAtUnixUTC,
				}
				if ticketModel.Member != nil {
					oneResp.MemberName = ticketModel.Member.FullName
				}
				respBody = append(respBody, oneResp)
			}
			respBodyJson, err := json.Marshal(respBody)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	// re-dispatch the paid notification; no state change
	muxer.HandleFunc("POST /tickets/{id}/resend", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			actor, ok := r.Context().Value(ActorCtxKey).(register.Actor)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get actor from middleware"))
				return
			}

			ticketID := r.PathValue("id")
			if ticketID == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide a ticket id"))
				return
			}

			if err := service.ResendTicket(r.Context(), actor, ticketID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
}
