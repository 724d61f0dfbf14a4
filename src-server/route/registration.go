package route

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"guestlist/src-server/model"
	"guestlist/src-server/register"
	"guestlist/src-server/utils"
)

type MemberRespBody struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Ordinal    int    `json:"ordinal"`
	Profession string `json:"profession,omitempty"`
	Handle     string `json:"handle,omitempty"`
}

type RegistrationRespBody struct {
	ID               string           `json:"id"`
	EventID          string           `json:"eventId"`
	PassID           string           `json:"passId"`
	Status           string           `json:"status"`
	IsComplete       bool             `json:"isComplete"`
	GenderMismatch   bool             `json:"genderMismatch"`
	JoinCode         string           `json:"joinCode,omitempty"`
	CreatedAtUnixUTC int64            `json:"createdAtUnixUTC"`
	Members          []MemberRespBody `json:"members"`
}

func toRegistrationRespBody(registration *model.Registration) RegistrationRespBody {
	respBody := RegistrationRespBody{
		ID:               registration.ID,
		EventID:          registration.EventID,
		PassID:           registration.PassID,
		Status:           string(registration.Status),
		IsComplete:       registration.IsComplete,
		GenderMismatch:   registration.GenderMismatch,
		CreatedAtUnixUTC: registration.CreatedAtUnixUTC,
		Members:          make([]MemberRespBody, 0, len(registration.Members)),
	}
	if registration.JoinCode != nil {
		respBody.JoinCode = registration.JoinCode.Code
	}
	for _, member := range registration.Members {
		respBody.Members = append(respBody.Members, MemberRespBody{
			ID:         member.ID,
			FullName:   member.FullName,
			Ordinal:    member.Ordinal,
			Profession: member.Profession,
			Handle:     member.Handle,
		})
	}
	return respBody
}

type MemberReqBody struct {
	FullName   string `json:"fullName"`
	Gender     string `json:"gender"`
	NationalID string `json:"nationalId"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Handle     string `json:"handle"`
	Profession string `json:"profession"`
	Bio        string `json:"bio"`
	PictureURL string `json:"pictureUrl"`
}

func (reqBody MemberReqBody) toInput() register.MemberInput {
	return register.MemberInput{
		FullName:   reqBody.FullName,
		Gender:     reqBody.Gender,
		NationalID: reqBody.NationalID,
		Email:      reqBody.Email,
		Phone:      reqBody.Phone,
		Handle:     reqBody.Handle,
		Profession: reqBody.Profession,
		Bio:        reqBody.Bio,
		PictureURL: reqBody.PictureURL,
	}
}

func Registration(muxer *http.ServeMux, as *utils.AppState, service *register.Service) {
	type CreateReqBody struct {
		EventID string        `json:"eventId"`
		PassID  string        `json:"passId"`
		Member  MemberReqBody `json:"member"`
	}

	// create a registration against one pass
	muxer.HandleFunc("POST /registrations", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			actor, ok := r.Context().Value(ActorCtxKey).(register.Actor)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get actor from middleware"))
				return
			}

			var reqBody CreateReqBody
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.EventID == "" || reqBody.PassID == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event id and a pass id"))
				return
			}

			startTimer := time.Now()
			registrationModel, err := service.Create(r.Context(), actor, reqBody.EventID, reqBody.PassID, reqBody.Member.toInput())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())

			respBodyJson, err := json.Marshal(toRegistrationRespBody(registrationModel))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusCreated)
			w.Write(respBodyJson)
		}))

	type RedeemReqBody struct {
		EventID string        `json:"eventId"`
		Code    string        `json:"code"`
		Member  MemberReqBody `json:"member"`
	}

	// join an existing registration with a code
	muxer.HandleFunc("POST /registrations/redeem", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			actor, ok := r.Context().Value(ActorCtxKey).(register.Actor)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get actor from middleware"))
				return
			}

			var reqBody RedeemReqBody
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.EventID == "" || reqBody.Code == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event id and a join code"))
				return
			}

			startTimer := time.Now()
			registrationModel, err := service.RedeemAs(r.Context(), actor, reqBody.Code, reqBody.EventID, reqBody.Member.toInput())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())

			respBodyJson, err := json.Marshal(toRegistrationRespBody(registrationModel))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	// organizer list view with composable filters
	muxer.HandleFunc("GET /registrations", AuthMiddleware(as,
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
			filter := register.Filter{
				Search:       r.URL.Query().Get("q"),
				MismatchOnly: r.URL.Query().Get("mismatch") == "true",
			}
			if statusParam := r.URL.Query().Get("status"); statusParam != "" {
				filter.Statuses = strings.Split(statusParam, ",")
			}

			startTimer := time.Now()
			registrationModels, err := service.List(r.Context(), actor, eventID, filter)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			as.MetricChans.DatabaseRead <- float64(time.Since(startTimer).Microseconds())

			respBody := make([]RegistrationRespBody, 0, len(registrationModels))
			for _, registrationModel := range registrationModels {
				respBody = append(respBody, toRegistrationRespBody(registrationModel))
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

	// per-status totals for the list view's refresh
	muxer.HandleFunc("GET /registrations/counts", AuthMiddleware(as,
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

			counts, err := service.Counts(r.Context(), actor, eventID)
			if err != nil {
				writeDomainError(w, err)
				return
			}

			respBodyJson, err := json.Marshal(counts)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))
}
