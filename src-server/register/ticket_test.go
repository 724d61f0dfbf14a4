package register_test

import (
	"context"
	"testing"

	"guestlist/src-server/model"
	"guestlist/src-server/register"

	"github.com/google/uuid"
)

func TestTicketsNumericOrder(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 1, model.PASS_GENDER_CONSTRAINT_NONE)
	ctx := context.Background()

	// handcrafted ids where lexicographic and numeric order disagree
	for i, registrationID := range []string{"reg-10", "reg-2", "reg-1"} {
		registrationModel := model.Registration{
			ID:      registrationID,
			EventID: eventID,
			PassID:  passModel.ID,
			Status:  model.REGISTRATION_STATUS_PAID,
		}
		if err := registrationModel.Upsert(ctx, db); err != nil {
			t.Fatal(err)
		}
		memberModel := model.Member{
			ID:             uuid.NewString(),
			RegistrationID: registrationID,
			AttendeeID:     uuid.NewString(),
			EventID:        eventID,
			FullName:       "member",
			Ordinal:        0,
		}
		if err := memberModel.Insert(ctx, db); err != nil {
			t.Fatal(err)
		}
		ticketModel := model.Ticket{
			ID:              uuid.NewString(),
			RegistrationID:  registrationID,
			MemberID:        memberModel.ID,
			EventID:         eventID,
			IssuedAtUnixUTC: int64(100 + i),
		}
		if err := ticketModel.Insert(ctx, db); err != nil {
			t.Fatal(err)
		}
	}

	ticketModels, err := service.Tickets(ctx, organizer("boss"), eventID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ticketModels) != 3 {
		t.Fatal("expected three tickets", len(ticketModels))
	}
	got := []string{
		ticketModels[0].RegistrationID,
		ticketModels[1].RegistrationID,
		ticketModels[2].RegistrationID,
	}
	want := []string{"reg-1", "reg-2", "reg-10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatal("expected numeric-aware registration order", got)
		}
	}
}

func TestResendTicket(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	service := register.New(db, notifier)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 1, model.PASS_GENDER_CONSTRAINT_NONE)
	boss := organizer("boss")
	ctx := context.Background()

	registrationModel, err := service.Create(ctx, attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := service.Approve(ctx, boss, registrationModel.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := service.MarkPaid(ctx, boss, registrationModel.ID); err != nil {
		t.Fatal(err)
	}

	ticketModel := new(model.Ticket)
	if err := db.NewSelect().
		Model(ticketModel).
		Where("registration_id = ?", registrationModel.ID).
		Scan(ctx); err != nil {
		t.Fatal(err)
	}

	before := notifier.count()
	if err := service.ResendTicket(ctx, boss, ticketModel.ID); err != nil {
		t.Fatal(err)
	}
	if notifier.count() != before+1 {
		t.Error("resend should dispatch exactly one notification")
	}

	// resend is a side effect only, the registration stays paid
	registrationModel, err = service.Get(ctx, registrationModel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if registrationModel.Status != model.REGISTRATION_STATUS_PAID {
		t.Error("resend must not change state", registrationModel.Status)
	}

	if err := service.ResendTicket(ctx, boss, uuid.NewString()); err != register.ErrNotFound {
		t.Error("expected ErrNotFound, got", err)
	}
}
