package register_test

import (
	"context"
	"testing"

	"guestlist/src-server/model"
	"guestlist/src-server/register"

	"github.com/google/uuid"
)

func TestNext(t *testing.T) {
	type edge struct {
		from   model.RegistrationStatus
		action register.Action
		to     model.RegistrationStatus
	}

	allowed := []edge{
		{model.REGISTRATION_STATUS_PENDING, register.ACTION_APPROVE, model.REGISTRATION_STATUS_APPROVED},
		{model.REGISTRATION_STATUS_PENDING, register.ACTION_REJECT, model.REGISTRATION_STATUS_REJECTED},
		{model.REGISTRATION_STATUS_PENDING, register.ACTION_CANCEL, model.REGISTRATION_STATUS_CANCELLED},
		{model.REGISTRATION_STATUS_INCOMPLETE, register.ACTION_APPROVE, model.REGISTRATION_STATUS_APPROVED},
		{model.REGISTRATION_STATUS_INCOMPLETE, register.ACTION_REJECT, model.REGISTRATION_STATUS_REJECTED},
		{model.REGISTRATION_STATUS_APPROVED, register.ACTION_MARK_PAID, model.REGISTRATION_STATUS_PAID},
		{model.REGISTRATION_STATUS_APPROVED, register.ACTION_REVOKE, model.REGISTRATION_STATUS_PENDING},
		{model.REGISTRATION_STATUS_APPROVED, register.ACTION_CANCEL, model.REGISTRATION_STATUS_CANCELLED},
		{model.REGISTRATION_STATUS_REJECTED, register.ACTION_REVOKE, model.REGISTRATION_STATUS_PENDING},
	}
	for _, e := range allowed {
		next, err := register.Next(e.from, e.action)
		if err != nil {
			t.Error("expected edge to exist", e.from, e.action, err)
			continue
		}
		if next != e.to {
			t.Error("wrong destination", e.from, e.action, next)
		}
	}

	denied := []edge{
		{model.REGISTRATION_STATUS_APPROVED, register.ACTION_APPROVE, ""},
		{model.REGISTRATION_STATUS_REJECTED, register.ACTION_APPROVE, ""},
		{model.REGISTRATION_STATUS_REJECTED, register.ACTION_CANCEL, ""},
		{model.REGISTRATION_STATUS_INCOMPLETE, register.ACTION_CANCEL, ""},
		{model.REGISTRATION_STATUS_PAID, register.ACTION_CANCEL, ""},
		{model.REGISTRATION_STATUS_PAID, register.ACTION_REVOKE, ""},
		{model.REGISTRATION_STATUS_PAID, register.ACTION_MARK_PAID, ""},
		{model.REGISTRATION_STATUS_CANCELLED, register.ACTION_APPROVE, ""},
		{model.REGISTRATION_STATUS_PENDING, register.ACTION_MARK_PAID, ""},
		{model.REGISTRATION_STATUS_PENDING, register.ACTION_REVOKE, ""},
	}
	for _, e := range denied {
		if _, err := register.Next(e.from, e.action); err != register.ErrInvalidTransition {
			t.Error("expected ErrInvalidTransition", e.from, e.action, err)
		}
	}
}

func TestApplyGuards(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 1, model.PASS_GENDER_CONSTRAINT_NONE)

	registrationModel, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}
	boss := organizer("boss")

	// attendees cannot drive the state machine
	if _, err := service.Approve(context.Background(), attendee("a"), registrationModel.ID); err != register.ErrForbidden {
		t.Error("expected ErrForbidden, got", err)
	}

	// unknown id
	if _, err := service.Approve(context.Background(), boss, uuid.NewString()); err != register.ErrNotFound {
		t.Error("expected ErrNotFound, got", err)
	}

	if _, err := service.Reject(context.Background(), boss, registrationModel.ID); err != nil {
		t.Fatal(err)
	}

	// approve on a rejected registration fails and leaves state unchanged
	if _, err := service.Approve(context.Background(), boss, registrationModel.ID); err != register.ErrInvalidTransition {
		t.Error("expected ErrInvalidTransition, got", err)
	}
	registrationModel, err = service.Get(context.Background(), registrationModel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if registrationModel.Status != model.REGISTRATION_STATUS_REJECTED {
		t.Error("failed transition must not change state", registrationModel.Status)
	}

	// revoke on rejected is the reconsider path and lands on pending, not
	// incomplete
	registrationModel, err = service.Revoke(context.Background(), boss, registrationModel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if registrationModel.Status != model.REGISTRATION_STATUS_PENDING {
		t.Error("expected pending after revoke", registrationModel.Status)
	}
}

func TestRevokeSkipsCompletenessCheck(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 1, model.PASS_GENDER_CONSTRAINT_NONE)

	// screening answers missing, so the registration starts incomplete
	registrationModel, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, register.MemberInput{
		FullName: "ann",
		Email:    "ann@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if registrationModel.Status != model.REGISTRATION_STATUS_INCOMPLETE {
		t.Fatal("expected incomplete", registrationModel.Status)
	}
	boss := organizer("boss")

	if _, err := service.Approve(context.Background(), boss, registrationModel.ID); err != nil {
		t.Fatal(err)
	}
	registrationModel, err = service.Revoke(context.Background(), boss, registrationModel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if registrationModel.Status != model.REGISTRATION_STATUS_PENDING {
		t.Error("revoke lands on pending even with screening answers missing", registrationModel.Status)
	}
}

func TestMarkPaidTicketsIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 1, model.PASS_GENDER_CONSTRAINT_NONE)

	registrationModel, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}
	boss := organizer("boss")
	if _, err := service.Approve(context.Background(), boss, registrationModel.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := service.MarkPaid(context.Background(), boss, registrationModel.ID); err != nil {
		t.Fatal(err)
	}

	// a repeat mark_paid is rejected before it could mint more tickets
	if _, err := service.MarkPaid(context.Background(), boss, registrationModel.ID); err != register.ErrInvalidTransition {
		t.Error("expected ErrInvalidTransition, got", err)
	}
	count, err := db.NewSelect().
		Model((*model.Ticket)(nil)).
		Where("registration_id = ?", registrationModel.ID).
		Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Error("expected one ticket", count)
	}
}
