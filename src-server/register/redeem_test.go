package register_test

import (
	"context"
	"testing"

	"guestlist/src-server/model"
	"guestlist/src-server/register"

	"github.com/google/uuid"
)

func TestRedeemIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 3, model.PASS_GENDER_CONSTRAINT_NONE)

	registrationModel, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}
	code := registrationModel.JoinCode.Code

	first, err := service.RedeemAs(context.Background(), attendee("b"), code, eventID, completeMember("bea"))
	if err != nil {
		t.Fatal(err)
	}

	// second redemption with the same attendee is a no-op success
	second, err := service.RedeemAs(context.Background(), attendee("b"), code, eventID, completeMember("bea"))
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Members) != len(second.Members) {
		t.Error("repeat redemption must not duplicate the member",
			len(first.Members), len(second.Members))
	}
	if len(second.Members) != 2 {
		t.Error("expected two members", len(second.Members))
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)

	if _, err := service.Redeem(context.Background(), attendee("b"), "REG-COU-XXXXX", uuid.NewString()); err != register.ErrNotFound {
		t.Error("expected ErrNotFound, got", err)
	}
	if _, err := service.Redeem(context.Background(), attendee("b"), "not a code", uuid.NewString()); err != register.ErrNotFound {
		t.Error("malformed code should be ErrNotFound, got", err)
	}
}

func TestRedeemWrongEvent(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 2, model.PASS_GENDER_CONSTRAINT_NONE)

	registrationModel, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}

	// a valid code bound to another event does not resolve
	if _, err := service.Redeem(context.Background(), attendee("b"), registrationModel.JoinCode.Code, uuid.NewString()); err != register.ErrNotFound {
		t.Error("expected ErrNotFound, got", err)
	}
}

func TestRedeemDeadRegistration(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 2, model.PASS_GENDER_CONSTRAINT_NONE)

	registrationModel, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}
	code := registrationModel.JoinCode.Code

	if _, err := service.Reject(context.Background(), organizer("boss"), registrationModel.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := service.RedeemAs(context.Background(), attendee("b"), code, eventID, completeMember("bea")); err != register.ErrNotJoinable {
		t.Error("expected ErrNotJoinable, got", err)
	}

	// reconsidering makes the code live again
	if _, err := service.Revoke(context.Background(), organizer("boss"), registrationModel.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := service.RedeemAs(context.Background(), attendee("b"), code, eventID, completeMember("bea")); err != nil {
		t.Error("pending registration should accept members again, got", err)
	}
}

func TestRedeemFullAndRejected(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 2, model.PASS_GENDER_CONSTRAINT_NONE)

	registrationModel, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}
	code := registrationModel.JoinCode.Code
	if _, err := service.RedeemAs(context.Background(), attendee("b"), code, eventID, completeMember("bea")); err != nil {
		t.Fatal(err)
	}
	if _, err := service.Reject(context.Background(), organizer("boss"), registrationModel.ID); err != nil {
		t.Fatal(err)
	}

	// a full registration reports Full, rejected status notwithstanding
	if _, err := service.RedeemAs(context.Background(), attendee("c"), code, eventID, completeMember("cat")); err != register.ErrFull {
		t.Error("expected ErrFull on a full rejected registration, got", err)
	}
}

func TestRedeemAlreadyRegisteredElsewhere(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 2, model.PASS_GENDER_CONSTRAINT_NONE)

	first, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := service.Create(context.Background(), attendee("b"), eventID, passModel.ID, completeMember("bea")); err != nil {
		t.Fatal(err)
	}

	// B already holds a registration for this event
	if _, err := service.RedeemAs(context.Background(), attendee("b"), first.JoinCode.Code, eventID, completeMember("bea")); err != register.ErrAlreadyRegistered {
		t.Error("expected ErrAlreadyRegistered, got", err)
	}

	// and the membership did not grow
	registrationModel, err := service.Get(context.Background(), first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(registrationModel.Members) != 1 {
		t.Error("failed redemption must not append a member", len(registrationModel.Members))
	}
}

func TestRedeemRecomputesDerivedFlags(t *testing.T) {
	db := newTestDB(t)
	service := register.New(db, nil)
	eventID := uuid.NewString()
	passModel := seedPass(t, db, eventID, 2, model.PASS_GENDER_CONSTRAINT_FEMALE)

	registrationModel, err := service.Create(context.Background(), attendee("a"), eventID, passModel.ID, completeMember("ann"))
	if err != nil {
		t.Fatal(err)
	}
	if registrationModel.GenderMismatch {
		t.Fatal("female member on a female-only pass is not a mismatch")
	}

	joiner := completeMember("bob")
	joiner.Gender = "male"
	registrationModel, err = service.RedeemAs(context.Background(), attendee("b"), registrationModel.JoinCode.Code, eventID, joiner)
	if err != nil {
		t.Fatal(err)
	}
	if !registrationModel.GenderMismatch {
		t.Error("mismatch must flip to true immediately after the join")
	}

	// a joiner with missing screening answers drags completeness down too
	eventID2 := uuid.NewString()
	passModel2 := seedPass(t, db, eventID2, 2, model.PASS_GENDER_CONSTRAINT_NONE)
	registrationModel2, err := service.Create(context.Background(), attendee("c"), eventID2, passModel2.ID, completeMember("cat"))
	if err != nil {
		t.Fatal(err)
	}
	if !registrationModel2.IsComplete {
		t.Fatal("creator answered everything")
	}
	registrationModel2, err = service.RedeemAs(context.Background(), attendee("d"), registrationModel2.JoinCode.Code, eventID2, register.MemberInput{
		FullName: "dee",
	})
	if err != nil {
		t.Fatal(err)
	}
	if registrationModel2.IsComplete {
		t.Error("is_complete must recompute across all members")
	}
}
