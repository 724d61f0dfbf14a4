package register_test

import (
	"testing"

	"guestlist/src-server/model"
	"guestlist/src-server/register"
)

func TestDerivedGender(t *testing.T) {
	for _, tc := range []struct {
		member model.Member
		want   string
	}{
		{model.Member{Gender: "female"}, "female"},
		{model.Member{Gender: "Male"}, "male"},
		{model.Member{Gender: " F "}, "female"},
		{model.Member{Gender: "m"}, "male"},
		// national-ID fallback: last digit parity
		{model.Member{NationalID: "8001015009087"}, "male"},
		{model.Member{NationalID: "8001015009088"}, "female"},
		// declared field wins over the ID
		{model.Member{Gender: "female", NationalID: "8001015009087"}, "female"},
		// unknown stays unknown
		{model.Member{}, ""},
		{model.Member{NationalID: "A-B-C"}, ""},
		{model.Member{Gender: "nonbinary"}, ""},
	} {
		if got := register.DerivedGender(&tc.member); got != tc.want {
			t.Error("unexpected derived gender", tc.member, got, tc.want)
		}
	}
}

func TestGenderMismatch(t *testing.T) {
	male := &model.Member{Gender: "male"}
	female := &model.Member{Gender: "female"}
	unknown := &model.Member{}

	// no constraint never mismatches
	if register.GenderMismatch(model.PASS_GENDER_CONSTRAINT_NONE, []*model.Member{male, female}) {
		t.Error("constraint none must never mismatch")
	}

	// one conflicting member is enough
	if !register.GenderMismatch(model.PASS_GENDER_CONSTRAINT_FEMALE, []*model.Member{female, male}) {
		t.Error("male member on female-only pass should mismatch")
	}
	if register.GenderMismatch(model.PASS_GENDER_CONSTRAINT_FEMALE, []*model.Member{female, female}) {
		t.Error("all-female group on female-only pass should not mismatch")
	}

	// unknown attributes never count against the constraint
	if register.GenderMismatch(model.PASS_GENDER_CONSTRAINT_MALE, []*model.Member{unknown}) {
		t.Error("unknown gender should not mismatch")
	}

	if register.GenderMismatch(model.PASS_GENDER_CONSTRAINT_MALE, nil) {
		t.Error("empty member list should not mismatch")
	}
}
