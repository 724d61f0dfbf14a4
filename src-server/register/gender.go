package register

import (
	"strings"

	"guestlist/src-server/model"
)

// DerivedGender resolves a member's identity attribute for constraint
// checking. The declared field wins; when it is blank and a national ID is
// present, the last digit's parity decides (odd male, even female). Anything
// else stays unknown and never counts as a mismatch.
func DerivedGender(member *model.Member) string {
	switch strings.ToLower(strings.TrimSpace(member.Gender)) {
	case "male", "m":
		return "male"
	case "female", "f":
		return "female"
	}

	id := strings.TrimSpace(member.NationalID)
	if id == "" {
		return ""
	}
	last := id[len(id)-1]
	if last < '0' || last > '9' {
		return ""
	}
	if (last-'0')%2 == 1 {
		return "male"
	}
	return "female"
}

// GenderMismatch is recomputed on every membership change and wherever the
// flag is displayed; it is never persisted as the source of truth.
func GenderMismatch(constraint model.PassGenderConstraint, members []*model.Member) bool {
	var want string
	switch constraint {
	case model.PASS_GENDER_CONSTRAINT_MALE:
		want = "male"
	case model.PASS_GENDER_CONSTRAINT_FEMALE:
		want = "female"
	default:
		return false
	}

	for _, member := range members {
		derived := DerivedGender(member)
		if derived != "" && derived != want {
			return true
		}
	}
	return false
}
