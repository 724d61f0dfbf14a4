package joincode_test

import (
	"strings"
	"testing"

	"guestlist/src-server/joincode"
)

func TestGenerate(t *testing.T) {
	code, err := joincode.Generate("couple")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(code, "REG-COU-") {
		t.Error("unexpected code prefix", code)
	}
	if !joincode.Valid(code) {
		t.Error("generated code should be valid", code)
	}

	// case: shorter pass type than the fragment length
	code, err = joincode.Generate("ga")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(code, "REG-GA-") {
		t.Error("unexpected code prefix", code)
	}

	// case: blank pass type falls back to a generic fragment
	code, err = joincode.Generate("")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(code, "REG-GEN-") {
		t.Error("unexpected code prefix", code)
	}
}

func TestNormalize(t *testing.T) {
	if joincode.Normalize("  reg-cou-7f2kq ") != "REG-COU-7F2KQ" {
		t.Error("normalize should trim and uppercase")
	}
}

func TestValid(t *testing.T) {
	for code, want := range map[string]bool{
		"REG-COU-7F2KQ":  true,
		"REG-GA-7F2KQ":   true,
		"reg-cou-7f2kq":  false, // not normalized
		"REG-COU":        false,
		"REG--7F2KQ":     false,
		"FOO-COU-7F2KQ":  false,
		"REG-COU-7F2KQX": false,
		"":               false,
	} {
		if joincode.Valid(code) != want {
			t.Error("unexpected validity", code, want)
		}
	}
}
