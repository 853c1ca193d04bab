package rule

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseDefault(t *testing.T) {
	r := Default()
	if !r.Birth[3] {
		t.Fatal("B3 missing")
	}
	if !r.Survival[2] || !r.Survival[3] {
		t.Fatal("S23 missing")
	}
	for k := 0; k <= 8; k++ {
		if k != 3 && r.Birth[k] {
			t.Fatalf("unexpected birth at %d", k)
		}
		if k != 2 && k != 3 && r.Survival[k] {
			t.Fatalf("unexpected survival at %d", k)
		}
	}
	if r.String() != "B3/S23" {
		t.Fatalf("String() = %q", r.String())
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("b63/s32")
	if err != nil {
		t.Fatal(err)
	}
	if got != "B36/S23" {
		t.Fatalf("Normalize(b63/s32) = %q", got)
	}

	// Idempotent.
	again, err := Normalize(got)
	if err != nil {
		t.Fatal(err)
	}
	if again != got {
		t.Fatalf("normalization not idempotent: %q -> %q", got, again)
	}
}

func TestEmptySides(t *testing.T) {
	got, err := Normalize("B2/S")
	if err != nil {
		t.Fatal(err)
	}
	if got != "B2/S" {
		t.Fatalf("Normalize(B2/S) = %q", got)
	}

	got, err = Normalize("b/s8")
	if err != nil {
		t.Fatal(err)
	}
	if got != "B/S8" {
		t.Fatalf("Normalize(b/s8) = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"invalid", "B3S23", "B9/S23", "B3/S23/x", "3/23", "B3/Q23", ""} {
		if _, err := Parse(s); !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("Parse(%q): want ErrInvalidRule, got %v", s, err)
		}
	}
}

func TestPresets(t *testing.T) {
	want := map[string]string{
		"Conway":             "B3/S23",
		"HighLife":           "B36/S23",
		"Seeds":              "B2/S",
		"Life-without-Death": "B3/S012345678",
		"Maze":               "B3/S12345",
		"Morley":             "B368/S245",
		"Replicator":         "B1357/S1357",
		"Diamoeba":           "B35678/S5678",
		"Anneal":             "B4678/S35678",
		"34-Life":            "B34/S34",
	}
	for name, rs := range want {
		r, ok := Preset(name)
		if !ok {
			t.Fatalf("preset %q missing", name)
		}
		if r.String() != rs {
			t.Fatalf("preset %q = %q, want %q", name, r.String(), rs)
		}
	}
}
