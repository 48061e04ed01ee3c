package engine_test

import (
	"testing"

	"github.com/courtkeeper/courtside/internal/engine"
)

func TestParseActionCode(t *testing.T) {
	cases := []struct {
		code string
		want engine.ActionKind
		ok   bool
	}{
		{"make3-corner", engine.ActionKind{Outcome: engine.OutcomeMake, Points: 3, Subtype: "corner"}, true},
		{"miss2-layup", engine.ActionKind{Outcome: engine.OutcomeMiss, Points: 2, Subtype: "layup"}, true},
		{"make1-ft", engine.ActionKind{Outcome: engine.OutcomeMake, Points: 1, Subtype: "ft"}, true},
		{"miss3-logo", engine.ActionKind{Outcome: engine.OutcomeMiss, Points: 3, Subtype: "logo"}, true},
		{"rebound", engine.ActionKind{Verb: "rebound"}, true},
		{"assist", engine.ActionKind{Verb: "assist"}, true},
		{"turnover", engine.ActionKind{Verb: "turnover"}, true},
		{"foul", engine.ActionKind{Verb: "foul"}, true},
		{"make-tipin", engine.ActionKind{Outcome: engine.OutcomeMake, Points: 0, Subtype: "tipin"}, true},
		{"", engine.ActionKind{}, false},
		{"make9-wat", engine.ActionKind{}, false},
		{"dance", engine.ActionKind{}, false},
		{"back", engine.ActionKind{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			got, ok := engine.ParseActionCode(tc.code)
			if ok != tc.ok {
				t.Fatalf("ParseActionCode(%q) ok = %v, want %v", tc.code, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseActionCode(%q) = %+v, want %+v", tc.code, got, tc.want)
			}
		})
	}
}

func TestActionKind_IsShot(t *testing.T) {
	shot, _ := engine.ParseActionCode("miss3-3pt")
	if !shot.IsShot() {
		t.Fatal("miss3-3pt should be a shot")
	}
	verb, _ := engine.ParseActionCode("steal")
	if verb.IsShot() {
		t.Fatal("steal should not be a shot")
	}
}
