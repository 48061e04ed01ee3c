// Package engine is the authoritative game-state core: action semantics,
// the clock state machine, the stat aggregator, the undo ledger and the
// session aggregate that ties them together. Nothing here touches a wall
// clock or any transport; the service layer owns scheduling and I/O.
package engine

import "strings"

// Outcome of a shot action. Non-shot actions carry OutcomeNone.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeMake Outcome = "make"
	OutcomeMiss Outcome = "miss"
)

// ActionKind is the structured form of a raw action code, parsed exactly
// once at the boundary so the aggregator never splits strings.
type ActionKind struct {
	Outcome Outcome
	Points  int
	Subtype string // layup, dunk, corner, 3pt, ft, ... empty for bare verbs
	Verb    string // rebound, assist, foul, block, steal, turnover for non-shots
}

// IsShot reports whether the action is a field goal or free throw attempt.
func (k ActionKind) IsShot() bool { return k.Outcome != OutcomeNone }

// statVerbs are the bare codes that bump exactly one player counter.
var statVerbs = map[string]bool{
	"rebound":  true,
	"assist":   true,
	"block":    true,
	"steal":    true,
	"turnover": true,
	"foul":     true, // routed to the team foul counter, not player stats
}

// ParseActionCode turns codes like "make3-corner", "miss1-ft" or "rebound"
// into an ActionKind. Shot codes embed their point value as the digit after
// the outcome; a missing digit means zero points.
func ParseActionCode(code string) (ActionKind, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return ActionKind{}, false
	}

	head, subtype, _ := strings.Cut(code, "-")

	var outcome Outcome
	switch {
	case strings.HasPrefix(head, string(OutcomeMake)):
		outcome = OutcomeMake
	case strings.HasPrefix(head, string(OutcomeMiss)):
		outcome = OutcomeMiss
	default:
		if !statVerbs[code] {
			return ActionKind{}, false
		}
		return ActionKind{Verb: code}, true
	}

	points := 0
	if rest := head[len(outcome):]; rest != "" {
		switch rest {
		case "1":
			points = 1
		case "2":
			points = 2
		case "3":
			points = 3
		default:
			return ActionKind{}, false
		}
	}
	return ActionKind{Outcome: outcome, Points: points, Subtype: subtype}, true
}
