package engine

import (
	"fmt"

	"github.com/courtkeeper/courtside/internal/model"
)

// ApplyAction routes one parsed action into the player's box score, the
// team score and the running analytics, all mutated in place. Applying the
// same action twice double-counts; callers snapshot for undo first.
//
// Routing: three-point values go to the three-point line, the ft subtype
// to the free-throw line, everything else to field goals. Shots of any
// outcome count toward analytics total shots.
func ApplyAction(kind ActionKind, action model.Action, stats *model.PlayerStats, state *model.GameState, analytics *model.Analytics) {
	if kind.IsShot() {
		applyShot(kind, action, stats, state, analytics)
	} else {
		applyStatVerb(kind, action, stats, state)
	}
	analytics.TotalActions++
}

func applyShot(kind ActionKind, action model.Action, stats *model.PlayerStats, state *model.GameState, analytics *model.Analytics) {
	made := kind.Outcome == OutcomeMake

	switch {
	case kind.Points == 3:
		stats.ThreePointers.Attempted++
		analytics.ThreePointAttempts++
		if made {
			stats.ThreePointers.Made++
			analytics.ThreePointMakes++
		}
	case kind.Subtype == "ft":
		stats.FreeThrows.Attempted++
		if made {
			stats.FreeThrows.Made++
		}
	default:
		stats.FieldGoals.Attempted++
		if made {
			stats.FieldGoals.Made++
		}
	}

	analytics.TotalShots++
	if made {
		analytics.MadeShots++
		stats.Points += kind.Points
		addScore(state, action.Team, kind.Points)
	}
}

func applyStatVerb(kind ActionKind, action model.Action, stats *model.PlayerStats, state *model.GameState) {
	switch kind.Verb {
	case "rebound":
		stats.Rebounds++
	case "assist":
		stats.Assists++
	case "block":
		stats.Blocks++
	case "steal":
		stats.Steals++
	case "turnover":
		stats.Turnovers++
	case "foul":
		// Player fouls roll up to the team counter only.
		if action.Team == model.SideHome {
			state.HomeFouls++
		} else {
			state.AwayFouls++
		}
	}
}

func addScore(state *model.GameState, side model.TeamSide, points int) {
	if side == model.SideHome {
		state.HomeScore += points
	} else {
		state.AwayScore += points
	}
}

// PlayByPlayLine formats the log entry for a recorded action:
// "#23 Reeves makes corner (07:12)" for shots, "#23 Reeves rebound" for
// stat verbs.
func PlayByPlayLine(kind ActionKind, action model.Action) string {
	if kind.IsShot() {
		subtype := kind.Subtype
		if subtype == "" {
			subtype = "shot"
		}
		return fmt.Sprintf("#%d %s %ss %s (%s)", action.PlayerNumber, action.PlayerName, kind.Outcome, subtype, action.ClockLabel)
	}
	return fmt.Sprintf("#%d %s %s", action.PlayerNumber, action.PlayerName, kind.Verb)
}

// TeamStatKind selects which team counter AdjustTeamStat touches.
type TeamStatKind string

const (
	TeamStatFoul    TeamStatKind = "foul"
	TeamStatTimeout TeamStatKind = "timeout"
)

// AdjustResult reports the counter after adjustment and whether a foul
// increment pushed the team over the configured limit. Over-limit is a
// warning for the boundary to surface, never a hard block.
type AdjustResult struct {
	Value     int  `json:"value"`
	OverLimit bool `json:"over_limit"`
}

// AdjustTeamStat applies a delta to a team's foul or timeout counter,
// clamped at zero. Fouls and timeouts bypass the per-player aggregator.
func AdjustTeamStat(state *model.GameState, settings model.Settings, side model.TeamSide, kind TeamStatKind, delta int) AdjustResult {
	var target *int
	switch {
	case kind == TeamStatFoul && side == model.SideHome:
		target = &state.HomeFouls
	case kind == TeamStatFoul:
		target = &state.AwayFouls
	case side == model.SideHome:
		target = &state.HomeTimeouts
	default:
		target = &state.AwayTimeouts
	}

	*target += delta
	if *target < 0 {
		*target = 0
	}

	over := kind == TeamStatFoul && delta > 0 && settings.FoulLimit > 0 && *target > settings.FoulLimit
	return AdjustResult{Value: *target, OverLimit: over}
}
