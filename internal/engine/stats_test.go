package engine_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtkeeper/courtside/internal/engine"
	"github.com/courtkeeper/courtside/internal/model"
)

func apply(t *testing.T, code string, side model.TeamSide, stats *model.PlayerStats, state *model.GameState, analytics *model.Analytics) {
	t.Helper()
	kind, ok := engine.ParseActionCode(code)
	require.True(t, ok, "code %q must parse", code)
	action := model.Action{Team: side, Code: code, PlayerNumber: 23, PlayerName: "Reeves", ClockLabel: "07:12"}
	engine.ApplyAction(kind, action, stats, state, analytics)
}

func TestApplyAction_RepeatedMakesAccumulate(t *testing.T) {
	stats := &model.PlayerStats{}
	state := &model.GameState{}
	analytics := &model.Analytics{}

	const n = 5
	for i := 0; i < n; i++ {
		apply(t, "make2-layup", model.SideHome, stats, state, analytics)
	}

	assert.Equal(t, n*2, stats.Points)
	assert.Equal(t, model.ShotLine{Made: n, Attempted: n}, stats.FieldGoals)
	assert.Equal(t, n*2, state.HomeScore)
	assert.Equal(t, n, analytics.MadeShots)
	assert.Equal(t, n, analytics.TotalShots)
	assert.Equal(t, n, analytics.TotalActions)
}

func TestApplyAction_ThreePointRouting(t *testing.T) {
	stats := &model.PlayerStats{}
	state := &model.GameState{}
	analytics := &model.Analytics{}

	apply(t, "make3-corner", model.SideHome, stats, state, analytics)

	assert.Equal(t, 3, stats.Points)
	assert.Equal(t, model.ShotLine{Made: 1, Attempted: 1}, stats.ThreePointers)
	assert.Equal(t, model.ShotLine{}, stats.FieldGoals, "threes do not touch the field goal line")
	assert.Equal(t, 3, state.HomeScore)
	assert.Equal(t, model.Analytics{TotalShots: 1, MadeShots: 1, ThreePointAttempts: 1, ThreePointMakes: 1, TotalActions: 1}, *analytics)
}

func TestApplyAction_LogoCountsAsThree(t *testing.T) {
	stats := &model.PlayerStats{}
	state := &model.GameState{}
	analytics := &model.Analytics{}

	apply(t, "miss3-logo", model.SideAway, stats, state, analytics)

	assert.Equal(t, 0, stats.Points)
	assert.Equal(t, model.ShotLine{Made: 0, Attempted: 1}, stats.ThreePointers)
	assert.Equal(t, 0, state.AwayScore)
	assert.Equal(t, 1, analytics.ThreePointAttempts)
	assert.Equal(t, 0, analytics.ThreePointMakes)
	assert.Equal(t, 1, analytics.TotalShots)
}

func TestApplyAction_FreeThrowRouting(t *testing.T) {
	stats := &model.PlayerStats{}
	state := &model.GameState{}
	analytics := &model.Analytics{}

	apply(t, "make1-ft", model.SideAway, stats, state, analytics)
	apply(t, "miss1-ft", model.SideAway, stats, state, analytics)

	assert.Equal(t, 1, stats.Points)
	assert.Equal(t, model.ShotLine{Made: 1, Attempted: 2}, stats.FreeThrows)
	assert.Equal(t, model.ShotLine{}, stats.FieldGoals)
	assert.Equal(t, model.ShotLine{}, stats.ThreePointers)
	assert.Equal(t, 1, state.AwayScore)
	assert.Equal(t, 2, analytics.TotalShots)
	assert.Equal(t, 1, analytics.MadeShots)
}

func TestApplyAction_StatVerbs(t *testing.T) {
	stats := &model.PlayerStats{}
	state := &model.GameState{}
	analytics := &model.Analytics{}

	for _, code := range []string{"rebound", "assist", "block", "steal", "turnover"} {
		apply(t, code, model.SideHome, stats, state, analytics)
	}

	assert.Equal(t, 1, stats.Rebounds)
	assert.Equal(t, 1, stats.Assists)
	assert.Equal(t, 1, stats.Blocks)
	assert.Equal(t, 1, stats.Steals)
	assert.Equal(t, 1, stats.Turnovers)
	assert.Equal(t, 0, stats.Points)
	assert.Equal(t, 0, state.HomeScore)
	assert.Equal(t, 0, analytics.TotalShots, "stat verbs are not shots")
	assert.Equal(t, 5, analytics.TotalActions)
}

func TestApplyAction_FoulRollsUpToTeam(t *testing.T) {
	stats := &model.PlayerStats{}
	state := &model.GameState{}
	analytics := &model.Analytics{}

	apply(t, "foul", model.SideAway, stats, state, analytics)

	assert.Equal(t, 1, state.AwayFouls)
	assert.Equal(t, 0, state.HomeFouls)
	assert.Equal(t, 1, analytics.TotalActions)
}

// Analytics must always match a recount of the ledger, whatever the mix of
// shot and non-shot actions.
func TestAnalytics_MatchesLedgerRecount(t *testing.T) {
	stats := &model.PlayerStats{}
	state := &model.GameState{}
	analytics := &model.Analytics{}

	codes := []string{
		"make2-layup", "rebound", "miss3-3pt", "assist", "make3-logo",
		"miss2-midrange", "steal", "make1-ft", "turnover", "miss3-corner",
	}
	var recount model.Analytics
	for _, code := range codes {
		apply(t, code, model.SideHome, stats, state, analytics)

		kind, _ := engine.ParseActionCode(code)
		recount.TotalActions++
		if kind.IsShot() {
			recount.TotalShots++
			if kind.Outcome == engine.OutcomeMake {
				recount.MadeShots++
			}
			if kind.Points == 3 {
				recount.ThreePointAttempts++
				if kind.Outcome == engine.OutcomeMake {
					recount.ThreePointMakes++
				}
			}
		}
		assert.Equal(t, recount, *analytics, "after %s", code)
	}
}

func TestPlayByPlayLine(t *testing.T) {
	shot, _ := engine.ParseActionCode("make3-corner")
	action := model.Action{PlayerNumber: 23, PlayerName: "Reeves", ClockLabel: "07:12"}
	assert.Equal(t, "#23 Reeves makes corner (07:12)", engine.PlayByPlayLine(shot, action))

	verb, _ := engine.ParseActionCode("rebound")
	assert.Equal(t, "#23 Reeves rebound", engine.PlayByPlayLine(verb, action))
}

func TestAdjustTeamStat(t *testing.T) {
	settings := quarterSettings()
	state := &model.GameState{HomeTimeouts: 2}

	res := engine.AdjustTeamStat(state, settings, model.SideHome, engine.TeamStatTimeout, -1)
	assert.Equal(t, engine.AdjustResult{Value: 1}, res)

	// Clamped at zero.
	engine.AdjustTeamStat(state, settings, model.SideHome, engine.TeamStatTimeout, -1)
	res = engine.AdjustTeamStat(state, settings, model.SideHome, engine.TeamStatTimeout, -1)
	assert.Equal(t, 0, res.Value)

	// Fouls past the limit warn but still apply.
	for i := 0; i < settings.FoulLimit; i++ {
		res = engine.AdjustTeamStat(state, settings, model.SideAway, engine.TeamStatFoul, 1)
		assert.False(t, res.OverLimit, "foul %d is within the limit", i+1)
	}
	res = engine.AdjustTeamStat(state, settings, model.SideAway, engine.TeamStatFoul, 1)
	assert.True(t, res.OverLimit)
	assert.Equal(t, settings.FoulLimit+1, res.Value)
}

// Guard against the line format drifting: numbers render bare, no padding.
func TestPlayByPlayLine_Numbers(t *testing.T) {
	verb, _ := engine.ParseActionCode("assist")
	for _, num := range []int{0, 7, 55} {
		line := engine.PlayByPlayLine(verb, model.Action{PlayerNumber: num, PlayerName: "X"})
		if !strings.HasPrefix(line, fmt.Sprintf("#%d ", num)) {
			t.Fatalf("line %q does not start with #%d", line, num)
		}
	}
}
