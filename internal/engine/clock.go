package engine

import (
	"errors"

	"github.com/courtkeeper/courtside/internal/model"
)

// Clock transition errors surfaced to the service layer.
var (
	ErrClockNotStartable = errors.New("clock can only start from ready or paused")
	ErrClockNotPausable  = errors.New("clock can only pause while live")
)

const overtimeSeconds = 300

// TickEvent reports what a single one-second tick did beyond counting down.
type TickEvent struct {
	PeriodEnded bool
	NewPeriod   bool // a fresh period (or overtime) was set up
	GameOver    bool
}

// Clock is the periodic state machine over a session's GameState. It owns
// every clock mutation but no scheduling: something else calls Tick once a
// second while the game is live, and tests call it directly.
type Clock struct {
	state    *model.GameState
	settings model.Settings
}

func NewClock(state *model.GameState, settings model.Settings) *Clock {
	return &Clock{state: state, settings: settings}
}

// regulationPeriods is 4 for quarters, 2 for halves.
func (c *Clock) regulationPeriods() int {
	if c.settings.PeriodFormat == model.FormatHalves {
		return 2
	}
	return 4
}

// Start moves the game to live. Valid only from ready or paused; there is
// no auto-resume anywhere, every start is explicit.
func (c *Clock) Start() error {
	switch c.state.Status {
	case model.StatusReady, model.StatusPaused:
		c.state.Status = model.StatusLive
		return nil
	default:
		return ErrClockNotStartable
	}
}

// Pause stops the countdowns. Valid only while live.
func (c *Clock) Pause() error {
	if c.state.Status != model.StatusLive {
		return ErrClockNotPausable
	}
	c.state.Status = model.StatusPaused
	return nil
}

// ResetGameClock restores the configured period duration without touching
// the status.
func (c *Clock) ResetGameClock() {
	c.state.GameClockSeconds = c.settings.PeriodSeconds
}

// ResetShotClock restores the configured shot clock duration. Called by the
// operator and automatically on every made basket when tracking is enabled.
func (c *Clock) ResetShotClock() {
	if !c.settings.ShotClockEnabled {
		return
	}
	c.state.ShotClockSeconds = c.settings.ShotClockSeconds
}

// Tick advances both countdowns by one second. It does nothing unless the
// game is live, clamps at zero, and runs period-end handling exactly once:
// at the tick where the game clock reaches zero, after which the status is
// no longer live.
func (c *Clock) Tick() TickEvent {
	if c.state.Status != model.StatusLive {
		return TickEvent{}
	}

	if c.settings.ShotClockEnabled && c.state.ShotClockSeconds > 0 {
		c.state.ShotClockSeconds--
	}

	if c.state.GameClockSeconds > 0 {
		c.state.GameClockSeconds--
	}
	if c.state.GameClockSeconds > 0 {
		return TickEvent{}
	}
	return c.endPeriod()
}

// endPeriod advances to the next period, starts overtime on a regulation
// tie, or finishes the game.
func (c *Clock) endPeriod() TickEvent {
	st := c.state

	if st.Period < c.regulationPeriods() {
		st.Period++
		st.GameClockSeconds = c.settings.PeriodSeconds
		c.ResetShotClock()
		st.Status = model.StatusPaused
		return TickEvent{PeriodEnded: true, NewPeriod: true}
	}

	if st.HomeScore == st.AwayScore {
		// Tie after regulation (or a previous overtime): five more minutes.
		st.Period++
		st.GameClockSeconds = overtimeSeconds
		c.ResetShotClock()
		st.Status = model.StatusPaused
		return TickEvent{PeriodEnded: true, NewPeriod: true}
	}

	st.Status = model.StatusFinal
	return TickEvent{PeriodEnded: true, GameOver: true}
}
