// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior; the one
// exception is deep cloning, which lives here because every layer that
// hands out or snapshots a session must use the same copy semantics.
package model

import "time"

// TeamSide identifies which bench an action or adjustment belongs to.
type TeamSide string

const (
	SideHome TeamSide = "home"
	SideAway TeamSide = "away"
)

// SessionStatus is the lifecycle state of a tracked game.
type SessionStatus string

const (
	StatusSetup  SessionStatus = "setup"
	StatusReady  SessionStatus = "ready"
	StatusLive   SessionStatus = "live"
	StatusPaused SessionStatus = "paused"
	StatusFinal  SessionStatus = "final"
)

// CourtStandard selects which set of court geometry constants a session uses.
type CourtStandard string

const (
	CourtNBA  CourtStandard = "nba"
	CourtFIBA CourtStandard = "fiba"
)

// PeriodFormat selects the regulation structure of the game.
type PeriodFormat string

const (
	FormatQuarters PeriodFormat = "quarters"
	FormatHalves   PeriodFormat = "halves"
)

// Player is one roster entry. IDs are assigned by the engine at add time.
type Player struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Team holds identity and the ordered roster for one side.
type Team struct {
	Name   string   `json:"name"`
	Color  string   `json:"color"`
	Roster []Player `json:"roster"`
}

// ShotLine is a made/attempted pair for one shot category.
type ShotLine struct {
	Made      int `json:"made"`
	Attempted int `json:"attempted"`
}

// PlayerStats is the per-player cumulative box score. Mutated only through
// the stat aggregator.
type PlayerStats struct {
	Points        int      `json:"points"`
	Rebounds      int      `json:"rebounds"`
	Assists       int      `json:"assists"`
	Steals        int      `json:"steals"`
	Blocks        int      `json:"blocks"`
	Turnovers     int      `json:"turnovers"`
	FieldGoals    ShotLine `json:"field_goals"`
	ThreePointers ShotLine `json:"three_pointers"`
	FreeThrows    ShotLine `json:"free_throws"`
}

// GameState is the live scoreboard: clocks, score, team counters and the
// session status. This struct is the unit snapshotted for undo, so it must
// stay a plain value type (no pointers, no slices).
type GameState struct {
	Period           int           `json:"period"`
	GameClockSeconds int           `json:"game_clock_seconds"`
	ShotClockSeconds int           `json:"shot_clock_seconds"`
	HomeScore        int           `json:"home_score"`
	AwayScore        int           `json:"away_score"`
	HomeFouls        int           `json:"home_fouls"`
	AwayFouls        int           `json:"away_fouls"`
	HomeTimeouts     int           `json:"home_timeouts"`
	AwayTimeouts     int           `json:"away_timeouts"`
	Status           SessionStatus `json:"status"`
}

// Analytics holds derived counters maintained incrementally alongside the
// action ledger. Scanning the ledger must always reproduce these values.
type Analytics struct {
	TotalShots         int `json:"total_shots"`
	MadeShots          int `json:"made_shots"`
	ThreePointAttempts int `json:"three_point_attempts"`
	ThreePointMakes    int `json:"three_point_makes"`
	TotalActions       int `json:"total_actions"`
}

// Action is one recorded game event. Created once, never mutated, removed
// only by undo.
type Action struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"player_id"`
	PlayerNumber int       `json:"player_number"`
	PlayerName   string    `json:"player_name"`
	Team         TeamSide  `json:"team"`
	Code         string    `json:"code"`
	X            float64   `json:"x,omitempty"`
	Y            float64   `json:"y,omitempty"`
	HasLocation  bool      `json:"has_location"`
	Distance     float64   `json:"distance,omitempty"` // feet from the basket, one decimal
	Outcome      string    `json:"outcome,omitempty"`  // make | miss | empty for non-shots
	Points       int       `json:"points"`
	Period       int       `json:"period"`
	ClockLabel   string    `json:"clock_label"` // game clock text at record time, MM:SS
	CreatedAt    time.Time `json:"created_at"`
}

// Settings are the per-session court and format options. Mutable only
// before the game reaches ready.
type Settings struct {
	CourtStandard    CourtStandard `json:"court_standard"`
	PeriodFormat     PeriodFormat  `json:"period_format"`
	PeriodSeconds    int           `json:"period_seconds"`
	ShotClockEnabled bool          `json:"shot_clock_enabled"`
	ShotClockSeconds int           `json:"shot_clock_seconds"`
	TimeoutsPerTeam  int           `json:"timeouts_per_team"`
	FoulLimit        int           `json:"foul_limit"`
}

// GameSession is the aggregate for one tracked game: identity, settings,
// rosters, live state, analytics, the action ledger and the play-by-play
// log. It is also the persisted snapshot shape.
type GameSession struct {
	Code          string                  `json:"code"`
	Name          string                  `json:"name"`
	AdminPassword string                  `json:"admin_password"`
	Settings      Settings                `json:"settings"`
	Home          Team                    `json:"home"`
	Away          Team                    `json:"away"`
	Stats         map[string]*PlayerStats `json:"stats"`
	State         GameState               `json:"state"`
	Analytics     Analytics               `json:"analytics"`
	Actions       []Action                `json:"actions"`
	PlayByPlay    []string                `json:"play_by_play"` // newest first, capped
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// CloneStats deep-copies a player stats map. Undo snapshots and repository
// round trips both rely on this never sharing memory with the source.
func CloneStats(src map[string]*PlayerStats) map[string]*PlayerStats {
	if src == nil {
		return nil
	}
	out := make(map[string]*PlayerStats, len(src))
	for id, st := range src {
		cp := *st
		out[id] = &cp
	}
	return out
}

// Clone returns a deep copy of the session.
func (s *GameSession) Clone() *GameSession {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Home.Roster = append([]Player(nil), s.Home.Roster...)
	cp.Away.Roster = append([]Player(nil), s.Away.Roster...)
	cp.Stats = CloneStats(s.Stats)
	cp.Actions = append([]Action(nil), s.Actions...)
	cp.PlayByPlay = append([]string(nil), s.PlayByPlay...)
	return &cp
}
