package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/courtkeeper/courtside/internal/court"
	"github.com/courtkeeper/courtside/internal/model"
)

// playByPlayCap bounds the session log; newest entries are kept.
const playByPlayCap = 50

// Domain errors the aggregate surfaces. The service layer translates them
// into field errors or response codes.
var (
	ErrRosterLocked    = errors.New("rosters are locked once the game has started")
	ErrDuplicateNumber = errors.New("jersey number already taken on this team")
	ErrNumberRange     = errors.New("jersey number must be between 0 and 99")
	ErrUnknownPlayer   = errors.New("player is not on this roster")
	ErrRostersRequired = errors.New("both rosters must have at least one player")
	ErrNotInSetup      = errors.New("game has already been started")
	ErrGameOver        = errors.New("game is final")
	ErrBadActionCode   = errors.New("unrecognized action code")
	ErrNothingToUndo   = errors.New("undo history is empty")
)

// Session is the aggregate root for one live game: the persisted data
// shape plus the in-memory collaborators (clock, undo ledger, classifier)
// reconstructed around it. All mutation goes through methods here; the
// caller provides the single-writer discipline.
type Session struct {
	Data *model.GameSession

	clock      *Clock
	undo       *UndoLedger
	classifier *court.Classifier
}

// NewSession creates a session in setup with empty rosters.
func NewSession(code, name, password string, settings model.Settings, now time.Time) *Session {
	data := &model.GameSession{
		Code:          code,
		Name:          name,
		AdminPassword: password,
		Settings:      settings,
		Home:          model.Team{Name: "Home", Color: "#1d428a"},
		Away:          model.Team{Name: "Away", Color: "#c8102e"},
		Stats:         make(map[string]*model.PlayerStats),
		State: model.GameState{
			Period:           1,
			GameClockSeconds: settings.PeriodSeconds,
			ShotClockSeconds: settings.ShotClockSeconds,
			HomeTimeouts:     settings.TimeoutsPerTeam,
			AwayTimeouts:     settings.TimeoutsPerTeam,
			Status:           model.StatusSetup,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return Resume(data)
}

// Resume rebuilds the in-memory collaborators around a loaded snapshot.
// Undo history does not survive a reload; only live sessions can roll back.
func Resume(data *model.GameSession) *Session {
	return &Session{
		Data:       data,
		clock:      NewClock(&data.State, data.Settings),
		undo:       NewUndoLedger(),
		classifier: court.NewClassifier(court.GeometryFor(data.Settings.CourtStandard)),
	}
}

// Classifier exposes the geometry-bound classifier for the session's court
// standard.
func (s *Session) Classifier() *court.Classifier { return s.classifier }

func (s *Session) team(side model.TeamSide) *model.Team {
	if side == model.SideHome {
		return &s.Data.Home
	}
	return &s.Data.Away
}

// AddPlayer appends a roster entry. Permitted only before the game starts;
// numbers must be unique per team and in 0-99.
func (s *Session) AddPlayer(side model.TeamSide, number int, name string) (model.Player, error) {
	if s.Data.State.Status != model.StatusSetup && s.Data.State.Status != model.StatusReady {
		return model.Player{}, ErrRosterLocked
	}
	if number < 0 || number > 99 {
		return model.Player{}, ErrNumberRange
	}
	team := s.team(side)
	for _, p := range team.Roster {
		if p.Number == number {
			return model.Player{}, ErrDuplicateNumber
		}
	}
	player := model.Player{ID: uuid.NewString(), Number: number, Name: name}
	team.Roster = append(team.Roster, player)
	s.Data.Stats[player.ID] = &model.PlayerStats{}
	return player, nil
}

// RemovePlayer deletes a roster entry and its stats. Same pre-start guard
// as AddPlayer.
func (s *Session) RemovePlayer(side model.TeamSide, playerID string) error {
	if s.Data.State.Status != model.StatusSetup && s.Data.State.Status != model.StatusReady {
		return ErrRosterLocked
	}
	team := s.team(side)
	for i, p := range team.Roster {
		if p.ID == playerID {
			team.Roster = append(team.Roster[:i], team.Roster[i+1:]...)
			delete(s.Data.Stats, playerID)
			return nil
		}
	}
	return ErrUnknownPlayer
}

// StartGame moves setup to ready once both rosters are non-empty.
func (s *Session) StartGame() error {
	if s.Data.State.Status != model.StatusSetup {
		return ErrNotInSetup
	}
	if len(s.Data.Home.Roster) == 0 || len(s.Data.Away.Roster) == 0 {
		return ErrRostersRequired
	}
	s.Data.State.Status = model.StatusReady
	return nil
}

// Clock operations, delegated so callers hold one handle per session.

func (s *Session) StartClock() error { return s.clock.Start() }
func (s *Session) PauseClock() error { return s.clock.Pause() }
func (s *Session) ResetGameClock()   { s.clock.ResetGameClock() }
func (s *Session) ResetShotClock()   { s.clock.ResetShotClock() }
func (s *Session) Tick() TickEvent   { return s.clock.Tick() }
func (s *Session) IsLive() bool      { return s.Data.State.Status == model.StatusLive }

// ClockLabel renders the game clock as MM:SS.
func (s *Session) ClockLabel() string {
	secs := s.Data.State.GameClockSeconds
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (s *Session) findPlayer(side model.TeamSide, playerID string) (model.Player, bool) {
	for _, p := range s.team(side).Roster {
		if p.ID == playerID {
			return p, true
		}
	}
	return model.Player{}, false
}

// RecordInput is everything the operator supplies for one action.
type RecordInput struct {
	Side     model.TeamSide
	PlayerID string
	Code     string
	X, Y     *float64 // court location when the action came from a tap
}

// RecordAction validates the input, snapshots for undo, applies the action
// and appends it to the ledger and the play-by-play log. The
// snapshot-then-mutate sequence is one atomic step from the caller's view.
func (s *Session) RecordAction(in RecordInput, now time.Time) (model.Action, error) {
	if s.Data.State.Status == model.StatusFinal {
		return model.Action{}, ErrGameOver
	}
	player, ok := s.findPlayer(in.Side, in.PlayerID)
	if !ok {
		return model.Action{}, ErrUnknownPlayer
	}
	kind, ok := ParseActionCode(in.Code)
	if !ok {
		return model.Action{}, ErrBadActionCode
	}

	action := model.Action{
		ID:           uuid.NewString(),
		PlayerID:     player.ID,
		PlayerNumber: player.Number,
		PlayerName:   player.Name,
		Team:         in.Side,
		Code:         in.Code,
		Outcome:      string(kind.Outcome),
		Points:       kind.Points,
		Period:       s.Data.State.Period,
		ClockLabel:   s.ClockLabel(),
		CreatedAt:    now,
	}
	if in.X != nil && in.Y != nil {
		action.X, action.Y = *in.X, *in.Y
		action.HasLocation = true
		action.Distance = s.classifier.Distance(*in.X, *in.Y)
	}

	stats := s.Data.Stats[player.ID]
	if stats == nil {
		stats = &model.PlayerStats{}
		s.Data.Stats[player.ID] = stats
	}

	s.undo.Push(action, s.Data.State, s.Data.Stats, s.Data.Analytics)

	ApplyAction(kind, action, stats, &s.Data.State, &s.Data.Analytics)
	if kind.Outcome == OutcomeMake {
		s.clock.ResetShotClock()
	}

	s.Data.Actions = append(s.Data.Actions, action)
	s.appendPlayByPlay(PlayByPlayLine(kind, action))
	return action, nil
}

func (s *Session) appendPlayByPlay(line string) {
	log := append([]string{line}, s.Data.PlayByPlay...)
	if len(log) > playByPlayCap {
		log = log[:playByPlayCap]
	}
	s.Data.PlayByPlay = log
}

// Undo rolls back the most recent recorded action: the snapshot replaces
// GameState, the whole stats map and Analytics, and the action leaves the
// ledger by id. Whole-state rollback, not an inverse.
func (s *Session) Undo() (model.Action, error) {
	entry, ok := s.undo.Pop()
	if !ok {
		return model.Action{}, ErrNothingToUndo
	}

	s.Data.State = entry.State
	s.Data.Stats = entry.Stats
	s.Data.Analytics = entry.Analytics
	// The clock keeps pointing at s.Data.State, which was replaced by value,
	// so no rebinding is needed.

	for i := len(s.Data.Actions) - 1; i >= 0; i-- {
		if s.Data.Actions[i].ID == entry.Action.ID {
			s.Data.Actions = append(s.Data.Actions[:i], s.Data.Actions[i+1:]...)
			break
		}
	}
	if len(s.Data.PlayByPlay) > 0 {
		s.Data.PlayByPlay = s.Data.PlayByPlay[1:]
	}
	return entry.Action, nil
}

// UndoDepth reports how many rollback steps are currently available.
func (s *Session) UndoDepth() int { return s.undo.Len() }

// AdjustTeamStat applies a foul or timeout delta for one side.
func (s *Session) AdjustTeamStat(side model.TeamSide, kind TeamStatKind, delta int) AdjustResult {
	return AdjustTeamStat(&s.Data.State, s.Data.Settings, side, kind, delta)
}

// EndGame finalizes the session explicitly, regardless of clock state.
func (s *Session) EndGame() {
	s.Data.State.Status = model.StatusFinal
}
