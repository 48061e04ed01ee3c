package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtkeeper/courtside/internal/court"
	"github.com/courtkeeper/courtside/internal/engine"
	"github.com/courtkeeper/courtside/internal/model"
	"github.com/courtkeeper/courtside/internal/repository"
)

// liveSession is one resident game: the engine aggregate, its writer lock
// and the clock runner. The mutex realizes the single-logical-writer rule:
// operator mutations and ticks serialize through it, so the engine itself
// never sees concurrent access.
type liveSession struct {
	mu      sync.Mutex
	session *engine.Session
	stop    chan struct{} // nil while the runner is idle
}

type sessionService struct {
	repo     repository.SessionRepository
	defaults Defaults
	log      zerolog.Logger

	mu   sync.Mutex
	live map[string]*liveSession
}

// NewSessionService wires the session use cases around a snapshot store.
func NewSessionService(repo repository.SessionRepository, defaults Defaults, logger zerolog.Logger) SessionService {
	l := logger.With().Str("module", "service").Str("component", "session").Logger()
	return &sessionService{repo: repo, defaults: defaults.orStandard(), log: l, live: make(map[string]*liveSession)}
}

// Create builds a new session in setup state and persists the first
// snapshot. The code is rejection-sampled against existing keys.
func (s *sessionService) Create(ctx context.Context, name, password string, in SettingsInput) (*model.GameSession, error) {
	name = strings.TrimSpace(name)

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(name)); ln > 60 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be at most 60"})
	}
	if strings.TrimSpace(password) == "" {
		ferrs = append(ferrs, FieldError{Field: "password", Message: "must not be empty"})
	}
	settings, serrs := s.resolveSettings(in)
	ferrs = append(ferrs, serrs...)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("session validation failed")
		return nil, err
	}

	code, err := repository.GenerateCode(ctx, s.repo)
	if err != nil {
		s.log.Error().Err(err).Msg("session code generation failed")
		return nil, err
	}

	now := time.Now().UTC()
	sess := engine.NewSession(code, name, password, settings, now)

	s.mu.Lock()
	s.live[code] = &liveSession{session: sess}
	s.mu.Unlock()

	if err := s.repo.Save(ctx, sess.Data.Clone()); err != nil {
		// Degraded durability is acceptable; the session lives on in memory.
		s.log.Error().Err(err).Str("code", code).Msg("initial session save failed")
	}
	s.log.Info().Str("code", code).Str("name", name).Msg("session created")
	return sess.Data.Clone(), nil
}

// Join authenticates the operator for a session. The error never reveals
// more than "incorrect password".
func (s *sessionService) Join(ctx context.Context, code, password string) (*model.GameSession, error) {
	ls, err := s.resident(ctx, code)
	if err != nil {
		return nil, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.session.Data.AdminPassword != password {
		return nil, ErrUnauthorized
	}
	return ls.session.Data.Clone(), nil
}

// Get returns a read-only snapshot for viewers. No credential required.
func (s *sessionService) Get(ctx context.Context, code string) (*model.GameSession, error) {
	ls, err := s.resident(ctx, code)
	if err != nil {
		return nil, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	snapshot := ls.session.Data.Clone()
	snapshot.AdminPassword = "" // viewers never see the credential
	return snapshot, nil
}

func (s *sessionService) List(ctx context.Context) ([]repository.SessionSummary, error) {
	res, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list sessions failed")
		return nil, err
	}
	return res, nil
}

// ClassifyTap maps a court point to its zone and the action menus for it.
func (s *sessionService) ClassifyTap(ctx context.Context, code string, x, y float64) (ZoneMenu, error) {
	ls, err := s.resident(ctx, code)
	if err != nil {
		return ZoneMenu{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	cl := ls.session.Classifier()
	zone := cl.Classify(x, y)
	menu := ZoneMenu{
		Zone:     zone,
		Distance: cl.Distance(x, y),
		Primary:  court.Menu(zone.Name, court.TierPrimary),
	}
	if secondary := court.Menu(zone.Name, court.TierSecondary); secondary[0] != menu.Primary[0] {
		menu.Secondary = secondary
	}
	return menu, nil
}

func (s *sessionService) AddPlayer(ctx context.Context, code, password, side, name string, number int) (model.Player, error) {
	name = strings.TrimSpace(name)
	teamSide, ferrs := parseSide(side)
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Player{}, err
	}

	var player model.Player
	err := s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		p, err := sess.AddPlayer(teamSide, number, name)
		if err != nil {
			return mapEngineErr(err)
		}
		player = p
		return nil
	})
	return player, err
}

func (s *sessionService) RemovePlayer(ctx context.Context, code, password, side, playerID string) error {
	teamSide, ferrs := parseSide(side)
	if strings.TrimSpace(playerID) == "" {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must not be empty"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return err
	}
	return s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		return mapEngineErr(sess.RemovePlayer(teamSide, playerID))
	})
}

func (s *sessionService) StartGame(ctx context.Context, code, password string) error {
	return s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		return mapEngineErr(sess.StartGame())
	})
}

func (s *sessionService) EndGame(ctx context.Context, code, password string) error {
	err := s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		sess.EndGame()
		return nil
	})
	if err == nil {
		s.stopRunner(code)
	}
	return err
}

func (s *sessionService) StartClock(ctx context.Context, code, password string) error {
	err := s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		return mapEngineErr(sess.StartClock())
	})
	if err != nil {
		return err
	}
	s.startRunner(code)
	return nil
}

func (s *sessionService) PauseClock(ctx context.Context, code, password string) error {
	err := s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		return mapEngineErr(sess.PauseClock())
	})
	if err != nil {
		return err
	}
	s.stopRunner(code)
	return nil
}

func (s *sessionService) ResetGameClock(ctx context.Context, code, password string) error {
	return s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		sess.ResetGameClock()
		return nil
	})
}

func (s *sessionService) ResetShotClock(ctx context.Context, code, password string) error {
	return s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		sess.ResetShotClock()
		return nil
	})
}

func (s *sessionService) RecordAction(ctx context.Context, code, password string, in RecordActionInput) (model.Action, error) {
	teamSide, ferrs := parseSide(in.Side)
	if strings.TrimSpace(in.PlayerID) == "" {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "select a player first"})
	}
	if strings.TrimSpace(in.Code) == "" {
		ferrs = append(ferrs, FieldError{Field: "code", Message: "must not be empty"})
	}
	if (in.X == nil) != (in.Y == nil) {
		ferrs = append(ferrs, FieldError{Field: "location", Message: "x and y must be sent together"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Action{}, err
	}

	var action model.Action
	err := s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		a, err := sess.RecordAction(engine.RecordInput{
			Side:     teamSide,
			PlayerID: in.PlayerID,
			Code:     in.Code,
			X:        in.X,
			Y:        in.Y,
		}, time.Now().UTC())
		if err != nil {
			return mapEngineErr(err)
		}
		action = a
		return nil
	})
	if err != nil {
		return model.Action{}, err
	}
	s.log.Info().Str("code", code).Str("action", action.Code).Str("player", action.PlayerName).Msg("action recorded")
	return action, nil
}

func (s *sessionService) Undo(ctx context.Context, code, password string) (model.Action, error) {
	var action model.Action
	err := s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		a, err := sess.Undo()
		if err != nil {
			return mapEngineErr(err)
		}
		action = a
		return nil
	})
	return action, err
}

func (s *sessionService) AdjustTeamStat(ctx context.Context, code, password, side, kind string, delta int) (engine.AdjustResult, error) {
	teamSide, ferrs := parseSide(side)
	statKind := engine.TeamStatKind(kind)
	if statKind != engine.TeamStatFoul && statKind != engine.TeamStatTimeout {
		ferrs = append(ferrs, FieldError{Field: "kind", Message: "must be foul or timeout"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return engine.AdjustResult{}, err
	}

	var res engine.AdjustResult
	err := s.withAdmin(ctx, code, password, func(sess *engine.Session) error {
		res = sess.AdjustTeamStat(teamSide, statKind, delta)
		return nil
	})
	return res, err
}

// resident returns the live wrapper for a code, reviving it from the store
// after a restart. Undo history does not survive revival.
func (s *sessionService) resident(ctx context.Context, code string) (*liveSession, error) {
	code = normalizeCode(code)
	if !repository.ValidCode(code) {
		return nil, newInvalidInput([]FieldError{{Field: "code", Message: "must be 6 characters, A-Z and digits"}})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ls, ok := s.live[code]; ok {
		return ls, nil
	}
	data, err := s.repo.Load(ctx, code)
	if err != nil {
		return nil, err
	}
	// A session that was live when the process died resumes paused; clocks
	// must never run without a runner attached.
	if data.State.Status == model.StatusLive {
		data.State.Status = model.StatusPaused
	}
	ls := &liveSession{session: engine.Resume(data)}
	s.live[code] = ls
	return ls, nil
}

// withAdmin runs one mutation under the session's writer lock after the
// capability check, then persists the snapshot. Save failures are logged
// and swallowed: the game continues in memory with degraded durability.
func (s *sessionService) withAdmin(ctx context.Context, code, password string, fn func(*engine.Session) error) error {
	ls, err := s.resident(ctx, code)
	if err != nil {
		return err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.session.Data.AdminPassword != password {
		return ErrUnauthorized
	}
	if err := fn(ls.session); err != nil {
		return err
	}
	ls.session.Data.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, ls.session.Data.Clone()); err != nil {
		s.log.Error().Err(err).Str("code", ls.session.Data.Code).Msg("session save failed")
	}
	return nil
}

// startRunner launches the one-second ticker for a session. A second start
// while a runner is alive is a no-op.
func (s *sessionService) startRunner(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.live[normalizeCode(code)]
	if !ok || ls.stop != nil {
		return
	}
	stop := make(chan struct{})
	ls.stop = stop
	go s.runClock(ls, stop)
}

// stopRunner cancels the ticker synchronously and idempotently; stopping
// an already-stopped runner is a no-op.
func (s *sessionService) stopRunner(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.live[normalizeCode(code)]
	if !ok || ls.stop == nil {
		return
	}
	close(ls.stop)
	ls.stop = nil
}

// runClock drives Tick once a second until stopped or the engine leaves
// live state. Each tick holds the same writer lock as operator actions, so
// ticks and mutations interleave only at whole-tick boundaries. When the
// engine leaves live state (period-end auto-pause, final) the runner must
// unregister before the snapshot save: the save can block on I/O, and a
// StartClock landing in that window has to be able to attach a fresh runner.
func (s *sessionService) runClock(ls *liveSession, stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ls.mu.Lock()
			event := ls.session.Tick()
			stillLive := ls.session.IsLive()
			var snapshot *model.GameSession
			if event.PeriodEnded {
				ls.session.Data.UpdatedAt = time.Now().UTC()
				snapshot = ls.session.Data.Clone()
			}
			ls.mu.Unlock()

			if !stillLive {
				s.releaseRunner(ls, stop)
			}
			if snapshot != nil {
				if err := s.repo.Save(context.Background(), snapshot); err != nil {
					s.log.Error().Err(err).Str("code", snapshot.Code).Msg("session save failed")
				}
			}
			if !stillLive {
				return
			}
		}
	}
}

// releaseRunner removes a runner's registration, but only while the stop
// channel still belongs to that runner. A successor attached in the
// meantime keeps its own channel untouched.
func (s *sessionService) releaseRunner(ls *liveSession, stop chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ls.stop == stop {
		ls.stop = nil
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// parseSide validates the team side string.
func parseSide(side string) (model.TeamSide, []FieldError) {
	switch model.TeamSide(strings.ToLower(strings.TrimSpace(side))) {
	case model.SideHome:
		return model.SideHome, nil
	case model.SideAway:
		return model.SideAway, nil
	default:
		return "", []FieldError{{Field: "team", Message: "must be home or away"}}
	}
}

// mapEngineErr shapes engine domain errors into the service taxonomy.
func mapEngineErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, engine.ErrUnknownPlayer):
		return newInvalidInput([]FieldError{{Field: "player_id", Message: err.Error()}})
	case errors.Is(err, engine.ErrDuplicateNumber), errors.Is(err, engine.ErrNumberRange):
		return newInvalidInput([]FieldError{{Field: "number", Message: err.Error()}})
	case errors.Is(err, engine.ErrBadActionCode):
		return newInvalidInput([]FieldError{{Field: "code", Message: err.Error()}})
	case errors.Is(err, engine.ErrRosterLocked),
		errors.Is(err, engine.ErrRostersRequired),
		errors.Is(err, engine.ErrNotInSetup),
		errors.Is(err, engine.ErrGameOver),
		errors.Is(err, engine.ErrNothingToUndo),
		errors.Is(err, engine.ErrClockNotStartable),
		errors.Is(err, engine.ErrClockNotPausable):
		return newInvalidInput([]FieldError{{Field: "state", Message: err.Error()}})
	default:
		return err
	}
}
