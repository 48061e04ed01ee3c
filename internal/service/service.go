// Package service holds business logic orchestration across the engine,
// repositories and handlers. Kept intentionally lean: use-case
// coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/courtkeeper/courtside/internal/court"
	"github.com/courtkeeper/courtside/internal/engine"
	"github.com/courtkeeper/courtside/internal/model"
	"github.com/courtkeeper/courtside/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures
// (maps to HTTP 400). Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrUnauthorized covers a wrong admin password or a mutation attempted
// without one. The message never says which part was wrong.
var ErrUnauthorized = errors.New("incorrect password")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// SettingsInput carries optional session settings; zero values take the
// configured defaults.
type SettingsInput struct {
	CourtStandard    string `json:"court_standard"`
	PeriodFormat     string `json:"period_format"`
	PeriodSeconds    int    `json:"period_seconds"`
	ShotClockEnabled *bool  `json:"shot_clock_enabled"`
	ShotClockSeconds int    `json:"shot_clock_seconds"`
	TimeoutsPerTeam  int    `json:"timeouts_per_team"`
	FoulLimit        int    `json:"foul_limit"`
}

// RecordActionInput is the operator payload for one recorded action.
type RecordActionInput struct {
	Side     string   `json:"team"`
	PlayerID string   `json:"player_id"`
	Code     string   `json:"code"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
}

// ZoneMenu bundles a classified zone with its action menus so one tap
// costs one round trip.
type ZoneMenu struct {
	Zone      court.Zone       `json:"zone"`
	Distance  float64          `json:"distance"`
	Primary   []court.MenuItem `json:"primary"`
	Secondary []court.MenuItem `json:"secondary,omitempty"`
}

// SessionService defines every operation on tracked games. Mutating
// operations carry the admin password; read operations do not.
type SessionService interface {
	Create(ctx context.Context, name, password string, in SettingsInput) (*model.GameSession, error)
	Join(ctx context.Context, code, password string) (*model.GameSession, error)
	Get(ctx context.Context, code string) (*model.GameSession, error)
	List(ctx context.Context) ([]repository.SessionSummary, error)

	ClassifyTap(ctx context.Context, code string, x, y float64) (ZoneMenu, error)

	AddPlayer(ctx context.Context, code, password, side, name string, number int) (model.Player, error)
	RemovePlayer(ctx context.Context, code, password, side, playerID string) error
	StartGame(ctx context.Context, code, password string) error
	EndGame(ctx context.Context, code, password string) error

	StartClock(ctx context.Context, code, password string) error
	PauseClock(ctx context.Context, code, password string) error
	ResetGameClock(ctx context.Context, code, password string) error
	ResetShotClock(ctx context.Context, code, password string) error

	RecordAction(ctx context.Context, code, password string, in RecordActionInput) (model.Action, error)
	Undo(ctx context.Context, code, password string) (model.Action, error)
	AdjustTeamStat(ctx context.Context, code, password, side, kind string, delta int) (engine.AdjustResult, error)
}
