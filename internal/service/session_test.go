package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtkeeper/courtside/internal/court"
	"github.com/courtkeeper/courtside/internal/model"
	"github.com/courtkeeper/courtside/internal/repository"
	"github.com/courtkeeper/courtside/internal/repository/memory"
	"github.com/courtkeeper/courtside/internal/service"
)

func newService() (service.SessionService, *memory.Store) {
	store := memory.NewStore()
	svc := service.NewSessionService(store, service.Defaults{}, zerolog.New(io.Discard))
	return svc, store
}

func createSession(t *testing.T, svc service.SessionService) *model.GameSession {
	t.Helper()
	sess, err := svc.Create(context.Background(), "Rec League Finals", "hoops", service.SettingsInput{})
	require.NoError(t, err)
	return sess
}

func TestService_CreateAppliesDefaults(t *testing.T) {
	svc, store := newService()
	sess := createSession(t, svc)

	assert.True(t, repository.ValidCode(sess.Code))
	assert.Equal(t, model.StatusSetup, sess.State.Status)
	assert.Equal(t, 600, sess.Settings.PeriodSeconds)
	assert.Equal(t, 24, sess.Settings.ShotClockSeconds)
	assert.True(t, sess.Settings.ShotClockEnabled)
	assert.Equal(t, model.CourtNBA, sess.Settings.CourtStandard)

	// The first snapshot is persisted immediately.
	stored, err := store.Load(context.Background(), sess.Code)
	require.NoError(t, err)
	assert.Equal(t, sess.Code, stored.Code)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), "  ", "pw", service.SettingsInput{})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	fields := service.FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].Field)

	_, err = svc.Create(context.Background(), "Game", "pw", service.SettingsInput{
		CourtStandard: "ncaa",
		PeriodSeconds: 5,
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Len(t, service.FieldErrors(err), 2)
}

func TestService_JoinPasswordCheck(t *testing.T) {
	svc, _ := newService()
	sess := createSession(t, svc)

	joined, err := svc.Join(context.Background(), sess.Code, "hoops")
	require.NoError(t, err)
	assert.Equal(t, sess.Code, joined.Code)

	_, err = svc.Join(context.Background(), sess.Code, "wrong")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestService_JoinUnknownCode(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Join(context.Background(), "ZZZZZZ", "pw")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Join(context.Background(), "nope", "pw")
	assert.ErrorIs(t, err, service.ErrInvalidInput, "malformed codes are rejected before the store")
}

func TestService_GetRedactsCredential(t *testing.T) {
	svc, _ := newService()
	sess := createSession(t, svc)

	viewer, err := svc.Get(context.Background(), sess.Code)
	require.NoError(t, err)
	assert.Empty(t, viewer.AdminPassword)
}

func TestService_MutationsRequirePassword(t *testing.T) {
	svc, _ := newService()
	sess := createSession(t, svc)
	ctx := context.Background()

	_, err := svc.AddPlayer(ctx, sess.Code, "wrong", "home", "Reeves", 23)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	err = svc.StartGame(ctx, sess.Code, "wrong")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func startedGame(t *testing.T, svc service.SessionService) (*model.GameSession, model.Player) {
	t.Helper()
	ctx := context.Background()
	sess := createSession(t, svc)
	home, err := svc.AddPlayer(ctx, sess.Code, "hoops", "home", "Reeves", 23)
	require.NoError(t, err)
	_, err = svc.AddPlayer(ctx, sess.Code, "hoops", "away", "Sabonis", 11)
	require.NoError(t, err)
	require.NoError(t, svc.StartGame(ctx, sess.Code, "hoops"))
	return sess, home
}

func TestService_RecordActionFlow(t *testing.T) {
	svc, store := newService()
	sess, home := startedGame(t, svc)
	ctx := context.Background()

	x, y := 10.0, 100.0
	action, err := svc.RecordAction(ctx, sess.Code, "hoops", service.RecordActionInput{
		Side:     "home",
		PlayerID: home.ID,
		Code:     "make3-corner",
		X:        &x,
		Y:        &y,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, action.Points)

	// The mutation is persisted for polling viewers.
	stored, err := store.Load(ctx, sess.Code)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.State.HomeScore)
	assert.NotEqual(t, sess.UpdatedAt, stored.UpdatedAt)

	undone, err := svc.Undo(ctx, sess.Code, "hoops")
	require.NoError(t, err)
	assert.Equal(t, action.ID, undone.ID)

	stored, err = store.Load(ctx, sess.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.State.HomeScore)
}

func TestService_RecordActionValidation(t *testing.T) {
	svc, _ := newService()
	sess, home := startedGame(t, svc)
	ctx := context.Background()

	_, err := svc.RecordAction(ctx, sess.Code, "hoops", service.RecordActionInput{
		Side: "home",
		Code: "rebound",
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	fields := service.FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "player_id", fields[0].Field)
	assert.Equal(t, "select a player first", fields[0].Message)

	x := 10.0
	_, err = svc.RecordAction(ctx, sess.Code, "hoops", service.RecordActionInput{
		Side:     "home",
		PlayerID: home.ID,
		Code:     "rebound",
		X:        &x, // y missing
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.RecordAction(ctx, sess.Code, "hoops", service.RecordActionInput{
		Side:     "courtside",
		PlayerID: home.ID,
		Code:     "rebound",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestService_ClassifyTap(t *testing.T) {
	svc, _ := newService()
	sess := createSession(t, svc)

	menu, err := svc.ClassifyTap(context.Background(), sess.Code, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, court.ZoneCornerThree, menu.Zone.Name)
	assert.InDelta(t, 24.5, menu.Distance, 0.01)
	assert.NotEmpty(t, menu.Primary)
	assert.NotEmpty(t, menu.Secondary)

	// Free-throw taps have no secondary tier.
	menu, err = svc.ClassifyTap(context.Background(), sess.Code, 250, 190)
	require.NoError(t, err)
	assert.Equal(t, court.ZoneFreeThrow, menu.Zone.Name)
	assert.Empty(t, menu.Secondary)
}

func TestService_AdjustTeamStat(t *testing.T) {
	svc, _ := newService()
	sess, _ := startedGame(t, svc)
	ctx := context.Background()

	res, err := svc.AdjustTeamStat(ctx, sess.Code, "hoops", "away", "foul", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Value)
	assert.False(t, res.OverLimit)

	_, err = svc.AdjustTeamStat(ctx, sess.Code, "hoops", "away", "technicality", 1)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestService_ClockControl(t *testing.T) {
	svc, store := newService()
	sess, _ := startedGame(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.StartClock(ctx, sess.Code, "hoops"))
	stored, _ := store.Load(ctx, sess.Code)
	assert.Equal(t, model.StatusLive, stored.State.Status)

	require.NoError(t, svc.PauseClock(ctx, sess.Code, "hoops"))
	stored, _ = store.Load(ctx, sess.Code)
	assert.Equal(t, model.StatusPaused, stored.State.Status)

	// Pausing an already paused game is a state error, not a crash.
	err := svc.PauseClock(ctx, sess.Code, "hoops")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

// A session that was live when the process stopped resumes paused so no
// clock runs without a runner attached.
func TestService_RevivalPausesLiveSessions(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	data := &model.GameSession{
		Code:          "ABC123",
		Name:          "Orphaned",
		AdminPassword: "pw",
		Settings:      model.Settings{PeriodSeconds: 600, ShotClockSeconds: 24, ShotClockEnabled: true},
		Stats:         map[string]*model.PlayerStats{},
		State:         model.GameState{Period: 2, GameClockSeconds: 300, Status: model.StatusLive},
	}
	require.NoError(t, store.Save(ctx, data))

	svc := service.NewSessionService(store, service.Defaults{}, zerolog.New(io.Discard))
	viewer, err := svc.Get(ctx, "abc123") // codes normalize to upper case
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaused, viewer.State.Status)
	assert.Equal(t, 2, viewer.State.Period)
}
