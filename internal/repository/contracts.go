// Package repository defines the persistence contract for game sessions
// and its shared error vocabulary. The engine treats storage as an opaque
// save/load/list keyed by the session code; durability is last write wins.
package repository

import (
	"context"
	"time"

	"github.com/courtkeeper/courtside/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionSummary is the listing projection: enough for a join screen,
// nothing mutable.
type SessionSummary struct {
	Code      string              `json:"code"`
	Name      string              `json:"name"`
	Status    model.SessionStatus `json:"status"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// SessionRepository stores whole-session snapshots keyed by code.
// Implementations must never alias caller memory: Save copies in, Load
// copies out. Viewers poll Load and compare UpdatedAt to detect change.
type SessionRepository interface {
	Save(ctx context.Context, session *model.GameSession) error
	Load(ctx context.Context, code string) (*model.GameSession, error)
	List(ctx context.Context) ([]SessionSummary, error)
	Exists(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, code string) error
}
