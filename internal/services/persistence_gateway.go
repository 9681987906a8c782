package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/observability"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// Storage keys, one per top-level aggregate
const (
	KeyActivePlan      = "active_plan"
	KeyActiveStartTime = "active_start_time"
	KeyCommunity       = "community"
	KeyPlans           = "plans"
	KeyRuns            = "runs"
	KeyUser            = "user"
)

// PersistenceGateway stores each aggregate as JSON under its own key.
// Loads never fail: missing or corrupt documents fall back to the key's default.
type PersistenceGateway struct {
	store ports.KeyValueStore
}

// NewPersistenceGateway creates a new PersistenceGateway
func NewPersistenceGateway(store ports.KeyValueStore) *PersistenceGateway {
	return &PersistenceGateway{store: store}
}

// Load decodes key into a T, or returns fallback() when absent or corrupt
func Load[T any](ctx context.Context, g *PersistenceGateway, key string, fallback func() T) T {
	var value T
	if !g.load(ctx, key, &value) {
		return fallback()
	}
	return value
}

// Save encodes value as JSON and writes it under key
func Save[T any](ctx context.Context, g *PersistenceGateway, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := g.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	logging.Logger.Debug("Saved aggregate", "key", key, "bytes", len(data))
	return nil
}

// load reports whether key was present and decoded cleanly
func (g *PersistenceGateway) load(ctx context.Context, key string, out any) bool {
	data, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			logging.Logger.Warn("Failed to read aggregate, using default", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		logging.Logger.Warn("Stored aggregate is corrupt, using default",
			"key", key,
			"error", fmt.Errorf("%w: %w", domain.ErrStorageReadCorrupt, err))
		observability.RecordStorageCorrupt(key)
		return false
	}
	return true
}

func (g *PersistenceGateway) LoadUser(ctx context.Context) domain.UserProfile {
	profile := Load(ctx, g, KeyUser, domain.DefaultProfile)
	if profile.Achievements == nil {
		profile.Achievements = []domain.Achievement{}
	}
	return profile
}

func (g *PersistenceGateway) SaveUser(ctx context.Context, profile domain.UserProfile) error {
	return Save(ctx, g, KeyUser, profile)
}

func (g *PersistenceGateway) LoadPlans(ctx context.Context) []domain.SessionPlan {
	return nonNil(Load(ctx, g, KeyPlans, emptyList[domain.SessionPlan]))
}

func (g *PersistenceGateway) SavePlans(ctx context.Context, plans []domain.SessionPlan) error {
	return Save(ctx, g, KeyPlans, nonNil(plans))
}

func (g *PersistenceGateway) LoadRuns(ctx context.Context) []domain.SessionRun {
	return nonNil(Load(ctx, g, KeyRuns, emptyList[domain.SessionRun]))
}

func (g *PersistenceGateway) SaveRuns(ctx context.Context, runs []domain.SessionRun) error {
	return Save(ctx, g, KeyRuns, nonNil(runs))
}

func (g *PersistenceGateway) LoadPosts(ctx context.Context) []domain.CommunityPost {
	return nonNil(Load(ctx, g, KeyCommunity, emptyList[domain.CommunityPost]))
}

func (g *PersistenceGateway) SavePosts(ctx context.Context, posts []domain.CommunityPost) error {
	return Save(ctx, g, KeyCommunity, nonNil(posts))
}

// LoadActive returns the active session, or nil.
// A half-present pair (one key absent or corrupt) means no session is active,
// and the surviving key is deleted.
func (g *PersistenceGateway) LoadActive(ctx context.Context) *domain.ActiveSession {
	var plan *domain.SessionPlan
	var startMillis *int64

	hasPlan := g.load(ctx, KeyActivePlan, &plan) && plan != nil
	hasStart := g.load(ctx, KeyActiveStartTime, &startMillis) && startMillis != nil

	if hasPlan && hasStart {
		return &domain.ActiveSession{
			Plan:      *plan,
			StartTime: time.UnixMilli(*startMillis).UTC(),
		}
	}

	if hasPlan || hasStart {
		logging.Logger.Warn("Inconsistent active session pair, clearing",
			"has_plan", hasPlan,
			"has_start_time", hasStart)
		if err := g.ClearActive(ctx); err != nil {
			logging.Logger.Error("Failed to clear inconsistent active session", "error", err)
		}
	}
	return nil
}

// SaveActive writes both halves of the active pair, plan first.
// If the second write fails the first is rolled back.
func (g *PersistenceGateway) SaveActive(ctx context.Context, active domain.ActiveSession) error {
	if err := Save(ctx, g, KeyActivePlan, active.Plan); err != nil {
		return err
	}
	if err := Save(ctx, g, KeyActiveStartTime, active.StartTime.UnixMilli()); err != nil {
		if delErr := g.store.Delete(ctx, KeyActivePlan); delErr != nil {
			logging.Logger.Error("Failed to roll back active plan", "error", delErr)
		}
		return err
	}
	return nil
}

// ClearActive deletes both halves of the active pair
func (g *PersistenceGateway) ClearActive(ctx context.Context) error {
	return errors.Join(
		g.store.Delete(ctx, KeyActiveStartTime),
		g.store.Delete(ctx, KeyActivePlan),
	)
}

func emptyList[T any]() []T {
	return []T{}
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
