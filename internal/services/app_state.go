package services

import (
	"context"
	"slices"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
)

// AppState holds the loaded aggregates and writes every change through the
// gateway. The in-memory copy only changes after the write succeeds, except
// for ClearActive (see there). Not safe for concurrent use.
type AppState struct {
	active  *domain.ActiveSession
	gateway *PersistenceGateway
	plans   []domain.SessionPlan
	posts   []domain.CommunityPost
	runs    []domain.SessionRun
	user    domain.UserProfile
}

// LoadAppState reads every aggregate from the gateway
func LoadAppState(ctx context.Context, gateway *PersistenceGateway) *AppState {
	s := &AppState{gateway: gateway}
	s.Reload(ctx)
	return s
}

// Reload re-reads every aggregate, discarding the in-memory copy
func (s *AppState) Reload(ctx context.Context) {
	s.user = s.gateway.LoadUser(ctx)
	s.plans = s.gateway.LoadPlans(ctx)
	s.runs = s.gateway.LoadRuns(ctx)
	s.posts = s.gateway.LoadPosts(ctx)
	s.active = s.gateway.LoadActive(ctx)

	logging.Logger.Debug("App state loaded",
		"plans", len(s.plans),
		"runs", len(s.runs),
		"posts", len(s.posts),
		"active", s.active != nil)
}

// Active returns a copy of the active session, or nil
func (s *AppState) Active() *domain.ActiveSession {
	if s.active == nil {
		return nil
	}
	active := *s.active
	return &active
}

func (s *AppState) Plans() []domain.SessionPlan   { return slices.Clone(s.plans) }
func (s *AppState) Posts() []domain.CommunityPost { return slices.Clone(s.posts) }
func (s *AppState) Runs() []domain.SessionRun     { return slices.Clone(s.runs) }

// User returns a copy of the profile
func (s *AppState) User() domain.UserProfile {
	user := s.user
	user.Achievements = slices.Clone(s.user.Achievements)
	return user
}

// PlanByID looks a plan up by id
func (s *AppState) PlanByID(id string) (domain.SessionPlan, bool) {
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return domain.SessionPlan{}, false
}

// SetActive persists the active pair, then records it in memory
func (s *AppState) SetActive(ctx context.Context, active domain.ActiveSession) error {
	if err := s.gateway.SaveActive(ctx, active); err != nil {
		return err
	}
	s.active = &active
	return nil
}

// ClearActive forgets the active session in memory even when the delete
// fails; a stale pair left on disk is normalized or resumed on next load.
func (s *AppState) ClearActive(ctx context.Context) error {
	s.active = nil
	return s.gateway.ClearActive(ctx)
}

func (s *AppState) SetPlans(ctx context.Context, plans []domain.SessionPlan) error {
	if err := s.gateway.SavePlans(ctx, plans); err != nil {
		return err
	}
	s.plans = slices.Clone(plans)
	return nil
}

func (s *AppState) SetPosts(ctx context.Context, posts []domain.CommunityPost) error {
	if err := s.gateway.SavePosts(ctx, posts); err != nil {
		return err
	}
	s.posts = slices.Clone(posts)
	return nil
}

func (s *AppState) SetRuns(ctx context.Context, runs []domain.SessionRun) error {
	if err := s.gateway.SaveRuns(ctx, runs); err != nil {
		return err
	}
	s.runs = slices.Clone(runs)
	return nil
}

func (s *AppState) SetUser(ctx context.Context, user domain.UserProfile) error {
	if err := s.gateway.SaveUser(ctx, user); err != nil {
		return err
	}
	s.user = user
	return nil
}
