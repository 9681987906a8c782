package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// CommunityFeed publishes run summaries and counts likes
type CommunityFeed struct {
	clock ports.Clock
	state *AppState
}

// NewCommunityFeed creates a new CommunityFeed
func NewCommunityFeed(state *AppState, clock ports.Clock) *CommunityFeed {
	return &CommunityFeed{clock: clock, state: state}
}

// Publish prepends a post derived from run
func (f *CommunityFeed) Publish(ctx context.Context, run domain.SessionRun, caption string) (*domain.CommunityPost, error) {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		caption = domain.DefaultCaption
	}

	workoutType := domain.WorkoutFullBody
	if plan, ok := f.state.PlanByID(run.SessionPlanID); ok {
		workoutType = plan.WorkoutType
	}

	user := f.state.User()
	post := domain.CommunityPost{
		Caption:      caption,
		CreatedAt:    f.clock.Now(),
		Duration:     domain.FormatMinutes(run.ActualDurationSeconds),
		EndedStatus:  run.EndedStatus,
		ID:           uuid.New().String(),
		LikesCount:   0,
		Overtime:     run.OvertimeSeconds,
		SessionRunID: run.ID,
		UserAvatar:   user.AvatarURL,
		UserName:     user.Name,
		WorkoutType:  workoutType,
	}

	posts := append([]domain.CommunityPost{post}, f.state.Posts()...)
	if err := f.state.SetPosts(ctx, posts); err != nil {
		return nil, err
	}

	logging.Logger.Info("Post published", "post_id", post.ID, "run_id", run.ID)
	return &post, nil
}

// Like adds one like to the post. Unknown ids are ignored.
func (f *CommunityFeed) Like(ctx context.Context, postID string) error {
	posts := f.state.Posts()
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		posts[i].LikesCount++
		return f.state.SetPosts(ctx, posts)
	}

	logging.Logger.Debug("Like for unknown post ignored", "post_id", postID)
	return nil
}

// List returns posts most recent first
func (f *CommunityFeed) List() []domain.CommunityPost {
	return f.state.Posts()
}
