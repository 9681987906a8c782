package domain

import "time"

// Achievement ids are stable; unlock rules insert by id at most once.
const (
	AchievementFirstSession = "1"
	AchievementOnTime       = "on-time"
)

// DefaultWeeklyGoalTarget is the number of sessions per week a new profile aims for
const DefaultWeeklyGoalTarget = 4

// Score bounds
const (
	MaxDisciplineScore = 100
	CompletionBonus    = 20
)

// Achievement is an unlocked badge on the profile
type Achievement struct {
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
	Icon        string    `json:"icon"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
}

// UserProfile is the aggregate user state
type UserProfile struct {
	Achievements     []Achievement `json:"achievements"`
	AvatarURL        string        `json:"avatarUrl"`
	DisciplineScore  int           `json:"disciplineScore"`
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	StreakCount      int           `json:"streakCount"`
	WeeklyGoalTarget int           `json:"weeklyGoalTarget"`
}

// DefaultProfile returns the profile used when nothing is stored yet
func DefaultProfile() UserProfile {
	return UserProfile{
		Achievements:     []Achievement{},
		AvatarURL:        "https://picsum.photos/seed/gym1/100/100",
		ID:               "user-1",
		Name:             "Champion User",
		WeeklyGoalTarget: DefaultWeeklyGoalTarget,
	}
}

// HasAchievement reports whether an achievement with the id is already unlocked
func (p UserProfile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// FirstSessionAchievement is unlocked by the very first completed run
func FirstSessionAchievement(earnedAt time.Time) Achievement {
	return Achievement{
		Description: "Welcome to the gym!",
		EarnedAt:    earnedAt,
		Icon:        "🏆",
		ID:          AchievementFirstSession,
		Title:       "First Session",
	}
}

// OnTimeAchievement is unlocked by finishing inside the tolerance band
func OnTimeAchievement(earnedAt time.Time) Achievement {
	return Achievement{
		Description: "Perfect timing!",
		EarnedAt:    earnedAt,
		Icon:        "⏱️",
		ID:          AchievementOnTime,
		Title:       "On-Time Finisher",
	}
}
