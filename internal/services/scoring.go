package services

import (
	"math"
	"slices"
	"time"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

// ScoreRun derives the updated profile after newRun completes.
// It is pure: history and profile are not modified, and now only stamps
// newly earned achievements.
//
// The streak grows on every completed run; there is no day-gap check.
func ScoreRun(history []domain.SessionRun, newRun domain.SessionRun, profile domain.UserProfile, now time.Time) domain.UserProfile {
	combined := make([]domain.SessionRun, 0, len(history)+1)
	combined = append(combined, newRun)
	combined = append(combined, history...)

	onTime := 0
	for _, run := range combined {
		if run.EndedStatus == domain.StatusOnTime {
			onTime++
		}
	}

	updated := profile
	updated.Achievements = slices.Clone(profile.Achievements)
	if updated.Achievements == nil {
		updated.Achievements = []domain.Achievement{}
	}

	ratio := math.Round(float64(onTime) / float64(len(combined)) * 100)
	updated.DisciplineScore = min(domain.MaxDisciplineScore, int(ratio)+domain.CompletionBonus)
	updated.StreakCount = profile.StreakCount + 1

	if len(combined) == 1 {
		updated = unlock(updated, domain.FirstSessionAchievement(now))
	}
	if newRun.EndedStatus == domain.StatusOnTime {
		updated = unlock(updated, domain.OnTimeAchievement(now))
	}

	return updated
}

// unlock appends the achievement unless its id is already present
func unlock(profile domain.UserProfile, achievement domain.Achievement) domain.UserProfile {
	if profile.HasAchievement(achievement.ID) {
		return profile
	}
	profile.Achievements = append(profile.Achievements, achievement)
	return profile
}
