package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRun(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  int
		planned  int
		expected EndedStatus
	}{
		{"well under target", 3000, 3600, StatusEarly},
		{"one second before lower bound", 3479, 3600, StatusEarly},
		{"exactly lower bound", 3480, 3600, StatusOnTime},
		{"exactly on target", 3600, 3600, StatusOnTime},
		{"inside band with overtime", 3700, 3600, StatusOnTime},
		{"exactly upper bound", 3720, 3600, StatusOnTime},
		{"one second past upper bound", 3721, 3600, StatusLate},
		{"well over target", 3800, 3600, StatusLate},
		{"zero elapsed", 0, 3600, StatusEarly},
		{"short plan inside band", 0, 120, StatusOnTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRun(tt.elapsed, tt.planned))
		})
	}
}

func TestOvertimeSeconds(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  int
		planned  int
		expected int
	}{
		{"early has no overtime", 3000, 3600, 0},
		{"exact target has no overtime", 3600, 3600, 0},
		{"overtime inside tolerance band", 3700, 3600, 100},
		{"overtime past tolerance band", 3800, 3600, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OvertimeSeconds(tt.elapsed, tt.planned))
		})
	}
}

func TestOvertimeIndependentOfStatus(t *testing.T) {
	for elapsed := 3400; elapsed <= 3900; elapsed += 7 {
		overtime := OvertimeSeconds(elapsed, 3600)
		assert.Equal(t, max(0, elapsed-3600), overtime, "elapsed=%d", elapsed)
		if ClassifyRun(elapsed, 3600) == StatusOnTime && elapsed > 3600 {
			assert.Positive(t, overtime)
		}
	}
}

func TestRunReview_Validate(t *testing.T) {
	tests := []struct {
		name    string
		review  RunReview
		wantErr bool
	}{
		{"zero values", RunReview{}, false},
		{"upper bounds", RunReview{Rating: 10, Stars: 5}, false},
		{"rating too high", RunReview{Rating: 11, Stars: 3}, true},
		{"negative rating", RunReview{Rating: -1}, true},
		{"stars too high", RunReview{Rating: 5, Stars: 6}, true},
		{"negative stars", RunReview{Stars: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.review.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidReview)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSessionRun_WithReviewLeavesOriginalUntouched(t *testing.T) {
	run := SessionRun{ID: "run-1", EndedStatus: StatusOnTime}

	reviewed := run.WithReview(RunReview{Rating: 8, Stars: 4, Comment: "solid"})

	assert.Equal(t, 8, reviewed.SelfRating10)
	assert.Equal(t, 4, reviewed.Stars5)
	assert.Equal(t, "solid", reviewed.CommentText)
	assert.Zero(t, run.SelfRating10)
	assert.Empty(t, run.CommentText)
}

func TestEndedStatus_Label(t *testing.T) {
	assert.Equal(t, "On Time", StatusOnTime.Label())
	assert.Equal(t, "Early", StatusEarly.Label())
	assert.Equal(t, "Late", StatusLate.Label())
}
