package domain

import "time"

// DefaultCaption is used when a post is published with a blank caption
const DefaultCaption = "Finished a solid workout!"

// CommunityPost is a shareable summary of a completed run
type CommunityPost struct {
	Caption      string      `json:"caption"`
	CreatedAt    time.Time   `json:"createdAt"`
	Duration     string      `json:"duration"`
	EndedStatus  EndedStatus `json:"endedStatus"`
	ID           string      `json:"id"`
	LikesCount   int         `json:"likesCount"`
	Overtime     int         `json:"overtime"`
	SessionRunID string      `json:"sessionRunId"`
	UserAvatar   string      `json:"userAvatar"`
	UserName     string      `json:"userName"`
	WorkoutType  WorkoutType `json:"workoutType"`
}
