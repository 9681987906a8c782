package domain

import "errors"

var (
	ErrCollaboratorUnavailable = errors.New("workout generator unavailable")
	ErrEmptyPlan               = errors.New("plan has no exercises")
	ErrInvalidPlan             = errors.New("invalid plan")
	ErrInvalidReview           = errors.New("invalid review")
	ErrInvalidState            = errors.New("invalid session state")
	ErrKeyNotFound             = errors.New("key not found")
	ErrPlanNotFound            = errors.New("plan not found")
	ErrRunNotFound             = errors.New("run not found")
	ErrStorageReadCorrupt      = errors.New("stored data is corrupt")
)
