package ports

import (
	"context"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

// RunRecorder takes ownership of a freshly completed run
type RunRecorder interface {
	Record(ctx context.Context, run domain.SessionRun) (*domain.UserProfile, error)
}
