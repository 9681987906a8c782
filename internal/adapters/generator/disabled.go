package generator

import (
	"context"
	"fmt"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// Disabled is the generator used when no endpoint is configured
type Disabled struct{}

var _ ports.WorkoutGenerator = Disabled{}

// Generate always fails
func (Disabled) Generate(ctx context.Context, req ports.GenerateRequest) (*ports.GeneratedPlan, error) {
	return nil, fmt.Errorf("%w: no generator_url configured", domain.ErrCollaboratorUnavailable)
}
