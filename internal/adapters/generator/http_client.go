package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/ports"
)

// maxResponseBytes bounds what we read from the generator
const maxResponseBytes = 1 << 20

// HTTPClient implements ports.WorkoutGenerator by POSTing JSON to a remote endpoint
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
}

var _ ports.WorkoutGenerator = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the given endpoint URL
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// wire types use pointers so that missing fields can be told apart from zero values
type wireExercise struct {
	Name *string         `json:"name"`
	Reps json.RawMessage `json:"reps"`
	Sets *int            `json:"sets"`
}

type wireResponse struct {
	CardioMinutes          *int           `json:"cardioMinutes"`
	CardioPlacement        *string        `json:"cardioPlacement"`
	Exercises              []wireExercise `json:"exercises"`
	PlannedDurationMinutes *int           `json:"plannedDurationMinutes"`
}

// Generate implements ports.WorkoutGenerator
func (c *HTTPClient) Generate(ctx context.Context, req ports.GenerateRequest) (*ports.GeneratedPlan, error) {
	plan, err := c.generate(ctx, req)
	if err != nil {
		logging.Logger.Warn("Workout generator failed", "error", err, "endpoint", c.endpoint)
		return nil, fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	logging.Logger.Debug("Workout generated", "exercises", len(plan.Exercises))
	return plan, nil
}

func (c *HTTPClient) generate(ctx context.Context, req ports.GenerateRequest) (*ports.GeneratedPlan, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("generator: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("generator: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("generator: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator: returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("generator: decode response: %w", err)
	}

	return decodePlan(wire)
}

// decodePlan validates every field the plan builder relies on
func decodePlan(wire wireResponse) (*ports.GeneratedPlan, error) {
	if len(wire.Exercises) == 0 {
		return nil, errors.New("generator: response has no exercises")
	}
	if wire.CardioPlacement == nil {
		return nil, errors.New("generator: missing cardioPlacement")
	}
	if wire.CardioMinutes == nil || *wire.CardioMinutes < 0 {
		return nil, errors.New("generator: missing or negative cardioMinutes")
	}
	if wire.PlannedDurationMinutes == nil || *wire.PlannedDurationMinutes <= 0 {
		return nil, errors.New("generator: missing or non-positive plannedDurationMinutes")
	}

	placement, err := domain.ParseCardioPlacement(*wire.CardioPlacement)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	exercises := make([]ports.GeneratedExercise, 0, len(wire.Exercises))
	for i, ex := range wire.Exercises {
		if ex.Name == nil || strings.TrimSpace(*ex.Name) == "" {
			return nil, fmt.Errorf("generator: exercise %d has no name", i)
		}
		if ex.Sets == nil || *ex.Sets < 0 {
			return nil, fmt.Errorf("generator: exercise %q has missing or negative sets", *ex.Name)
		}
		reps, err := decodeReps(ex.Reps)
		if err != nil {
			return nil, fmt.Errorf("generator: exercise %q: %w", *ex.Name, err)
		}
		exercises = append(exercises, ports.GeneratedExercise{
			Name: strings.TrimSpace(*ex.Name),
			Reps: reps,
			Sets: *ex.Sets,
		})
	}

	return &ports.GeneratedPlan{
		CardioMinutes:          *wire.CardioMinutes,
		CardioPlacement:        placement,
		Exercises:              exercises,
		PlannedDurationMinutes: *wire.PlannedDurationMinutes,
	}, nil
}

// decodeReps accepts "8-12" as well as a bare number
func decodeReps(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("missing reps")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", errors.New("empty reps")
		}
		return strings.TrimSpace(s), nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("reps must be a string or integer: %s", raw)
	}
	return strconv.Itoa(n), nil
}
