package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// parseExerciseFlag parses NAME[:SETSxREPS], e.g. "Bench Press:4x8" or "Plank:3x45s"
func parseExerciseFlag(flag string) (name string, sets int, reps string, err error) {
	name, volume, found := strings.Cut(flag, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, "", fmt.Errorf("%w: exercise %q has no name", domain.ErrInvalidPlan, flag)
	}
	if !found {
		return name, 0, "", nil
	}

	setsText, reps, _ := strings.Cut(strings.TrimSpace(volume), "x")
	if setsText != "" {
		sets, err = strconv.Atoi(setsText)
		if err != nil || sets < 0 {
			return "", 0, "", fmt.Errorf("%w: exercise %q has invalid sets %q", domain.ErrInvalidPlan, flag, setsText)
		}
	}
	return name, sets, strings.TrimSpace(reps), nil
}

func ratingText(run domain.SessionRun) string {
	if run.SelfRating10 == 0 && run.Stars5 == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/10 %s", run.SelfRating10, strings.Repeat("★", run.Stars5))
}
