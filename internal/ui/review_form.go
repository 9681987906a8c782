package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/logging"
	"github.com/siphenumerouno-hash/MetroGym-app/internal/services"
)

// Starting values of the rating selectors
const (
	initialRating = 8
	initialStars  = 4
)

// ReviewFormResult contains the result of the review form
type ReviewFormResult struct {
	Cancelled bool
	Error     error
	Post      *domain.CommunityPost
	Run       domain.SessionRun
}

// ReviewForm collects the post-session self assessment and optionally
// shares the run to the community feed. The run is already recorded;
// cancelling only skips the review.
type ReviewForm struct {
	Completed bool
	caption   string
	comment   string
	feed      *services.CommunityFeed
	form      *huh.Form
	history   *services.RunHistory
	publish   bool
	rating    int
	result    ReviewFormResult
	stars     int
}

// NewReviewForm creates a review form for run
func NewReviewForm(history *services.RunHistory, feed *services.CommunityFeed, run domain.SessionRun) *ReviewForm {
	rf := &ReviewForm{
		feed:    feed,
		history: history,
		rating:  initialRating,
		result:  ReviewFormResult{Run: run},
		stars:   initialStars,
	}

	rf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How did it feel?").
				Description("Self rating, 0 to 10").
				Options(rangeOptions(domain.MaxSelfRating, func(i int) string { return strconv.Itoa(i) })...).
				Value(&rf.rating),
			huh.NewSelect[int]().
				Title("Stars").
				Options(rangeOptions(domain.MaxStars, starLabel)...).
				Value(&rf.stars),
			huh.NewText().
				Title("Notes").
				CharLimit(500).
				Value(&rf.comment),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Share to the community feed?").
				Value(&rf.publish),
			huh.NewInput().
				Title("Caption").
				Placeholder(domain.DefaultCaption).
				CharLimit(140).
				Value(&rf.caption),
		),
	)

	return rf
}

func rangeOptions(upper int, label func(int) string) []huh.Option[int] {
	options := make([]huh.Option[int], 0, upper+1)
	for i := 0; i <= upper; i++ {
		options = append(options, huh.NewOption(label(i), i))
	}
	return options
}

func starLabel(n int) string {
	if n == 0 {
		return "no stars"
	}
	return fmt.Sprintf("%s (%d)", strings.Repeat("★", n), n)
}

func (rf *ReviewForm) Init() tea.Cmd {
	return rf.form.Init()
}

func (rf *ReviewForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			rf.result.Cancelled = true
			rf.Completed = true
			return rf, nil
		}
	}

	form, cmd := rf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		rf.form = f
	}

	if rf.form.State == huh.StateCompleted {
		rf.Completed = true
		if err := rf.submit(context.Background()); err != nil {
			logging.Logger.Error("Failed to save review", "error", err)
			rf.result.Error = err
		}
		return rf, nil
	}

	return rf, cmd
}

func (rf *ReviewForm) View() string {
	if rf.form != nil {
		return rf.form.View()
	}
	return ""
}

// Result returns the form result
func (rf *ReviewForm) Result() ReviewFormResult {
	return rf.result
}

// Run returns the run being reviewed, including any saved review
func (rf *ReviewForm) Run() domain.SessionRun {
	return rf.result.Run
}

// submit stores the review, then publishes when asked
func (rf *ReviewForm) submit(ctx context.Context) error {
	review := domain.RunReview{Comment: rf.comment, Rating: rf.rating, Stars: rf.stars}
	reviewed, err := rf.history.Review(ctx, rf.result.Run.ID, review)
	if err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	rf.result.Run = *reviewed

	if !rf.publish {
		return nil
	}
	post, err := rf.feed.Publish(ctx, *reviewed, rf.caption)
	if err != nil {
		return fmt.Errorf("failed to publish run: %w", err)
	}
	rf.result.Post = post
	return nil
}
