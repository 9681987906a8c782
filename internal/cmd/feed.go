package cmd

import (
	"context"
	"fmt"

	"github.com/siphenumerouno-hash/MetroGym-app/internal/domain"
)

// FeedCmd browses and shares to the community feed
type FeedCmd struct {
	Like    FeedLikeCmd    `cmd:"like" help:"Like a post"`
	List    FeedListCmd    `cmd:"list" help:"List community posts, newest first" default:"1"`
	Publish FeedPublishCmd `cmd:"publish" help:"Share a completed run"`
}

// FeedListCmd lists posts
type FeedListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of posts to show (0 = all)" default:"20"`
}

// Run executes the list command
func (f *FeedListCmd) Run(cli *CLI) error {
	posts := cli.Container.Feed.List()
	if f.Limit > 0 && len(posts) > f.Limit {
		posts = posts[:f.Limit]
	}
	if f.Format == "json" {
		return printJSON(cli.out(), posts)
	}

	if len(posts) == 0 {
		fmt.Fprintln(cli.out(), "The feed is empty")
		return nil
	}

	w := newTable(cli.out())
	fmt.Fprintln(w, "ID\tUSER\tWORKOUT\tDURATION\tSTATUS\tLIKES\tCAPTION")
	for _, post := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s %s\t%d\t%s\n",
			post.ID, post.UserName, post.WorkoutType, post.Duration,
			post.EndedStatus.Symbol(), post.EndedStatus.Label(), post.LikesCount, post.Caption)
	}
	return w.Flush()
}

// FeedPublishCmd shares a run
type FeedPublishCmd struct {
	Caption string `help:"Post caption" default:""`
	RunID   string `arg:"" help:"Run ID (defaults to the latest run)" optional:""`
}

// Run executes the publish command
func (f *FeedPublishCmd) Run(cli *CLI) error {
	var run *domain.SessionRun
	if f.RunID == "" {
		runs := cli.Container.History.List("")
		if len(runs) == 0 {
			return fmt.Errorf("%w: no runs to share", domain.ErrRunNotFound)
		}
		run = &runs[0]
	} else {
		found, err := cli.Container.History.Get(f.RunID)
		if err != nil {
			return err
		}
		run = found
	}

	post, err := cli.Container.Feed.Publish(context.Background(), *run, f.Caption)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out(), "Posted %s: %q\n", post.ID, post.Caption)
	return nil
}

// FeedLikeCmd likes a post
type FeedLikeCmd struct {
	PostID string `arg:"" help:"Post ID"`
}

// Run executes the like command
func (f *FeedLikeCmd) Run(cli *CLI) error {
	if err := cli.Container.Feed.Like(context.Background(), f.PostID); err != nil {
		return err
	}

	for _, post := range cli.Container.Feed.List() {
		if post.ID == f.PostID {
			fmt.Fprintf(cli.out(), "Liked %s (%d likes)\n", post.ID, post.LikesCount)
			return nil
		}
	}
	fmt.Fprintf(cli.out(), "No post %s\n", f.PostID)
	return nil
}
