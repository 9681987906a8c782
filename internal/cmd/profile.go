package cmd

import (
	"fmt"
)

// ProfileCmd shows the user profile
type ProfileCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the profile command
func (p *ProfileCmd) Run(cli *CLI) error {
	user := cli.Container.State.User()
	if p.Format == "json" {
		return printJSON(cli.out(), user)
	}

	out := cli.out()
	fmt.Fprintf(out, "Name: %s\n", user.Name)
	fmt.Fprintf(out, "Discipline Score: %d\n", user.DisciplineScore)
	fmt.Fprintf(out, "Streak: %d\n", user.StreakCount)
	fmt.Fprintf(out, "Weekly Goal: %d sessions\n", user.WeeklyGoalTarget)

	if len(user.Achievements) == 0 {
		fmt.Fprintln(out, "Achievements: none yet")
		return nil
	}
	fmt.Fprintln(out, "Achievements:")
	w := newTable(out)
	for _, a := range user.Achievements {
		fmt.Fprintf(w, "  %s %s\t%s\t%s\n", a.Icon, a.Title, a.Description, a.EarnedAt.Local().Format(timeLayout))
	}
	return w.Flush()
}
