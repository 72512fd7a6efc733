package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"backend-greentransit/internal/emission"
	"backend-greentransit/internal/ledger"
	"backend-greentransit/internal/task"
	"backend-greentransit/internal/trip"

	"github.com/spf13/cobra"
)

func newRecordCmd(o *options) *cobra.Command {
	var (
		in   trip.Input
		mode string
		date string
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a trip",
		Example: `  greenctl record --mode walking --distance 2 --start "Main Gate" --end Library
  greenctl record --mode bus --distance 2.8 --start station --end main_gate --route-tag station_route`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Mode = emission.Mode(mode)
			if date != "" {
				at, err := parseDate(date)
				if err != nil {
					return err
				}
				in.At = at
			}
			return o.withLedger(cmd, func(l *ledger.Ledger) error {
				res, err := l.RecordTrip(cmd.Context(), in)
				if err != nil {
					return err
				}
				if o.asJSON {
					return o.printJSON(cmd, res)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s trip: +%s points, %s CO2 saved, streak %d day(s)\n",
					res.Record.Mode, formatInt(res.PointsEarned), formatKg(res.CarbonSaved), res.StreakDays)
				if res.Celebrate {
					fmt.Fprintf(cmd.OutOrStdout(), "Achievements unlocked: %v\n", res.NewlyUnlocked)
				}
				if !res.Rewards.Empty() {
					fmt.Fprintf(cmd.OutOrStdout(), "Tasks completed: %v (+%s reward points)\n", res.Rewards.Completed, formatInt(res.Rewards.Points))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(emission.Walking), "Transport mode (walking, cycling, bus, carpool, motorcycle, car)")
	cmd.Flags().Float64Var(&in.DistanceKm, "distance", 0, "Distance in km")
	cmd.Flags().StringVar(&in.Start, "start", "", "Start location")
	cmd.Flags().StringVar(&in.End, "end", "", "End location")
	cmd.Flags().StringVar(&in.RouteTag, "route-tag", "", "Route tag, e.g. station_route")
	cmd.Flags().StringVar(&in.Weather, "weather", "", "Weather during the trip (sunny, cloudy, rainy)")
	cmd.Flags().StringVar(&date, "date", "", "Trip time, RFC3339 or YYYY-MM-DD (default now)")
	return cmd
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: use RFC3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

func newProfileCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the profile and achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withLedger(cmd, func(l *ledger.Ledger) error {
				p, err := l.Profile(cmd.Context())
				if err != nil {
					return err
				}
				if o.asJSON {
					return o.printJSON(cmd, p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Score:        %s (%s trip + %s reward)\n", formatInt(p.Score()), formatInt(p.TotalPoints), formatInt(p.RewardPoints))
				fmt.Fprintf(cmd.OutOrStdout(), "CO2 saved:    %s\n", formatKg(p.TotalCarbonSaved))
				fmt.Fprintf(cmd.OutOrStdout(), "Trips:        %s\n", formatInt(p.TravelCount))
				fmt.Fprintf(cmd.OutOrStdout(), "Streak:       %d day(s)\n", p.StreakDays)
				if len(p.Badges) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Badges:       %s\n", strings.Join(p.Badges, ", "))
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "\nID\tAchievement\tProgress\tUnlocked")
				for _, a := range p.Achievements {
					fmt.Fprintf(w, "%d\t%s\t%.0f%%\t%v\n", a.ID, a.Title, a.Progress, a.Unlocked)
				}
				return w.Flush()
			})
		},
	}
}

func newTasksCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List tasks and their progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withLedger(cmd, func(l *ledger.Ledger) error {
				tasks, err := l.Tasks(cmd.Context())
				if err != nil {
					return err
				}
				if o.asJSON {
					return o.printJSON(cmd, tasks)
				}
				printTasks(cmd, tasks)
				return nil
			})
		},
	}
}

func newResetTasksCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-tasks [daily|weekly|special]...",
		Short: "Reopen tasks, all of them or only the given cadences",
		RunE: func(cmd *cobra.Command, args []string) error {
			cadences := make([]task.Cadence, 0, len(args))
			for _, a := range args {
				cadences = append(cadences, task.Cadence(strings.ToLower(a)))
			}
			return o.withLedger(cmd, func(l *ledger.Ledger) error {
				tasks, err := l.ResetTasks(cmd.Context(), cadences...)
				if err != nil {
					return err
				}
				if o.asJSON {
					return o.printJSON(cmd, tasks)
				}
				printTasks(cmd, tasks)
				return nil
			})
		},
	}
}

func printTasks(cmd *cobra.Command, tasks []task.Task) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tType\tTask\tProgress\tReward\tDone")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.0f%%\t%d\t%v\n", t.ID, t.Type, t.Title, t.Progress, t.Reward.Points, t.Completed)
	}
	_ = w.Flush()
}

func newStatsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals and transport mode share",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withLedger(cmd, func(l *ledger.Ledger) error {
				s, err := l.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if o.asJSON {
					return o.printJSON(cmd, s)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "CO2 saved: %s (about %s trees for a year)\n", formatKg(s.TotalCarbonSaved), printer.Sprintf("%.1f", s.TreesEquivalent))
				if !s.ShareAvailable {
					fmt.Fprintf(cmd.OutOrStdout(), "Mode share needs at least %d trips\n", trip.MinRecordsForShare)
					return nil
				}
				for _, m := range emission.Modes {
					if pct := s.ModeShare[m]; pct > 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %3d%%\n", m, pct)
					}
				}
				return nil
			})
		},
	}
}

func newVerifyStreakCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-streak",
		Short: "Cross-check the stored streak against the trip history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withLedger(cmd, func(l *ledger.Ledger) error {
				r, err := l.VerifyStreak(cmd.Context())
				if err != nil {
					return err
				}
				if o.asJSON {
					return o.printJSON(cmd, r)
				}
				status := "consistent"
				if !r.Consistent {
					status = "MISMATCH"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored %d, scanned %d: %s\n", r.Stored, r.Scanned, status)
				return nil
			})
		},
	}
}
