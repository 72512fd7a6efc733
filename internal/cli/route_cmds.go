package cli

import (
	"errors"
	"fmt"
	"time"

	"backend-greentransit/internal/auth"
	"backend-greentransit/internal/campus"
	"backend-greentransit/internal/route"

	"github.com/spf13/cobra"
)

var errNoRoute = errors.New("no route found")

func newRecommendCmd(o *options) *cobra.Command {
	var (
		start, end string
		pref       = route.DefaultPreference()
	)
	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Recommend a campus route between two locations",
		Example: `  greenctl recommend --start library --end main_gate --safety 8 --weather rainy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := pref.Validate(); err != nil {
				return err
			}
			cat, err := campus.Default()
			if err != nil {
				return err
			}
			ranked := route.Rank(cat, start, end, pref)
			if len(ranked) == 0 {
				return errNoRoute
			}
			best := ranked[0]
			if o.asJSON {
				return o.printJSON(cmd, best)
			}
			r := best.Route
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", r.Name, r.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s, %.2f km, ~%.0f min, safety %.0f/10, score %.2f\n", r.Type, r.Distance, r.EstimatedTime, r.SafetyIndex, best.Score)
			for _, z := range best.DangerZones {
				fmt.Fprintf(cmd.OutOrStdout(), "  passes %s (risk %d/10)\n", z.Name, z.RiskLevel)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Start location id")
	cmd.Flags().StringVar(&end, "end", "", "End location id")
	cmd.Flags().Float64Var(&pref.Safety, "safety", pref.Safety, "Safety weight 1-10")
	cmd.Flags().Float64Var(&pref.Eco, "eco", pref.Eco, "Eco weight 1-10")
	cmd.Flags().Float64Var(&pref.Time, "time", pref.Time, "Time weight 1-10")
	cmd.Flags().StringVar(&pref.Weather, "weather", "", "sunny, cloudy or rainy")
	cmd.Flags().StringVar(&pref.TimeOfDay, "time-of-day", "", "morning, afternoon, evening or night")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newTokenCmd(o *options) *cobra.Command {
	var (
		device string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a device token for the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := auth.IssueToken(o.cfg.JWTSecret, device, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&device, "device", "", "Device id (random when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTokenTTL, "Token lifetime")
	return cmd
}
