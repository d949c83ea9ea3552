package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flightops/app"
	"github.com/kilianp07/flightops/core/scheduling"
	"github.com/kilianp07/flightops/pkg/report"
)

var allocateCmd = &cobra.Command{
	Use:       "allocate [runways|crew|all]",
	Short:     "Run the runway and/or crew allocator",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"runways", "crew", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "all"
		if len(args) == 1 {
			target = args[0]
		}
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			var passes []scheduling.PassResult
			switch target {
			case "runways":
				passes = append(passes, svc.AssignRunways(ctx))
			case "crew":
				passes = append(passes, svc.ScheduleCrew(ctx))
			default:
				rp, cp := svc.Allocate(ctx)
				passes = append(passes, rp, cp)
			}
			printPasses(cmd, passes...)
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:       "clear runways|crew",
	Short:     "Release every runway or crew assignment",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"runways", "crew"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			if args[0] == "runways" {
				svc.ClearRunwayAssignments(ctx)
			} else {
				svc.ClearCrewAssignments(ctx)
			}
			return nil
		})
	},
}

var disruptCmd = &cobra.Command{
	Use:   "disrupt",
	Short: "Inject a disruption",
}

var weatherMinutes int

var disruptWeatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Delay a random flight",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			f, err := svc.WeatherDelay(ctx, weatherMinutes)
			if err != nil {
				return err
			}
			return report.WriteJSON(cmd.OutOrStdout(), f)
		})
	},
}

var disruptEmergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Insert an emergency arrival and reallocate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			f, err := svc.EmergencyInsert(ctx)
			if err != nil {
				return err
			}
			return report.WriteJSON(cmd.OutOrStdout(), f)
		})
	},
}

var disruptCancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel a flight, chosen at random when no id is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			var err error
			var f any
			if len(args) == 1 {
				f, err = svc.CancelFlightID(ctx, args[0])
			} else {
				f, err = svc.CancelFlight(ctx)
			}
			if err != nil {
				return err
			}
			return report.WriteJSON(cmd.OutOrStdout(), f)
		})
	},
}

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule",
	Short: "Reset every assignment and rerun both allocators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			rp, cp, err := svc.Reschedule(ctx)
			if err != nil {
				return err
			}
			printPasses(cmd, rp, cp)
			return nil
		})
	},
}

func printPasses(cmd *cobra.Command, passes ...scheduling.PassResult) {
	out := cmd.OutOrStdout()
	for _, p := range passes {
		_, _ = fmt.Fprintf(out, "%s pass %s: %d assigned, %d failed\n", p.Kind, p.ID, len(p.Assignments), len(p.Failures))
		for _, a := range p.Assignments {
			_, _ = fmt.Fprintf(out, "  %s -> %d\n", a.FlightID, a.ResourceID)
		}
		for _, f := range p.Failures {
			_, _ = fmt.Fprintf(out, "  %s delayed %d minutes\n", f.FlightID, f.PenaltyMinutes)
		}
	}
}

func init() {
	disruptWeatherCmd.Flags().IntVarP(&weatherMinutes, "minutes", "m", 30, "delay in minutes")
	disruptCmd.AddCommand(disruptWeatherCmd, disruptEmergencyCmd, disruptCancelCmd)
	rootCmd.AddCommand(allocateCmd, clearCmd, disruptCmd, rescheduleCmd)
}
