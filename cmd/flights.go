package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flightops/app"
	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/registry"
	"github.com/kilianp07/flightops/core/timeofday"
	"github.com/kilianp07/flightops/pkg/report"
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Manage flights",
}

var addFlags struct {
	id, origin, destination, aircraft, departure, priority string
	duration                                               int
	cargo                                                  bool
}

var flightsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a flight",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dep, err := timeofday.Parse(addFlags.departure)
		if err != nil {
			return err
		}
		prio, err := model.ParsePriority(addFlags.priority)
		if err != nil {
			return err
		}
		spec := registry.FlightSpec{
			ID:              addFlags.id,
			Origin:          addFlags.origin,
			Destination:     addFlags.destination,
			AircraftType:    addFlags.aircraft,
			Departure:       dep,
			DurationMinutes: addFlags.duration,
			Priority:        prio,
			Cargo:           addFlags.cargo,
		}
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			f, err := svc.AddFlight(ctx, spec)
			if err != nil {
				return err
			}
			return report.WriteJSON(cmd.OutOrStdout(), f)
		})
	},
}

var flightsLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Show the schedule of every flight",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(_ context.Context, svc *app.Service) error {
			return writeSchedule(cmd, report.Schedule(svc.Flights(), svc.Crew()))
		})
	},
}

var flightsSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find flights whose id contains text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(_ context.Context, svc *app.Service) error {
			found := svc.SearchFlights(args[0])
			if len(found) == 0 {
				return fmt.Errorf("no flight matches %q", args[0])
			}
			return writeSchedule(cmd, report.Schedule(found, svc.Crew()))
		})
	},
}

var flightsDelayCmd = &cobra.Command{
	Use:   "delay <id> <minutes>",
	Short: "Delay a flight",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("minutes: %w", err)
		}
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			f, err := svc.DelayFlight(ctx, args[0], minutes)
			if err != nil {
				return err
			}
			return report.WriteJSON(cmd.OutOrStdout(), f)
		})
	},
}

var flightsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a flight",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			return svc.DeleteFlight(ctx, args[0])
		})
	},
}

func init() {
	f := flightsAddCmd.Flags()
	f.StringVar(&addFlags.id, "id", "", "flight id")
	f.StringVar(&addFlags.origin, "origin", "", "origin airport")
	f.StringVar(&addFlags.destination, "dest", "", "destination airport")
	f.StringVar(&addFlags.aircraft, "aircraft", "", "aircraft type, e.g. Boeing737")
	f.StringVar(&addFlags.departure, "departure", "", "departure time HH:MM")
	f.IntVar(&addFlags.duration, "duration", 0, "block time in minutes")
	f.StringVar(&addFlags.priority, "priority", "domestic", "emergency, international or domestic")
	f.BoolVar(&addFlags.cargo, "cargo", false, "cargo flight")
	for _, name := range []string{"id", "origin", "dest", "aircraft", "departure", "duration"} {
		_ = flightsAddCmd.MarkFlagRequired(name)
	}

	flightsCmd.AddCommand(flightsAddCmd, flightsLsCmd, flightsSearchCmd, flightsDelayCmd, flightsRmCmd)
	rootCmd.AddCommand(flightsCmd)
}
