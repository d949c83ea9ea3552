package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flightops/app"
	"github.com/kilianp07/flightops/pkg/report"
)

var outputFormat string

type textCSV interface {
	WriteText(io.Writer) error
	WriteCSV(io.Writer) error
}

var reportCmd = &cobra.Command{
	Use:       "report flights|runways|crew",
	Short:     "Print a status report",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"flights", "runways", "crew"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(_ context.Context, svc *app.Service) error {
			var rep textCSV
			switch args[0] {
			case "flights":
				rep = report.Flights(svc.Flights())
			case "runways":
				rep = report.Runways(svc.Runways())
			default:
				rep = report.Crew(svc.Crew(), svc.Config().MaxDutyMinutes)
			}
			out := cmd.OutOrStdout()
			switch outputFormat {
			case "text":
				return rep.WriteText(out)
			case "csv":
				return rep.WriteCSV(out)
			case "json":
				return report.WriteJSON(out, rep)
			}
			return fmt.Errorf("unknown format %q", outputFormat)
		})
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the schedule view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(_ context.Context, svc *app.Service) error {
			return writeSchedule(cmd, report.Schedule(svc.Flights(), svc.Crew()))
		})
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Print the notification feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(_ context.Context, svc *app.Service) error {
			for _, n := range svc.Notifications() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %-7s  %s\n", n.Timestamp, n.Severity(), n.Message); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func writeSchedule(cmd *cobra.Command, rows []report.ScheduleRow) error {
	out := cmd.OutOrStdout()
	switch outputFormat {
	case "text":
		return report.WriteScheduleText(out, rows)
	case "csv":
		return report.WriteScheduleCSV(out, rows)
	case "json":
		return report.WriteJSON(out, rows)
	}
	return fmt.Errorf("unknown format %q", outputFormat)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, csv or json")
	rootCmd.AddCommand(reportCmd, scheduleCmd, notificationsCmd)
}
