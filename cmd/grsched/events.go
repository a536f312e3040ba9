package main

import (
	"fmt"
	"time"

	"github.com/njt/grsched/internal/dateparse"
	"github.com/njt/grsched/internal/log"
	"github.com/njt/grsched/internal/output"
	"github.com/njt/grsched/internal/render"
	"github.com/njt/grsched/libgaroon"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events",
	Long: `List the events of a window of days starting at midnight of --since (default today).
Accepts natural language dates such as "tomorrow" or "next monday".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlags(cmd)
		if err != nil {
			return err
		}

		client, config, err := loadClient()
		if err != nil {
			return err
		}

		since, _ := cmd.Flags().GetString("since")
		days, _ := cmd.Flags().GetInt("days")
		all, _ := cmd.Flags().GetBool("all")
		userID, _ := cmd.Flags().GetString("user")
		orgID, _ := cmd.Flags().GetString("org")

		now := time.Now()
		start, err := dateparse.Since(since, now)
		if err != nil {
			return fmt.Errorf("invalid --since date: %w", err)
		}
		if days <= 0 {
			days = config.WindowDays
		}

		q := libgaroon.EventQuery{
			Start:        start,
			Days:         days,
			User:         userID,
			Organization: orgID,
		}

		ctx := cmd.Context()
		var (
			events  []*libgaroon.Event
			hasMore bool
		)
		if all {
			events, err = client.FetchAllEvents(ctx, q)
		} else {
			events, hasMore, err = client.FetchEventWindow(ctx, q)
		}
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		log.Info("listed events", "count", len(events), "more", hasMore)
		now = render.ReferenceTime(events, now)

		out := cmd.OutOrStdout()
		switch format {
		case output.FormatICS:
			return render.WriteICS(out, events, client.Host(), now)
		case output.FormatJSON, output.FormatYAML:
			return output.Write(out, format, output.FormatListResponse(events, len(events), hasMore))
		}

		if len(events) == 0 {
			fmt.Fprintln(out, "No events found")
			return nil
		}

		if err := render.RenderTable(out, events, now); err != nil {
			return err
		}
		output.PrintMoreHint(out, hasMore)

		return nil
	},
}

// formatFlags reads the mutually exclusive --json/--yaml/--ics flags a command registered
func formatFlags(cmd *cobra.Command) (output.Format, error) {
	var opts output.Options
	flags := cmd.Flags()
	if flags.Lookup("json") != nil {
		opts.JSON, _ = flags.GetBool("json")
	}
	if flags.Lookup("yaml") != nil {
		opts.YAML, _ = flags.GetBool("yaml")
	}
	if flags.Lookup("ics") != nil {
		opts.ICS, _ = flags.GetBool("ics")
	}
	return opts.Format()
}

func init() {
	eventsCmd.Flags().String("since", "", "First day of the window (default today)")
	eventsCmd.Flags().Int("days", 0, "Number of days to list (default from config, 7)")
	eventsCmd.Flags().Bool("all", false, "Page through every event in the window")
	eventsCmd.Flags().String("user", "", "List the schedule of this user ID")
	eventsCmd.Flags().String("org", "", "List the schedule of this organization ID")
	eventsCmd.Flags().Bool("json", false, "Output as JSON")
	eventsCmd.Flags().Bool("yaml", false, "Output as YAML")
	eventsCmd.Flags().Bool("ics", false, "Output as iCalendar")
}
