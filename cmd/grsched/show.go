package main

import (
	"context"
	"fmt"
	"time"

	"github.com/njt/grsched/internal/output"
	"github.com/njt/grsched/internal/render"
	"github.com/njt/grsched/libgaroon"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <event-id|next>...",
	Short: "Show event details",
	Long: `Show events as markdown documents. "next" shows the first timed event of today
that has not started yet, for yourself or the --user/--org given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := loadClient()
		if err != nil {
			return err
		}

		userID, _ := cmd.Flags().GetString("user")
		orgID, _ := cmd.Flags().GetString("org")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		markdown, _ := cmd.Flags().GetBool("markdown")

		ctx := cmd.Context()
		now := time.Now()

		var events []*libgaroon.Event
		for _, id := range args {
			var (
				event *libgaroon.Event
				err   error
			)
			if id == "next" {
				event, err = nextEvent(ctx, client, libgaroon.EventQuery{
					Start:        now,
					Days:         1,
					User:         userID,
					Organization: orgID,
				}, now)
			} else {
				event, err = client.FetchEvent(ctx, id)
				if err != nil {
					err = fmt.Errorf("failed to get event: %w", err)
				}
			}
			if err != nil {
				return err
			}
			events = append(events, event)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if len(events) == 1 {
				return output.WriteJSON(out, events[0])
			}
			return output.WriteJSON(out, output.FormatListResponse(events, len(events), false))
		}

		opts := render.MarkdownOptions{ConvertHTMLNotes: markdown, Now: now}
		for i, event := range events {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, render.Markdown(event, opts))
		}

		return nil
	},
}

// nextEvent pages through the query window and picks the first event starting after now
func nextEvent(ctx context.Context, client *libgaroon.Client, q libgaroon.EventQuery, now time.Time) (*libgaroon.Event, error) {
	events, err := client.FetchAllEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	return render.NextEvent(events, now)
}

func init() {
	showCmd.Flags().String("user", "", "User ID whose next event is shown")
	showCmd.Flags().String("org", "", "Organization ID whose next event is shown")
	showCmd.Flags().Bool("json", false, "Output as JSON")
	showCmd.Flags().Bool("markdown", false, "Convert HTML notes to Markdown")
}
