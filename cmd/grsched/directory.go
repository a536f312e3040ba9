package main

import (
	"fmt"

	"github.com/njt/grsched/internal/output"
	"github.com/njt/grsched/internal/render"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	Long:  `List every user in the Garoon directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlags(cmd)
		if err != nil {
			return err
		}

		client, _, err := loadClient()
		if err != nil {
			return err
		}

		users, err := client.FetchAllUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if format != output.FormatText {
			return output.Write(out, format, output.FormatListResponse(users, len(users), false))
		}

		if len(users) == 0 {
			fmt.Fprintln(out, "No users found")
			return nil
		}
		return render.RenderDirectory(out, render.UserHeaders, render.EntityRows(users))
	},
}

var orgsCmd = &cobra.Command{
	Use:     "orgs",
	Aliases: []string{"organizations"},
	Short:   "List organizations",
	Long:    `List every organization in the Garoon directory with its parent.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlags(cmd)
		if err != nil {
			return err
		}

		client, _, err := loadClient()
		if err != nil {
			return err
		}

		orgs, err := client.FetchAllOrganizations(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list organizations: %w", err)
		}

		out := cmd.OutOrStdout()
		if format != output.FormatText {
			return output.Write(out, format, output.FormatListResponse(orgs, len(orgs), false))
		}

		if len(orgs) == 0 {
			fmt.Fprintln(out, "No organizations found")
			return nil
		}
		return render.RenderDirectory(out, render.OrganizationHeaders, render.OrganizationRows(orgs))
	},
}

func init() {
	for _, cmd := range []*cobra.Command{usersCmd, orgsCmd} {
		cmd.Flags().Bool("json", false, "Output as JSON")
		cmd.Flags().Bool("yaml", false, "Output as YAML")
	}
}
