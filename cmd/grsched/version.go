package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/njt/grsched/internal/plugin"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// versionTable renders the version report as a markdown table
func versionTable() string {
	rows := [][2]string{
		{"grsched", buildVersion()},
		{"go", runtime.Version()},
		{"os", runtime.GOOS + "/" + runtime.GOARCH},
	}

	var b strings.Builder
	b.WriteString("| name | version |\n")
	b.WriteString("|------|---------|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r[0], r[1])
	}
	return b.String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), versionTable())
		return err
	},
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List available plugins",
	Long:  `List all available grsched-* plugins in PATH`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plugins, err := plugin.ListPlugins()
		if err != nil {
			return fmt.Errorf("failed to list plugins: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(plugins) == 0 {
			fmt.Fprintln(out, "No plugins found in PATH")
			return nil
		}

		fmt.Fprintln(out, "Available plugins:")
		for _, p := range plugins {
			fmt.Fprintf(out, "  - %s (%s)\n", p.Name, p.Path)
		}

		return nil
	},
}
