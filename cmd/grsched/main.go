package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/njt/grsched/internal/log"
	"github.com/njt/grsched/internal/plugin"
	"github.com/njt/grsched/libgaroon"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configEnv names the config file for grsched and its plugins when --config is not given
const configEnv = libgaroon.EnvPrefix + "_CONFIG"

// Exit codes follow the errno values the command line has always used.
const (
	exitOK        = 0
	exitFailure   = 1
	exitNotFound  = 2  // ENOENT
	exitTransport = 13 // EACCES
)

var (
	configMgr *libgaroon.ConfigManager
	rootCmd   = &cobra.Command{
		Use:   "grsched",
		Short: "Garoon schedule CLI tool",
		Long:  `grsched reads schedules, users and organizations from Cybozu Garoon and shows them in the terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetLevel(logLevel(cmd.Flags()))

			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = os.Getenv(configEnv)
			}

			var err error
			configMgr, err = libgaroon.NewConfigManager(path)
			if err != nil {
				return fmt.Errorf("failed to initialize config manager: %w", err)
			}
			log.Debug("using config", "path", configMgr.Path())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, show help
			if len(args) == 0 {
				return cmd.Help()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.grsched/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log API requests and other diagnostics")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(orgsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pluginsCmd)
}

// logLevel resolves --debug, --quiet and -v. --debug wins over --quiet.
func logLevel(flags *pflag.FlagSet) log.Level {
	debug, _ := flags.GetBool("debug")
	quiet, _ := flags.GetBool("quiet")
	verbose, _ := flags.GetCount("verbose")

	switch {
	case debug || verbose >= 2:
		return log.LevelDebug
	case quiet:
		return log.LevelError
	case verbose == 1:
		return log.LevelInfo
	default:
		return log.LevelWarn
	}
}

// loadClient reads the configuration and builds an API client from it
func loadClient() (*libgaroon.Client, *libgaroon.Config, error) {
	config, err := configMgr.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	opts := config.ClientOptions()
	opts.Logger = log.HTTPLogger{}

	client, err := libgaroon.NewClient(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	log.Debug("client ready", "baseURL", client.BaseURL())
	return client, config, nil
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	if errors.Is(err, libgaroon.ErrNotFound) {
		return exitNotFound
	}

	var transportErr *libgaroon.TransportError
	if errors.As(err, &transportErr) {
		return exitTransport
	}

	return exitFailure
}

// isKnownCommand reports whether name is handled by cobra rather than a plugin
func isKnownCommand(name string) bool {
	switch name {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return false
}

// runPlugin executes grsched-<name> when it exists. handled is false when
// there is no such plugin and cobra should report the unknown command.
func runPlugin(ctx context.Context, name string, args []string) (code int, handled bool) {
	if _, err := plugin.FindPlugin(name); err != nil {
		return exitFailure, false
	}

	env := []string{libgaroon.EnvPrefix + "_VERSION=" + buildVersion()}
	if os.Getenv(configEnv) == "" {
		if path, err := libgaroon.DefaultConfigPath(); err == nil {
			env = append(env, configEnv+"="+path)
		}
	}

	log.Debug("dispatching to plugin", "plugin", plugin.Prefix+name)
	if err := plugin.ExecutePlugin(ctx, name, args, env...); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), true
		}
		log.Error("plugin failed", err, "plugin", plugin.Prefix+name)
		return exitFailure, true
	}
	return exitOK, true
}

func run(ctx context.Context, args []string) int {
	// Check if we should try to execute a plugin
	if len(args) > 0 {
		name := args[0]
		if name != "" && !strings.HasPrefix(name, "-") && !isKnownCommand(name) {
			if code, handled := runPlugin(ctx, name, args[1:]); handled {
				return code
			}
		}
	}

	rootCmd.SetArgs(args)
	return exitCode(rootCmd.ExecuteContext(ctx))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
