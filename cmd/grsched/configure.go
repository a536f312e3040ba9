package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/njt/grsched/internal/output"
	"github.com/njt/grsched/libgaroon"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the Garoon subdomain and credentials",
	Long: `Store the Garoon subdomain and the login credential used for the X-Cybozu-Authorization header.
Values not given as flags are prompted for; the password is read without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configMgr.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		subdomain, _ := cmd.Flags().GetString("subdomain")
		basicAuth, _ := cmd.Flags().GetString("basic-auth")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		in := bufio.NewReader(cmd.InOrStdin())
		prompts := cmd.ErrOrStderr()

		if subdomain == "" {
			subdomain, err = prompt(prompts, in, "Subdomain", config.Subdomain)
			if err != nil {
				return err
			}
		}
		if _, err := libgaroon.BaseURL(subdomain); err != nil {
			return err
		}

		if basicAuth == "" {
			login, err := prompt(prompts, in, "Login name", "")
			if err != nil {
				return err
			}
			password, err := readPassword(prompts, cmd.InOrStdin(), in)
			if err != nil {
				return err
			}
			basicAuth = libgaroon.EncodeBasicAuth(login, password)
		}
		if _, err := libgaroon.DecodeBasicAuth(basicAuth); err != nil {
			return fmt.Errorf("invalid credential: %w", err)
		}

		config.Subdomain = strings.TrimSpace(subdomain)
		config.BasicAuth = strings.TrimSpace(basicAuth)

		if err := configMgr.Save(config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		msg := fmt.Sprintf("Configuration saved to %s", configMgr.Path())
		if jsonOutput {
			return output.WriteJSON(cmd.OutOrStdout(), output.FormatActionResponse(true, msg))
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

// prompt asks for a value on w and reads one line. An empty answer keeps current.
func prompt(w io.Writer, in *bufio.Reader, label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(w, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(w, "%s: ", label)
	}

	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}

	value := strings.TrimSpace(line)
	if value == "" {
		value = current
	}
	if value == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return value, nil
}

// readPassword reads without echo from a terminal, or a plain line when input is piped
func readPassword(w io.Writer, stdin io.Reader, in *bufio.Reader) (string, error) {
	fmt.Fprint(w, "Password: ")

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Manage grsched configuration settings`,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long:  `Set configuration values like the subdomain, listing window and request pacing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configMgr.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("subdomain") {
			subdomain, _ := flags.GetString("subdomain")
			if _, err := libgaroon.BaseURL(subdomain); err != nil {
				return err
			}
			config.Subdomain = subdomain
		}
		if flags.Changed("base-url") {
			config.BaseURL, _ = flags.GetString("base-url")
		}
		if flags.Changed("window-days") {
			days, _ := flags.GetInt("window-days")
			if days <= 0 {
				return fmt.Errorf("window days must be positive, got %d", days)
			}
			config.WindowDays = days
		}
		if flags.Changed("rate-limit") {
			config.RateLimit, _ = flags.GetFloat64("rate-limit")
		}
		if flags.Changed("retry-count") {
			config.RetryCount, _ = flags.GetInt("retry-count")
		}
		if flags.Changed("timeout") {
			config.Timeout, _ = flags.GetDuration("timeout")
		}

		if err := configMgr.Save(config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved successfully!")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display current configuration settings. The credential is masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configMgr.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file: %s\n", configMgr.Path())
		fmt.Fprintf(out, "Subdomain: %s\n", config.Subdomain)
		if config.BaseURL != "" {
			fmt.Fprintf(out, "Base URL: %s\n", config.BaseURL)
		}
		fmt.Fprintf(out, "Basic auth: %s\n", libgaroon.MaskCredential(config.BasicAuth))
		if login, err := libgaroon.DecodeBasicAuth(config.BasicAuth); err == nil {
			fmt.Fprintf(out, "Login name: %s\n", login)
		}
		fmt.Fprintf(out, "Window days: %d\n", config.WindowDays)
		fmt.Fprintf(out, "Rate limit: %g req/s\n", config.RateLimit)
		fmt.Fprintf(out, "Retry count: %d\n", config.RetryCount)
		fmt.Fprintf(out, "Timeout: %s\n", config.Timeout)

		return nil
	},
}

func init() {
	configureCmd.Flags().String("subdomain", "", "Garoon subdomain ({subdomain}.cybozu.com)")
	configureCmd.Flags().String("basic-auth", "", "Base64 encoded 'login-name:password'")
	configureCmd.Flags().Bool("json", false, "Output as JSON")

	configSetCmd.Flags().String("subdomain", "", "Garoon subdomain")
	configSetCmd.Flags().String("base-url", "", "API root replacing the subdomain URL (on-premise installs)")
	configSetCmd.Flags().Int("window-days", libgaroon.DefaultWindowDays, "Default number of days listed by 'events'")
	configSetCmd.Flags().Float64("rate-limit", 5, "Maximum API requests per second (0 disables pacing)")
	configSetCmd.Flags().Int("retry-count", 3, "Retries for failed requests")
	configSetCmd.Flags().Duration("timeout", 30*time.Second, "Request timeout")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
