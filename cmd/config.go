package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"studyctl/pkg/config"
	"studyctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage studyctl configuration",
	Long:  "View or edit your local configuration settings (server URL, session cookie, default filters).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		changed := false

		if flags.Changed("set-server") {
			server, _ := flags.GetString("set-server")
			u, err := url.Parse(strings.TrimSpace(server))
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("server must be an absolute http(s) URL, got %q", server)
			}
			cfg.ServerURL = strings.TrimRight(u.String(), "/")
			changed = true
		}
		if flags.Changed("set-session") {
			cfg.SessionCookie, _ = flags.GetString("set-session")
			changed = true
		}
		if flags.Changed("set-cookie-name") {
			cfg.CookieName, _ = flags.GetString("set-cookie-name")
			changed = true
		}
		if flags.Changed("set-types") {
			cfg.TypeFilters, _ = flags.GetStringSlice("set-types")
			changed = true
		}
		if flags.Changed("set-course-filter") {
			cfg.CourseFilter, _ = flags.GetString("set-course-filter")
			changed = true
		}
		if flags.Changed("set-limit") {
			cfg.UpcomingLimit, _ = flags.GetInt("set-limit")
			changed = true
		}

		if changed {
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✅ Configuration saved (server: %s)\n", cfg.Server())
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-server", "", "Set the server base URL")
	configCmd.Flags().String("set-session", "", "Set the session cookie value copied from your browser")
	configCmd.Flags().String("set-cookie-name", "", "Set the session cookie name")
	configCmd.Flags().StringSlice("set-types", nil, "Set the event types shown by default")
	configCmd.Flags().String("set-course-filter", "", "Set the default course filter")
	configCmd.Flags().Int("set-limit", 0, "Set how many upcoming events to show")
}
