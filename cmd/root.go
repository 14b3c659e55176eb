package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"studyctl/pkg/config"
	"studyctl/pkg/logging"
	"studyctl/pkg/studyflow"
	"studyctl/pkg/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serverURL string
	verbose   bool
	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:   "studyctl",
	Short: "A CLI and TUI for the Studyflow study planner",
	Long: `studyctl is a terminal client for the Studyflow study planner.
Browse your calendar, manage courses, track deadlines and plan
self-study sessions without leaving the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server base URL (overrides config and STUDYCTL_SERVER)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
}

// reportedError marks failures the controllers already showed to the user
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

// newApp loads the configuration and connects to the server
func newApp() (*tui.App, error) {
	cfg, err := config.LoadWithEnv()
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.ServerURL = strings.TrimRight(serverURL, "/")
	}

	logger := logging.New(verbose)
	client := tui.Connect(cfg, logger)
	logger.Debug("client ready", zap.String("server", client.BaseURL()))

	app := tui.NewApp(client, cfg, logger)
	app.Dialog = tui.NewDialog(assumeYes)
	app.ServerOverride = serverURL
	return app, nil
}

// timeFlag reads an optional date-time flag; unset yields the zero time
func timeFlag(cmd *cobra.Command, name string) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(v) == "" {
		return time.Time{}, nil
	}
	t, err := studyflow.ParseLocal(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return t, nil
}

// idArg parses the positional id at position i
func idArg(args []string, i int, what string) (int64, error) {
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, args[i])
	}
	return id, nil
}
