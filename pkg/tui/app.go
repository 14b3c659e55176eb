package tui

import (
	"errors"
	"fmt"
	"strings"

	"studyctl/pkg/config"
	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	// These act as fallbacks initially, but should ideally be dynamically instantiated by GetTheme()
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// GetTheme loads the user's saved accent color and constructs the UI theme.
func GetTheme() *huh.Theme {
	cfg, err := config.Load()
	baseColor := "99"

	if err == nil && cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Update the global lipgloss accent so manual CLI print statements also receive the color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a new huh.Theme instantiated with the provided lipgloss color string.
// This is used for live-previewing styles before they are officially saved.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Directory = t.Focused.Directory.Foreground(p)
	t.Focused.File = t.Focused.File.Foreground(p)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// App bundles what every screen needs: the server client, the loaded
// configuration and the diagnostic logger.
type App struct {
	Client *studyflow.Client
	Config *config.AppConfig
	Logger *zap.Logger
	Dialog *Dialog

	// ServerOverride replaces the configured server after every config reload
	ServerOverride string
}

// Connect creates the server client described by cfg.
func Connect(cfg *config.AppConfig, logger *zap.Logger) *studyflow.Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []studyflow.Option{studyflow.WithLogger(logger)}
	if cfg.SessionCookie != "" {
		opts = append(opts, studyflow.WithSession(cfg.Cookie(), cfg.SessionCookie))
	}
	return studyflow.NewClient(cfg.Server(), opts...)
}

// ReloadConfig reads the configuration again and reconnects, so changed
// server or session settings apply to the following screens.
func (a *App) ReloadConfig() error {
	cfg, err := config.LoadWithEnv()
	if err != nil {
		return err
	}
	if a.ServerOverride != "" {
		cfg.ServerURL = strings.TrimRight(a.ServerOverride, "/")
	}
	a.Config = cfg
	a.Client = Connect(cfg, a.Logger)
	return nil
}

// NewApp creates the interactive application.
func NewApp(client *studyflow.Client, cfg *config.AppConfig, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		Client: client,
		Config: cfg,
		Logger: logger,
		Dialog: NewDialog(false),
	}
}

// RunTUI launches the main menu and returns when the user quits
func (a *App) RunTUI() error {
	for {
		var action string

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Description(fmt.Sprintf("Connected to %s", a.Client.BaseURL())).
					Options(
						huh.NewOption("📅 Calendar", "calendar"),
						huh.NewOption("📚 Courses", "courses"),
						huh.NewOption("⏰ Deadlines & Self-Study", "deadlines"),
						huh.NewOption("🔜 Upcoming Events", "upcoming"),
						huh.NewOption("📥 Import Calendar (.ics)", "upload"),
						huh.NewOption("📤 Export Calendar (.ics)", "export"),
						huh.NewOption("⚙️ Settings", "config"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "calendar":
			err = a.RunCalendarTUI()
		case "courses":
			err = a.RunCoursesTUI()
		case "deadlines":
			err = a.runDeadlinesForSelectedCourse()
		case "upcoming":
			err = a.RunUpcomingTUI()
		case "upload":
			err = a.RunUploadTUI()
		case "export":
			err = a.RunExportTUI()
		case "config":
			err = RunConfigTUI()
			if err == nil {
				if reloadErr := a.ReloadConfig(); reloadErr != nil {
					a.Logger.Warn("reloading config failed", zap.Error(reloadErr))
				}
			}
		default:
			return nil
		}

		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			return err
		}
	}
}

// RunUpcomingTUI prints the next events
func (a *App) RunUpcomingTUI() error {
	ctrl := planner.NewCalendarController(a.Client, a.Dialog, a.Logger, nil)

	var events []studyflow.UpcomingEvent
	spin("Fetching upcoming events...", func() {
		events, _ = ctrl.LoadUpcoming(a.Config.Limit())
	})

	fmt.Fprintln(outWriter, accentStyle.Render("\n--- Upcoming ---"))
	planner.RenderUpcoming(outWriter, events)
	fmt.Fprintln(outWriter)
	return nil
}
