package tui

import (
	"fmt"
	"net/url"
	"strings"

	"studyctl/pkg/config"
	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Server URL", "server"),
						huh.NewOption("Set Session Cookie", "session"),
						huh.NewOption("Set Default Event Types", "types"),
						huh.NewOption("Set Default Course Filter", "course"),
						huh.NewOption("Set Upcoming Events Count", "limit"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "server":
			err = runSetServerTUI(cfg)
		case "session":
			err = runSetSessionTUI(cfg)
		case "types":
			err = runSetTypeFiltersTUI(cfg)
		case "course":
			err = runSetCourseFilterTUI(cfg)
		case "limit":
			err = runSetLimitTUI(cfg)
		case "view":
			printConfig(cfg)
		}

		if err != nil {
			return err
		}
	}
}

func printConfig(cfg *config.AppConfig) {
	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.studyctl.json) ---"))
	fmt.Printf("Server: %s\n", cfg.Server())
	if cfg.SessionCookie == "" {
		fmt.Println("Session: Not set")
	} else {
		fmt.Printf("Session: %s=%s…\n", cfg.Cookie(), truncate(cfg.SessionCookie, 6))
	}
	if len(cfg.TypeFilters) == 0 {
		fmt.Println("Event Types: all")
	} else {
		fmt.Printf("Event Types: %s\n", strings.Join(cfg.TypeFilters, ", "))
	}
	fmt.Printf("Course Filter: %s\n", cfg.CourseFilter)
	fmt.Printf("Upcoming Events: %d\n", cfg.Limit())
	fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
	fmt.Println()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func saveAndReport(cfg *config.AppConfig, msg string) error {
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Println(accentStyle.Render("\n✅ " + msg + "\n"))
	return nil
}

func runSetServerTUI(cfg *config.AppConfig) error {
	input := cfg.Server()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server URL").
				Description("Base URL of the study planner, e.g. http://localhost:8080").
				Value(&input).
				Validate(func(s string) error {
					u, err := url.Parse(strings.TrimSpace(s))
					if err != nil || u.Scheme == "" || u.Host == "" {
						return fmt.Errorf("must be an absolute http(s) URL")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(input), "/")
	return saveAndReport(cfg, fmt.Sprintf("Server set to %s", cfg.ServerURL))
}

func runSetSessionTUI(cfg *config.AppConfig) error {
	name := cfg.Cookie()
	value := cfg.SessionCookie

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cookie name").
				Value(&name),
			huh.NewInput().
				Title("Session cookie value").
				Description("Copy it from your browser after logging in. Leave empty to clear.").
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.CookieName = strings.TrimSpace(name)
	cfg.SessionCookie = strings.TrimSpace(value)
	return saveAndReport(cfg, "Session saved.")
}

func runSetTypeFiltersTUI(cfg *config.AppConfig) error {
	checked := make(map[string]bool)
	for _, t := range cfg.TypeFilters {
		checked[t] = true
	}

	var opts []huh.Option[string]
	for _, t := range studyflow.EventTypes {
		opts = append(opts, huh.NewOption(planner.TypeLabel(t), t).Selected(len(cfg.TypeFilters) == 0 || checked[t]))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Event types shown by default").
				Description("Space = toggle, Enter = confirm.").
				Options(opts...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.TypeFilters = selected
	if len(selected) == len(studyflow.EventTypes) {
		cfg.TypeFilters = nil
	}
	return saveAndReport(cfg, fmt.Sprintf("Showing %d event types by default.", len(selected)))
}

func runSetCourseFilterTUI(cfg *config.AppConfig) error {
	input := cfg.CourseFilter

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default course filter").
				Description("Leave empty to show all courses.").
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.CourseFilter = strings.TrimSpace(input)
	return saveAndReport(cfg, "Course filter saved.")
}

func runSetLimitTUI(cfg *config.AppConfig) error {
	input := fmt.Sprint(cfg.Limit())

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("How many upcoming events to show").
				Value(&input).
				Validate(validateOptionalInt),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.UpcomingLimit = atoi(input)
	return saveAndReport(cfg, fmt.Sprintf("Showing %d upcoming events.", cfg.Limit()))
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for studyctl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Planner Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Lecture Blue", colorBlock(planner.DefaultTypeColor(studyflow.TypeLecture))), planner.DefaultTypeColor(studyflow.TypeLecture)),
					huh.NewOption(fmt.Sprintf("%s Assignment Green", colorBlock(planner.DefaultTypeColor(studyflow.TypeAssignment))), planner.DefaultTypeColor(studyflow.TypeAssignment)),
					huh.NewOption(fmt.Sprintf("%s Study Amber", colorBlock(planner.SessionColor)), planner.SessionColor),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(func(str string) error {
						if _, ok := planner.Brightness(str); !ok || !strings.HasPrefix(str, "#") {
							return fmt.Errorf("must be a valid hex code starting with #")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	return saveAndReport(cfg, "The theme color is now saved.")
}
