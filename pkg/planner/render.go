package planner

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const timeLayout = "2006-01-02 15:04"

var (
	dayStyle         = lipgloss.NewStyle().Bold(true).Underline(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	titleCaser       = cases.Title(language.English)
)

// TypeLabel formats an event type for display, e.g. "self-study" -> "Self-Study".
func TypeLabel(eventType string) string {
	if eventType == "" {
		return "-"
	}
	return titleCaser.String(eventType)
}

// DifficultyLabel maps the 1–3 difficulty scale to a name.
func DifficultyLabel(d int) string {
	switch d {
	case 1:
		return "Easy"
	case 2:
		return "Medium"
	case 3:
		return "Hard"
	}
	return "-"
}

func eventColor(e studyflow.Event) string {
	if e.Color != "" {
		return NormalizeColor(e.Color)
	}
	return DefaultTypeColor(e.Type)
}

// RenderEvent formats one event line. Lectures and self-study show a colored
// dot with the start time, partial-fill custom events color only the first
// half of the title, everything else is a full colored block.
func RenderEvent(e studyflow.Event) string {
	color := lipgloss.Color(eventColor(e))
	eventType := strings.ToLower(e.Type)

	if eventType == studyflow.TypeLecture || eventType == studyflow.TypeSelfStudy {
		dot := lipgloss.NewStyle().Foreground(color).Render("●")
		start := lipgloss.NewStyle().Bold(true).Render(e.Start.Format("15:04"))
		return fmt.Sprintf("%s %s %s", dot, start, e.Title)
	}

	block := lipgloss.NewStyle().
		Background(color).
		Foreground(lipgloss.Color(ContrastingTextColor(eventColor(e))))

	if eventType == studyflow.TypeCustom && e.FillType == studyflow.FillPartial {
		runes := []rune(" " + e.Title + " ")
		half := len(runes) / 2
		return block.Render(string(runes[:half])) + string(runes[half:])
	}

	return block.Render(" " + e.Title + " ")
}

// RenderAgenda prints events grouped by day, or a placeholder when there are none.
func RenderAgenda(w io.Writer, events []studyflow.Event) {
	days := GroupByDay(events, 0)
	if len(days) == 0 {
		fmt.Fprintln(w, placeholderStyle.Render("No events in this range."))
		return
	}

	for _, day := range days {
		fmt.Fprintln(w, dayStyle.Render(day.Day.Format("Monday, 02 Jan 2006")))
		for _, e := range day.Events {
			fmt.Fprintf(w, "  %s  [#%d %s]\n", RenderEvent(e), e.ID, TypeLabel(e.Type))
		}
	}
}

// CourseEntry is a course prepared for the course list
type CourseEntry struct {
	Course     studyflow.Course
	Background string
	Foreground string
	Progress   int
	Label      string
}

// NewCourseEntry computes colors and the progress label of a course.
func NewCourseEntry(c studyflow.Course) CourseEntry {
	background := NormalizeColor(c.Color)
	contrastBase := c.Color
	if background == "" {
		background = courseFallbackBackground
		contrastBase = courseFallbackContrast
	}

	progress := ProgressPercent(c.ProgressPercent)
	return CourseEntry{
		Course:     c,
		Background: background,
		Foreground: ContrastingTextColor(contrastBase),
		Progress:   progress,
		Label:      fmt.Sprintf("%s – %d%% complete", c.Name, progress),
	}
}

// Render returns the colored list entry.
func (e CourseEntry) Render() string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(e.Background)).
		Foreground(lipgloss.Color(e.Foreground)).
		Render(" " + e.Label + " ")
}

// RenderCourses prints the course list, or a placeholder when empty.
func RenderCourses(w io.Writer, entries []CourseEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, placeholderStyle.Render("No courses yet."))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  #%d\n", e.Render(), e.Course.ID)
	}
}

// RenderOverview prints the overview tab of a course.
func RenderOverview(w io.Writer, c *studyflow.Course, description string) {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(NormalizeColor(c.Color))).Render("██")
	progress := ProgressPercent(c.ProgressPercent)

	fmt.Fprintln(w, dayStyle.Render(c.Name))
	fmt.Fprintf(w, "Color:      %s %s\n", swatch, c.Color)
	fmt.Fprintf(w, "Difficulty: %s\n", DifficultyLabel(c.Difficulty))
	fmt.Fprintf(w, "Progress:   %s %d%%\n", progressBar(progress, 20), progress)
	fmt.Fprintf(w, "Self-study: %dh of %dh\n", c.SelfStudyHours, c.WorkloadTarget)
	if description != "" {
		fmt.Fprintf(w, "\n%s\n", description)
	}
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderDeadlines prints the deadline table. A load error replaces the rows
// with an inline error line.
func RenderDeadlines(w io.Writer, deadlines []studyflow.Deadline, loadErr error) {
	if loadErr != nil {
		fmt.Fprintln(w, placeholderStyle.Render("Error loading deadlines: "+loadErr.Error()))
		return
	}
	if len(deadlines) == 0 {
		fmt.Fprintln(w, placeholderStyle.Render("No deadlines yet."))
		return
	}
	for _, d := range deadlines {
		fmt.Fprintf(w, "#%-5d %-30s %-16s %s\n", d.ID, d.Title, formatTime(d.StartTime), effortLabel(d))
	}
}

func effortLabel(d studyflow.Deadline) string {
	var parts []string
	if d.Points > 0 {
		parts = append(parts, strconv.Itoa(d.Points)+" pts")
	}
	if d.StudyTimeNeeded > 0 {
		parts = append(parts, strconv.Itoa(d.StudyTimeNeeded)+"h study")
	}
	return strings.Join(parts, ", ")
}

// RenderLectures prints the lectures tab.
func RenderLectures(w io.Writer, lectures []studyflow.Event) {
	if len(lectures) == 0 {
		fmt.Fprintln(w, placeholderStyle.Render("No lectures yet."))
		return
	}
	for _, l := range lectures {
		fmt.Fprintf(w, "%-30s %s – %s\n", l.Title, formatTime(l.Start), formatTime(l.End))
	}
}

// SessionLine formats a self-study session, annotated with its deadline when known.
func SessionLine(s studyflow.Session) string {
	line := fmt.Sprintf("%s (%s - %s)", s.Title, formatTime(s.StartTime), formatTime(s.EndTime))
	if s.RelatedDeadlineTitle != "" {
		line += " → " + s.RelatedDeadlineTitle
	}
	return line
}

// RenderSessions prints the planned self-study sessions.
func RenderSessions(w io.Writer, sessions []studyflow.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, placeholderStyle.Render("No planned self-study sessions."))
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "• %s\n", SessionLine(s))
	}
}

// RenderUpcoming prints the upcoming events list.
func RenderUpcoming(w io.Writer, events []studyflow.UpcomingEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, placeholderStyle.Render("No upcoming events."))
		return
	}
	for _, e := range events {
		fmt.Fprintf(w, "• %s (%s)\n", e.Title, formatTime(e.StartTime))
	}
}

func formatTime(t studyflow.LocalTime) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
