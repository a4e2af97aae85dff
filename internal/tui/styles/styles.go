package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	MalBlue   = lipgloss.Color("#2E51A2")
	Accent    = lipgloss.Color("#E5A00D")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent)

	MatchStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(MalBlue).
			Underline(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(Accent)
)

// Decision badges
var (
	AddedBadge       = SuccessStyle.Render("obtained")
	NotFoundBadge    = ErrorStyle.Render("not found")
	NotFinishedBadge = AccentStyle.Render("not finished")
	SkippedBadge     = DimStyle.Render("skipped")
)
