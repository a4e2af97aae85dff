package triage

import (
	"fmt"
	"strings"

	"github.com/mmcdole/malplan/internal/domain"
	"github.com/mmcdole/malplan/internal/tui/styles"
)

// promptMarker ends every prompt line
const promptMarker = "> "

// renderItem renders the item header shown once per item
func renderItem(item domain.TrackedItem, position, total int, matched []int) string {
	var b strings.Builder

	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("[%d/%d] ", position, total)))
	b.WriteString(highlightMatches(item.Title, matched))
	b.WriteString(" ")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("(%s, %d %s)", item.Subtype, item.Amount, amountUnit(item.Kind))))
	b.WriteString("\n")
	if item.URL != "" {
		b.WriteString("  ")
		b.WriteString(styles.LinkStyle.Render(item.URL))
		b.WriteString("\n")
	}

	return b.String()
}

func amountUnit(kind domain.ListKind) string {
	if kind == domain.ListAnime {
		return "episodes"
	}
	return "chapters"
}

// highlightMatches renders title with the characters at matched byte offsets emphasized
func highlightMatches(title string, matched []int) string {
	if len(matched) == 0 {
		return styles.TitleStyle.Render(title)
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	var b strings.Builder
	for i, r := range title {
		if matchSet[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(styles.TitleStyle.Render(string(r)))
		}
	}
	return b.String()
}

// renderOutcome renders the one-word confirmation printed after a decision
func renderOutcome(o Outcome, d domain.Decision) string {
	switch o {
	case OutcomeRecorded:
		switch d {
		case domain.DecisionAdded:
			return styles.AddedBadge
		case domain.DecisionNotFound:
			return styles.NotFoundBadge
		default:
			return styles.NotFinishedBadge
		}
	case OutcomeQuit:
		return styles.DimStyle.Render("quitting, remaining items kept for later")
	default:
		return styles.SkippedBadge
	}
}
