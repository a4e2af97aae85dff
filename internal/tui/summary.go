package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/malplan/internal/planner"
	"github.com/mmcdole/malplan/internal/tui/styles"
)

// RenderSource describes where the working list came from
func RenderSource(plan planner.Plan, now time.Time) string {
	if plan.FromCache {
		age := now.Sub(plan.FetchedAt).Truncate(time.Minute)
		return styles.DimStyle.Render(fmt.Sprintf("Using cached list from %s ago, %d items to review", age, len(plan.Items)))
	}
	return styles.DimStyle.Render(fmt.Sprintf("Fetched list, %d items to review", len(plan.Items)))
}

// RenderSummary renders the closing line of a run
func RenderSummary(sum planner.Summary) string {
	if sum.Decided() == 0 && sum.Remaining == 0 {
		return styles.DimStyle.Render("Nothing to review.")
	}

	parts := []string{
		styles.SuccessStyle.Render(fmt.Sprintf("%d obtained", sum.Added)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d not found", sum.NotFound)),
		styles.AccentStyle.Render(fmt.Sprintf("%d not finished", sum.NotFinished)),
		styles.DimStyle.Render(fmt.Sprintf("%d left for later", sum.Remaining)),
	}
	return strings.Join(parts, styles.DimStyle.Render(" · "))
}
