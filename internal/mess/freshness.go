package mess

import (
	"math"
	"strings"
	"time"
)

// StartOfWeek returns Monday 00:00 of the week containing t.
// Sunday counts as day 7 of the previous week.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// IsExpired reports whether the mess's menu is stale for the current week:
// never updated, or last updated before this week's Monday.
func IsExpired(m *Mess, now time.Time) bool {
	return m.LastUpdated == nil || m.LastUpdated.Before(StartOfWeek(now))
}

// HasMenu reports whether at least one meal slot holds real data.
func HasMenu(menu WeekMenu) bool {
	for _, day := range menu {
		for _, meal := range day.Slots() {
			meal = strings.TrimSpace(meal)
			if meal != "" && meal != NoMeal {
				return true
			}
		}
	}
	return false
}

// ActiveMenu picks the menu to display under the two-week rotation.
// Once more than 7 whole days have elapsed since menuStartDate, the
// forward-looking nextWeekMenu overrides the base menu per weekday;
// days missing from nextWeekMenu fall back to the base entry.
func ActiveMenu(m *Mess, now time.Time) WeekMenu {
	if m.MenuStartDate == nil || len(m.NextWeekMenu) == 0 {
		return m.Menu
	}

	elapsed := now.Sub(*m.MenuStartDate)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := int(math.Ceil(elapsed.Hours() / 24))
	if days <= 7 {
		return m.Menu
	}

	merged := make(WeekMenu, len(m.Menu))
	for day, meals := range m.Menu {
		merged[day] = meals
	}
	for day, meals := range m.NextWeekMenu {
		merged[day] = meals
	}
	return merged
}
