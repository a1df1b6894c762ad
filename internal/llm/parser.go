package llm

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
)

// ErrInvalidOutput covers everything from fenced garbage to a menu with no
// recognizable weekday. The stored menu must stay untouched in every one of
// those cases.
var ErrInvalidOutput = errors.New("AI returned invalid data")

// StripCodeFence removes a markdown code fence wrapper if the model added
// one despite the prompt.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// The fence may carry a language tag, e.g. ```json
	if idx := strings.Index(s, "\n"); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "json" || first == "" {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseWeekMenu turns raw model output into a schema-valid WeekMenu.
// Only known weekday names are kept; each kept day gets all four slots with
// empty ones filled by the N/A sentinel. A result with no valid day is
// rejected wholesale.
func ParseWeekMenu(raw string) (mess.WeekMenu, error) {
	cleaned := StripCodeFence(raw)

	var parsed map[string]map[string]string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, ErrInvalidOutput
	}

	menu := make(mess.WeekMenu)
	for _, day := range mess.Weekdays {
		meals, ok := parsed[day]
		if !ok {
			continue
		}
		menu[day] = mess.DayMenu{
			Breakfast: slotOrNA(meals["Breakfast"]),
			Lunch:     slotOrNA(meals["Lunch"]),
			Snacks:    slotOrNA(meals["Snacks"]),
			Dinner:    slotOrNA(meals["Dinner"]),
		}
	}

	if len(menu) == 0 {
		return nil, ErrInvalidOutput
	}
	return menu, nil
}

func slotOrNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return mess.NoMeal
	}
	return s
}
