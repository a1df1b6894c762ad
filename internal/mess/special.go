package mess

import "strings"

// Keyword heuristics for picking the day's most notable dish out of
// free-text meal strings.
var specialKeywords = []string{
	"chicken", "paneer", "egg", "sewaiya", "kebab",
	"ice cream", "semiyan", "kheer", "swiss roll", "gulab jamun",
}

// Staples that should never win as the "special" unless nothing else exists.
var excludedKeywords = []string{
	"chapati", "steam rice", "steamed rice", "rice",
}

// FallbackSpecial is returned when no meal string yields a candidate.
const FallbackSpecial = "Special Meal"

func containsAny(item string, keywords []string) bool {
	lower := strings.ToLower(item)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// checkItem picks the best candidate dish from one comma-separated meal
// string. First pass wants a special keyword; second pass settles for the
// first non-staple; the first item is the ultimate fallback. Empty input
// yields "".
func checkItem(mealStr string) string {
	if strings.TrimSpace(mealStr) == "" {
		return ""
	}

	items := strings.Split(mealStr, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}

	for _, item := range items {
		if containsAny(item, specialKeywords) {
			return item
		}
	}

	for _, item := range items {
		if !containsAny(item, excludedKeywords) {
			return item
		}
	}

	return items[0]
}

// SpecialDish infers the presentable special for a day's menu.
// Theme Dinner and Month End Dinner outrank keyword matching; after that
// Lunch beats Dinner, and a keyword hit beats a fallback candidate.
// Deterministic: same input, same output.
func SpecialDish(day DayMenu) string {
	if strings.Contains(strings.ToLower(day.Dinner), "theme dinner") {
		return "Theme Dinner"
	}

	all := strings.ToLower(strings.Join(day.Slots(), " "))
	if strings.Contains(all, "month end dinner") {
		return "Month End Dinner"
	}

	lunch := checkItem(day.Lunch)
	dinner := checkItem(day.Dinner)

	if containsAny(lunch, specialKeywords) && lunch != "" {
		return TitleCase(lunch)
	}
	if containsAny(dinner, specialKeywords) && dinner != "" {
		return TitleCase(dinner)
	}
	if lunch != "" {
		return TitleCase(lunch)
	}
	if dinner != "" {
		return TitleCase(dinner)
	}
	return FallbackSpecial
}

// TitleCase capitalizes each whitespace-delimited word.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
