package mess

import "time"

// Weekdays in display order. Menu documents are keyed by these names.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// NoMeal is the sentinel for an absent meal slot.
const NoMeal = "N/A"

// DayMenu holds the four meal slots for one weekday. Each slot is a
// comma-separated dish list or NoMeal.
type DayMenu struct {
	Breakfast string `bson:"Breakfast" json:"Breakfast"`
	Lunch     string `bson:"Lunch" json:"Lunch"`
	Snacks    string `bson:"Snacks" json:"Snacks"`
	Dinner    string `bson:"Dinner" json:"Dinner"`
}

// Slots returns the four meals in fixed order.
func (d DayMenu) Slots() []string {
	return []string{d.Breakfast, d.Lunch, d.Snacks, d.Dinner}
}

// WeekMenu maps weekday name -> meals for that day.
type WeekMenu map[string]DayMenu

// Mess is a dining hall with its weekly menu.
type Mess struct {
	ID            string     `bson:"_id" json:"id"`
	Name          string     `bson:"name" json:"name"`
	Color         string     `bson:"color" json:"color"`
	Menu          WeekMenu   `bson:"menu" json:"menu"`
	MenuStartDate *time.Time `bson:"menuStartDate,omitempty" json:"menuStartDate,omitempty"`
	NextWeekMenu  WeekMenu   `bson:"nextWeekMenu,omitempty" json:"nextWeekMenu,omitempty"`
	LastUpdated   *time.Time `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
}

// PlaceholderMenu returns a full week with every slot set to NoMeal,
// the shape a mess gets at creation before any upload.
func PlaceholderMenu() WeekMenu {
	menu := make(WeekMenu, len(Weekdays))
	for _, day := range Weekdays {
		menu[day] = DayMenu{
			Breakfast: NoMeal,
			Lunch:     NoMeal,
			Snacks:    NoMeal,
			Dinner:    NoMeal,
		}
	}
	return menu
}
