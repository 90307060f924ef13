package plan

// MealType is one of the four meal slots served by the canteen.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealSnacks    MealType = "Snacks"
	MealDinner    MealType = "Dinner"
)

// MealTypes lists the slots in serving order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealSnacks, MealDinner}

// MenuItem is a catalog entry, read-only to the planning engine.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DayMenu holds the items served on one calendar day, by meal slot.
type DayMenu struct {
	Date  string                  `json:"date"` // YYYY-MM-DD
	Meals map[MealType][]MenuItem `json:"meals"`
}

// MealSelection maps a meal slot to the chosen item ids. Set semantics:
// toggling an id twice cancels out, order is irrelevant.
type MealSelection map[MealType][]string

// DailySelection is one employee's plan for one day. Remote and Meals are
// mutually exclusive: a remote day never carries meal choices.
type DailySelection struct {
	Date   string        `json:"date"`
	Remote bool          `json:"remote"`
	Meals  MealSelection `json:"meals"`
}

// WeeklySelection maps date keys to per-day selections, Monday first.
type WeeklySelection map[string]DailySelection

// StoredSelection is a DailySelection as the store persists it, together
// with the meal-pass code issued at confirmation (empty for remote days).
type StoredSelection struct {
	DailySelection
	PassCode string `json:"passCode,omitempty"`
}

// Employee is the slice of the account the engine needs.
type Employee struct {
	ID    string
	Phone string
}

// Empty reports whether no items are chosen in any slot.
func (s MealSelection) Empty() bool {
	for _, ids := range s {
		if len(ids) > 0 {
			return false
		}
	}
	return true
}

// Contains reports whether itemID is chosen for the given slot.
func (s MealSelection) Contains(meal MealType, itemID string) bool {
	for _, id := range s[meal] {
		if id == itemID {
			return true
		}
	}
	return false
}
