package menu

import "canteen/internal/plan"

// Item is a catalog row as stored in the canteen database.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MealType    string `json:"meal_type"`
}

// RotationEntry maps a weekday and meal slot to an item on offer.
// Weekday follows time.Weekday numbering (0 = Sunday).
type RotationEntry struct {
	Weekday  int    `json:"weekday"`
	MealType string `json:"meal_type"`
	ItemID   string `json:"item_id"`
}

// mealOrder fixes the slot order menus are served in.
var mealOrder = plan.MealTypes
