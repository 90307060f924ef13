package plan

// Toggle returns a new selection with itemID added to (or, if already
// present, removed from) the given meal slot. The input is never mutated;
// slices for the other slots are carried over as-is.
func Toggle(sel MealSelection, meal MealType, itemID string) MealSelection {
	next := make(MealSelection, len(sel)+1)
	for k, v := range sel {
		next[k] = v
	}

	current := sel[meal]
	if sel.Contains(meal, itemID) {
		items := make([]string, 0, len(current)-1)
		for _, id := range current {
			if id != itemID {
				items = append(items, id)
			}
		}
		next[meal] = items
		return next
	}

	items := make([]string, 0, len(current)+1)
	items = append(items, current...)
	items = append(items, itemID)
	next[meal] = items
	return next
}

// SetLocation returns d with the work location switched. Going remote clears
// every meal choice (the two are mutually exclusive); going back on-site
// keeps whatever was chosen before so it shows up again.
func SetLocation(d DailySelection, remote bool) DailySelection {
	d.Remote = remote
	if remote {
		d.Meals = MealSelection{}
	} else if d.Meals == nil {
		d.Meals = MealSelection{}
	}
	return d
}
