package plan

// State is the planning state an employee's daily flow is in. It is an
// explicit tagged value rather than something inferred from the shape of
// cached data.
type State string

const (
	// StateAwaitingLocation: nothing decided yet for the target day.
	StateAwaitingLocation State = "awaiting_location"
	// StateBrowsingMenu: on-site chosen, picking meals from the menu.
	StateBrowsingMenu State = "browsing_menu"
	// StateConfirmedRemote: working from home, no meals needed.
	StateConfirmedRemote State = "confirmed_remote"
	// StateConfirmedOnsite: meal selection submitted for the target day.
	StateConfirmedOnsite State = "confirmed_onsite"
)

func (s State) confirmed() bool {
	return s == StateConfirmedRemote || s == StateConfirmedOnsite
}

// Rehydrate derives the state a stored selection puts the flow in. It is a
// shortcut, not a transition: the result must be indistinguishable from
// walking the flow fresh and ending up with the same stored selection.
// A missing selection, or one for a different day, starts from scratch.
func Rehydrate(stored *DailySelection, targetDate string) State {
	if stored == nil || stored.Date != targetDate {
		return StateAwaitingLocation
	}
	if stored.Remote {
		return StateConfirmedRemote
	}
	return StateConfirmedOnsite
}
