package plan

import "testing"

func TestRehydrateNothingStored(t *testing.T) {
	if got := Rehydrate(nil, "2026-03-11"); got != StateAwaitingLocation {
		t.Fatalf("expected awaiting_location, got %s", got)
	}
}

func TestRehydrateStaleDateStartsOver(t *testing.T) {
	stored := &DailySelection{Date: "2026-03-10", Remote: true}
	if got := Rehydrate(stored, "2026-03-11"); got != StateAwaitingLocation {
		t.Fatalf("expected awaiting_location for stale selection, got %s", got)
	}
}

func TestRehydrateRemote(t *testing.T) {
	stored := &DailySelection{Date: "2026-03-11", Remote: true, Meals: MealSelection{}}
	if got := Rehydrate(stored, "2026-03-11"); got != StateConfirmedRemote {
		t.Fatalf("expected confirmed_remote, got %s", got)
	}
}

func TestRehydrateOnsite(t *testing.T) {
	stored := &DailySelection{
		Date:  "2026-03-11",
		Meals: MealSelection{MealLunch: {"l1"}},
	}
	if got := Rehydrate(stored, "2026-03-11"); got != StateConfirmedOnsite {
		t.Fatalf("expected confirmed_onsite, got %s", got)
	}
}
