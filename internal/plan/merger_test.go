package plan

import (
	"reflect"
	"testing"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	sel := MealSelection{}

	sel2 := Toggle(sel, MealLunch, "l1")
	if !sel2.Contains(MealLunch, "l1") {
		t.Fatalf("expected l1 to be selected, got %v", sel2)
	}

	sel3 := Toggle(sel2, MealLunch, "l1")
	if sel3.Contains(MealLunch, "l1") {
		t.Fatalf("expected l1 to be removed, got %v", sel3)
	}
}

func TestToggleTwiceRestoresSelection(t *testing.T) {
	sel := MealSelection{
		MealBreakfast: {"b1"},
		MealLunch:     {"l1", "l2"},
	}

	got := Toggle(Toggle(sel, MealLunch, "l3"), MealLunch, "l3")
	want := MealSelection{
		MealBreakfast: {"b1"},
		MealLunch:     {"l1", "l2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("toggle twice changed the selection: got %v want %v", got, want)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	sel := MealSelection{MealDinner: {"d1"}}

	_ = Toggle(sel, MealDinner, "d2")
	_ = Toggle(sel, MealDinner, "d1")

	if !reflect.DeepEqual(sel, MealSelection{MealDinner: {"d1"}}) {
		t.Fatalf("input selection was mutated: %v", sel)
	}
}

func TestToggleLeavesOtherMealsAlone(t *testing.T) {
	sel := MealSelection{
		MealBreakfast: {"b1", "b2"},
		MealSnacks:    {"s1"},
	}

	got := Toggle(sel, MealLunch, "l1")
	if !reflect.DeepEqual(got[MealBreakfast], []string{"b1", "b2"}) {
		t.Fatalf("breakfast changed: %v", got[MealBreakfast])
	}
	if !reflect.DeepEqual(got[MealSnacks], []string{"s1"}) {
		t.Fatalf("snacks changed: %v", got[MealSnacks])
	}
}

func TestSetLocationRemoteClearsMeals(t *testing.T) {
	d := DailySelection{
		Date:  "2026-03-11",
		Meals: MealSelection{MealLunch: {"l1"}},
	}

	remote := SetLocation(d, true)
	if !remote.Remote {
		t.Fatalf("expected remote")
	}
	if !remote.Meals.Empty() {
		t.Fatalf("remote day still has meals: %v", remote.Meals)
	}
}

func TestSetLocationOnsiteKeepsMeals(t *testing.T) {
	d := DailySelection{
		Date:  "2026-03-11",
		Meals: MealSelection{MealLunch: {"l1"}},
	}

	onsite := SetLocation(d, false)
	if onsite.Remote {
		t.Fatalf("expected on-site")
	}
	if !onsite.Meals.Contains(MealLunch, "l1") {
		t.Fatalf("prior meals were lost: %v", onsite.Meals)
	}
}
