package plan

import (
	"context"
	"sync"
)

// MenuCatalog serves the menus employees choose from.
type MenuCatalog interface {
	DailyMenu(ctx context.Context, day string) (*DayMenu, error)
	WeeklyMenu(ctx context.Context, start string) ([]DayMenu, error)
}

// SelectionStore is the authoritative persistence for submitted selections.
// Keys are partitioned by (employee, date), so writes for one employee never
// race with another's.
type SelectionStore interface {
	Get(ctx context.Context, employeeID, date string) (*StoredSelection, error)
	SubmitDaily(ctx context.Context, employeeID string, sel DailySelection, passCode string) error
	SubmitWeekly(ctx context.Context, employeeID string, week WeeklySelection) error
	DeleteDaily(ctx context.Context, employeeID, date string) error
	DeleteWeekly(ctx context.Context, employeeID, weekStart string) error
}

// SelectionCache is the optimistic rehydration hint, keyed by the same
// (employee, date) tuple. The store stays authoritative: the cache is only
// written after a store write was acknowledged, and only read when the store
// has nothing.
type SelectionCache interface {
	Get(ctx context.Context, employeeID, date string) (*StoredSelection, error)
	Put(ctx context.Context, employeeID, date string, sel StoredSelection) error
	Delete(ctx context.Context, employeeID, date string) error
}

// PassIssuer mints the meal-pass code handed out on an on-site confirmation.
type PassIssuer interface {
	Issue() (string, error)
}

// DailyView is what the daily flow reports back after every operation.
type DailyView struct {
	State     State         `json:"state"`
	Date      string        `json:"date"`
	Remote    bool          `json:"remote"`
	Selection MealSelection `json:"selection"`
	Menu      *DayMenu      `json:"menu,omitempty"`
	PassCode  string        `json:"passCode,omitempty"`
	Locked    bool          `json:"locked"`
	Warning   bool          `json:"warning"`
}

// WeeklyView is the weekly flow counterpart.
type WeeklyView struct {
	Start  string          `json:"start"`
	Menus  []DayMenu       `json:"menus"`
	Week   WeeklySelection `json:"week"`
	Banner string          `json:"banner,omitempty"`
}

// planner holds one employee's in-progress daily flow. All fields are
// guarded by mu; inFlight blocks a second submission while a store call for
// this planner is suspended.
type planner struct {
	mu       sync.Mutex
	date     string // target day the flow is about
	state    State
	menu     *DayMenu
	draft    MealSelection
	passCode string
	inFlight bool
}

// weekPlanner holds one employee's in-progress weekly draft.
type weekPlanner struct {
	mu       sync.Mutex
	start    string
	menus    []DayMenu
	week     WeeklySelection
	inFlight bool
}

// Controller drives the two planning flows against the external
// collaborators. One logical actor per employee: per-planner mutexes
// serialize operations, and no selection object is mutated concurrently.
type Controller struct {
	clock    Clock
	cutoff   CutoffPolicy
	catalog  MenuCatalog
	store    SelectionStore
	cache    SelectionCache
	passes   PassIssuer
	schedule *ReminderScheduler

	mu      sync.Mutex
	daily   map[string]*planner
	weekly  map[string]*weekPlanner
}

// NewController wires the planning engine.
func NewController(clock Clock, cutoff CutoffPolicy, catalog MenuCatalog, store SelectionStore, cache SelectionCache, passes PassIssuer, schedule *ReminderScheduler) *Controller {
	return &Controller{
		clock:    clock,
		cutoff:   cutoff,
		catalog:  catalog,
		store:    store,
		cache:    cache,
		passes:   passes,
		schedule: schedule,
		daily:    make(map[string]*planner),
		weekly:   make(map[string]*weekPlanner),
	}
}

func (c *Controller) plannerFor(employeeID, date string) *planner {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.daily[employeeID]
	if !ok || p.date != date {
		// A stale planner targets a day that is no longer "tomorrow";
		// its selection is superseded, start over.
		p = &planner{date: date, state: StateAwaitingLocation, draft: MealSelection{}}
		c.daily[employeeID] = p
	}
	return p
}

func (c *Controller) weekPlannerFor(employeeID, start string) *weekPlanner {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.weekly[employeeID]
	if !ok || w.start != start {
		w = &weekPlanner{start: start, week: WeeklySelection{}}
		c.weekly[employeeID] = w
	}
	return w
}

func (c *Controller) dailyView(p *planner) *DailyView {
	now := c.clock.Now()
	return &DailyView{
		State:     p.state,
		Date:      p.date,
		Remote:    p.state == StateConfirmedRemote,
		Selection: p.draft,
		Menu:      p.menu,
		PassCode:  p.passCode,
		Locked:    c.cutoff.Locked(now),
		Warning:   c.cutoff.Warning(now),
	}
}

// ActivateDaily enters the daily flow: dispatches any due reminders, then
// rehydrates from the store (cache as fallback) if a selection for tomorrow
// already exists. Returns the view the employee should see.
func (c *Controller) ActivateDaily(ctx context.Context, emp Employee) (*DailyView, error) {
	now := c.clock.Now()
	target := DateKey(TargetDay(now))
	p := c.plannerFor(emp.ID, target)

	// Reminders go out regardless of which screen state follows. A delivery
	// failure is reported by the dispatcher and retried on the next
	// activation, it never blocks the flow.
	reminderErr := c.schedule.Dispatch(ctx, now, emp)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.confirmed() {
		stored, err := c.rehydrationSource(ctx, emp.ID, target)
		if err != nil {
			return nil, err
		}
		if state := Rehydrate(selOf(stored), target); state.confirmed() {
			p.state = state
			p.draft = stored.Meals
			if p.draft == nil {
				p.draft = MealSelection{}
			}
			p.passCode = stored.PassCode
		}
	}
	return c.dailyView(p), reminderErr
}

// rehydrationSource reads the store first and falls back to the cache. A
// store hit refreshes the cache so a previously failed cache write heals.
func (c *Controller) rehydrationSource(ctx context.Context, employeeID, date string) (*StoredSelection, error) {
	stored, err := c.store.Get(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		_ = c.cache.Put(ctx, employeeID, date, *stored)
		return stored, nil
	}
	return c.cache.Get(ctx, employeeID, date)
}

func selOf(s *StoredSelection) *DailySelection {
	if s == nil {
		return nil
	}
	return &s.DailySelection
}

// SelectLocation answers "where are you working tomorrow". Remote confirms
// immediately with no menu involved; on-site fetches the menu (once) and
// moves to browsing.
func (c *Controller) SelectLocation(ctx context.Context, emp Employee, remote bool) (*DailyView, error) {
	now := c.clock.Now()
	target := DateKey(TargetDay(now))
	p := c.plannerFor(emp.ID, target)

	p.mu.Lock()
	if p.state != StateAwaitingLocation {
		p.mu.Unlock()
		return nil, ErrBadTransition
	}
	if p.inFlight {
		p.mu.Unlock()
		return nil, ErrInFlight
	}

	if remote {
		sel := SetLocation(DailySelection{Date: target}, true)
		p.inFlight = true
		p.mu.Unlock()

		err := c.store.SubmitDaily(ctx, emp.ID, sel, "")

		p.mu.Lock()
		p.inFlight = false
		if err != nil {
			p.mu.Unlock()
			return nil, err
		}
		_ = c.cache.Put(ctx, emp.ID, target, StoredSelection{DailySelection: sel})
		p.state = StateConfirmedRemote
		p.passCode = ""
		view := c.dailyView(p)
		p.mu.Unlock()
		return view, nil
	}

	if p.menu != nil {
		p.state = StateBrowsingMenu
		view := c.dailyView(p)
		p.mu.Unlock()
		return view, nil
	}

	p.inFlight = true
	p.mu.Unlock()

	menu, err := c.catalog.DailyMenu(ctx, target)

	p.mu.Lock()
	p.inFlight = false
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}
	p.menu = menu
	p.state = StateBrowsingMenu
	view := c.dailyView(p)
	p.mu.Unlock()
	return view, nil
}

// ToggleMeal flips one item in the draft. Only legal while browsing and
// before the cutoff.
func (c *Controller) ToggleMeal(ctx context.Context, emp Employee, meal MealType, itemID string) (*DailyView, error) {
	now := c.clock.Now()
	p := c.plannerFor(emp.ID, DateKey(TargetDay(now)))

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateBrowsingMenu {
		return nil, ErrBadTransition
	}
	if c.cutoff.Locked(now) {
		return nil, ErrLocked
	}
	p.draft = Toggle(p.draft, meal, itemID)
	return c.dailyView(p), nil
}

// ConfirmDaily submits the draft as tomorrow's on-site selection and issues
// a meal-pass code. An empty draft is accepted: "ordered nothing" is a valid
// on-site day.
func (c *Controller) ConfirmDaily(ctx context.Context, emp Employee) (*DailyView, error) {
	now := c.clock.Now()
	target := DateKey(TargetDay(now))
	p := c.plannerFor(emp.ID, target)

	p.mu.Lock()
	if p.state != StateBrowsingMenu {
		p.mu.Unlock()
		return nil, ErrBadTransition
	}
	if c.cutoff.Locked(now) {
		p.mu.Unlock()
		return nil, ErrLocked
	}
	if p.inFlight {
		p.mu.Unlock()
		return nil, ErrInFlight
	}

	passCode, err := c.passes.Issue()
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}
	sel := DailySelection{Date: target, Remote: false, Meals: p.draft}
	p.inFlight = true
	p.mu.Unlock()

	err = c.store.SubmitDaily(ctx, emp.ID, sel, passCode)

	p.mu.Lock()
	p.inFlight = false
	if err != nil {
		// Pre-call state is untouched so the employee can simply retry.
		p.mu.Unlock()
		return nil, err
	}
	_ = c.cache.Put(ctx, emp.ID, target, StoredSelection{DailySelection: sel, PassCode: passCode})
	p.state = StateConfirmedOnsite
	p.passCode = passCode
	view := c.dailyView(p)
	p.mu.Unlock()
	return view, nil
}

// RequestEdit reopens a confirmed selection before the cutoff. Neither the
// draft nor the fetched menu is discarded; re-confirming the same location
// reuses both.
func (c *Controller) RequestEdit(ctx context.Context, emp Employee) (*DailyView, error) {
	now := c.clock.Now()
	p := c.plannerFor(emp.ID, DateKey(TargetDay(now)))

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.confirmed() {
		return nil, ErrBadTransition
	}
	if c.cutoff.Locked(now) {
		return nil, ErrLocked
	}
	p.state = StateAwaitingLocation
	return c.dailyView(p), nil
}

// CancelDaily deletes the persisted selection and clears all local state.
// Cancelling with nothing persisted is ErrNotFound.
func (c *Controller) CancelDaily(ctx context.Context, emp Employee) (*DailyView, error) {
	now := c.clock.Now()
	target := DateKey(TargetDay(now))
	p := c.plannerFor(emp.ID, target)

	p.mu.Lock()
	if !p.state.confirmed() {
		p.mu.Unlock()
		return nil, ErrBadTransition
	}
	if c.cutoff.Locked(now) {
		p.mu.Unlock()
		return nil, ErrLocked
	}
	if p.inFlight {
		p.mu.Unlock()
		return nil, ErrInFlight
	}
	p.inFlight = true
	p.mu.Unlock()

	stored, err := c.store.Get(ctx, emp.ID, target)
	if err == nil && stored == nil {
		err = ErrNotFound
	}
	if err == nil {
		err = c.store.DeleteDaily(ctx, emp.ID, target)
	}

	p.mu.Lock()
	p.inFlight = false
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}
	_ = c.cache.Delete(ctx, emp.ID, target)
	p.state = StateAwaitingLocation
	p.draft = MealSelection{}
	p.passCode = ""
	view := c.dailyView(p)
	p.mu.Unlock()
	return view, nil
}

func (c *Controller) weeklyView(w *weekPlanner) *WeeklyView {
	view := &WeeklyView{Start: w.start, Menus: w.menus, Week: w.week}
	if IsWeekend(c.clock.Now()) {
		view.Banner = WeekendReminderMessage
	}
	return view
}

// ActivateWeekly enters the weekly flow, fetching the seven menus for the
// planning week once and seeding an on-site, nothing-chosen draft for every
// day that has no entry yet.
func (c *Controller) ActivateWeekly(ctx context.Context, emp Employee) (*WeeklyView, error) {
	start := DateKey(WeekStart(c.clock.Now()))
	w := c.weekPlannerFor(emp.ID, start)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.menus == nil {
		menus, err := c.catalog.WeeklyMenu(ctx, start)
		if err != nil {
			return nil, err
		}
		w.menus = menus
		for _, m := range menus {
			if _, ok := w.week[m.Date]; !ok {
				w.week[m.Date] = DailySelection{Date: m.Date, Meals: MealSelection{}}
			}
		}
	}
	return c.weeklyView(w), nil
}

func (w *weekPlanner) day(date string) (DailySelection, bool) {
	d, ok := w.week[date]
	return d, ok
}

// SetWeekLocation switches one day of the week between on-site and remote.
// Days are independent; there is no cross-day validation.
func (c *Controller) SetWeekLocation(ctx context.Context, emp Employee, date string, remote bool) (*WeeklyView, error) {
	w := c.weekPlannerFor(emp.ID, DateKey(WeekStart(c.clock.Now())))

	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.day(date)
	if !ok {
		return nil, ErrUnknownDay
	}
	w.week[date] = SetLocation(d, remote)
	return c.weeklyView(w), nil
}

// ToggleWeekMeal flips one item on one day of the weekly draft. Remote days
// carry no meals, so toggling on one is rejected.
func (c *Controller) ToggleWeekMeal(ctx context.Context, emp Employee, date string, meal MealType, itemID string) (*WeeklyView, error) {
	w := c.weekPlannerFor(emp.ID, DateKey(WeekStart(c.clock.Now())))

	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.day(date)
	if !ok {
		return nil, ErrUnknownDay
	}
	if d.Remote {
		return nil, ErrBadTransition
	}
	d.Meals = Toggle(d.Meals, meal, itemID)
	w.week[date] = d
	return c.weeklyView(w), nil
}

// SubmitWeek persists all seven day selections as one batch. Partial days
// (on-site with nothing chosen) are stored as-is.
func (c *Controller) SubmitWeek(ctx context.Context, emp Employee) (*WeeklyView, error) {
	w := c.weekPlannerFor(emp.ID, DateKey(WeekStart(c.clock.Now())))

	w.mu.Lock()
	if w.menus == nil {
		w.mu.Unlock()
		return nil, ErrBadTransition
	}
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrInFlight
	}
	week := make(WeeklySelection, len(w.week))
	for k, v := range w.week {
		week[k] = v
	}
	w.inFlight = true
	w.mu.Unlock()

	err := c.store.SubmitWeekly(ctx, emp.ID, week)

	w.mu.Lock()
	w.inFlight = false
	view := c.weeklyView(w)
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteWeek removes the entire stored week and resets the draft.
func (c *Controller) DeleteWeek(ctx context.Context, emp Employee) (*WeeklyView, error) {
	w := c.weekPlannerFor(emp.ID, DateKey(WeekStart(c.clock.Now())))

	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrInFlight
	}
	w.inFlight = true
	start := w.start
	w.mu.Unlock()

	err := c.store.DeleteWeekly(ctx, emp.ID, start)

	w.mu.Lock()
	w.inFlight = false
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.week = WeeklySelection{}
	for _, m := range w.menus {
		w.week[m.Date] = DailySelection{Date: m.Date, Meals: MealSelection{}}
	}
	view := c.weeklyView(w)
	w.mu.Unlock()
	return view, nil
}
