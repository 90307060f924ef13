package selections

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"canteen/internal/auth"
	"canteen/internal/plan"
)

// In-memory collaborators. The engine's rules have their own tests in the
// plan package; here we only care about binding and status-code mapping.

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type memStore struct {
	mu   sync.Mutex
	rows map[string]plan.StoredSelection
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]plan.StoredSelection{}}
}

func (m *memStore) key(employeeID, date string) string { return employeeID + "|" + date }

func (m *memStore) Get(ctx context.Context, employeeID, date string) (*plan.StoredSelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[m.key(employeeID, date)]; ok {
		return &row, nil
	}
	return nil, nil
}

func (m *memStore) SubmitDaily(ctx context.Context, employeeID string, sel plan.DailySelection, passCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[m.key(employeeID, sel.Date)] = plan.StoredSelection{DailySelection: sel, PassCode: passCode}
	return nil
}

func (m *memStore) SubmitWeekly(ctx context.Context, employeeID string, week plan.WeeklySelection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sel := range week {
		m.rows[m.key(employeeID, sel.Date)] = plan.StoredSelection{DailySelection: sel}
	}
	return nil
}

func (m *memStore) DeleteDaily(ctx context.Context, employeeID, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, m.key(employeeID, date))
	return nil
}

func (m *memStore) DeleteWeekly(ctx context.Context, employeeID, weekStart string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.rows {
		if strings.HasPrefix(key, employeeID+"|") {
			delete(m.rows, key)
		}
	}
	return nil
}

type memCache struct {
	mu   sync.Mutex
	rows map[string]plan.StoredSelection
}

func newMemCache() *memCache { return &memCache{rows: map[string]plan.StoredSelection{}} }

func (m *memCache) Get(ctx context.Context, employeeID, date string) (*plan.StoredSelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[employeeID+"|"+date]; ok {
		return &row, nil
	}
	return nil, nil
}

func (m *memCache) Put(ctx context.Context, employeeID, date string, sel plan.StoredSelection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[employeeID+"|"+date] = sel
	return nil
}

func (m *memCache) Delete(ctx context.Context, employeeID, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, employeeID+"|"+date)
	return nil
}

type memLedger struct {
	mu   sync.Mutex
	sent map[string]bool
}

func newMemLedger() *memLedger { return &memLedger{sent: map[string]bool{}} }

func (m *memLedger) Sent(ctx context.Context, employeeID, date string, hour int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[employeeID+date+strconv.Itoa(hour)], nil
}

func (m *memLedger) MarkSent(ctx context.Context, employeeID, date string, hour int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[employeeID+date+strconv.Itoa(hour)] = true
	return nil
}

type nullNotifier struct{}

func (nullNotifier) Send(ctx context.Context, phone, message string) error { return nil }

type stubCatalog struct{}

func (stubCatalog) DailyMenu(ctx context.Context, day string) (*plan.DayMenu, error) {
	return &plan.DayMenu{
		Date: day,
		Meals: map[plan.MealType][]plan.MenuItem{
			plan.MealLunch: {{ID: "l1", Name: "Dal Tadka"}},
		},
	}, nil
}

func (s stubCatalog) WeeklyMenu(ctx context.Context, start string) ([]plan.DayMenu, error) {
	first, _ := time.Parse("2006-01-02", start)
	menus := make([]plan.DayMenu, 0, 7)
	for i := 0; i < 7; i++ {
		day, _ := s.DailyMenu(ctx, plan.DateKey(first.AddDate(0, 0, i)))
		menus = append(menus, *day)
	}
	return menus, nil
}

type stubPasses struct{}

func (stubPasses) Issue() (string, error) { return "mealpass_test", nil }

type apiResponse struct {
	Data   map[string]any `json:"data"`
	Errors []string       `json:"errors"`
}

func setupPlanRouter(t *testing.T, hour int) (*gin.Engine, *http.Cookie) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := auth.NewInMemoryRepository()
	if err := repo.CreateEmployee(&auth.Employee{
		ID:    "E12345",
		Name:  "Jane Doe",
		Email: "jane.doe@karmicsolutions.com",
		Phone: "9876543210",
	}); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	sessions := auth.NewSessionStore(repo, time.Hour, false)
	session, err := sessions.CreateSession("E12345")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	cookie := &http.Cookie{Name: auth.SessionCookieName, Value: session.ID}

	clock := fixedClock{t: time.Date(2026, 3, 10, hour, 0, 0, 0, time.Local)}
	schedule := plan.NewReminderScheduler(plan.DailyReminders, newMemLedger(), nullNotifier{})
	ctrl := plan.NewController(clock, plan.DefaultCutoff, stubCatalog{}, newMemStore(), newMemCache(), stubPasses{}, schedule)

	router := gin.New()
	api := router.Group("/api/v0")
	RegisterRoutes(api, NewHandler(ctrl), auth.NewMiddleware(sessions))
	return router, cookie
}

func doJSON(t *testing.T, router *gin.Engine, cookie *http.Cookie, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestPlanRequiresSession(t *testing.T) {
	router, _ := setupPlanRouter(t, 12)

	w := doJSON(t, router, nil, http.MethodGet, "/api/v0/plan/daily", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
}

func TestDailyOnsiteFlowOverHTTP(t *testing.T) {
	router, cookie := setupPlanRouter(t, 12)

	w := doJSON(t, router, cookie, http.MethodGet, "/api/v0/plan/daily", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d", w.Code)
	}
	if resp := decode(t, w); resp.Data["state"] != "awaiting_location" {
		t.Fatalf("expected awaiting_location, got %v", resp.Data["state"])
	}

	w = doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/daily/location", gin.H{"remote": false})
	if w.Code != http.StatusOK {
		t.Fatalf("location: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decode(t, w); resp.Data["state"] != "browsing_menu" {
		t.Fatalf("expected browsing_menu, got %v", resp.Data["state"])
	}

	w = doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/daily/toggle", gin.H{"mealType": "Lunch", "itemId": "l1"})
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/daily/confirm", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp.Data["state"] != "confirmed_onsite" {
		t.Fatalf("expected confirmed_onsite, got %v", resp.Data["state"])
	}
	if resp.Data["passCode"] != "mealpass_test" {
		t.Fatalf("expected the issued pass code, got %v", resp.Data["passCode"])
	}
}

func TestDailyRemoteOverHTTP(t *testing.T) {
	router, cookie := setupPlanRouter(t, 12)

	w := doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/daily/location", gin.H{"remote": true})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp.Data["state"] != "confirmed_remote" {
		t.Fatalf("expected confirmed_remote, got %v", resp.Data["state"])
	}
	if code, ok := resp.Data["passCode"]; ok && code != "" {
		t.Fatalf("remote day must not carry a pass code, got %v", code)
	}
}

func TestToggleUnknownMealTypeRejected(t *testing.T) {
	router, cookie := setupPlanRouter(t, 12)

	doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/daily/location", gin.H{"remote": false})
	w := doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/daily/toggle", gin.H{"mealType": "Brunch", "itemId": "l1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown meal type, got %d", w.Code)
	}
}

func TestToggleAfterLockIsConflict(t *testing.T) {
	router, cookie := setupPlanRouter(t, 22)

	doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/daily/location", gin.H{"remote": false})
	w := doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/daily/toggle", gin.H{"mealType": "Lunch", "itemId": "l1"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 after lock, got %d", w.Code)
	}
}

func TestCancelWithoutConfirmationIsConflict(t *testing.T) {
	router, cookie := setupPlanRouter(t, 12)

	w := doJSON(t, router, cookie, http.MethodDelete, "/api/v0/plan/daily", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestWeeklyFlowOverHTTP(t *testing.T) {
	router, cookie := setupPlanRouter(t, 12)

	w := doJSON(t, router, cookie, http.MethodGet, "/api/v0/plan/weekly", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d", w.Code)
	}
	resp := decode(t, w)
	if resp.Data["start"] != "2026-03-09" {
		t.Fatalf("expected week start 2026-03-09, got %v", resp.Data["start"])
	}
	week, ok := resp.Data["week"].(map[string]any)
	if !ok || len(week) != 7 {
		t.Fatalf("expected a 7-day draft, got %v", resp.Data["week"])
	}

	w = doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/weekly/location", gin.H{"date": "2026-03-12", "remote": true})
	if w.Code != http.StatusOK {
		t.Fatalf("location: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Remote days reject meal toggles.
	w = doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/weekly/toggle", gin.H{"date": "2026-03-12", "mealType": "Lunch", "itemId": "l1"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 toggling a remote day, got %d", w.Code)
	}

	w = doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/weekly/toggle", gin.H{"date": "2026-03-11", "mealType": "Lunch", "itemId": "l1"})
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/weekly/submit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, cookie, http.MethodDelete, "/api/v0/plan/weekly", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestWeekLocationOutsideWeekRejected(t *testing.T) {
	router, cookie := setupPlanRouter(t, 12)

	doJSON(t, router, cookie, http.MethodGet, "/api/v0/plan/weekly", nil)
	w := doJSON(t, router, cookie, http.MethodPost, "/api/v0/plan/weekly/location", gin.H{"date": "2026-04-01", "remote": true})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a day outside the week, got %d", w.Code)
	}
}
