package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"canteen/internal/auth"
	"canteen/internal/plan"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type fakeCatalog struct {
	lastDay string
}

func (f *fakeCatalog) DailyMenu(ctx context.Context, day string) (*plan.DayMenu, error) {
	f.lastDay = day
	return &plan.DayMenu{Date: day, Meals: map[plan.MealType][]plan.MenuItem{}}, nil
}

func (f *fakeCatalog) WeeklyMenu(ctx context.Context, start string) ([]plan.DayMenu, error) {
	first, _ := time.Parse("2006-01-02", start)
	menus := make([]plan.DayMenu, 0, 7)
	for i := 0; i < 7; i++ {
		day, _ := f.DailyMenu(ctx, plan.DateKey(first.AddDate(0, 0, i)))
		menus = append(menus, *day)
	}
	return menus, nil
}

func (f *fakeCatalog) CreateItem(ctx context.Context, item Item) error { return nil }

func (f *fakeCatalog) SetRotation(ctx context.Context, weekday int, entries []RotationEntry) error {
	return nil
}

func setupMenuRouter(t *testing.T, catalog *fakeCatalog) (*gin.Engine, *http.Cookie) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := auth.NewInMemoryRepository()
	if err := repo.CreateEmployee(&auth.Employee{ID: "E12345", Name: "Jane Doe"}); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}
	sessions := auth.NewSessionStore(repo, time.Hour, false)
	session, err := sessions.CreateSession("E12345")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	clock := fixedClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)}
	router := gin.New()
	RegisterRoutes(router.Group("/api/v0"), NewHandler(catalog, clock), auth.NewMiddleware(sessions))
	return router, &http.Cookie{Name: auth.SessionCookieName, Value: session.ID}
}

func get(router *gin.Engine, cookie *http.Cookie, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMenuRequiresSession(t *testing.T) {
	router, _ := setupMenuRouter(t, &fakeCatalog{})

	if w := get(router, nil, "/api/v0/menu"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
}

func TestDailyMenuDefaultsToTomorrow(t *testing.T) {
	catalog := &fakeCatalog{}
	router, cookie := setupMenuRouter(t, catalog)

	w := get(router, cookie, "/api/v0/menu")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if catalog.lastDay != "2026-03-11" {
		t.Fatalf("expected the catalog to be asked for tomorrow, got %q", catalog.lastDay)
	}
}

func TestDailyMenuRejectsBadDate(t *testing.T) {
	router, cookie := setupMenuRouter(t, &fakeCatalog{})

	w := get(router, cookie, "/api/v0/menu?date=11-03-2026")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad date, got %d", w.Code)
	}
}

func TestWeeklyMenuCoversTheWeek(t *testing.T) {
	router, cookie := setupMenuRouter(t, &fakeCatalog{})

	w := get(router, cookie, "/api/v0/menu/week")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []plan.DayMenu `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 7 {
		t.Fatalf("expected 7 day menus, got %d", len(resp.Data))
	}
	if resp.Data[0].Date != "2026-03-09" {
		t.Fatalf("expected the week to start on Monday 2026-03-09, got %s", resp.Data[0].Date)
	}
}
