package menu

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"canteen/internal/plan"
	"canteen/internal/v0/common"
)

// Catalog is what the handlers need from the data layer.
type Catalog interface {
	DailyMenu(ctx context.Context, day string) (*plan.DayMenu, error)
	WeeklyMenu(ctx context.Context, start string) ([]plan.DayMenu, error)
	CreateItem(ctx context.Context, item Item) error
	SetRotation(ctx context.Context, weekday int, entries []RotationEntry) error
}

// Handler serves the menu endpoints
type Handler struct {
	catalog Catalog
	clock   plan.Clock
}

func NewHandler(catalog Catalog, clock plan.Clock) *Handler {
	return &Handler{catalog: catalog, clock: clock}
}

// GetDailyMenu returns the menu for ?date=YYYY-MM-DD, defaulting to
// tomorrow, the day selections target.
func (h *Handler) GetDailyMenu(c *gin.Context) {
	day := c.Query("date")
	if day == "" {
		day = plan.DateKey(plan.TargetDay(h.clock.Now()))
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"Invalid date format. Please use YYYY-MM-DD"}))
		return
	}

	dayMenu, err := h.catalog.DailyMenu(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(dayMenu))
}

// GetWeeklyMenu returns the 7 menus of the current planning week, Monday
// first.
func (h *Handler) GetWeeklyMenu(c *gin.Context) {
	start := plan.DateKey(plan.WeekStart(h.clock.Now()))
	menus, err := h.catalog.WeeklyMenu(c.Request.Context(), start)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(menus))
}

// PostItem adds a catalog item (canteen staff use)
func (h *Handler) PostItem(c *gin.Context) {
	var item Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	if err := h.catalog.CreateItem(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	c.JSON(http.StatusCreated, common.CreateSuccessResponse(nil))
}

// PutRotation replaces one weekday of the rotation (canteen staff use)
func (h *Handler) PutRotation(c *gin.Context) {
	var body struct {
		Weekday *int            `json:"weekday" binding:"required"`
		Entries []RotationEntry `json:"entries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	if *body.Weekday < 0 || *body.Weekday > 6 {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"weekday must be between 0 and 6"}))
		return
	}
	if err := h.catalog.SetRotation(c.Request.Context(), *body.Weekday, body.Entries); err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(nil))
}
