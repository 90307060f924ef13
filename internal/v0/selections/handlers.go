package selections

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"canteen/internal/auth"
	"canteen/internal/plan"
	"canteen/internal/v0/common"
)

// Handler exposes the daily and weekly planning flows over HTTP. All the
// actual rules live in the plan controller; this layer only binds requests
// and maps the controller's errors to status codes.
type Handler struct {
	ctrl *plan.Controller
}

func NewHandler(ctrl *plan.Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

func employeeOf(c *gin.Context) (plan.Employee, bool) {
	account := auth.CurrentEmployee(c)
	if account == nil {
		c.JSON(http.StatusUnauthorized, common.CreateErrorResponse([]string{"not logged in"}))
		return plan.Employee{}, false
	}
	return plan.Employee{ID: account.ID, Phone: account.Phone}, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, plan.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, plan.ErrUnknownDay):
		return http.StatusBadRequest
	case errors.Is(err, plan.ErrLocked),
		errors.Is(err, plan.ErrBadTransition),
		errors.Is(err, plan.ErrInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respond(c *gin.Context, view any, err error) {
	if err != nil {
		c.JSON(statusFor(err), common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(view))
}

// GetDaily opens the daily flow: due reminders go out, then the current
// screen state is returned. A reminder delivery failure is reported in the
// errors array next to the view rather than replacing it.
func (h *Handler) GetDaily(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}

	view, err := h.ctrl.ActivateDaily(c.Request.Context(), emp)
	if view == nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	errs := []string{}
	if err != nil {
		errs = append(errs, err.Error())
	}
	c.JSON(http.StatusOK, common.CreateAPIResponse(view, errs, ""))
}

// PostLocation answers the "where are you working tomorrow" question.
func (h *Handler) PostLocation(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}

	var body struct {
		Remote *bool `json:"remote" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	view, err := h.ctrl.SelectLocation(c.Request.Context(), emp, *body.Remote)
	respond(c, view, err)
}

type toggleRequest struct {
	MealType string `json:"mealType" binding:"required"`
	ItemID   string `json:"itemId" binding:"required"`
}

func (t toggleRequest) meal() (plan.MealType, bool) {
	mt := plan.MealType(t.MealType)
	for _, known := range plan.MealTypes {
		if mt == known {
			return mt, true
		}
	}
	return "", false
}

// PostToggle flips one menu item in tomorrow's draft.
func (h *Handler) PostToggle(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}

	var body toggleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	meal, ok := body.meal()
	if !ok {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"unknown meal type: " + body.MealType}))
		return
	}

	view, err := h.ctrl.ToggleMeal(c.Request.Context(), emp, meal, body.ItemID)
	respond(c, view, err)
}

// PostConfirm submits tomorrow's on-site selection and returns the meal pass.
func (h *Handler) PostConfirm(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}
	view, err := h.ctrl.ConfirmDaily(c.Request.Context(), emp)
	respond(c, view, err)
}

// PostEdit reopens a confirmed selection before the cutoff.
func (h *Handler) PostEdit(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}
	view, err := h.ctrl.RequestEdit(c.Request.Context(), emp)
	respond(c, view, err)
}

// DeleteDaily cancels tomorrow's selection entirely.
func (h *Handler) DeleteDaily(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}
	view, err := h.ctrl.CancelDaily(c.Request.Context(), emp)
	respond(c, view, err)
}

// GetWeekly opens the weekly flow for the current planning week.
func (h *Handler) GetWeekly(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}
	view, err := h.ctrl.ActivateWeekly(c.Request.Context(), emp)
	respond(c, view, err)
}

// PostWeekLocation switches one day of the weekly draft between on-site and
// remote.
func (h *Handler) PostWeekLocation(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}

	var body struct {
		Date   string `json:"date" binding:"required"`
		Remote *bool  `json:"remote" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	view, err := h.ctrl.SetWeekLocation(c.Request.Context(), emp, body.Date, *body.Remote)
	respond(c, view, err)
}

// PostWeekToggle flips one item on one day of the weekly draft.
func (h *Handler) PostWeekToggle(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}

	var body struct {
		Date string `json:"date" binding:"required"`
		toggleRequest
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	meal, ok := body.meal()
	if !ok {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"unknown meal type: " + body.MealType}))
		return
	}

	view, err := h.ctrl.ToggleWeekMeal(c.Request.Context(), emp, body.Date, meal, body.ItemID)
	respond(c, view, err)
}

// PostWeekSubmit persists the whole weekly draft.
func (h *Handler) PostWeekSubmit(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}
	view, err := h.ctrl.SubmitWeek(c.Request.Context(), emp)
	respond(c, view, err)
}

// DeleteWeekly removes the stored week and resets the draft.
func (h *Handler) DeleteWeekly(c *gin.Context) {
	emp, ok := employeeOf(c)
	if !ok {
		return
	}
	view, err := h.ctrl.DeleteWeek(c.Request.Context(), emp)
	respond(c, view, err)
}
