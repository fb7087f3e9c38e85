package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

type HabitHandler struct {
	habits  *services.HabitService
	entries *services.EntryService
	stats   *services.StatsService
	clock   Clock
}

func NewHabitHandler(habits *services.HabitService, entries *services.EntryService, stats *services.StatsService, clock Clock) *HabitHandler {
	return &HabitHandler{
		habits:  habits,
		entries: entries,
		stats:   stats,
		clock:   clock,
	}
}

type createHabitRequest struct {
	Text      string   `json:"text"`
	Frequency string   `json:"frequency" example:"daily"`
	Days      []int    `json:"days"`
	Target    *int     `json:"target"`
	Friends   []string `json:"friends"`
}

type habitResponse struct {
	Success bool          `json:"success"`
	Habit   *domain.Habit `json:"habit"`
	// SharedWith counts the friends that received a linked copy.
	SharedWith int `json:"shared_with"`
}

type toggleHabitResponse struct {
	Success bool             `json:"success"`
	Log     *domain.HabitLog `json:"log"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Detail)
		habits.POST("/:id/toggle", h.Toggle)
		habits.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary  Create a habit, optionally shared with friends
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    body  body      createHabitRequest  true  "Habit definition"
// @Success  201   {object}  habitResponse
// @Failure  400   {object}  errorResponse
// @Failure  404   {object}  errorResponse
// @Security BearerAuth
// @Router   /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	today, err := h.clock.Today(c)
	if err != nil {
		handleError(c, err)
		return
	}

	target := 1
	if req.Target != nil {
		target = *req.Target
	}

	created, err := h.habits.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:    userID,
		Text:      req.Text,
		Frequency: req.Frequency,
		Days:      req.Days,
		Target:    target,
		FriendIDs: req.Friends,
		Today:     today,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habitResponse{
		Success:    true,
		Habit:      created[0],
		SharedWith: len(created) - 1,
	})
}

// List godoc
// @Summary  All habits of the caller, including ones not scheduled today
// @Tags     habits
// @Produce  json
// @Success  200  {array}  domain.Habit
// @Security BearerAuth
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.habits.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	if list == nil {
		list = []*domain.Habit{}
	}

	c.JSON(http.StatusOK, list)
}

// Detail godoc
// @Summary  Habit statistics and 30 day history
// @Tags     habits
// @Produce  json
// @Param    id    path      string  true   "Habit ID"
// @Param    date  query     string  false  "Day override (YYYY-MM-DD)"
// @Success  200   {object}  domain.HabitDetail
// @Failure  403   {object}  errorResponse
// @Failure  404   {object}  errorResponse
// @Security BearerAuth
// @Router   /habits/{id} [get]
func (h *HabitHandler) Detail(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today, err := h.clock.Today(c)
	if err != nil {
		handleError(c, err)
		return
	}

	detail, err := h.stats.GetHabitDetail(c.Request.Context(), userID, c.Param("id"), today)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Toggle godoc
// @Summary  Advance today's progress of a habit
// @Tags     habits
// @Produce  json
// @Param    id    path      string  true   "Habit ID"
// @Param    date  query     string  false  "Day override (YYYY-MM-DD)"
// @Success  200   {object}  toggleHabitResponse
// @Failure  403   {object}  errorResponse
// @Failure  404   {object}  errorResponse
// @Security BearerAuth
// @Router   /habits/{id}/toggle [post]
func (h *HabitHandler) Toggle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today, err := h.clock.Today(c)
	if err != nil {
		handleError(c, err)
		return
	}

	log, err := h.entries.ToggleHabit(c.Request.Context(), userID, c.Param("id"), today)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleHabitResponse{Success: true, Log: log})
}

// Delete godoc
// @Summary  Delete a habit and its logs
// @Tags     habits
// @Param    id  path  string  true  "Habit ID"
// @Success  204
// @Failure  403  {object}  errorResponse
// @Failure  404  {object}  errorResponse
// @Security BearerAuth
// @Router   /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.habits.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
