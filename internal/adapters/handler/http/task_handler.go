package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

type TaskHandler struct {
	svc   *services.TaskService
	clock Clock
}

func NewTaskHandler(svc *services.TaskService, clock Clock) *TaskHandler {
	return &TaskHandler{
		svc:   svc,
		clock: clock,
	}
}

type createTaskRequest struct {
	Text string `json:"text"`
	// Offset schedules the task that many days after today.
	Offset int `json:"offset"`
}

type taskResponse struct {
	Success bool         `json:"success"`
	Task    *domain.Task `json:"task"`
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.POST("/:id/toggle", h.Toggle)
	}
}

// Create godoc
// @Summary  Create a one-off task
// @Tags     tasks
// @Accept   json
// @Produce  json
// @Param    body  body      createTaskRequest  true  "Task"
// @Success  201   {object}  taskResponse
// @Failure  400   {object}  errorResponse
// @Security BearerAuth
// @Router   /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	today, err := h.clock.Today(c)
	if err != nil {
		handleError(c, err)
		return
	}

	task, err := h.svc.Create(c.Request.Context(), services.CreateTaskInput{
		UserID:    userID,
		Text:      req.Text,
		DayOffset: req.Offset,
		Today:     today,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse{Success: true, Task: task})
}

// Toggle godoc
// @Summary  Flip the completion of a task
// @Tags     tasks
// @Produce  json
// @Param    id    path      string  true   "Task ID"
// @Param    date  query     string  false  "Day override (YYYY-MM-DD)"
// @Success  200   {object}  taskResponse
// @Failure  403   {object}  errorResponse
// @Failure  404   {object}  errorResponse
// @Security BearerAuth
// @Router   /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today, err := h.clock.Today(c)
	if err != nil {
		handleError(c, err)
		return
	}

	task, err := h.svc.ToggleTask(c.Request.Context(), userID, c.Param("id"), today)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse{Success: true, Task: task})
}
