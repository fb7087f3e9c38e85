package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

type StateHandler struct {
	svc   *services.StateService
	clock Clock
}

func NewStateHandler(svc *services.StateService, clock Clock) *StateHandler {
	return &StateHandler{
		svc:   svc,
		clock: clock,
	}
}

func (h *StateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/state", h.Get)
}

// Get godoc
// @Summary      Current day state
// @Description  Visible habits with progress, visible tasks with age tags and the global streak.
// @Tags         state
// @Produce      json
// @Param        date  query     string  false  "Day override (YYYY-MM-DD)"
// @Success      200   {object}  domain.UserState
// @Failure      400   {object}  errorResponse
// @Security     BearerAuth
// @Router       /state [get]
func (h *StateHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today, err := h.clock.Today(c)
	if err != nil {
		handleError(c, err)
		return
	}

	state, err := h.svc.ComputeUserState(c.Request.Context(), userID, today)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
