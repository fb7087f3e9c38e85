package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type profileResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	CurrentStreak int    `json:"current_streak"`
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users/:id", h.Profile)
}

// Profile godoc
// @Summary  Public profile of a user, used by the friends list
// @Tags     users
// @Produce  json
// @Param    id   path      string  true  "User ID"
// @Success  200  {object}  profileResponse
// @Failure  404  {object}  errorResponse
// @Security BearerAuth
// @Router   /users/{id} [get]
func (h *UserHandler) Profile(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	user, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:            user.ID,
		Username:      user.Username,
		CurrentStreak: user.CurrentStreak,
	})
}
