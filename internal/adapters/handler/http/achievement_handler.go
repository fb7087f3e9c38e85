package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

type AchievementHandler struct {
	svc *services.AchievementService
}

func NewAchievementHandler(svc *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{svc: svc}
}

func (h *AchievementHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/achievements", h.List)
}

// List godoc
// @Summary  Achievement catalog with the caller's unlock dates
// @Tags     achievements
// @Produce  json
// @Success  200  {array}  domain.AchievementView
// @Security BearerAuth
// @Router   /achievements [get]
func (h *AchievementHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
