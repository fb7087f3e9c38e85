package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitflow/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/logger"
)

// Clock decides which calendar day a request operates on.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// Today honours a ?date=YYYY-MM-DD override and otherwise returns the current
// date in the configured location.
func (clk Clock) Today(c *gin.Context) (time.Time, error) {
	if raw := c.Query("date"); raw != "" {
		day, err := calendar.Parse(raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return day, nil
	}

	now := time.Now
	if clk.Now != nil {
		now = clk.Now
	}
	return calendar.Today(now(), clk.Location), nil
}

type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Success: false, Error: msg})
}

func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user context missing")
	}
	return userID, ok
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrUnauthorized):
		fail(c, http.StatusForbidden, "unauthorized access")

	case errors.Is(err, domain.ErrHabitNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		fail(c, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrConflict):
		fail(c, http.StatusConflict, err.Error())

	default:
		logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}
