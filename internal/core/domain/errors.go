package domain

import (
	"errors"
	"fmt"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrConflict      = errors.New("resource already exists")

	ErrValidation = errors.New("validation failed")
)

var (
	ErrHabitTextEmpty    = fmt.Errorf("%w: habit text cannot be empty", ErrValidation)
	ErrHabitTextTooLong  = fmt.Errorf("%w: habit text is too long (max %d chars)", ErrValidation, MaxTextLen)
	ErrInvalidFrequency  = fmt.Errorf("%w: frequency must be daily, specific or weekly_flex", ErrValidation)
	ErrInvalidTarget     = fmt.Errorf("%w: target must be at least 1", ErrValidation)
	ErrInvalidWeekdays   = fmt.Errorf("%w: days must be weekday indices 0-6", ErrValidation)
	ErrMissingWeekdays   = fmt.Errorf("%w: specific habits need at least one day", ErrValidation)
	ErrTaskTextEmpty     = fmt.Errorf("%w: task text cannot be empty", ErrValidation)
	ErrTaskTextTooLong   = fmt.Errorf("%w: task text is too long (max %d chars)", ErrValidation, MaxTextLen)
	ErrInvalidDayOffset  = fmt.Errorf("%w: day offset must be between 0 and %d", ErrValidation, MaxDayOffset)
	ErrInvalidUsername   = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrInvalidUserID     = fmt.Errorf("%w: invalid user id", ErrValidation)
	ErrSelfShare         = fmt.Errorf("%w: cannot share a habit with yourself", ErrValidation)
)
