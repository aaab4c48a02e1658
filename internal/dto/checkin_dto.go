package dto

import "frontdesk/internal/model"

// CheckinsQuery selects the reconciliation window around a target date.
type CheckinsQuery struct {
	Date       string `form:"date" validate:"required,datetime=2006-01-02"`
	DaysBefore int    `form:"before" validate:"min=0"`
	DaysAfter  int    `form:"after" validate:"min=0"`
}

// CheckinsResponse is the engine output for the check-in view. Rows is empty
// whenever Loading is true or Error is set; ValidationError is non-blocking
// and may accompany a populated row set.
type CheckinsResponse struct {
	Rows            []model.CheckInRow `json:"rows"`
	WindowStart     string             `json:"windowStart"`
	WindowEnd       string             `json:"windowEnd"`
	Loading         bool               `json:"loading"`
	ValidationError string             `json:"validationError,omitempty"`
	Error           string             `json:"error,omitempty"`
}
