package service

import (
	"context"

	"frontdesk/internal/dto"
	"frontdesk/internal/engine"
)

// CheckinService serves the reconciled check-in rows for a date window.
type CheckinService interface {
	Rows(ctx context.Context, q dto.CheckinsQuery) (*dto.CheckinsResponse, error)
}

type checkinService struct {
	eng *engine.Engine
}

func NewCheckinService(eng *engine.Engine) CheckinService {
	return &checkinService{eng: eng}
}

func (s *checkinService) Rows(_ context.Context, q dto.CheckinsQuery) (*dto.CheckinsResponse, error) {
	w, err := engine.NewWindow(q.Date, q.DaysBefore, q.DaysAfter)
	if err != nil {
		return nil, err
	}

	res := s.eng.Rows(w)
	resp := &dto.CheckinsResponse{
		Rows:        res.Rows,
		WindowStart: w.Start,
		WindowEnd:   w.End,
		Loading:     res.Loading,
	}
	if res.ValidationError != nil {
		resp.ValidationError = res.ValidationError.Error()
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	return resp, nil
}
