package service

import (
	"context"
	"fmt"

	"frontdesk/internal/dto"
	"frontdesk/internal/engine"
	"frontdesk/internal/model"
	"frontdesk/internal/worker"
)

// EmailProgressService drives the email-progress view: occupants whose
// booking has committed money (at least one non-refundable ledger
// transaction) are tracked through the progress activity codes and can be
// sent a progress email.
type EmailProgressService interface {
	Eligible(ctx context.Context, q dto.CheckinsQuery) (*dto.EmailProgressResponse, error)
	Send(ctx context.Context, req dto.SendProgressRequest) (*dto.SendProgressResponse, error)
}

type emailProgressService struct {
	eng        *engine.Engine
	dispatcher *worker.Dispatcher
}

func NewEmailProgressService(eng *engine.Engine, dispatcher *worker.Dispatcher) EmailProgressService {
	return &emailProgressService{eng: eng, dispatcher: dispatcher}
}

// Eligible reuses the reconciliation pipeline and filters its rows: a booking
// with zero non-refundable transactions is excluded entirely.
func (s *emailProgressService) Eligible(_ context.Context, q dto.CheckinsQuery) (*dto.EmailProgressResponse, error) {
	w, err := engine.NewWindow(q.Date, q.DaysBefore, q.DaysAfter)
	if err != nil {
		return nil, err
	}

	res := s.eng.Rows(w)
	resp := &dto.EmailProgressResponse{Entries: []dto.ProgressEntry{}, Loading: res.Loading}
	if res.ValidationError != nil {
		resp.ValidationError = res.ValidationError.Error()
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	if res.Loading || res.Err != nil {
		return resp, nil
	}

	details := s.eng.Inputs().GuestDetails
	for _, row := range res.Rows {
		if !row.Financials.HasNonRefundable() {
			continue
		}
		resp.Entries = append(resp.Entries, dto.ProgressEntry{
			BookingRef:   row.BookingRef,
			OccupantID:   row.OccupantID,
			FullName:     fullName(details, row.BookingRef, row.OccupantID),
			Email:        details[row.BookingRef][row.OccupantID].Email,
			CheckInDate:  row.CheckInDate,
			CheckOutDate: row.CheckOutDate,
			CodesSeen:    codesSeen(row.Activities),
		})
	}
	return resp, nil
}

func codesSeen(activities []model.Activity) map[int]bool {
	seen := make(map[int]bool, len(model.EmailProgressCodes))
	for _, code := range model.EmailProgressCodes {
		seen[code] = false
	}
	for _, act := range activities {
		if _, tracked := seen[act.Code]; tracked {
			seen[act.Code] = true
		}
	}
	return seen
}

// Send enqueues one progress email per eligible occupant with an email
// address. Occupants without an address are reported as skipped, not failed.
func (s *emailProgressService) Send(ctx context.Context, req dto.SendProgressRequest) (*dto.SendProgressResponse, error) {
	eligible, err := s.Eligible(ctx, dto.CheckinsQuery{
		Date:       req.Date,
		DaysBefore: req.DaysBefore,
		DaysAfter:  req.DaysAfter,
	})
	if err != nil {
		return nil, err
	}
	if eligible.Error != "" {
		return nil, fmt.Errorf("email progress: sources unavailable: %s", eligible.Error)
	}

	wanted := make(map[string]bool, len(req.BookingRefs))
	for _, ref := range req.BookingRefs {
		wanted[ref] = true
	}

	resp := &dto.SendProgressResponse{}
	for _, entry := range eligible.Entries {
		if len(wanted) > 0 && !wanted[entry.BookingRef] {
			continue
		}
		if entry.Email == "" {
			resp.Skipped = append(resp.Skipped, entry.OccupantID)
			continue
		}
		payload := worker.ProgressEmailPayload{
			ToEmail:      entry.Email,
			GuestName:    entry.FullName,
			BookingRef:   entry.BookingRef,
			OccupantID:   entry.OccupantID,
			CheckInDate:  entry.CheckInDate,
			CheckOutDate: entry.CheckOutDate,
		}
		if err := s.dispatcher.EnqueueProgressEmail(ctx, payload); err != nil {
			return nil, fmt.Errorf("email progress: enqueue %s: %w", entry.OccupantID, err)
		}
		resp.Enqueued++
	}
	return resp, nil
}
