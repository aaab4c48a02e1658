package engine

import (
	"context"
	"sync"
	"time"

	"frontdesk/internal/model"
	"frontdesk/internal/source"

	"github.com/rs/zerolog"
)

// Result is the engine output consumed by views: the reconciled rows plus the
// aggregate status. When Loading or Err is set the rows are empty — no
// partial output is shown on a hard upstream failure.
type Result struct {
	Rows            []model.CheckInRow
	Loading         bool
	ValidationError error
	Err             error
}

// Engine subscribes to the hub and maintains the latest immutable snapshot of
// every source plus the derived occupancy calendar. Recomputation is
// synchronous and side-effect free; a burst of source updates coalesces into
// one refresh (last snapshot wins). After Run returns no refresh happens.
type Engine struct {
	hub *source.Hub
	log zerolog.Logger
	now func() time.Time

	mu       sync.RWMutex
	inputs   Inputs
	statuses []SourceStatus
	calendar Calendar
}

func New(hub *source.Hub, logger zerolog.Logger) *Engine {
	e := &Engine{
		hub: hub,
		log: logger,
		now: time.Now,
	}
	e.refresh(allDirty())
	return e
}

func allDirty() map[string]bool {
	d := make(map[string]bool, len(source.Names))
	for _, n := range source.Names {
		d[n] = true
	}
	return d
}

// Run drives the refresh loop until ctx is cancelled. Call it in its own
// goroutine; everything else reads through the mutex.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			e.log.Info().Msg("engine: stopped")
			return
		case <-e.hub.Changed():
			dirty := e.hub.TakeDirty()
			e.refresh(dirty)
		}
	}
}

// refresh pulls the latest snapshots from the hub. The occupancy calendar is
// rebuilt only when the bookings or room-allocation snapshot changed; all
// other sources leave it untouched.
func (e *Engine) refresh(dirty map[string]bool) {
	bookings := e.hub.Bookings.Snapshot()
	guests := e.hub.GuestDetails.Snapshot()
	financials := e.hub.Financials.Snapshot()
	cityTax := e.hub.CityTax.Snapshot()
	loans := e.hub.Loans.Snapshot()
	activities := e.hub.Activities.Snapshot()
	checkins := e.hub.Checkins.Snapshot()
	byCode := e.hub.ActivitiesByCode.Snapshot()
	guestByRoom := e.hub.GuestByRoom.Snapshot()

	inputs := Inputs{
		Bookings:           bookings.Data,
		GuestDetails:       guests.Data,
		Financials:         financials.Data,
		CityTax:            cityTax.Data,
		Loans:              loans.Data,
		Activities:         activities.Data,
		ActivitiesByCode:   byCode.Data,
		Checkins:           checkins.Data,
		Allocations:        guestByRoom.Data,
		GuestValidationErr: guests.ValidationErr,
		NowTimestamp:       NowISO(e.now()),
	}

	// Declaration order fixes which error wins in the aggregate status.
	statuses := []SourceStatus{
		{Name: source.NameBookings, Loading: bookings.Loading, Err: bookings.Err},
		{Name: source.NameGuestDetails, Loading: guests.Loading, Err: guests.Err},
		{Name: source.NameFinancials, Loading: financials.Loading, Err: financials.Err},
		{Name: source.NameCityTax, Loading: cityTax.Loading, Err: cityTax.Err},
		{Name: source.NameLoans, Loading: loans.Loading, Err: loans.Err},
		{Name: source.NameActivities, Loading: activities.Loading, Err: activities.Err},
		{Name: source.NameCheckins, Loading: checkins.Loading, Err: checkins.Err},
		{Name: source.NameActivitiesByCode, Loading: byCode.Loading, Err: byCode.Err},
		{Name: source.NameGuestByRoom, Loading: guestByRoom.Loading, Err: guestByRoom.Err},
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Preserve the previous NowTimestamp when no snapshot actually changed,
	// so an identical snapshot set reconciles to an identical row set.
	if len(dirty) == 0 {
		inputs.NowTimestamp = e.inputs.NowTimestamp
	}

	e.inputs = inputs
	e.statuses = statuses
	if dirty[source.NameBookings] || dirty[source.NameGuestByRoom] || e.calendar == nil {
		e.calendar = BuildCalendar(inputs.Bookings, inputs.Allocations)
	}
}

// Inputs returns the latest snapshot set.
func (e *Engine) Inputs() Inputs {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inputs
}

// Status returns the aggregate loading/error state across all sources.
func (e *Engine) Status() (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return CombineStatus(e.statuses)
}

// StatusFor aggregates only the named sources, preserving declaration order.
// Views that consult a subset of adapters report status over that subset.
func (e *Engine) StatusFor(names ...string) (bool, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	var filtered []SourceStatus
	for _, s := range e.statuses {
		if want[s.Name] {
			filtered = append(filtered, s)
		}
	}
	return CombineStatus(filtered)
}

// Calendar returns the current occupancy calendar.
func (e *Engine) Calendar() Calendar {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.calendar
}

// Rows reconciles the latest snapshot set against the window. While any
// source is loading or errored the result carries no rows, even if an
// earlier recomputation produced some.
func (e *Engine) Rows(w Window) Result {
	e.mu.RLock()
	inputs := e.inputs
	statuses := e.statuses
	e.mu.RUnlock()

	loading, err := CombineStatus(statuses)
	if loading || err != nil {
		return Result{Rows: []model.CheckInRow{}, Loading: loading, Err: err}
	}

	rows, valErr := BuildRows(inputs, w)
	if rows == nil {
		rows = []model.CheckInRow{}
	}
	return Result{Rows: rows, ValidationError: valErr}
}
