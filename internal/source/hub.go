package source

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"frontdesk/internal/model"
)

// Collection names, in adapter-declaration order. The order matters: the
// aggregate status reports the FIRST errored source in this order.
const (
	NameBookings         = "bookings"
	NameGuestDetails     = "guestDetails"
	NameFinancials       = "financialsRoom"
	NameCityTax          = "cityTax"
	NameLoans            = "loans"
	NameActivities       = "activities"
	NameCheckins         = "checkins"
	NameActivitiesByCode = "activitiesByCode"
	NameGuestByRoom      = "guestByRoom"
)

// Names lists every collection in declaration order.
var Names = []string{
	NameBookings,
	NameGuestDetails,
	NameFinancials,
	NameCityTax,
	NameLoans,
	NameActivities,
	NameCheckins,
	NameActivitiesByCode,
	NameGuestByRoom,
}

// Hub owns one feed per collection and fans their change signals into a
// single dirty-set + wakeup channel. Consumers drain the dirty set before
// recomputing, which coalesces a burst of updates into one pass
// (debounce-to-latest).
type Hub struct {
	Bookings         *Feed[model.BookingsMap]
	GuestDetails     *Feed[model.GuestDetailsMap]
	Financials       *Feed[model.FinancialsMap]
	CityTax          *Feed[model.CityTaxMap]
	Loans            *Feed[model.LoansMap]
	Activities       *Feed[model.ActivitiesMap]
	Checkins         *Feed[model.CheckinsMap]
	ActivitiesByCode *Feed[model.CodeActivitiesMap]
	GuestByRoom      *Feed[model.AllocationMap]

	mu    sync.Mutex
	dirty map[string]bool
	sig   chan struct{}
}

// NewHub constructs all feeds in the loading state.
func NewHub() *Hub {
	h := &Hub{
		dirty: make(map[string]bool),
		sig:   make(chan struct{}, 1),
	}
	h.Bookings = NewFeed(NameBookings, DecodeJSON[model.BookingsMap], h.markDirty)
	h.GuestDetails = NewFeed(NameGuestDetails, decodeGuestDetails, h.markDirty)
	h.Financials = NewFeed(NameFinancials, DecodeJSON[model.FinancialsMap], h.markDirty)
	h.CityTax = NewFeed(NameCityTax, DecodeJSON[model.CityTaxMap], h.markDirty)
	h.Loans = NewFeed(NameLoans, DecodeJSON[model.LoansMap], h.markDirty)
	h.Activities = NewFeed(NameActivities, DecodeJSON[model.ActivitiesMap], h.markDirty)
	h.Checkins = NewFeed(NameCheckins, DecodeJSON[model.CheckinsMap], h.markDirty)
	h.ActivitiesByCode = NewFeed(NameActivitiesByCode, DecodeJSON[model.CodeActivitiesMap], h.markDirty)
	h.GuestByRoom = NewFeed(NameGuestByRoom, DecodeJSON[model.AllocationMap], h.markDirty)
	return h
}

func (h *Hub) markDirty(name string) {
	h.mu.Lock()
	h.dirty[name] = true
	h.mu.Unlock()
	select {
	case h.sig <- struct{}{}:
	default:
	}
}

// Changed returns the wakeup channel. One signal may cover several dirty
// feeds — call TakeDirty to find out which.
func (h *Hub) Changed() <-chan struct{} { return h.sig }

// TakeDirty swaps out and returns the set of feeds that changed since the
// previous call.
func (h *Hub) TakeDirty() map[string]bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	d := h.dirty
	h.dirty = make(map[string]bool)
	return d
}

// Apply routes a raw collection document to the named feed.
func (h *Hub) Apply(name string, doc []byte) error {
	switch name {
	case NameBookings:
		h.Bookings.Apply(doc)
	case NameGuestDetails:
		h.GuestDetails.Apply(doc)
	case NameFinancials:
		h.Financials.Apply(doc)
	case NameCityTax:
		h.CityTax.Apply(doc)
	case NameLoans:
		h.Loans.Apply(doc)
	case NameActivities:
		h.Activities.Apply(doc)
	case NameCheckins:
		h.Checkins.Apply(doc)
	case NameActivitiesByCode:
		h.ActivitiesByCode.Apply(doc)
	case NameGuestByRoom:
		h.GuestByRoom.Apply(doc)
	default:
		return fmt.Errorf("source: unknown collection %q", name)
	}
	return nil
}

// Fail routes a hard load error to the named feed.
func (h *Hub) Fail(name string, err error) {
	switch name {
	case NameBookings:
		h.Bookings.Fail(err)
	case NameGuestDetails:
		h.GuestDetails.Fail(err)
	case NameFinancials:
		h.Financials.Fail(err)
	case NameCityTax:
		h.CityTax.Fail(err)
	case NameLoans:
		h.Loans.Fail(err)
	case NameActivities:
		h.Activities.Fail(err)
	case NameCheckins:
		h.Checkins.Fail(err)
	case NameActivitiesByCode:
		h.ActivitiesByCode.Fail(err)
	case NameGuestByRoom:
		h.GuestByRoom.Fail(err)
	}
}

// decodeGuestDetails decodes guest profiles with per-entry soft validation:
// a malformed profile is skipped and the first failure recorded, so one bad
// record cannot blank the whole desk.
func decodeGuestDetails(doc []byte) (Decoded[model.GuestDetailsMap], error) {
	out := Decoded[model.GuestDetailsMap]{Data: model.GuestDetailsMap{}}
	if len(doc) == 0 {
		return out, nil
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return out, err
	}

	// Key order matches the store's lexicographic node order so that the
	// retained first failure is deterministic.
	for _, bookingRef := range sortedKeys(raw) {
		occupants := raw[bookingRef]
		for _, occupantID := range sortedKeys(occupants) {
			var profile model.GuestProfile
			if err := json.Unmarshal(occupants[occupantID], &profile); err != nil {
				if out.ValidationErr == nil {
					out.ValidationErr = fmt.Errorf("guestDetails %s/%s: %w", bookingRef, occupantID, err)
				}
				continue
			}
			if out.Data[bookingRef] == nil {
				out.Data[bookingRef] = make(map[string]model.GuestProfile)
			}
			out.Data[bookingRef][occupantID] = profile
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
