package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontdesk/internal/source"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyAll seeds every collection so no feed is left in the loading state.
func applyAll(t *testing.T, hub *source.Hub, docs map[string]string) {
	t.Helper()
	for _, name := range source.Names {
		doc := docs[name]
		if doc == "" {
			doc = "{}"
		}
		require.NoError(t, hub.Apply(name, []byte(doc)))
	}
}

func TestEngine_RowsGatedWhileLoading(t *testing.T) {
	hub := source.NewHub()
	eng := New(hub, zerolog.Nop())

	w := testWindow(t)
	res := eng.Rows(w)
	assert.True(t, res.Loading)
	assert.Empty(t, res.Rows)
}

func TestEngine_FullPipeline(t *testing.T) {
	hub := source.NewHub()
	applyAll(t, hub, map[string]string{
		source.NameBookings: `{"HM1": {
			"occ-a": {"checkInDate": "2026-08-29", "checkOutDate": "2026-09-01", "roomNumbers": ["101"], "leadGuest": true},
			"occ-b": {"checkInDate": "2026-08-29", "checkOutDate": "2026-09-01", "roomNumbers": [101]}
		}}`,
		source.NameGuestDetails: `{"HM1": {"occ-a": {"firstName": "Ana", "gender": "F"}}}`,
		source.NameGuestByRoom:  `{"occ-a": {"allocated": "205", "booked": "101"}}`,
	})

	eng := New(hub, zerolog.Nop())
	eng.refresh(hub.TakeDirty())

	res := eng.Rows(testWindow(t))
	require.False(t, res.Loading)
	require.NoError(t, res.Err)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, "Ana", res.Rows[0].FirstName)
	assert.True(t, res.Rows[0].IsFirstForBooking)
	assert.False(t, res.Rows[1].IsFirstForBooking)
	// Numeric room number on the wire decodes to its string form.
	assert.Equal(t, []string{"101"}, res.Rows[1].Rooms)

	// Calendar follows the allocation, not the booked room.
	cal := eng.Calendar()
	assert.Equal(t, []string{"occ-a"}, cal["2026-08-29"]["205"])
	assert.Equal(t, []string{"occ-b"}, cal["2026-08-29"]["101"])
}

func TestEngine_SourceErrorBlanksRows(t *testing.T) {
	hub := source.NewHub()
	applyAll(t, hub, map[string]string{
		source.NameBookings: `{"HM1": {"occ-a": {"checkInDate": "2026-08-29", "checkOutDate": "2026-09-01", "roomNumbers": ["101"]}}}`,
	})
	eng := New(hub, zerolog.Nop())
	eng.refresh(hub.TakeDirty())
	require.Len(t, eng.Rows(testWindow(t)).Rows, 1)

	hub.Fail(source.NameLoans, errors.New("loans: connection reset"))
	eng.refresh(hub.TakeDirty())

	res := eng.Rows(testWindow(t))
	require.Error(t, res.Err)
	assert.Empty(t, res.Rows)
}

func TestEngine_FirstErroredSourceWins(t *testing.T) {
	hub := source.NewHub()
	applyAll(t, hub, nil)

	errGuests := errors.New("guestDetails down")
	errLoans := errors.New("loans down")
	hub.Fail(source.NameLoans, errLoans)
	hub.Fail(source.NameGuestDetails, errGuests)

	eng := New(hub, zerolog.Nop())
	eng.refresh(hub.TakeDirty())

	// guestDetails precedes loans in declaration order, regardless of the
	// order the failures arrived in.
	_, err := eng.Status()
	assert.Same(t, errGuests, err)
}

func TestEngine_StatusForSubset(t *testing.T) {
	hub := source.NewHub()
	applyAll(t, hub, nil)
	hub.Fail(source.NameCheckins, errors.New("checkins down"))

	eng := New(hub, zerolog.Nop())
	eng.refresh(hub.TakeDirty())

	// The subset excludes checkins, so its status is clean even though the
	// global status is not.
	loading, err := eng.StatusFor(source.NameBookings, source.NameGuestDetails)
	assert.False(t, loading)
	assert.NoError(t, err)

	_, globalErr := eng.Status()
	assert.Error(t, globalErr)
}

func TestEngine_RunStopsOnCancel(t *testing.T) {
	hub := source.NewHub()
	eng := New(hub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		eng.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	// Updates after teardown no longer trigger a refresh.
	require.NoError(t, hub.Apply(source.NameBookings,
		[]byte(`{"HM1": {"occ-a": {"checkInDate": "2026-08-29", "checkOutDate": "2026-09-01", "roomNumbers": ["101"]}}}`)))
	snap := eng.Inputs()
	assert.Empty(t, snap.Bookings)
}

func TestEngine_ValidationErrorDoesNotBlankRows(t *testing.T) {
	hub := source.NewHub()
	applyAll(t, hub, map[string]string{
		source.NameBookings:     `{"HM1": {"occ-a": {"checkInDate": "2026-08-29", "checkOutDate": "2026-09-01", "roomNumbers": ["101"]}}}`,
		source.NameGuestDetails: `{"HM1": {"occ-a": {"firstName": "Ana"}, "occ-broken": "not an object"}}`,
	})

	eng := New(hub, zerolog.Nop())
	eng.refresh(hub.TakeDirty())

	res := eng.Rows(testWindow(t))
	require.NoError(t, res.Err)
	assert.Error(t, res.ValidationError)
	assert.Len(t, res.Rows, 1)
}
