package source

import (
	"errors"
	"testing"

	"frontdesk/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_StartsLoading(t *testing.T) {
	hub := NewHub()
	assert.True(t, hub.Bookings.Snapshot().Loading)
	assert.True(t, hub.GuestDetails.Snapshot().Loading)
	assert.True(t, hub.Financials.Snapshot().Loading)
	assert.True(t, hub.CityTax.Snapshot().Loading)
	assert.True(t, hub.Loans.Snapshot().Loading)
	assert.True(t, hub.Activities.Snapshot().Loading)
	assert.True(t, hub.Checkins.Snapshot().Loading)
	assert.True(t, hub.ActivitiesByCode.Snapshot().Loading)
	assert.True(t, hub.GuestByRoom.Snapshot().Loading)
}

func TestHub_ApplyDecodesBookings(t *testing.T) {
	hub := NewHub()
	doc := `{"HM1": {
		"occ-a": {"checkInDate": "2026-08-29", "checkOutDate": "2026-09-01", "roomNumbers": ["101", 102]},
		"__notes": {"text": "arrives after midnight"}
	}}`
	require.NoError(t, hub.Apply(NameBookings, []byte(doc)))

	snap := hub.Bookings.Snapshot()
	require.False(t, snap.Loading)
	require.NoError(t, snap.Err)

	rec := snap.Data["HM1"]["occ-a"]
	require.Equal(t, model.RecordStay, rec.Kind)
	assert.Equal(t, "2026-08-29", rec.Stay.CheckInDate)
	// Mixed string/number room values normalize to strings.
	assert.Equal(t, []string{"101", "102"}, rec.Stay.RoomNumbers)

	notes := snap.Data["HM1"]["__notes"]
	assert.Equal(t, model.RecordNotes, notes.Kind)
	assert.Equal(t, "arrives after midnight", notes.Notes)
}

func TestHub_ApplyEmptyDocIsEmptySnapshot(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Apply(NameBookings, nil))

	snap := hub.Bookings.Snapshot()
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
	assert.Empty(t, snap.Data)
}

func TestHub_ApplyDecodeFailureIsHardError(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Apply(NameBookings, []byte(`{"HM1": {"occ-a": {"checkInDate": "ok"`)))

	snap := hub.Bookings.Snapshot()
	assert.Error(t, snap.Err)
	assert.Empty(t, snap.Data)
}

func TestHub_ApplyUnknownCollection(t *testing.T) {
	hub := NewHub()
	assert.Error(t, hub.Apply("prices", []byte(`{}`)))
}

func TestHub_GuestDetailsSoftValidation(t *testing.T) {
	hub := NewHub()
	doc := `{"HM1": {
		"occ-a": "not an object",
		"occ-b": {"firstName": "Bruno"},
		"occ-c": 42
	}}`
	require.NoError(t, hub.Apply(NameGuestDetails, []byte(doc)))

	snap := hub.GuestDetails.Snapshot()
	require.NoError(t, snap.Err)

	// Malformed entries are skipped, the good one survives, and the FIRST
	// failure in key order is the one reported.
	assert.Equal(t, "Bruno", snap.Data["HM1"]["occ-b"].FirstName)
	assert.NotContains(t, snap.Data["HM1"], "occ-a")
	require.Error(t, snap.ValidationErr)
	assert.Contains(t, snap.ValidationErr.Error(), "occ-a")
}

func TestHub_FailPublishesError(t *testing.T) {
	hub := NewHub()
	boom := errors.New("BRPOP timeout")
	hub.Fail(NameLoans, boom)

	snap := hub.Loans.Snapshot()
	assert.Same(t, boom, snap.Err)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Data)
}

func TestHub_DirtySetCoalesces(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Apply(NameBookings, []byte(`{}`)))
	require.NoError(t, hub.Apply(NameLoans, []byte(`{}`)))
	require.NoError(t, hub.Apply(NameBookings, []byte(`{}`)))

	// Three updates, one wakeup.
	select {
	case <-hub.Changed():
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-hub.Changed():
		t.Fatal("signals must coalesce into one")
	default:
	}

	dirty := hub.TakeDirty()
	assert.Equal(t, map[string]bool{NameBookings: true, NameLoans: true}, dirty)
	assert.Empty(t, hub.TakeDirty())
}
