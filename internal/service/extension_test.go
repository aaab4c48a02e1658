package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"frontdesk/internal/dto"
	"frontdesk/internal/engine"
	"frontdesk/internal/model"
	"frontdesk/internal/source"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory RoomConfigRepository ───────────────────────────────────────────

type stubRoomRepo struct {
	beds map[string]int
}

func (r *stubRoomRepo) Upsert(_ context.Context, rc *model.RoomConfig) error {
	r.beds[rc.RoomNumber] = rc.BedCount
	return nil
}

func (r *stubRoomRepo) FindByRoom(_ context.Context, room string) (*model.RoomConfig, error) {
	beds, ok := r.beds[room]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.RoomConfig{RoomNumber: room, BedCount: beds}, nil
}

func (r *stubRoomRepo) List(_ context.Context) ([]model.RoomConfig, error) {
	var out []model.RoomConfig
	for room, beds := range r.beds {
		out = append(out, model.RoomConfig{RoomNumber: room, BedCount: beds})
	}
	return out, nil
}

func (r *stubRoomRepo) GetBedCount(_ context.Context, room string) int {
	return r.beds[room]
}

func (r *stubRoomRepo) DB() *gorm.DB { return nil }

// ── Engine fixture ───────────────────────────────────────────────────────────

// newTestEngine seeds every collection (missing ones as empty documents) so
// that no feed is left loading, and returns a refreshed engine.
func newTestEngine(t *testing.T, docs map[string]string) *engine.Engine {
	t.Helper()
	hub := source.NewHub()
	for _, name := range source.Names {
		doc := docs[name]
		if doc == "" {
			doc = "{}"
		}
		require.NoError(t, hub.Apply(name, []byte(doc)))
	}
	return engine.New(hub, zerolog.Nop())
}

func ymd(t time.Time) string { return t.Format("2006-01-02") }

func TestExtensionInHouse(t *testing.T) {
	now := time.Now()
	yesterday := ymd(now.AddDate(0, 0, -1))
	today := ymd(now)
	tomorrow := ymd(now.AddDate(0, 0, 1))
	lastWeek := ymd(now.AddDate(0, 0, -7))

	bookings := fmt.Sprintf(`{
		"HM1": {
			"occ-current": {"checkInDate": "%s", "checkOutDate": "%s", "roomNumbers": ["101"], "leadGuest": true},
			"occ-mate": {"checkInDate": "%s", "checkOutDate": "%s", "roomNumbers": ["101"]}
		},
		"HM2": {"occ-leaving": {"checkInDate": "%s", "checkOutDate": "%s", "roomNumbers": ["202"]}},
		"HM3": {"occ-extended": {"checkInDate": "%s", "checkOutDate": "%s", "roomNumbers": ["303"]}},
		"HM4": {"occ-gone": {"checkInDate": "%s", "checkOutDate": "%s", "roomNumbers": ["404"]}}
	}`,
		yesterday, tomorrow,
		yesterday, tomorrow,
		yesterday, today,
		yesterday, today,
		lastWeek, yesterday,
	)

	eng := newTestEngine(t, map[string]string{
		source.NameBookings:     bookings,
		source.NameGuestDetails: `{"HM1": {"occ-current": {"firstName": "Ana", "lastName": "Silva"}}}`,
		source.NameFinancials:   `{"HM1": {"totalPaid": 120, "transactions": {}}}`,
		// occ-extended already took the extra night: code 14 on record.
		source.NameActivitiesByCode: `{"14": {"occ-extended": {"p1": {"who": "desk"}}}}`,
	})

	svc := NewExtensionService(eng, &stubRoomRepo{beds: map[string]int{}})
	resp, err := svc.InHouse(context.Background())
	require.NoError(t, err)
	require.False(t, resp.Loading)

	var ids []string
	for _, row := range resp.Rows {
		ids = append(ids, row.OccupantID)
	}
	// Mid-stay guests and today's un-extended checkout qualify; the guest
	// with a recorded extension and the long-gone one do not.
	assert.ElementsMatch(t, []string{"occ-current", "occ-mate", "occ-leaving"}, ids)

	for _, row := range resp.Rows {
		if row.OccupantID != "occ-current" {
			continue
		}
		assert.Equal(t, "Ana Silva", row.FullName)
		assert.Equal(t, "HM1", row.BookingRef)
		assert.Equal(t, "101", row.RoomNumber)
		assert.Equal(t, []string{"occ-current", "occ-mate"}, row.OccupantIDs)
		assert.Equal(t, 2, row.OccupantCount)
		// 120 paid / 2 nights / 2 guests = 30 per night per guest.
		assert.True(t, row.NightlyRate.Equal(decimal.NewFromInt(30)),
			"nightly rate = %s", row.NightlyRate)
	}
}

func TestExtensionInHouse_LoadingGates(t *testing.T) {
	hub := source.NewHub()
	eng := engine.New(hub, zerolog.Nop())

	svc := NewExtensionService(eng, &stubRoomRepo{beds: map[string]int{}})
	resp, err := svc.InHouse(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Loading)
	assert.Empty(t, resp.Rows)
}

func TestNightlyRate(t *testing.T) {
	stay := &model.StayRecord{CheckInDate: "2026-08-29", CheckOutDate: "2026-09-02"}
	fin := model.Financials{TotalPaid: decimal.NewFromInt(100)}

	// 100 paid over 4 nights for a single guest: 25 per night.
	rate := nightlyRate(fin, stay, 1)
	assert.True(t, rate.Equal(decimal.NewFromInt(25)), "rate = %s", rate)

	// Degenerate divisors yield zero, not a panic.
	assert.True(t, nightlyRate(fin, &model.StayRecord{}, 1).IsZero())
	assert.True(t, nightlyRate(fin, stay, 0).IsZero())
}

func TestExtensionCheckAvailability_SingleBedRoom(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		source.NameBookings: `{"HM1": {"occ-a": {"checkInDate": "2026-08-29", "checkOutDate": "2026-08-31", "roomNumbers": ["301"]}}}`,
	})
	svc := NewExtensionService(eng, &stubRoomRepo{beds: map[string]int{"301": 1}})

	// One bed, one occupant: nothing fits while the stay runs.
	resp, err := svc.CheckAvailability(context.Background(), dto.AvailabilityQuery{
		Room: "301", Start: "2026-08-30", Nights: 1,
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)

	// From the checkout day the bed is free again.
	resp, err = svc.CheckAvailability(context.Background(), dto.AvailabilityQuery{
		Room: "301", Start: "2026-08-31", Nights: 1,
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExtensionCheckAvailability(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		source.NameBookings: `{"HM1": {
			"occ-a": {"checkInDate": "2026-08-29", "checkOutDate": "2026-09-01", "roomNumbers": ["101"]},
			"occ-b": {"checkInDate": "2026-08-30", "checkOutDate": "2026-08-31", "roomNumbers": ["101"]}
		}}`,
	})
	repo := &stubRoomRepo{beds: map[string]int{"101": 2}}
	svc := NewExtensionService(eng, repo)

	// Aug 30 is at capacity, so a request spanning it fails.
	resp, err := svc.CheckAvailability(context.Background(), dto.AvailabilityQuery{
		Room: "101", Start: "2026-08-29", Nights: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.BedCount)
	assert.False(t, resp.Available)

	// A single night before the crunch is fine.
	resp, err = svc.CheckAvailability(context.Background(), dto.AvailabilityQuery{
		Room: "101", Start: "2026-08-29", Nights: 1,
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)

	// Unconfigured room: bed count 0, never available.
	resp, err = svc.CheckAvailability(context.Background(), dto.AvailabilityQuery{
		Room: "999", Start: "2026-08-29", Nights: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.BedCount)
	assert.False(t, resp.Available)
}
