package service

import (
	"context"
	"time"

	"frontdesk/internal/dto"
	"frontdesk/internal/engine"
	"frontdesk/internal/model"
	"frontdesk/internal/repository"
	"frontdesk/internal/source"

	"github.com/shopspring/decimal"
)

// ExtensionService lists in-house guests and answers whether a room can
// absorb a stay extension without exceeding its bed capacity.
type ExtensionService interface {
	InHouse(ctx context.Context) (*dto.ExtensionListResponse, error)
	CheckAvailability(ctx context.Context, q dto.AvailabilityQuery) (*dto.AvailabilityResponse, error)
}

type extensionService struct {
	eng   *engine.Engine
	rooms repository.RoomConfigRepository
	now   func() time.Time
}

func NewExtensionService(eng *engine.Engine, rooms repository.RoomConfigRepository) ExtensionService {
	return &extensionService{eng: eng, rooms: rooms, now: time.Now}
}

// extensionSources are the adapters this view consults; its status is
// aggregated over exactly these, in this order.
var extensionSources = []string{
	source.NameBookings,
	source.NameGuestDetails,
	source.NameGuestByRoom,
	source.NameFinancials,
	source.NameActivitiesByCode,
	source.NameCityTax,
}

// InHouse returns one row per occupant who is either mid-stay today, or
// checks out today without a recorded extension (code 14) — the desk offers
// those guests another night before they leave.
func (s *extensionService) InHouse(_ context.Context) (*dto.ExtensionListResponse, error) {
	loading, err := s.eng.StatusFor(extensionSources...)
	resp := &dto.ExtensionListResponse{Rows: []dto.ExtensionRow{}, Loading: loading}
	if err != nil {
		resp.Error = err.Error()
	}
	if loading || err != nil {
		return resp, nil
	}

	in := s.eng.Inputs()
	today := engine.FormatYMD(s.now())
	code14 := in.ActivitiesByCode["14"]

	for _, bookingRef := range sortedKeys(in.Bookings) {
		occupants := in.Bookings[bookingRef]

		var occupantIDs []string
		for _, id := range sortedKeys(occupants) {
			if !model.IsNotesKey(id) {
				occupantIDs = append(occupantIDs, id)
			}
		}

		for _, occID := range occupantIDs {
			rec := occupants[occID]
			if rec.Kind != model.RecordStay {
				continue
			}
			stay := rec.Stay
			if stay.CheckInDate == "" || stay.CheckOutDate == "" {
				continue
			}

			isCurrent := engine.IsNightOf(today, stay.CheckInDate, stay.CheckOutDate)
			isCheckoutToday := stay.CheckOutDate == today
			hasExtension := len(code14[occID]) > 0
			if !isCurrent && !(isCheckoutToday && !hasExtension) {
				continue
			}

			resp.Rows = append(resp.Rows, dto.ExtensionRow{
				OccupantID:    occID,
				OccupantIDs:   occupantIDs,
				BookingRef:    bookingRef,
				FullName:      fullName(in.GuestDetails, bookingRef, occID),
				RoomNumber:    engine.ResolveRoom(in.Allocations, occID, stay.RoomNumbers),
				CheckInDate:   stay.CheckInDate,
				CheckOutDate:  stay.CheckOutDate,
				NightlyRate:   nightlyRate(in.Financials[bookingRef], stay, len(occupantIDs)),
				OccupantCount: len(occupantIDs),
			})
		}
	}
	return resp, nil
}

// nightlyRate derives the per-night, per-guest rate from what the booking has
// paid: totalPaid / nights / occupantCount, zero when either divisor is zero.
func nightlyRate(fin model.Financials, stay *model.StayRecord, occupantCount int) decimal.Decimal {
	nights := len(engine.NightsRange(stay.CheckInDate, stay.CheckOutDate))
	if nights == 0 || occupantCount == 0 {
		return decimal.Zero
	}
	return fin.TotalPaid.
		Div(decimal.NewFromInt(int64(nights))).
		Div(decimal.NewFromInt(int64(occupantCount)))
}

func fullName(details model.GuestDetailsMap, bookingRef, occID string) string {
	profile := details[bookingRef][occID]
	name := profile.FirstName
	if profile.LastName != "" {
		if name != "" {
			name += " "
		}
		name += profile.LastName
	}
	return name
}

// CheckAvailability runs the conservative all-or-nothing capacity check over
// the current occupancy calendar.
func (s *extensionService) CheckAvailability(ctx context.Context, q dto.AvailabilityQuery) (*dto.AvailabilityResponse, error) {
	bedCount := s.rooms.GetBedCount(ctx, q.Room)
	checker := engine.NewChecker(s.eng.Calendar(), func(room string) int {
		if room == q.Room {
			return bedCount
		}
		return s.rooms.GetBedCount(ctx, room)
	})

	return &dto.AvailabilityResponse{
		Room:      q.Room,
		Start:     q.Start,
		Nights:    q.Nights,
		BedCount:  bedCount,
		Available: checker.CheckAvailability(q.Room, q.Start, q.Nights),
	}, nil
}
