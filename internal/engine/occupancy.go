package engine

import "frontdesk/internal/model"

// Calendar maps date → room number → occupant ids holding that room that
// night. Derived and ephemeral: rebuilt whenever bookings or room allocations
// change, never persisted, never mutated after construction.
type Calendar map[string]map[string][]string

// ResolveRoom picks the room an occupant actually holds: the allocated room
// when one is recorded, else the first booked room number, else "".
func ResolveRoom(allocations model.AllocationMap, occupantID string, booked []string) string {
	if a, ok := allocations[occupantID]; ok && a.Allocated != "" {
		return a.Allocated
	}
	if len(booked) > 0 {
		return booked[0]
	}
	return ""
}

// BuildCalendar expands every occupant's [checkIn, checkOut) interval into
// per-night room membership. Occupants with no resolvable room or no valid
// interval contribute nothing.
func BuildCalendar(bookings model.BookingsMap, allocations model.AllocationMap) Calendar {
	cal := make(Calendar)
	for _, ref := range sortedKeys(bookings) {
		occupants := bookings[ref]
		for _, occID := range sortedKeys(occupants) {
			if model.IsNotesKey(occID) {
				continue
			}
			rec := occupants[occID]
			if rec.Kind != model.RecordStay {
				continue
			}
			stay := rec.Stay
			room := ResolveRoom(allocations, occID, stay.RoomNumbers)
			if room == "" {
				continue
			}
			for _, date := range NightsRange(stay.CheckInDate, stay.CheckOutDate) {
				if cal[date] == nil {
					cal[date] = make(map[string][]string)
				}
				cal[date][room] = append(cal[date][room], occID)
			}
		}
	}
	return cal
}

// BedCountFunc looks up a room's bed capacity. Room configuration is owned
// externally; an unknown room should return 0, which makes the room never
// available.
type BedCountFunc func(room string) int

// Checker answers extension availability questions against one calendar.
type Checker struct {
	cal      Calendar
	bedCount BedCountFunc
}

func NewChecker(cal Calendar, bedCount BedCountFunc) Checker {
	return Checker{cal: cal, bedCount: bedCount}
}

// CheckAvailability reports whether room can take another occupant for every
// night in [start, start+nights). The check is all-or-nothing: one full night
// makes the whole request unavailable. Zero or negative nights trivially
// succeed (there is nothing to book).
func (c Checker) CheckAvailability(room, start string, nights int) bool {
	beds := c.bedCount(room)
	startDate, err := ParseYMD(start)
	if err != nil {
		return false
	}
	checkOut := FormatYMD(startDate.AddDate(0, 0, nights))
	for _, date := range NightsRange(start, checkOut) {
		if len(c.cal[date][room]) >= beds {
			return false
		}
	}
	return true
}
