package engine

import (
	"fmt"
	"reflect"
	"strings"

	"frontdesk/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var rowValidator = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so the validator treats it
	// as a value rather than descending into its unexported fields.
	rowValidator.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// Inputs is the full set of source snapshots one recomputation reads. All
// maps are immutable by convention; BuildRows never mutates them.
type Inputs struct {
	Bookings         model.BookingsMap
	GuestDetails     model.GuestDetailsMap
	Financials       model.FinancialsMap
	CityTax          model.CityTaxMap
	Loans            model.LoansMap
	Activities       model.ActivitiesMap
	ActivitiesByCode model.CodeActivitiesMap
	Checkins         model.CheckinsMap
	Allocations      model.AllocationMap

	// GuestValidationErr is the guest-details source's own soft validation
	// error. It seeds the retained validation error: a booking-level problem
	// outranks any per-row failure found later in the pass.
	GuestValidationErr error

	// NowTimestamp is captured once per snapshot change and substituted for
	// missing loan timestamps, keeping recomputation a pure function of the
	// snapshot set.
	NowTimestamp string
}

// BuildRows joins every in-window (booking, occupant) stay against all
// sources and returns the validated rows plus the first validation failure
// encountered (nil when the whole pass was clean). Deterministic: bookings
// and occupants are visited in source key order, and identical inputs always
// produce an identical row set.
func BuildRows(in Inputs, w Window) ([]model.CheckInRow, error) {
	valErr := in.GuestValidationErr
	merged := MergeActivities(in.Activities, in.ActivitiesByCode)

	var rows []model.CheckInRow
	for _, bookingRef := range sortedKeys(in.Bookings) {
		occupants := in.Bookings[bookingRef]
		for _, occupantID := range sortedKeys(occupants) {
			rec := occupants[occupantID]
			if rec.Kind != model.RecordStay {
				continue
			}
			stay := rec.Stay
			if stay.CheckInDate == "" || stay.CheckOutDate == "" {
				continue
			}
			if !w.Contains(stay.CheckInDate, stay.CheckOutDate) {
				continue
			}

			row := buildRow(in, merged, bookingRef, occupantID, stay)
			if err := rowValidator.Struct(&row); err != nil {
				if valErr == nil {
					valErr = describeRowFailure(bookingRef, occupantID, err)
				}
				continue
			}
			rows = append(rows, row)
		}
	}

	return MarkFirstForBooking(rows), valErr
}

// buildRow resolves one occupant against every source by key, applying the
// per-field defaults: absent profile fields become empty strings (gender
// defaults to "F"), ledger fields zero-fill, loan records are parsed
// leniently, and the loan data is wrapped keyed by occupant id.
func buildRow(in Inputs, merged map[string][]model.Activity, bookingRef, occupantID string, stay *model.StayRecord) model.CheckInRow {
	var profile model.GuestProfile
	if byOcc, ok := in.GuestDetails[bookingRef]; ok {
		profile = byOcc[occupantID]
	}

	dob := model.DateOfBirth{}
	if profile.DateOfBirth != nil {
		dob = *profile.DateOfBirth
	}

	gender := profile.Gender
	if gender == "" {
		gender = "F"
	}

	docNumber := ""
	if profile.Document != nil {
		docNumber = strings.TrimSpace(profile.Document.Number)
	}

	var actualCheckIn string
	if byOcc, ok := in.Checkins[stay.CheckInDate]; ok {
		actualCheckIn = byOcc[occupantID].Timestamp
	}

	var cityTax *model.CityTaxRecord
	if byOcc, ok := in.CityTax[bookingRef]; ok {
		if tax, ok := byOcc[occupantID]; ok {
			taxCopy := tax
			cityTax = &taxCopy
		}
	}

	var rawLoan []byte
	if byOcc, ok := in.Loans[bookingRef]; ok {
		rawLoan = byOcc[occupantID]
	}
	loanData := model.ParseOccupantLoan(rawLoan, in.NowTimestamp)

	allocation := in.Allocations[occupantID]

	rooms := stay.RoomNumbers
	if rooms == nil {
		rooms = []string{}
	}

	activities := merged[occupantID]
	if activities == nil {
		activities = []model.Activity{}
	}

	return model.CheckInRow{
		BookingRef:    bookingRef,
		OccupantID:    occupantID,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		RoomBooked:    allocation.Booked,
		RoomAllocated: allocation.Allocated,
		Financials:    in.Financials[bookingRef].Normalized(),
		CityTax:       cityTax,
		Loans: map[string]model.OccupantLoanData{
			occupantID: loanData,
		},
		IsFirstForBooking:      false,
		CheckInDate:            stay.CheckInDate,
		CheckOutDate:           stay.CheckOutDate,
		Rooms:                  rooms,
		ActualCheckInTimestamp: actualCheckIn,
		Activities:             activities,
		Citizenship:            profile.Citizenship,
		PlaceOfBirth:           profile.PlaceOfBirth,
		DateOfBirth:            dob,
		Municipality:           profile.Municipality,
		Gender:                 gender,
		DocNumber:              docNumber,
	}
}

func describeRowFailure(bookingRef, occupantID string, err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		return fmt.Errorf("row %s/%s: field %s failed %q", bookingRef, occupantID, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("row %s/%s: %w", bookingRef, occupantID, err)
}

// MarkFirstForBooking groups rows by booking reference preserving encounter
// order, flags the first row of each group, and returns the groups flattened.
// Exactly one row per booking reference ends up flagged.
func MarkFirstForBooking(rows []model.CheckInRow) []model.CheckInRow {
	if len(rows) == 0 {
		return rows
	}

	var order []string
	grouped := make(map[string][]model.CheckInRow, len(rows))
	for _, row := range rows {
		if _, seen := grouped[row.BookingRef]; !seen {
			order = append(order, row.BookingRef)
		}
		grouped[row.BookingRef] = append(grouped[row.BookingRef], row)
	}

	out := make([]model.CheckInRow, 0, len(rows))
	for _, ref := range order {
		group := grouped[ref]
		group[0].IsFirstForBooking = true
		out = append(out, group...)
	}
	return out
}
