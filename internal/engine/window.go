package engine

import "fmt"

// Window is an inclusive [Start, End] date pair selecting which stays the
// reconciler considers.
type Window struct {
	Start string
	End   string
}

// NewWindow derives the window around a target date: daysBefore days of
// look-back and daysAfter days of look-ahead, both inclusive.
func NewWindow(target string, daysBefore, daysAfter int) (Window, error) {
	if daysBefore < 0 || daysAfter < 0 {
		return Window{}, fmt.Errorf("window: negative span (before=%d after=%d)", daysBefore, daysAfter)
	}
	t, err := ParseYMD(target)
	if err != nil {
		return Window{}, fmt.Errorf("window: bad target date %q: %w", target, err)
	}
	return Window{
		Start: FormatYMD(t.AddDate(0, 0, -daysBefore)),
		End:   FormatYMD(t.AddDate(0, 0, daysAfter)),
	}, nil
}

// Contains reports whether a stay intersects the window: checkIn <= End and
// checkOut >= Start. This is an overlap test, not containment — a stay
// checking out on Start, or checking in on End, is in window.
func (w Window) Contains(checkIn, checkOut string) bool {
	in, err := ParseYMD(checkIn)
	if err != nil {
		return false
	}
	out, err := ParseYMD(checkOut)
	if err != nil {
		return false
	}
	start, err := ParseYMD(w.Start)
	if err != nil {
		return false
	}
	end, err := ParseYMD(w.End)
	if err != nil {
		return false
	}
	return !in.After(end) && !out.Before(start)
}
