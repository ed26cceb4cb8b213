// Package leapsecs models the UTC leap-second list and converts it to and
// from two interchangeable compact representations:
//
//   - A compact text form, roughly 3 characters per leap second:
//     "6+6+12+12+...+12+5?". Each entry is the number of months since the
//     previous entry followed by the sign of the leap second; the final
//     entry is the list's expiry, terminated by '?'.
//
//   - A compact binary form, roughly 5 bits per leap second, built from
//     8-bit bytecodes framed as one or two 4-bit nibbles.
//
// The list itself is relative: it records month gaps, not calendar dates.
// Anchoring the first entry to an absolute date (1 January 1972, DTAI 10)
// is the caller's concern; see the date and nist packages.
//
// Both codecs are pure functions between an immutable List and its wire
// form. Decoding is all-or-nothing: a malformed input yields a typed error
// and no partial List.
package leapsecs

// Sign is the direction of a leap second: positive leap seconds increase
// DTAI (the TAI-UTC offset) by one, negative ones decrease it.
type Sign uint8

const (
	Positive Sign = iota
	Negative
)

// String returns the text-format sign character.
func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// Gap bounds. Both compact formats record gaps as whole months; an event
// gap must be at least one month, and no gap may exceed 999 months. The
// expiry gap alone may be zero (list expiring in the month of its last
// leap second).
const (
	MinGap = 1
	MaxGap = 999
)

// Event is one leap second: a month gap since the previous event (or the
// list's start) and the sign of the adjustment.
type Event struct {
	Gap  int
	Sign Sign
}

// List is an immutable leap-second list: zero or more events in
// chronological order, followed by the gap from the last event to the
// list's expiry. Construct one with New or by decoding a compact form.
type List struct {
	events    []Event
	expiryGap int
}

// New validates the given events and expiry gap and returns the completed
// list. Every event gap must be in [MinGap, MaxGap]; the expiry gap must
// be in [0, MaxGap]. Violations are reported as *RangeError.
func New(events []Event, expiryGap int) (*List, error) {
	for i, e := range events {
		if e.Gap < MinGap || e.Gap > MaxGap {
			return nil, &RangeError{What: "event gap", Index: i, Value: e.Gap}
		}
	}
	if expiryGap < 0 || expiryGap > MaxGap {
		return nil, &RangeError{What: "expiry gap", Index: len(events), Value: expiryGap}
	}
	l := &List{
		events:    make([]Event, len(events)),
		expiryGap: expiryGap,
	}
	copy(l.events, events)
	return l, nil
}

// Len returns the number of leap-second events (the expiry marker is not
// an event).
func (l *List) Len() int { return len(l.events) }

// Events returns a copy of the event sequence in chronological order.
func (l *List) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// ExpiryGap returns the number of months from the last event (or the
// list's start, if the list is empty) to the list's expiry.
func (l *List) ExpiryGap() int { return l.expiryGap }

// DTAI returns the cumulative TAI-UTC offset after each event, starting
// from the caller-supplied baseline (10 for the standard 1972 epoch).
// The result has Len() elements; element i is the offset in force after
// event i.
func (l *List) DTAI(baseline int) []int {
	out := make([]int, len(l.events))
	dtai := baseline
	for i, e := range l.events {
		if e.Sign == Negative {
			dtai--
		} else {
			dtai++
		}
		out[i] = dtai
	}
	return out
}

// Equal reports whether two lists contain the same events and expiry gap.
func (l *List) Equal(other *List) bool {
	if other == nil || len(l.events) != len(other.events) || l.expiryGap != other.expiryGap {
		return false
	}
	for i, e := range l.events {
		if other.events[i] != e {
			return false
		}
	}
	return true
}
