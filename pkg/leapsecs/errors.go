package leapsecs

import "fmt"

// RangeError reports a gap value outside its allowed bounds, either at
// construction time or when a decoder accumulates an impossible gap.
type RangeError struct {
	What  string // which field: "event gap" or "expiry gap"
	Index int    // position in the list (events first, expiry last)
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("leapsecs: %s %d at index %d out of range [%d, %d]",
		e.What, e.Value, e.Index, MinGap, MaxGap)
}

// FormatError reports malformed input to a decoder: bad digit runs,
// missing or misplaced terminators, trailing data, or an accumulated gap
// beyond MaxGap. Pos is a character offset for text input and a nibble
// offset for binary input.
type FormatError struct {
	Msg string
	Pos int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("leapsecs: %s at offset %d", e.Msg, e.Pos)
}

// TruncatedError reports input that ended before a single frame was
// available to decode.
type TruncatedError struct {
	Msg string
}

func (e *TruncatedError) Error() string {
	return "leapsecs: " + e.Msg
}
