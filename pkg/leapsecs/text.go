package leapsecs

import (
	"strconv"
	"strings"
)

// String renders the list in compact text form: each event as its decimal
// month gap followed by '+' or '-', then the expiry gap followed by '?'.
func (l *List) String() string {
	var b strings.Builder
	for _, e := range l.events {
		b.WriteString(strconv.Itoa(e.Gap))
		b.WriteString(e.Sign.String())
	}
	b.WriteString(strconv.Itoa(l.expiryGap))
	b.WriteByte('?')
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (l *List) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. See Parse.
func (l *List) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}

// Parse decodes a compact text list. The grammar is a sequence of
// gap/sign pairs closed by the expiry gap and '?':
//
//	list   = *(gap sign) gap "?"
//	gap    = "0" / nonzero 0*2digit
//	sign   = "+" / "-"
//
// A gap is 1 to 3 decimal digits with no leading zero; the single digit
// "0" is only legal as the expiry gap. The '?' must end the input.
func Parse(s string) (*List, error) {
	if s == "" {
		return nil, &TruncatedError{Msg: "empty text list"}
	}
	var events []Event
	i := 0
	for i < len(s) {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		run := s[start:i]
		switch {
		case len(run) == 0:
			return nil, &FormatError{Msg: "expected digit, found " + strconv.Quote(string(s[i])), Pos: i}
		case len(run) > 3:
			return nil, &FormatError{Msg: "gap " + run + " has more than 3 digits", Pos: start}
		case len(run) > 1 && run[0] == '0':
			return nil, &FormatError{Msg: "gap " + run + " has a leading zero", Pos: start}
		}
		gap, err := strconv.Atoi(run)
		if err != nil {
			return nil, &FormatError{Msg: "bad gap " + run, Pos: start}
		}
		if i >= len(s) {
			return nil, &FormatError{Msg: "input ends without terminator", Pos: i}
		}
		c := s[i]
		i++
		switch c {
		case '+', '-':
			if gap == 0 {
				return nil, &FormatError{Msg: "event gap 0 is not allowed", Pos: start}
			}
			sign := Positive
			if c == '-' {
				sign = Negative
			}
			events = append(events, Event{Gap: gap, Sign: sign})
		case '?':
			if i != len(s) {
				return nil, &FormatError{Msg: "trailing data after terminator", Pos: i}
			}
			return New(events, gap)
		default:
			return nil, &FormatError{Msg: "expected sign or terminator, found " + strconv.Quote(string(c)), Pos: i - 1}
		}
	}
	return nil, &FormatError{Msg: "input ends without terminator", Pos: len(s)}
}
