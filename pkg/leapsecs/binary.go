package leapsecs

import (
	"fmt"
	"strings"
)

// Binary format bytecodes. A bytecode is an 8-bit value, fields high to
// low: W (framing width), M (unit: 1 = months, 0 = six-month units),
// N and P (the leap indicator pair), and GGGG (magnitude). The encoded
// gap is (GGGG+1) months when M is set, (GGGG+1)*6 months otherwise.
//
// The N/P pair gives the bytecode its meaning:
//
//	N=0 P=1  positive leap second ends this gap
//	N=1 P=0  negative leap second ends this gap
//	N=1 P=1  expiry marker; must be the last bytecode
//	N=0 P=0  filler; the gap continues into the next bytecode
//
// On the wire a bytecode occupies one or two nibbles. A first nibble
// below 8 is the narrow form: it stands for a plain positive six-month
// bytecode 0x10|n. A first nibble of 8 or above carries W,M,N,P and is
// followed by the magnitude nibble — unless the stream ends there, in
// which case the magnitude is implicitly 4 (the terminal abbreviation).
const (
	codeWide  = 0x80
	codeMonth = 0x40
	codeNeg   = 0x20
	codePos   = 0x10
	codeFlags = 0xF0
	codeLow   = 0x0F
)

// frameKind classifies how a bytecode was framed on the wire.
type frameKind uint8

const (
	frameNarrow frameKind = iota
	frameWide
	frameAbbreviated
)

// frame is one decoded wire frame: the reconstructed bytecode and how it
// was framed.
type frame struct {
	kind frameKind
	code byte
}

// nextFrame frames one bytecode from the stream, consuming one or two
// nibbles. Returns false when the stream is exhausted.
func nextFrame(r *nibbleReader) (frame, bool) {
	n, ok := r.next()
	if !ok {
		return frame{}, false
	}
	if n < 8 {
		return frame{kind: frameNarrow, code: codePos | n}, true
	}
	lo, ok := r.next()
	if !ok {
		// A wide nibble with no pairing nibble is the abbreviated
		// terminal form: implicit magnitude 4.
		return frame{kind: frameAbbreviated, code: n<<4 | 0x4}, true
	}
	return frame{kind: frameWide, code: n<<4 | lo}, true
}

// months returns the gap contribution of a bytecode.
func months(code byte) int {
	m := int(code&codeLow) + 1
	if code&codeMonth == 0 {
		m *= 6
	}
	return m
}

// ParseBinary decodes a compact binary list. Decoding accumulates months
// across filler bytecodes until a leap or expiry bytecode closes the gap;
// the expiry marker must be the final bytecode and the stream must end
// with it.
func ParseBinary(data []byte) (*List, error) {
	if len(data) == 0 {
		return nil, &TruncatedError{Msg: "empty binary list"}
	}
	r := &nibbleReader{data: data}
	var events []Event
	pending := 0
	for {
		f, ok := nextFrame(r)
		if !ok {
			return nil, &FormatError{Msg: "missing expiry marker", Pos: r.pos}
		}
		pending += months(f.code)
		if pending > MaxGap {
			return nil, &FormatError{Msg: "gap exceeds 999 months", Pos: r.pos}
		}
		switch f.code & (codeNeg | codePos) {
		case codePos:
			events = append(events, Event{Gap: pending, Sign: Positive})
			pending = 0
		case codeNeg:
			events = append(events, Event{Gap: pending, Sign: Negative})
			pending = 0
		case codeNeg | codePos:
			if r.remaining() > 0 {
				return nil, &FormatError{Msg: "data after expiry marker", Pos: r.pos}
			}
			return New(events, pending)
		default:
			// Filler: keep accumulating.
		}
	}
}

// Hex renders the binary form as space-separated uppercase byte pairs,
// or "" if the list has no binary form.
func (l *List) Hex() string {
	data, err := l.MarshalBinary()
	if err != nil {
		return ""
	}
	var b strings.Builder
	for i, v := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. See ParseBinary.
func (l *List) UnmarshalBinary(data []byte) error {
	parsed, err := ParseBinary(data)
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler. The encoder prefers
// the compact framing: six-month units for multiples of six, 96-month
// fillers for longer gaps, a month-unit bytecode for any remainder, and
// the single-nibble narrow form wherever a bytecode allows it. Decoders
// accept any framing that reconstructs the same list, so byte-for-byte
// stability is a convention here, not a format requirement.
//
// A list whose expiry gap is zero has no binary form (every bytecode
// contributes at least one month) and is rejected with *RangeError.
func (l *List) MarshalBinary() ([]byte, error) {
	if l.expiryGap == 0 {
		return nil, &RangeError{What: "expiry gap", Index: len(l.events), Value: 0}
	}

	var codes []byte
	for _, e := range l.events {
		flags := byte(codeWide | codePos)
		if e.Sign == Negative {
			flags = codeWide | codeNeg
		}
		codes = appendGap(codes, e.Gap, flags)
	}
	codes = appendGap(codes, l.expiryGap, codeWide|codeNeg|codePos)

	// Work out the nibble count and how to round it to whole bytes:
	// drop the low nibble of a final abbreviation-eligible expiry
	// bytecode, or widen the last narrow bytecode.
	total := 0
	lastNarrow := -1
	for i, c := range codes {
		if narrow(c) {
			total++
			lastNarrow = i
		} else {
			total += 2
		}
	}
	widen, abbrev := -1, false
	if total%2 != 0 {
		if codes[len(codes)-1] == codeFlags|0x4 {
			abbrev = true
		} else {
			widen = lastNarrow
		}
	}

	var w nibbleWriter
	for i, c := range codes {
		switch {
		case abbrev && i == len(codes)-1:
			w.push(c >> 4)
		case narrow(c) && i != widen:
			w.push(c & codeLow)
		default:
			w.push(c >> 4)
			w.push(c & codeLow)
		}
	}
	return w.finish(), nil
}

// narrow reports whether a bytecode is eligible for the single-nibble
// form: a plain positive six-month leap with magnitude below 8.
func narrow(code byte) bool {
	return code&codeFlags == codeWide|codePos && code&codeLow < 8
}

// appendGap renders one gap as a chain of bytecodes whose months sum to
// gap, ending with the bytecode carrying flags (the true N/P value).
func appendGap(codes []byte, gap int, flags byte) []byte {
	switch {
	case gap%6 == 0:
		for gap > 16*6 {
			codes = append(codes, codeWide|15)
			gap -= 16 * 6
		}
		return append(codes, flags|byte(gap/6-1))
	case gap <= 16:
		return append(codes, flags|codeMonth|byte(gap-1))
	default:
		for gap >= 16*6 {
			codes = append(codes, codeWide|15)
			gap -= 16 * 6
		}
		if years := gap / 12; years > 0 {
			codes = append(codes, codeWide|byte(years*2-1))
		}
		return append(codes, flags|codeMonth|byte(gap%12-1))
	}
}
