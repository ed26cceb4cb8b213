package leapsecs

import (
	"errors"
	"testing"
)

// The historical list as of late 2020, from the compact-format spec.
const currentText = "6+6+12+12+12+12+12+12+12+18+12+12+24+30+24+12+18+12+12+18+18+18+84+36+42+36+18+59?"

func TestParse_CurrentList(t *testing.T) {
	l, err := Parse(currentText)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if l.Len() != 27 {
		t.Fatalf("Len = %d, want 27", l.Len())
	}
	for i, e := range l.Events() {
		if e.Sign != Positive {
			t.Fatalf("event %d: sign = %v, want Positive", i, e.Sign)
		}
	}
	if l.ExpiryGap() != 59 {
		t.Fatalf("ExpiryGap = %d, want 59", l.ExpiryGap())
	}
	if got := l.String(); got != currentText {
		t.Fatalf("round trip:\n got %s\nwant %s", got, currentText)
	}
}

func TestParse_HistoricalScenario(t *testing.T) {
	const text = "6+6+12+12+12+12+12+12+12+18+12+12+24+30+24+12+18+12+12+5?"
	l, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wantGaps := []int{6, 6, 12, 12, 12, 12, 12, 12, 12, 18, 12, 12, 24, 30, 24, 12, 18, 12, 12}
	if l.Len() != len(wantGaps) {
		t.Fatalf("Len = %d, want %d", l.Len(), len(wantGaps))
	}
	for i, e := range l.Events() {
		if e.Gap != wantGaps[i] || e.Sign != Positive {
			t.Fatalf("event %d = %+v, want gap %d positive", i, e, wantGaps[i])
		}
	}
	if l.ExpiryGap() != 5 {
		t.Fatalf("ExpiryGap = %d, want 5", l.ExpiryGap())
	}
}

func TestParse_MixedSignsRoundTrip(t *testing.T) {
	const text = "9+9-99+99-999+999?"
	l, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := l.String(); got != text {
		t.Fatalf("round trip: got %s, want %s", got, text)
	}
	if l.Events()[1].Sign != Negative || l.Events()[3].Sign != Negative {
		t.Fatal("expected negative leap seconds at positions 1 and 3")
	}
}

func TestParse_ZeroExpiry(t *testing.T) {
	l, err := Parse("6+0?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if l.ExpiryGap() != 0 {
		t.Fatalf("ExpiryGap = %d, want 0", l.ExpiryGap())
	}
	if got := l.String(); got != "6+0?" {
		t.Fatalf("round trip: got %s", got)
	}
}

func TestParse_NoEvents(t *testing.T) {
	l, err := Parse("120?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if l.Len() != 0 || l.ExpiryGap() != 120 {
		t.Fatalf("got len=%d expiry=%d, want 0/120", l.Len(), l.ExpiryGap())
	}
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"no terminator", "12"},
		{"ends after sign", "12+"},
		{"leading zero", "012+5?"},
		{"leading zero expiry", "12+05?"},
		{"trailing data", "12+5?x"},
		{"trailing digits", "12+5?6"},
		{"second terminator", "12+5?5?"},
		{"event gap zero", "0+5?"},
		{"four digits", "1234+5?"},
		{"four digit expiry", "12+1000?"},
		{"sign without gap", "+5?"},
		{"terminator only", "?"},
		{"letter in gap", "1a+5?"},
		{"space separator", "12+ 5?"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("Parse(%q) = %v, want *FormatError", tc.input, err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("")
	var terr *TruncatedError
	if !errors.As(err, &terr) {
		t.Fatalf("Parse(\"\") = %v, want *TruncatedError", err)
	}
}

func TestTextMarshalerRoundTrip(t *testing.T) {
	orig, err := New([]Event{{Gap: 7, Sign: Negative}, {Gap: 999, Sign: Positive}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	text, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back List
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if !back.Equal(orig) {
		t.Fatalf("round trip: got %s, want %s", back.String(), orig.String())
	}
}

func TestUnmarshalText_AllOrNothing(t *testing.T) {
	var l List
	if err := l.UnmarshalText([]byte("6+6+12?")); err != nil {
		t.Fatal(err)
	}
	before := l.String()
	if err := l.UnmarshalText([]byte("6+bogus")); err == nil {
		t.Fatal("expected error")
	}
	if l.String() != before {
		t.Fatal("failed decode must not modify the receiver")
	}
}
