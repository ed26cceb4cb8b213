// Package nist reads and writes the NIST leap-seconds.list format, the
// annotated text file published by NIST and IERS that most NTP software
// consumes. Parsing translates the file's absolute dates into the
// month-gap model of pkg/leapsecs; formatting walks the gaps back out to
// absolute dates.
//
// The file format, briefly: comment lines start with '#'; the special
// comments '#$' and '#@' carry the last-update and expiry timestamps;
// '#h' carries a SHA-1 hash of the significant fields. Data lines hold
// an NTP-era timestamp (seconds since 1900-01-01) and the TAI-UTC offset
// in force from that instant.
package nist

import (
	"fmt"

	"github.com/daviddao/leapsec/pkg/date"
	"github.com/daviddao/leapsec/pkg/leapsecs"
)

// BaselineDTAI is the TAI-UTC offset at the start of the list,
// 1 January 1972.
const BaselineDTAI = 10

// expiresDay is the day of the month NIST expiry dates fall on.
const expiresDay = 28

// Document is a parsed leap-seconds.list: the compact list plus the
// file-level metadata that the compact formats drop.
type Document struct {
	Updated date.MJD
	Expires date.MJD
	List    *leapsecs.List
}

// Expired reports whether the document's validity window has closed as
// of the given day.
func (d *Document) Expired(today date.MJD) bool {
	return d.Expires < today
}

// Parse reads a leap-seconds.list document, verifies its hash line and
// internal consistency, and translates it into the month-gap model.
// The first data row must be 1972-01-01 with DTAI 10; every subsequent
// row must step the offset by exactly one at the start of a month.
func Parse(data []byte) (*Document, error) {
	raw, err := parse(data)
	if err != nil {
		return nil, err
	}
	return check(raw)
}

// check validates a raw file and builds the Document.
func check(raw *rawFile) (*Document, error) {
	if err := verifyHash(raw); err != nil {
		return nil, err
	}

	updated, err := midnight(raw.updated)
	if err != nil {
		return nil, fmt.Errorf("updated timestamp: %w", err)
	}
	expires, err := midnight(raw.expires)
	if err != nil {
		return nil, fmt.Errorf("expires timestamp: %w", err)
	}

	var events []leapsecs.Event
	prevMonth := 0
	prevDTAI := 0
	for i, row := range raw.rows {
		mjd, err := midnight(row.ntp)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		g := mjd.Gregorian()
		if g.Day != 1 {
			return nil, fmt.Errorf("row %d: date %v is not the first of a month", i, g)
		}
		if row.date != (date.Gregorian{}) && row.date != g {
			return nil, fmt.Errorf("row %d: timestamp %d is %v, comment says %v", i, row.ntp, g, row.date)
		}
		month := date.MonthIndex(g)

		if i == 0 {
			if month != 0 || row.dtai != BaselineDTAI {
				return nil, fmt.Errorf("row 0: list must start 1972-01-01 DTAI %d, got %v DTAI %d",
					BaselineDTAI, g, row.dtai)
			}
			prevMonth, prevDTAI = month, row.dtai
			continue
		}
		if month <= prevMonth {
			return nil, fmt.Errorf("row %d: date %v is out of order", i, g)
		}
		var sign leapsecs.Sign
		switch row.dtai - prevDTAI {
		case 1:
			sign = leapsecs.Positive
		case -1:
			sign = leapsecs.Negative
		default:
			return nil, fmt.Errorf("row %d: DTAI steps %d to %d, leap seconds are ±1", i, prevDTAI, row.dtai)
		}
		events = append(events, leapsecs.Event{Gap: month - prevMonth, Sign: sign})
		prevMonth, prevDTAI = month, row.dtai
	}
	if len(raw.rows) == 0 {
		return nil, fmt.Errorf("no leap second rows")
	}

	// The expiry gap counts whole months, rounding the expiry date down
	// to the start of its month.
	expiryMonth := date.MonthIndex(expires.Gregorian())
	if expiryMonth < prevMonth {
		return nil, fmt.Errorf("expiry %v precedes the last leap second", expires.Gregorian())
	}
	list, err := leapsecs.New(events, expiryMonth-prevMonth)
	if err != nil {
		return nil, err
	}
	return &Document{Updated: updated, Expires: expires, List: list}, nil
}

// midnight converts an NTP timestamp that must fall exactly on a day
// boundary.
func midnight(ntp int64) (date.MJD, error) {
	mjd, rem := date.FromNTP(ntp)
	if rem != 0 {
		return 0, fmt.Errorf("NTP %d is not midnight (%ds past %v)", ntp, rem, mjd.Gregorian())
	}
	return mjd, nil
}
