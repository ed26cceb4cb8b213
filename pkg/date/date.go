// Package date provides the calendar arithmetic the leap-second tooling
// needs: proleptic Gregorian dates, Modified Julian Day numbers, and the
// NTP-era timestamps used by the NIST leap-seconds.list format.
//
// Leap seconds occur at month boundaries, so the packages above this one
// mostly count whole months since January 1972 (the first month of UTC
// with leap seconds, DTAI 10). This package owns the conversions between
// that month index and real dates.
package date

import (
	"fmt"
	"time"
)

// Gregorian is a calendar date. The year is astronomical (year 0 exists),
// months and days are 1-based.
type Gregorian struct {
	Year  int
	Month int
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (g Gregorian) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, g.Month, g.Day)
}

// MJD is a Modified Julian Day number: days since 1858-11-17.
type MJD int

// mjd1900 is the MJD of 1900-01-01, the NTP era origin.
const mjd1900 = 15020

// MJD converts a calendar date to its day number.
func (g Gregorian) MJD() MJD {
	y, m := g.Year, g.Month
	if m > 2 {
		m++
	} else {
		y--
		m += 13
	}
	return MJD(daysInYears(y) + muldiv(m, 153, 5) + g.Day - 679004)
}

// Gregorian converts a day number back to a calendar date.
func (m MJD) Gregorian() Gregorian {
	d := int(m) + 678881
	y := muldiv(d, 400, 146097) + 1
	if daysInYears(y) > d {
		y--
	}
	d -= daysInYears(y) - 31
	mo := muldiv(d, 17, 520)
	d -= muldiv(mo, 520, 17)
	if mo > 10 {
		return Gregorian{Year: y + 1, Month: mo - 10, Day: d}
	}
	return Gregorian{Year: y, Month: mo + 2, Day: d}
}

// NTP returns the timestamp of midnight on this day in the NTP era:
// seconds since 1900-01-01.
func (m MJD) NTP() int64 {
	return int64(m-mjd1900) * 86400
}

// FromNTP splits an NTP-era timestamp into a day number and the number
// of seconds past midnight.
func FromNTP(sec int64) (MJD, int64) {
	days := floorDiv64(sec, 86400)
	return MJD(days) + mjd1900, sec - days*86400
}

// Today returns the current UTC date's day number.
func Today() MJD {
	now := time.Now().UTC()
	return Gregorian{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}.MJD()
}

// Month indexing: month 0 is January 1972, the start of modern UTC.

// MonthIndex returns the month number of a date, ignoring the day.
func MonthIndex(g Gregorian) int {
	return (g.Year-1972)*12 + g.Month - 1
}

// MonthStart returns the first day of the given month number.
func MonthStart(index int) Gregorian {
	return Gregorian{
		Year:  1972 + floorDiv(index, 12),
		Month: mod(index, 12) + 1,
		Day:   1,
	}
}

// daysInYears returns the number of days in y whole Gregorian years.
func daysInYears(y int) int {
	return muldiv(y, 1461, 4) - muldiv(y, 1, 100) + muldiv(y, 1, 400)
}

// muldiv computes floor(v*mul/div), correct for negative v.
func muldiv(v, mul, div int) int {
	return floorDiv(v*mul, div)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	return a - floorDiv(a, b)*b
}
