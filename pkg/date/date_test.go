package date

import "testing"

func TestGregorianMJDRoundTrip(t *testing.T) {
	cases := []struct {
		date Gregorian
		mjd  MJD
	}{
		{Gregorian{-1, 12, 31}, -678942},
		{Gregorian{0, 1, 1}, -678941},
		{Gregorian{0, 12, 31}, -678576},
		{Gregorian{1, 1, 1}, -678575},
		{Gregorian{1858, 11, 16}, -1},
		{Gregorian{1858, 11, 17}, 0},
		{Gregorian{1900, 1, 1}, 15020},
		{Gregorian{1970, 1, 1}, 40587},
		{Gregorian{1972, 1, 1}, 41317},
		{Gregorian{2001, 1, 1}, 5*146097 - 678575},
		{Gregorian{2017, 1, 1}, 57754},
		{Gregorian{2020, 2, 2}, 58881},
	}
	for _, tc := range cases {
		t.Run(tc.date.String(), func(t *testing.T) {
			if got := tc.date.MJD(); got != tc.mjd {
				t.Fatalf("MJD(%v) = %d, want %d", tc.date, got, tc.mjd)
			}
			if got := tc.mjd.Gregorian(); got != tc.date {
				t.Fatalf("Gregorian(%d) = %v, want %v", tc.mjd, got, tc.date)
			}
		})
	}
}

func TestDaysInFourHundredYears(t *testing.T) {
	if got := daysInYears(400); got != 146097 {
		t.Fatalf("daysInYears(400) = %d, want 146097", got)
	}
}

func TestNTP(t *testing.T) {
	// The first entry of every leap-seconds.list: 1 January 1972.
	epoch := Gregorian{1972, 1, 1}.MJD()
	if got := epoch.NTP(); got != 2272060800 {
		t.Fatalf("NTP(1972-01-01) = %d, want 2272060800", got)
	}
	mjd, rem := FromNTP(2272060800)
	if mjd != epoch || rem != 0 {
		t.Fatalf("FromNTP = (%d, %d), want (%d, 0)", mjd, rem, epoch)
	}
}

func TestFromNTP_NotMidnight(t *testing.T) {
	mjd, rem := FromNTP(2272060800 + 3661)
	if mjd != (Gregorian{1972, 1, 1}).MJD() || rem != 3661 {
		t.Fatalf("FromNTP = (%d, %d), want same day with 3661s remainder", mjd, rem)
	}
}

func TestMonthIndex(t *testing.T) {
	cases := []struct {
		date  Gregorian
		index int
	}{
		{Gregorian{1972, 1, 1}, 0},
		{Gregorian{1972, 7, 1}, 6},
		{Gregorian{1973, 1, 1}, 12},
		{Gregorian{2017, 1, 1}, 540},
	}
	for _, tc := range cases {
		if got := MonthIndex(tc.date); got != tc.index {
			t.Fatalf("MonthIndex(%v) = %d, want %d", tc.date, got, tc.index)
		}
		if got := MonthStart(tc.index); got != tc.date {
			t.Fatalf("MonthStart(%d) = %v, want %v", tc.index, got, tc.date)
		}
	}
}

func TestString(t *testing.T) {
	if got := (Gregorian{2017, 1, 1}).String(); got != "2017-01-01" {
		t.Fatalf("String = %q", got)
	}
}

func TestToday_Plausible(t *testing.T) {
	today := Today()
	if today < (Gregorian{2024, 1, 1}).MJD() {
		t.Fatalf("Today() = %d, before 2024", today)
	}
}
