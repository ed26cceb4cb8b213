package nist

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/daviddao/leapsec/pkg/date"
	"github.com/daviddao/leapsec/pkg/leapsecs"
)

// Format writes a leap-seconds.list document for the given list,
// anchored at the standard 1972 epoch. The updated day becomes the
// file's '#$' timestamp; the expiry date is the 28th of the list's
// expiry month, per NIST convention.
func Format(list *leapsecs.List, updated date.MJD) string {
	rows := absoluteRows(list)
	lastMonth := 0
	if n := len(rows); n > 0 {
		lastMonth = rows[n-1].month
	}
	expiresMJD := date.MonthStart(lastMonth + list.ExpiryGap()).MJD() + (expiresDay - 1)

	var b strings.Builder
	fmt.Fprintf(&b, "#\tupdated %v\n#$\t%d\n#\n", updated.Gregorian(), updated.NTP())
	fmt.Fprintf(&b, "#\texpires %v\n#@\t%d\n#\n", expiresMJD.Gregorian(), expiresMJD.NTP())
	for _, r := range rows {
		g := date.MonthStart(r.month)
		fmt.Fprintf(&b, "%d\t%d\t# %d %s %d\n",
			g.MJD().NTP(), r.dtai, g.Day, monthName(g.Month), g.Year)
	}
	h := hashRows(updated.NTP(), expiresMJD.NTP(), rows)
	fmt.Fprintf(&b, "#\n#h\t%08x %08x %08x %08x %08x\n", h[0], h[1], h[2], h[3], h[4])
	return b.String()
}

// absRow is a data row in absolute terms: month number since 1972-01 and
// the DTAI in force from that month.
type absRow struct {
	month int
	dtai  int
}

// absoluteRows walks the list's gaps from the 1972 epoch: the baseline
// row first, then one row per leap second.
func absoluteRows(list *leapsecs.List) []absRow {
	rows := make([]absRow, 0, list.Len()+1)
	rows = append(rows, absRow{month: 0, dtai: BaselineDTAI})
	month := 0
	dtai := BaselineDTAI
	for _, e := range list.Events() {
		month += e.Gap
		if e.Sign == leapsecs.Negative {
			dtai--
		} else {
			dtai++
		}
		rows = append(rows, absRow{month: month, dtai: dtai})
	}
	return rows
}

// hashRows computes the file's SHA-1: the decimal digits of the updated
// and expiry timestamps followed by those of every data row, with no
// separators.
func hashRows(updated, expires int64, rows []absRow) [5]uint32 {
	var in strings.Builder
	fmt.Fprintf(&in, "%d%d", updated, expires)
	for _, r := range rows {
		fmt.Fprintf(&in, "%d%d", date.MonthStart(r.month).MJD().NTP(), r.dtai)
	}
	return sumWords(in.String())
}

// verifyHash recomputes the hash over a raw file's fields and compares
// it with the '#h' line.
func verifyHash(raw *rawFile) error {
	var in strings.Builder
	fmt.Fprintf(&in, "%d%d", raw.updated, raw.expires)
	for _, r := range raw.rows {
		fmt.Fprintf(&in, "%d%d", r.ntp, r.dtai)
	}
	got := sumWords(in.String())
	if got != raw.hash {
		return fmt.Errorf("checksum mismatch: file says %s, computed %s",
			hashString(raw.hash), hashString(got))
	}
	return nil
}

func sumWords(s string) [5]uint32 {
	sum := sha1.Sum([]byte(s))
	var words [5]uint32
	for i := range words {
		words[i] = binary.BigEndian.Uint32(sum[i*4 : i*4+4])
	}
	return words
}

func hashString(h [5]uint32) string {
	return fmt.Sprintf("%08x %08x %08x %08x %08x", h[0], h[1], h[2], h[3], h[4])
}

var monthAbbrev = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

func monthName(m int) string {
	return monthAbbrev[m-1]
}
