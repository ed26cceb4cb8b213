package nist

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/daviddao/leapsec/pkg/date"
)

// rawFile is the file's content before consistency checks: timestamps and
// rows as written, without interpretation.
type rawFile struct {
	updated int64
	expires int64
	rows    []rawRow
	hash    [5]uint32
	hasHash bool
}

// rawRow is one data line. The date is taken from the trailing comment
// when present (zero value otherwise) and checked against the timestamp.
type rawRow struct {
	ntp  int64
	dtai int
	date date.Gregorian
}

var monthNames = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// parse reads the line-oriented structure of a leap-seconds.list file.
// It understands four kinds of line: '#$' (updated), '#@' (expires),
// '#h' (hash), other '#' comments (ignored), and data rows.
func parse(data []byte) (*rawFile, error) {
	raw := &rawFile{}
	var haveUpdated, haveExpires bool

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimRight(sc.Text(), " \t\r")
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#$"):
			v, err := parseInt64(strings.TrimSpace(line[2:]))
			if err != nil {
				return nil, fmt.Errorf("line %d: updated timestamp: %w", lineno, err)
			}
			raw.updated, haveUpdated = v, true
		case strings.HasPrefix(line, "#@"):
			v, err := parseInt64(strings.TrimSpace(line[2:]))
			if err != nil {
				return nil, fmt.Errorf("line %d: expires timestamp: %w", lineno, err)
			}
			raw.expires, haveExpires = v, true
		case strings.HasPrefix(line, "#h"):
			if err := parseHash(strings.Fields(line[2:]), &raw.hash); err != nil {
				return nil, fmt.Errorf("line %d: hash: %w", lineno, err)
			}
			raw.hasHash = true
		case strings.HasPrefix(line, "#"):
			continue
		default:
			row, err := parseRow(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			raw.rows = append(raw.rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if !haveUpdated {
		return nil, fmt.Errorf("missing #$ updated line")
	}
	if !haveExpires {
		return nil, fmt.Errorf("missing #@ expires line")
	}
	if !raw.hasHash {
		return nil, fmt.Errorf("missing #h hash line")
	}
	return raw, nil
}

// parseRow reads "<ntp> <dtai>" with an optional "# d Mon yyyy" comment.
func parseRow(line string) (rawRow, error) {
	var row rawRow
	body, comment, hasComment := strings.Cut(line, "#")

	fields := strings.Fields(body)
	if len(fields) != 2 {
		return row, fmt.Errorf("data row needs timestamp and offset, got %q", line)
	}
	ntp, err := parseInt64(fields[0])
	if err != nil {
		return row, fmt.Errorf("timestamp: %w", err)
	}
	dtai, err := strconv.Atoi(fields[1])
	if err != nil {
		return row, fmt.Errorf("offset: %w", err)
	}
	row.ntp, row.dtai = ntp, dtai

	if hasComment {
		g, err := parseDate(strings.Fields(comment))
		if err != nil {
			return row, err
		}
		row.date = g
	}
	return row, nil
}

// parseDate reads the "1 Jan 1972" style comment date.
func parseDate(fields []string) (date.Gregorian, error) {
	if len(fields) != 3 {
		return date.Gregorian{}, fmt.Errorf("date comment needs day, month, year: %v", fields)
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return date.Gregorian{}, fmt.Errorf("day: %w", err)
	}
	month, ok := monthNames[fields[1]]
	if !ok {
		return date.Gregorian{}, fmt.Errorf("unknown month %q", fields[1])
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return date.Gregorian{}, fmt.Errorf("year: %w", err)
	}
	return date.Gregorian{Year: year, Month: month, Day: day}, nil
}

// parseHash reads the five hex words of the '#h' line.
func parseHash(fields []string, out *[5]uint32) error {
	if len(fields) != 5 {
		return fmt.Errorf("want 5 words, got %d", len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 16, 32)
		if err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
		out[i] = uint32(v)
	}
	return nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
