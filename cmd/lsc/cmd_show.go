package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/daviddao/leapsec/pkg/date"
	"github.com/daviddao/leapsec/pkg/leapsecs"
	"github.com/daviddao/leapsec/pkg/nist"
)

func (a *app) cmdShow(args []string) int {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)
	file := flags.String("file", "", "read this leap-seconds.list instead of the cache")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	doc, src, err := a.loadDocument(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: show: %v\n", err)
		return 1
	}

	rows := leapRows(doc.List)
	if *jsonOut {
		printJSON(map[string]interface{}{
			"source":  src,
			"updated": doc.Updated.Gregorian().String(),
			"expires": doc.Expires.Gregorian().String(),
			"leaps":   rows,
		})
	} else {
		fmt.Printf("source %s\nupdated %v, expires %v\n", src,
			doc.Updated.Gregorian(), doc.Expires.Gregorian())
		for _, r := range rows {
			fmt.Printf("  %s  %s1s  TAI-UTC=%ds\n", r.Date, r.Sign, r.DTAI)
		}
		fmt.Printf("%d leap seconds\n", len(rows))
	}
	return 0
}

// leapRow is one leap second in absolute terms, for display.
type leapRow struct {
	Date string `json:"date"` // first day the new offset is in force
	Sign string `json:"sign"`
	DTAI int    `json:"dtai"` // TAI-UTC after the leap
}

// leapRows walks the list's gaps from the 1972 epoch into dated rows.
func leapRows(list *leapsecs.List) []leapRow {
	rows := make([]leapRow, 0, list.Len())
	month := 0
	dtai := nist.BaselineDTAI
	for _, e := range list.Events() {
		month += e.Gap
		if e.Sign == leapsecs.Negative {
			dtai--
		} else {
			dtai++
		}
		rows = append(rows, leapRow{
			Date: date.MonthStart(month).String(),
			Sign: e.Sign.String(),
			DTAI: dtai,
		})
	}
	return rows
}
