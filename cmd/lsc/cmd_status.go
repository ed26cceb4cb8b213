package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/daviddao/leapsec/pkg/date"
)

func (a *app) cmdStatus(args []string) int {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	count := a.store.Count()
	rec, err := a.store.Latest()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: status: %v\n", err)
		return 1
	}
	if rec == nil {
		if *jsonOut {
			printJSON(map[string]interface{}{"records": 0})
		} else {
			fmt.Println("cache is empty: run 'lsc fetch'")
		}
		return 2
	}

	today := date.Today()
	daysLeft := int(rec.Expires - today)
	expired := rec.Expires < today

	if *jsonOut {
		printJSON(map[string]interface{}{
			"records":   count,
			"source":    rec.Source,
			"fetched":   rec.FetchedAt,
			"updated":   rec.Updated.Gregorian().String(),
			"expires":   rec.Expires.Gregorian().String(),
			"days_left": daysLeft,
			"expired":   expired,
			"text":      rec.Compact,
		})
	} else {
		fmt.Printf("cache: %d record(s)\n", count)
		fmt.Printf("latest: %s (fetched %s)\n", rec.Source, rec.FetchedAt.Format("2006-01-02 15:04"))
		fmt.Printf("updated %v, expires %v\n", rec.Updated.Gregorian(), rec.Expires.Gregorian())
		if expired {
			fmt.Printf("EXPIRED %d day(s) ago\n", -daysLeft)
		} else {
			fmt.Printf("%d day(s) until expiry\n", daysLeft)
		}
	}
	if expired {
		return 2
	}
	return 0
}
