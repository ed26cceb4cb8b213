package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/daviddao/leapsec/pkg/date"
	"github.com/daviddao/leapsec/pkg/store"
)

func (a *app) cmdFetch(args []string) int {
	flags := flag.NewFlagSet("fetch", flag.ContinueOnError)
	url := flags.String("url", "", "source URL (default: LEAPSEC_URL or the IERS mirror)")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	src := *url
	if src == "" {
		src = a.url
	}

	doc, body, err := a.fetchDocument(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: fetch: %v\n", err)
		return 1
	}

	id, err := a.store.Save(&store.Record{
		Source:  src,
		Updated: doc.Updated,
		Expires: doc.Expires,
		Compact: doc.List.String(),
		Body:    body,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: fetch: cache: %v\n", err)
		return 1
	}

	expired := doc.Expired(date.Today())
	if *jsonOut {
		printJSON(map[string]interface{}{
			"source":  src,
			"record":  id,
			"updated": doc.Updated.Gregorian().String(),
			"expires": doc.Expires.Gregorian().String(),
			"leaps":   doc.List.Len(),
			"text":    doc.List.String(),
			"expired": expired,
		})
	} else {
		fmt.Printf("fetched %s\n", src)
		fmt.Printf("updated %v, expires %v, %d leap seconds\n",
			doc.Updated.Gregorian(), doc.Expires.Gregorian(), doc.List.Len())
		fmt.Printf("compact: %s\n", doc.List)
	}
	if expired {
		fmt.Fprintf(os.Stderr, "lsc: fetch: list expired %v\n", doc.Expires.Gregorian())
		return 2
	}
	return 0
}
