package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/daviddao/leapsec/pkg/date"
	"github.com/daviddao/leapsec/pkg/nist"
)

func (a *app) cmdCheck(args []string) int {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "lsc: check: need a leap-seconds.list path ('-' for stdin)")
		return 1
	}
	path := flags.Arg(0)

	data, err := readInput(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: check: %v\n", err)
		return 1
	}
	doc, err := nist.Parse(data)
	if err != nil {
		if *jsonOut {
			printJSON(map[string]interface{}{"valid": false, "error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "lsc: check: %s: %v\n", path, err)
		}
		return 1
	}

	expired := doc.Expired(date.Today())
	if *jsonOut {
		printJSON(map[string]interface{}{
			"valid":   true,
			"updated": doc.Updated.Gregorian().String(),
			"expires": doc.Expires.Gregorian().String(),
			"expired": expired,
			"leaps":   doc.List.Len(),
			"text":    doc.List.String(),
		})
	} else {
		fmt.Printf("%s: valid, %d leap seconds, updated %v, expires %v\n",
			path, doc.List.Len(), doc.Updated.Gregorian(), doc.Expires.Gregorian())
	}
	if expired {
		fmt.Fprintf(os.Stderr, "lsc: check: list expired %v\n", doc.Expires.Gregorian())
		return 2
	}
	return 0
}
