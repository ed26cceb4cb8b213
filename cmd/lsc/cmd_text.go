package main

import (
	"flag"
	"fmt"
	"os"
)

func (a *app) cmdText(args []string) int {
	flags := flag.NewFlagSet("text", flag.ContinueOnError)
	file := flags.String("file", "", "read this leap-seconds.list instead of the cache")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	doc, src, err := a.loadDocument(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: text: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(map[string]interface{}{
			"source": src,
			"text":   doc.List.String(),
		})
	} else {
		fmt.Println(doc.List)
	}
	return 0
}
