package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func (a *app) cmdBin(args []string) int {
	flags := flag.NewFlagSet("bin", flag.ContinueOnError)
	file := flags.String("file", "", "read this leap-seconds.list instead of the cache")
	raw := flags.Bool("raw", false, "write raw bytes instead of hex")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	doc, src, err := a.loadDocument(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: bin: %v\n", err)
		return 1
	}
	data, err := doc.List.MarshalBinary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: bin: %v\n", err)
		return 1
	}

	switch {
	case *raw:
		os.Stdout.Write(data)
	case *jsonOut:
		printJSON(map[string]interface{}{
			"source": src,
			"hex":    formatHex(data),
			"bytes":  len(data),
		})
	default:
		fmt.Println(formatHex(data))
	}
	return 0
}

// formatHex renders bytes as space-separated uppercase pairs.
func formatHex(data []byte) string {
	var b strings.Builder
	for i, v := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}
