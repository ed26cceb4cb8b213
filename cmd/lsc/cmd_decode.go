package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/daviddao/leapsec/pkg/leapsecs"
)

func (a *app) cmdDecode(args []string) int {
	flags := flag.NewFlagSet("decode", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "lsc: decode: need one compact form (text or hex)")
		return 1
	}

	list, kind, err := decodeCompact(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsc: decode: %v\n", err)
		return 1
	}

	rows := leapRows(list)
	if *jsonOut {
		out := map[string]interface{}{
			"input":  kind,
			"text":   list.String(),
			"expiry": list.ExpiryGap(),
			"leaps":  rows,
		}
		if h := list.Hex(); h != "" {
			out["hex"] = h
		}
		printJSON(out)
	} else {
		fmt.Printf("text: %s\n", list)
		if h := list.Hex(); h != "" {
			fmt.Printf("hex:  %s\n", h)
		}
		for _, r := range rows {
			fmt.Printf("  %s  %s1s  TAI-UTC=%ds\n", r.Date, r.Sign, r.DTAI)
		}
	}
	return 0
}

// decodeCompact parses either compact form. Text forms always contain a
// '+', '-', or '?', so anything else is treated as hex.
func decodeCompact(s string) (*leapsecs.List, string, error) {
	if strings.ContainsAny(s, "+-?") {
		list, err := leapsecs.Parse(s)
		return list, "text", err
	}
	data, err := parseHex(s)
	if err != nil {
		return nil, "hex", err
	}
	list, err := leapsecs.ParseBinary(data)
	return list, "hex", err
}

// parseHex reads hex pairs, ignoring whitespace between them.
func parseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("hex input has odd length %d", len(s))
	}
	return hex.DecodeString(s)
}
