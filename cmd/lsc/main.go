// Command lsc works with leap second lists: it fetches and caches the
// published leap-seconds.list, validates it, and converts between the
// NIST format and the compact text and binary forms.
package main

import (
	"fmt"
	"os"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version", "-v", "version":
		fmt.Println("lsc", version)
		return
	}

	a, err := newApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	switch os.Args[1] {
	case "fetch":
		os.Exit(a.cmdFetch(os.Args[2:]))
	case "show":
		os.Exit(a.cmdShow(os.Args[2:]))
	case "text":
		os.Exit(a.cmdText(os.Args[2:]))
	case "bin":
		os.Exit(a.cmdBin(os.Args[2:]))
	case "decode":
		os.Exit(a.cmdDecode(os.Args[2:]))
	case "check":
		os.Exit(a.cmdCheck(os.Args[2:]))
	case "status":
		os.Exit(a.cmdStatus(os.Args[2:]))

	default:
		fmt.Fprintf(os.Stderr, "lsc: unknown command %q\n", os.Args[1])
		fmt.Fprintln(os.Stderr, "Run 'lsc --help' for usage.")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`lsc — leap second list tool

Fetches the published leap-seconds.list, caches it in SQLite, and
converts it between the NIST format and the compact text and binary
forms (about 3 characters or 5 bits per leap second).

Usage:
  lsc <command> [flags]

Commands:
  fetch [--url U]           Fetch the list, validate it, store it in the cache
  show [--file F]           Print the list as a table of leap seconds
  text [--file F]           Print the list in compact text form
  bin [--file F]            Print the list in compact binary form (hex)
  decode <compact>          Expand a compact text or hex form to a table
  check <file>              Validate a leap-seconds.list file
  status                    Show cache state and list freshness

Environment:
  LEAPSEC_DB       SQLite cache path (default: ~/.leapsec/cache.db)
  LEAPSEC_URL      Source URL for fetch (default: IERS mirror)
  LEAPSEC_FILE     Default input file for show/text/bin

All commands support --json for machine-readable output.

Exit codes:
  0  success
  1  error
  2  list is expired or missing
`)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "lsc: "+format+"\n", args...)
	os.Exit(1)
}
