package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quote2pdf [flags] <input> <output>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a quotation record (JSON or YAML) as a PDF document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     Quotation record file")
	fmt.Fprintln(w, "  output    PDF file to write")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -t, --template <name>     Template: branded, plain (default: branded)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --asset-dir <dir>     Search dir for fonts and logo (repeatable)")
	fmt.Fprintln(w, "      --tax-rate <pct>      Tax rate when the record has none")
	fmt.Fprintln(w, "  -v, --verbose             Show progress and warnings")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fonts:")
	fmt.Fprintln(w, "  Oswald-Regular.ttf and Oswald-Bold.ttf are looked up in ../fonts,")
	fmt.Fprintln(w, "  fonts and assets/fonts next to the binary. Helvetica is used otherwise.")
}
