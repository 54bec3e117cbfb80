package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	template   string
	config     string
	assetDirs  []string
	taxRate    float64
	taxRateSet bool // --tax-rate was given; 0 is a valid rate
	verbose    bool
	version    bool
	help       bool
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("quote2pdf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	fs.StringVarP(&f.template, "template", "t", "", "template: branded, plain (default branded)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringArrayVar(&f.assetDirs, "asset-dir", nil, "directory searched first for fonts and logo (repeatable)")
	fs.Float64Var(&f.taxRate, "tax-rate", 0, "tax rate in percent when the record has none")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show progress and warnings")
	fs.BoolVar(&f.version, "version", false, "show version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.taxRateSet = fs.Changed("tax-rate")
	return f, fs.Args(), nil
}
