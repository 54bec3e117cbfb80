package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	quote2pdf "github.com/alnah/go-quote2pdf"
	"github.com/alnah/go-quote2pdf/internal/config"
	"github.com/alnah/go-quote2pdf/internal/hints"
)

// ErrUsage reports wrong positional arguments.
var ErrUsage = errors.New("expected <input> and <output> arguments")

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, deps *Dependencies) int {
	flags, positional, err := parseFlags(args, deps.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(deps.Stderr, "error:", err)
		return ExitFailure
	}
	if flags.help {
		printUsage(deps.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(deps.Stdout, "go-quote2pdf %s\n", Version)
		return ExitSuccess
	}

	err = run(flags, positional, deps)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "error:", err)
		if errors.Is(err, ErrUsage) {
			printUsage(deps.Stderr)
		}
	}
	return exitCodeFor(err)
}

func run(flags *cliFlags, positional []string, deps *Dependencies) error {
	if len(positional) != 2 {
		return fmt.Errorf("%w, got %d", ErrUsage, len(positional))
	}
	input, output := positional[0], positional[1]

	var cfg *config.Config
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(flags.config)))
			}
			return err
		}
		cfg = loaded
	}

	opts, err := buildOptions(cfg, flags, deps)
	if err != nil {
		return err
	}
	gen, err := quote2pdf.NewGenerator(opts...)
	if err != nil {
		return err
	}

	result, err := gen.GenerateFile(input, output)
	if err != nil {
		return err
	}
	if flags.verbose {
		fmt.Fprintf(deps.Stderr, "%d page(s), %d warning(s)\n", result.Pages, len(result.Warnings))
	}
	fmt.Fprintf(deps.Stdout, "PDF generated successfully: %s\n", output)
	return nil
}

// buildOptions merges the config file and the flags into generator
// options. Flags win over the config file.
func buildOptions(cfg *config.Config, flags *cliFlags, deps *Dependencies) ([]quote2pdf.Option, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	var opts []quote2pdf.Option

	name := cfg.Template
	if flags.template != "" {
		name = flags.template
	}
	if name == "" {
		name = quote2pdf.DefaultTemplate
	}
	tmpl, err := quote2pdf.LookupTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quote2pdf.ErrInput, err)
	}
	opts = append(opts, quote2pdf.WithTemplate(tmpl.Name))

	if cfg.Currency.Prefix != "" || cfg.Currency.GroupThousands != nil {
		cur := tmpl.Currency
		if cfg.Currency.Prefix != "" {
			cur.Prefix = cfg.Currency.Prefix
		}
		if cfg.Currency.GroupThousands != nil {
			cur.Group = *cfg.Currency.GroupThousands
		}
		opts = append(opts, quote2pdf.WithCurrency(cur.Prefix, cur.Group))
	}

	switch {
	case flags.taxRateSet:
		opts = append(opts, quote2pdf.WithTaxRate(flags.taxRate))
	case cfg.Tax.DefaultRate != nil:
		opts = append(opts, quote2pdf.WithTaxRate(*cfg.Tax.DefaultRate))
	}

	if cfg.Dates.Format != "" {
		opts = append(opts, quote2pdf.WithDateFormat(cfg.Dates.Format))
	}

	fontDirs := append(append([]string{}, flags.assetDirs...), cfg.Assets.FontDirs...)
	logoDirs := append(append([]string{}, flags.assetDirs...), cfg.Assets.LogoDirs...)
	opts = append(opts, quote2pdf.WithFontDirs(fontDirs...), quote2pdf.WithLogoDirs(logoDirs...))

	if flags.verbose {
		opts = append(opts, quote2pdf.WithLogf(func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, format+"\n", args...)
		}))
	}
	return opts, nil
}
