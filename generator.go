package quote2pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-quote2pdf/internal/assets"
	"github.com/alnah/go-quote2pdf/internal/dateutil"
	"github.com/alnah/go-quote2pdf/internal/fileutil"
	"github.com/alnah/go-quote2pdf/internal/hints"
	"github.com/alnah/go-quote2pdf/internal/render"
)

// Creator is written into the PDF metadata.
const Creator = "go-quote2pdf"

// Generator renders quotation records with one template. It is safe to
// reuse for several records but not for concurrent use.
type Generator struct {
	tmpl     Template
	fontDirs assets.SearchPath
	logoDirs assets.SearchPath
	logf     func(format string, args ...any)

	// Set by options, resolved by NewGenerator.
	tmplName   string
	currency   *Currency
	dateLayout string
	taxRate    *decimal.Decimal
	extraFonts []string
	extraLogos []string
	optErr     error

	// Replaced in tests.
	newSurface func(pageSize string) render.Surface
	now        func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemplate selects a built-in template by name.
func WithTemplate(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.tmplName = name
		}
	}
}

// WithTaxRate sets the tax rate, in percent, applied when a record has no
// tax_rate.
func WithTaxRate(percent float64) Option {
	return func(g *Generator) {
		if percent < 0 || percent > 100 {
			g.optErr = fmt.Errorf("%w: %v (must be between 0 and 100)", ErrInvalidTaxRate, percent)
			return
		}
		rate := decimal.NewFromFloat(percent)
		g.taxRate = &rate
	}
}

// WithCurrency overrides the template currency prefix and grouping.
func WithCurrency(prefix string, group bool) Option {
	return func(g *Generator) {
		g.currency = &Currency{Prefix: prefix, Group: group}
	}
}

// WithDateFormat overrides the displayed date format. It accepts tokens
// such as "DD/MM/YYYY" or a preset name (iso, european, us, long).
func WithDateFormat(format string) Option {
	return func(g *Generator) {
		layout, err := dateutil.ParseDateFormat(format)
		if err != nil {
			g.optErr = err
			return
		}
		g.dateLayout = layout
	}
}

// WithFontDirs adds directories searched for fonts before the defaults.
func WithFontDirs(dirs ...string) Option {
	return func(g *Generator) {
		g.extraFonts = append(g.extraFonts, dirs...)
	}
}

// WithLogoDirs adds directories searched for the logo before the defaults.
func WithLogoDirs(dirs ...string) Option {
	return func(g *Generator) {
		g.extraLogos = append(g.extraLogos, dirs...)
	}
}

// WithLogf receives progress messages and warnings.
func WithLogf(fn func(format string, args ...any)) Option {
	return func(g *Generator) {
		if fn != nil {
			g.logf = fn
		}
	}
}

// NewGenerator builds a Generator. Invalid options fail with ErrInput.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		tmplName:   DefaultTemplate,
		logf:       func(string, ...any) {},
		newSurface: func(pageSize string) render.Surface { return render.NewPDF(pageSize) },
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.optErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, g.optErr)
	}

	tmpl, err := LookupTemplate(g.tmplName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}
	if g.currency != nil {
		tmpl.Currency = *g.currency
	}
	if g.dateLayout != "" {
		tmpl.DateLayout = g.dateLayout
	}
	if g.taxRate != nil {
		tmpl.DefaultTaxRate = *g.taxRate
	}
	g.tmpl = tmpl

	base := fileutil.ExecutableDir()
	g.fontDirs = assets.DefaultFontDirs(base).Prepend(g.extraFonts...)
	g.logoDirs = assets.DefaultLogoDirs(base).Prepend(g.extraLogos...)
	return g, nil
}

// Template returns the resolved template, overrides included.
func (g *Generator) Template() Template { return g.tmpl }

// Generate renders a JSON or YAML record to PDF bytes. It fails with
// ErrInput when the record cannot be parsed and ErrRender when layout or
// output fails; everything else is reported in Result.Warnings.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(data []byte) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	rec, warnings, err := normalize(data, normalizeOptions{quoteNumber: g.tmpl.QuoteNumberDefault, now: g.now()})
	if err != nil {
		return nil, err
	}
	g.logf("quote %s: %d items", rec.QuoteNumber, len(rec.Items))

	totals, mismatch := ComputeTotals(rec, g.tmpl.DefaultTaxRate)
	warnings = append(warnings, mismatch...)

	s := g.newSurface(g.tmpl.PageSize)
	fonts, fontErr := FontResolver{Dirs: g.fontDirs}.Resolve(s)
	if fontErr != nil {
		warnings = append(warnings, fontErr)
	}

	var deco Decorator = noDecorator{}
	if g.tmpl.Decorated {
		logo, logoErr := assets.FindLogo(g.logoDirs, g.tmpl.LogoFile)
		if logoErr != nil {
			warnings = append(warnings, fmt.Errorf("%w: %v%s", ErrAssetMissing, logoErr, hints.ForLogo(g.logoDirs, g.tmpl.LogoFile)))
			logo = nil
		}
		deco = newBrandedDecorator(pageHeader(rec, g.tmpl), fonts, logo, func(e error) {
			warnings = append(warnings, e)
		})
	}

	pieces, err := present(g.tmpl.kind, Compose(rec, totals, g.tmpl))
	if err != nil {
		return nil, err
	}
	if err := assemble(s, fonts, deco, g.tmpl.Margins, pieces); err != nil {
		return nil, err
	}

	title, author, subject := documentInfo(rec, g.tmpl)
	s.SetInfo(render.Info{Title: title, Author: author, Subject: subject, Creator: Creator})

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	for _, w := range warnings {
		g.logf("warning: %v", w)
	}
	return &Result{
		PDF:      buf.Bytes(),
		Pages:    s.PageCount(),
		Record:   rec,
		Totals:   totals,
		Warnings: warnings,
	}, nil
}

// GenerateFile reads a record from inPath and writes the PDF to outPath.
// The output appears atomically: on any failure no file is left at outPath.
func (g *Generator) GenerateFile(inPath, outPath string) (*Result, error) {
	data, err := os.ReadFile(inPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInput, inPath, err)
	}

	result, err := g.Generate(data)
	if err != nil {
		return nil, err
	}

	if err := fileutil.WriteAtomic(outPath, result.PDF, 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v%s", ErrInput, outPath, err, hints.ForOutputDirectory(outPath))
	}
	g.logf("wrote %s (%d pages, %d bytes)", outPath, result.Pages, len(result.PDF))
	return result, nil
}
