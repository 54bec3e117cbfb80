// Package quote2pdf renders business quotations as paginated PDF documents.
//
// # Quick Start
//
// Create a generator and render a record:
//
//	gen, err := quote2pdf.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.GenerateFile("quote.json", "quote.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    log.Println("warning:", w)
//	}
//
// The input is a JSON object or YAML mapping. The items field may be a list
// of objects or a string holding an encoded list.
//
// # Pipeline
//
// Generation runs these stages in order:
//
//  1. Normalization into a typed QuotationRecord, with defaults
//  2. Totals derivation (subtotal, discount, tax, total)
//  3. Font and logo discovery on the asset search path
//  4. Composition into an ordered list of blocks
//  5. Pagination, page decoration and PDF output
//
// # Templates
//
// Two templates are built in. "branded" (the default) is an A4 document
// with a decorated header and footer on every page and a customer
// acceptance page. "plain" is an undecorated US Letter document.
//
//	gen, err := quote2pdf.NewGenerator(
//	    quote2pdf.WithTemplate("plain"),
//	    quote2pdf.WithTaxRate(15),
//	)
//
// # Errors
//
// Fatal errors wrap ErrInput or ErrRender. Missing fonts, a missing logo
// and undecodable items are not fatal: the document is still produced and
// the problem is reported in Result.Warnings, wrapping ErrAssetMissing,
// ErrItemDecode or ErrTotalMismatch.
package quote2pdf
