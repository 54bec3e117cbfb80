package quote2pdf

import "errors"

// Fatal errors. Generate and GenerateFile only fail with one of these.
var (
	ErrInput  = errors.New("invalid input")
	ErrRender = errors.New("rendering failed")
)

// Warnings. They never stop generation and are reported in Result.Warnings.
var (
	ErrItemDecode    = errors.New("items could not be decoded")
	ErrAssetMissing  = errors.New("asset missing")
	ErrTotalMismatch = errors.New("supplied total differs from derived total")
)

// Configuration errors returned by NewGenerator.
var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrInvalidTaxRate  = errors.New("invalid tax rate")
)
