package docmark

import (
	"errors"

	"github.com/alnah/go-docmark/internal/markup"
)

// Sentinel errors for library operations.
var (
	ErrInvalidCreatedAt = errors.New("invalid creation timestamp")
	ErrFrontMatter      = errors.New("invalid front matter")
	ErrLayout           = errors.New("print layout failed")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)

// Metadata validation errors.
var (
	ErrEmptyTitle       = markup.ErrEmptyTitle
	ErrMissingCreatedAt = markup.ErrMissingCreatedAt
	ErrNegativeWords    = markup.ErrNegativeWords
	ErrFieldTooLong     = markup.ErrFieldTooLong
)
