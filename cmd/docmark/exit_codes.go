package main

import (
	"context"
	"errors"
	"os"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/assets"
	"github.com/alnah/go-docmark/internal/config"
	"github.com/alnah/go-docmark/internal/dateutil"
	"github.com/alnah/go-docmark/internal/hints"
)

// Exit codes for the docmark CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, metadata or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docmark.ErrBrowserConnect) ||
		errors.Is(err, docmark.ErrPageCreate) ||
		errors.Is(err, docmark.ErrPageLoad) ||
		errors.Is(err, docmark.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, docmark.ErrFrontMatter) ||
		errors.Is(err, docmark.ErrInvalidCreatedAt) ||
		errors.Is(err, docmark.ErrEmptyTitle) ||
		errors.Is(err, docmark.ErrMissingCreatedAt) ||
		errors.Is(err, docmark.ErrNegativeWords) ||
		errors.Is(err, docmark.ErrFieldTooLong) ||
		errors.Is(err, docmark.ErrInvalidPageSize) ||
		errors.Is(err, docmark.ErrInvalidOrientation) ||
		errors.Is(err, docmark.ErrInvalidMargin) ||
		errors.Is(err, docmark.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}

// errorMessage renders err with an actionable hint when one applies.
func errorMessage(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, docmark.ErrBrowserConnect):
		msg += hints.ForBrowserConnect() + hints.ForHTMLOnly()
	case errors.Is(err, context.DeadlineExceeded):
		msg += hints.ForTimeout()
	case errors.Is(err, docmark.ErrFrontMatter),
		errors.Is(err, docmark.ErrInvalidCreatedAt):
		msg += hints.ForFrontMatter()
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		msg += hints.ForDateFormat()
	case errors.Is(err, ErrWriteOutput):
		msg += hints.ForOutputDirectory()
	}
	return msg
}
