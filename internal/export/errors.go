package export

import "errors"

var (
	// ErrInsufficientCredits indicates the balance cannot cover an export.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrExportInProgress indicates another export holds the session.
	ErrExportInProgress = errors.New("export in progress")

	// ErrLoginRequired indicates guests cannot export.
	ErrLoginRequired = errors.New("login required")

	// ErrRasterize indicates the page surface could not be captured.
	ErrRasterize = errors.New("rasterize failed")

	// ErrAssemble indicates the PDF could not be built from the capture.
	ErrAssemble = errors.New("assemble failed")

	// ErrVerify indicates the produced PDF does not match the page plan.
	ErrVerify = errors.New("verify failed")

	// ErrDelivery indicates every delivery mode failed.
	ErrDelivery = errors.New("delivery failed")
)

// ErrLinkInvalid indicates a signed file link is malformed or expired.
var ErrLinkInvalid = errors.New("file link invalid")
