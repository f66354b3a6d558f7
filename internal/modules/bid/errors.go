package bid

import "errors"

var (
	ErrGigNotFound    = errors.New("gig not found")
	ErrBidNotFound    = errors.New("bid not found")
	ErrGigClosed      = errors.New("gig is no longer open")
	ErrBidUnavailable = errors.New("bid is no longer available")
	ErrDuplicateBid   = errors.New("bid already placed on this gig")
	ErrSelfBid        = errors.New("cannot bid on your own gig")
	ErrForbidden      = errors.New("not authorized")
	ErrValidation     = errors.New("validation error")
	ErrTimeout        = errors.New("operation timed out")

	// ErrStoreUnavailable covers store failures with no domain meaning;
	// fatal to the request, safe to retry later.
	ErrStoreUnavailable = errors.New("store unavailable")
)
