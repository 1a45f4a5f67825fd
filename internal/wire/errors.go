package wire

import "errors"

// Error kinds shared by the directory client and the directory server
// itself, so both sides can compare against the same sentinels regardless
// of which one a particular error originated in.
var (
	ErrTransportUnavailable   = errors.New("mvsim: transport unavailable")
	ErrRegistrationRejected   = errors.New("mvsim: node registration rejected")
	ErrDuplicateAdvertisement = errors.New("mvsim: name already advertised")
	ErrTopicNotAdvertised     = errors.New("mvsim: topic not advertised")
	ErrTypeMismatch           = errors.New("mvsim: message type does not match advertised type")
	ErrServiceNotFound        = errors.New("mvsim: service not found")
	ErrServiceCallFailed      = errors.New("mvsim: service call failed")
	ErrConfigError            = errors.New("mvsim: configuration error")
)
