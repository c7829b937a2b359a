package fault

import "errors"

// Kind classifies where a failure originated.
type Kind int

const (
	// Validation covers bad user input caught before any network call.
	Validation Kind = iota
	// Transport covers network failures, timeouts and malformed response bodies.
	Transport
	// Backend covers well-formed error payloads from a reachable service.
	Backend
	// Platform covers local capabilities that are denied or unavailable,
	// such as device geolocation.
	Platform
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Transport:
		return "transport"
	case Backend:
		return "backend"
	case Platform:
		return "platform"
	default:
		return "unknown"
	}
}

// Error is a classified, user-presentable failure. Message is the short text
// shown in the panel that produced it.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a classified error with a user-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a user-facing message and kind to an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf reports the kind of err if it is (or wraps) a classified error.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// Is reports whether err is classified with the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
