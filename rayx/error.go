package rayx

import "github.com/pkg/errors"

// Kind classifies the two error categories that abort a trace call outright
// (§7). Per-ray terminal conditions — BeyondHorizon, Absorbed,
// TooManyEvents, FatalError — are carried as EventType values on the ray's
// event record instead; they are data, not control flow, and never surface
// as a Go error.
type Kind int

const (
	ConfigError Kind = iota
	DeviceError
)

func (k Kind) String() string {
	if k == DeviceError {
		return "DeviceError"
	}
	return "ConfigError"
}

// Error wraps an underlying cause with its Kind, preserving the stack trace
// captured by errors.Wrap at the point it was raised.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// NewConfigError wraps msg as a ConfigError.
func NewConfigError(msg string) *Error {
	return &Error{Kind: ConfigError, Err: errors.New(msg)}
}

// WrapDeviceError wraps err as a DeviceError, preserving its stack trace.
func WrapDeviceError(err error, msg string) *Error {
	return &Error{Kind: DeviceError, Err: errors.Wrap(err, msg)}
}
