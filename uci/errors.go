package uci

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the engine protocol.
var (
	// ErrChannelClosed indicates the engine's pipes are unavailable.
	ErrChannelClosed = errors.New("channel closed")

	// ErrProtocolTimeout indicates the line ceiling was reached without the
	// expected response.
	ErrProtocolTimeout = errors.New("protocol timeout")

	// ErrEngineSignaled indicates the engine reported an error line.
	ErrEngineSignaled = errors.New("engine signaled error")

	// ErrNotStarted indicates an operation on a client that has been
	// closed. It arrives inside a *ChannelError, so it also matches
	// ErrChannelClosed.
	ErrNotStarted = errors.New("engine not started")

	// ErrExecutableNotFound indicates no engine binary could be located.
	ErrExecutableNotFound = errors.New("engine executable not found")
)

// ChannelError reports a read or write failure on the engine's pipes.
type ChannelError struct {
	Op    string // "send", "receive", or "use" after Close
	Cause error
}

// Error implements the error interface.
func (e *ChannelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("channel %s failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("channel %s failed", e.Op)
}

// Unwrap returns ErrChannelClosed and the underlying cause.
func (e *ChannelError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrChannelClosed}
	}
	return []error{ErrChannelClosed, e.Cause}
}

// TimeoutError is the error form of a StatusTimeout result.
type TimeoutError struct {
	Command string
	Prefix  string
	Lines   int // lines read before giving up
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("gave up waiting for %q after %d lines from command %q", e.Prefix, e.Lines, e.Command)
}

// Unwrap returns ErrProtocolTimeout.
func (e *TimeoutError) Unwrap() error { return ErrProtocolTimeout }

// EngineError is the error form of a StatusEngineError result.
type EngineError struct {
	Command string
	Line    string // the offending response line
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("received %q from command %q", e.Line, e.Command)
}

// Unwrap returns ErrEngineSignaled.
func (e *EngineError) Unwrap() error { return ErrEngineSignaled }

// CorrelationError carries the error payload of a correlated response.
type CorrelationError struct {
	ID      uint64
	Code    int
	Message string
	Data    string // raw JSON, empty when absent
}

// Error implements the error interface.
func (e *CorrelationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rpc %d failed: code %d: %s", e.ID, e.Code, e.Message)
	if e.Data != "" {
		fmt.Fprintf(&sb, " (%s)", e.Data)
	}
	return sb.String()
}

func newChannelError(op string, cause error) error {
	return &ChannelError{Op: op, Cause: cause}
}
