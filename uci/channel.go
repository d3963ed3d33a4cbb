package uci

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Channel is a line-oriented view of an engine's standard input and output.
//
// Send flushes before returning, so every command is visible to the engine
// before the next read. After Close, or after any read or write failure,
// both operations fail with an error matching ErrChannelClosed.
type Channel struct {
	mu     sync.Mutex
	w      *bufio.Writer
	r      *bufio.Reader
	closed bool
	logger *slog.Logger
}

// NewChannel wraps the engine's stdout (r) and stdin (w).
func NewChannel(r io.Reader, w io.Writer, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = discardLogger
	}
	return &Channel{
		w:      bufio.NewWriter(w),
		r:      bufio.NewReader(r),
		logger: logger,
	}
}

// Send writes line plus a newline and flushes.
func (ch *Channel) Send(line string) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return ErrChannelClosed
	}
	ch.logger.Debug("=> " + line)
	if _, err := ch.w.WriteString(line + "\n"); err != nil {
		ch.closed = true
		return newChannelError("send", err)
	}
	if err := ch.w.Flush(); err != nil {
		ch.closed = true
		return newChannelError("send", err)
	}
	return nil
}

// ReceiveLine blocks until a line is available and returns it with trailing
// whitespace removed. A final unterminated line before EOF is returned
// normally; the following call fails.
func (ch *Channel) ReceiveLine() (string, error) {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return "", ErrChannelClosed
	}
	r := ch.r
	ch.mu.Unlock()

	// Reading happens outside the lock so Close can interrupt a blocked
	// reader by closing the underlying pipe.
	text, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && text != "" {
			line := strings.TrimRight(text, " \t\r\n")
			ch.logger.Debug("<= " + line)
			return line, nil
		}
		ch.mu.Lock()
		ch.closed = true
		ch.mu.Unlock()
		return "", newChannelError("receive", err)
	}
	line := strings.TrimRight(text, " \t\r\n")
	ch.logger.Debug("<= " + line)
	return line, nil
}

// Close marks the channel unavailable. It does not close the pipes, which
// belong to the process.
func (ch *Channel) Close() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.closed = true
}

// Closed reports whether the channel is unavailable.
func (ch *Channel) Closed() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.closed
}
