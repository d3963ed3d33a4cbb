package uci

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestChannelSend(t *testing.T) {
	var buf bytes.Buffer
	ch := NewChannel(strings.NewReader(""), &buf, nil)
	if err := ch.Send("isready"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "isready\n" {
		t.Errorf("got %q, want %q", got, "isready\n")
	}
	if err := ch.Send("quit"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "isready\nquit\n" {
		t.Errorf("second send not flushed: %q", got)
	}
}

func TestChannelReceiveLine(t *testing.T) {
	ch := NewChannel(strings.NewReader("readyok\r\nbestmove e2e4  \t\nunterminated"), &bytes.Buffer{}, nil)
	for _, want := range []string{"readyok", "bestmove e2e4", "unterminated"} {
		got, err := ch.ReceiveLine()
		if err != nil {
			t.Fatalf("ReceiveLine: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
	_, err := ch.ReceiveLine()
	if !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("at EOF got %v, want ErrChannelClosed", err)
	}
	if !ch.Closed() {
		t.Error("channel open after EOF")
	}
}

type failingWriter struct{}

var errPipe = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) { return 0, errPipe }

func TestChannelSendFailure(t *testing.T) {
	ch := NewChannel(strings.NewReader(""), failingWriter{}, nil)
	err := ch.Send("uci")
	if !errors.Is(err, ErrChannelClosed) || !errors.Is(err, errPipe) {
		t.Fatalf("got %v, want ErrChannelClosed wrapping the cause", err)
	}
	var ce *ChannelError
	if !errors.As(err, &ce) || ce.Op != "send" {
		t.Errorf("got %#v", err)
	}
	if err := ch.Send("uci"); !errors.Is(err, ErrChannelClosed) {
		t.Errorf("second send got %v", err)
	}
}

func TestChannelClose(t *testing.T) {
	ch := NewChannel(strings.NewReader("readyok\n"), &bytes.Buffer{}, nil)
	ch.Close()
	if err := ch.Send("isready"); !errors.Is(err, ErrChannelClosed) {
		t.Errorf("Send after Close = %v", err)
	}
	if _, err := ch.ReceiveLine(); !errors.Is(err, ErrChannelClosed) {
		t.Errorf("ReceiveLine after Close = %v", err)
	}
}

func TestChannelLogsTraffic(t *testing.T) {
	var logs bytes.Buffer
	logger := NewLogger(&logs, slog.LevelDebug)
	ch := NewChannel(strings.NewReader("uciok\n"), &bytes.Buffer{}, logger)
	ch.Send("uci")
	ch.ReceiveLine()
	out := logs.String()
	if !strings.Contains(out, `msg="=> uci"`) || !strings.Contains(out, `msg="<= uciok"`) {
		t.Errorf("log output = %s", out)
	}
}
