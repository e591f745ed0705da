package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer lets the spinner goroutine and the test share a buffer.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out lockedBuffer
	s := startSpinner(context.Background(), &out, "Loading definitions")

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "Loading definitions") {
		if time.Now().After(deadline) {
			t.Fatal("spinner never drew its message")
		}
		time.Sleep(10 * time.Millisecond)
	}
	s.stop()

	got := out.String()
	blank := "\r" + strings.Repeat(" ", len("Loading definitions")+4) + "\r"
	if !strings.HasSuffix(got, blank) {
		t.Errorf("status line not cleared, output ends with %q", got[max(0, len(got)-40):])
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out lockedBuffer
	s := startSpinner(ctx, &out, "Loading")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("spinner kept running after the context was cancelled")
	}
	s.stop()
}

func TestSpinnerStopTwice(t *testing.T) {
	var out lockedBuffer
	s := startSpinner(context.Background(), &out, "Loading")
	s.stop()
	n := len(out.String())
	s.stop()
	if len(out.String()) != n {
		t.Error("second stop wrote to the status line again")
	}
}
