package cli

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStatsCollector(t *testing.T) {
	ctx := context.Background()
	s := &statsCollector{}

	s.OnDictionaryLoad(ctx, "string", 10, true)
	s.OnDictionaryLoad(ctx, "path", 5, true)
	s.OnReadComplete(ctx, "a.vfx", "binary", 3, time.Millisecond, nil)
	s.OnReadComplete(ctx, "b.vfx", "binary", 0, time.Millisecond, errors.New("bad signature"))
	s.OnWriteComplete(ctx, "a.vfx.xml", "tree", 2048, time.Millisecond, nil)
	s.OnWriteComplete(ctx, "c.vfx", "binary", 99, time.Millisecond, errors.New("disk full"))

	got := s.snapshot()
	want := batchStats{
		Nodes:      3,
		Bytes:      2048,
		Reads:      2,
		ReadErrors: 1,
		Cached:     true,
		Entries:    15,
		ReadTime:   2 * time.Millisecond,
		WriteTime:  2 * time.Millisecond,
	}
	if got != want {
		t.Errorf("snapshot = %+v, want %+v", got, want)
	}

	s.OnDictionaryLoad(ctx, "string", 10, false)
	if s.snapshot().Cached {
		t.Error("a rebuilt dictionary should clear the cached flag")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
