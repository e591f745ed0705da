package cli

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/vfxtool/pkg/observability"
)

// statsCollector tallies conversion events for the batch summary.
type statsCollector struct {
	observability.NoopConversionHooks

	mu          sync.Mutex
	dictCached  int
	dictBuilt   int
	dictEntries int
	reads       int
	readErrors  int
	nodes       int
	bytes       int
	readTime    time.Duration
	writeTime   time.Duration
}

func (s *statsCollector) OnDictionaryLoad(_ context.Context, _ string, entries int, cached bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached {
		s.dictCached++
	} else {
		s.dictBuilt++
	}
	s.dictEntries += entries
}

func (s *statsCollector) OnReadComplete(_ context.Context, _, _ string, nodeCount int, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	s.readTime += d
	if err != nil {
		s.readErrors++
		return
	}
	s.nodes += nodeCount
}

func (s *statsCollector) OnWriteComplete(_ context.Context, _, _ string, size int, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeTime += d
	if err == nil {
		s.bytes += size
	}
}

// snapshot returns a copy of the counters.
func (s *statsCollector) snapshot() batchStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return batchStats{
		Nodes:      s.nodes,
		Bytes:      s.bytes,
		Reads:      s.reads,
		ReadErrors: s.readErrors,
		Cached:     s.dictBuilt == 0 && s.dictCached > 0,
		Entries:    s.dictEntries,
		ReadTime:   s.readTime,
		WriteTime:  s.writeTime,
	}
}

type batchStats struct {
	Nodes      int
	Bytes      int
	Reads      int
	ReadErrors int
	Cached     bool
	Entries    int
	ReadTime   time.Duration
	WriteTime  time.Duration
}
