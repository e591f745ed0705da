package dictionary

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/vfxtool/pkg/hash"
)

// minChunk keeps tiny word lists on a single worker.
const minChunk = 1024

// ReadWords reads a word list with one word per line. The returned list
// always starts with the empty string so that a zero-length name resolves.
// Trailing carriage returns are stripped; other whitespace is kept because
// it is part of the hashed text.
func ReadWords(r io.Reader) ([]string, error) {
	words := []string{""}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		words = append(words, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Build hashes words into a table of the given kind using up to workers
// goroutines (GOMAXPROCS when workers <= 0). The hasher supplies the
// extension table for [PathCode]; it is ignored for [StringCode].
//
// Build returns ctx.Err() if the context is cancelled before all words are
// hashed. No partially built table is ever returned.
func Build(ctx context.Context, words []string, kind Kind, hasher *hash.Hasher, workers int) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	hashOf := kind.HashFunc(hasher)

	chunk := max((len(words)+workers-1)/workers, minChunk)

	var (
		mu    sync.Mutex
		owner = make(map[uint64]int, len(words))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(words); start += chunk {
		end := min(start+chunk, len(words))
		g.Go(func() error {
			hashes := make([]uint64, end-start)
			for i := range hashes {
				if i%minChunk == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				hashes[i] = hashOf(words[start+i])
			}

			mu.Lock()
			defer mu.Unlock()
			for i, h := range hashes {
				idx := start + i
				if prev, ok := owner[h]; !ok || idx < prev {
					owner[h] = idx
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &Table{kind: kind, entries: make(map[uint64]string, len(owner))}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	for h, idx := range owner {
		t.entries[h] = words[idx]
	}
	// Distinct words that lost their hash to an earlier word.
	t.collisions = len(seen) - len(t.entries)
	return t, nil
}
