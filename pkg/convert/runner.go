package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vfxtool/pkg/config"
	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/observability"
	"github.com/matzehuels/vfxtool/pkg/vfx"
)

// Direction is the conversion applied to one input.
type Direction int

const (
	// Skip marks inputs with an extension the runner does not convert.
	Skip Direction = iota
	// ToTree converts a binary to the XML tree form.
	ToTree
	// ToBinary converts a tree back to a binary.
	ToBinary
)

// String returns the direction name used in logs.
func (d Direction) String() string {
	switch d {
	case ToTree:
		return "to-xml"
	case ToBinary:
		return "to-vfx"
	default:
		return "skip"
	}
}

// Format names passed to the conversion hooks.
const (
	FormatBinary = "binary"
	FormatTree   = "tree"
)

// Plan returns the direction and output path for an input path.
// Extensions are matched case-insensitively.
func Plan(path string) (Direction, string) {
	ext := filepath.Ext(path)
	switch {
	case strings.EqualFold(ext, ".xml"):
		return ToBinary, strings.TrimSuffix(path, ext)
	case strings.EqualFold(ext, ".vfx"):
		return ToTree, path + ".xml"
	default:
		return Skip, ""
	}
}

// Result reports the outcome of converting one file.
type Result struct {
	Input     string
	Output    string
	Direction Direction
	Version   string
	Nodes     int
	Size      int
	Duration  time.Duration
	Err       error
}

// OK reports whether the file was converted.
func (r Result) OK() bool { return r.Err == nil && r.Direction != Skip }

// Runner converts files with a shared codec.
//
// The runner collects unresolved hashes across calls; it is safe for
// concurrent use, although batches run files one at a time.
type Runner struct {
	Codec  *vfx.Codec
	Logger *log.Logger

	mu     sync.Mutex
	hashes *vfx.HashSet
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(codec *vfx.Codec, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Codec: codec, Logger: logger, hashes: vfx.NewHashSet()}
}

// Run converts paths in order. Cancelling ctx stops the batch before the
// next file; the results so far are returned.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}
		res := r.ConvertFile(ctx, p)
		switch {
		case res.Direction == Skip:
			r.Logger.Debug("skipped", "path", p)
		case res.Err != nil:
			r.Logger.Debug("conversion failed", "path", p, "err", res.Err)
		default:
			r.Logger.Debug("converted", "path", p, "output", res.Output, "nodes", res.Nodes, "duration", res.Duration)
		}
		results = append(results, res)
	}
	return results
}

// ConvertFile converts one file in the direction given by its extension.
func (r *Runner) ConvertFile(ctx context.Context, path string) Result {
	dir, out := Plan(path)
	res := Result{Input: path, Output: out, Direction: dir}
	if dir == Skip {
		return res
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			res.Err = errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		} else {
			res.Err = fmt.Errorf("read %s: %w", path, err)
		}
		return res
	}

	hooks := observability.Conversion()
	inFormat, outFormat := FormatBinary, FormatTree
	if dir == ToBinary {
		inFormat, outFormat = FormatTree, FormatBinary
	}

	hooks.OnReadStart(ctx, path, inFormat)
	doc, err := decode(r.Codec, dir, data)
	nodes := 0
	if doc != nil {
		nodes = len(doc.Nodes)
	}
	hooks.OnReadComplete(ctx, path, inFormat, nodes, time.Since(start), err)
	if err != nil {
		res.Err = err
		return res
	}
	res.Version = doc.Version.String()
	res.Nodes = nodes

	writeStart := time.Now()
	var buf bytes.Buffer
	if dir == ToTree {
		err = r.Codec.WriteTree(&buf, doc)
	} else {
		err = r.Codec.WriteBinary(&buf, doc)
	}
	if err == nil {
		err = writeFileAtomic(out, buf.Bytes())
	}
	hooks.OnWriteComplete(ctx, out, outFormat, buf.Len(), time.Since(writeStart), err)
	if err != nil {
		res.Err = err
		return res
	}

	if dir == ToTree {
		r.mu.Lock()
		r.Codec.CollectUnresolved(doc, r.hashes)
		r.mu.Unlock()
	}
	res.Size = buf.Len()
	res.Duration = time.Since(start)
	return res
}

// ReadFile decodes the document at path, picking the form from the
// extension like [Plan]: .vfx is binary, .xml is the tree form.
func ReadFile(codec *vfx.Codec, path string) (*vfx.Document, error) {
	dir, _ := Plan(path)
	if dir == Skip {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: expected a .vfx or .xml file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return decode(codec, dir, data)
}

func decode(codec *vfx.Codec, dir Direction, data []byte) (*vfx.Document, error) {
	if dir == ToTree {
		return codec.ReadBinary(data)
	}
	return codec.ReadTree(bytes.NewReader(data))
}

// Unresolved returns the sorted string and path hashes collected so far.
func (r *Runner) Unresolved() (strs, paths []uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return vfx.Sorted(r.hashes.Strings), vfx.Sorted(r.hashes.Paths)
}

// WriteHashDumps writes the unresolved hashes to the string and path dump
// files in dir, one decimal hash per line. Both files are always written.
func (r *Runner) WriteHashDumps(dir string) error {
	strs, paths := r.Unresolved()
	if err := writeHashDump(filepath.Join(dir, config.StringHashDump), strs); err != nil {
		return err
	}
	if err := writeHashDump(filepath.Join(dir, config.PathHashDump), paths); err != nil {
		return err
	}
	r.Logger.Debug("wrote hash dumps", "dir", dir, "strings", len(strs), "paths", len(paths))
	return nil
}

func writeHashDump(path string, hashes []uint64) error {
	var buf bytes.Buffer
	for _, h := range hashes {
		buf.WriteString(strconv.FormatUint(h, 10))
		buf.WriteByte('\n')
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vfxtool-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
