package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vfxtool/pkg/vfx"
)

func TestRootAttachesLogger(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var got *log.Logger
	root.AddCommand(&cobra.Command{
		Use: "capture",
		RunE: func(cmd *cobra.Command, args []string) error {
			got = loggerFromContext(cmd.Context())
			return nil
		},
	})
	root.SetArgs([]string{"capture"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != c.Logger {
		t.Error("subcommand did not receive the CLI logger through its context")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a context without a logger should yield log.Default()")
	}
}

func TestVerboseShowsDecodeTrace(t *testing.T) {
	cfgPath := setupWorkspace(t)
	bin := writeEmitter(t, cfgPath, t.TempDir())

	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"info hides the trace", LogInfo, false},
		{"debug shows the trace", LogDebug, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, tt.level)
			c.configPath = cfgPath
			cfg, err := c.loadConfig()
			if err != nil {
				t.Fatal(err)
			}
			codec, err := c.loadCodec(context.Background(), cfg)
			if err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(bin)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := codec.ReadBinary(data); err != nil {
				t.Fatal(err)
			}
			if got := strings.Contains(buf.String(), "reading node"); got != tt.want {
				t.Errorf("trace logged = %v, want %v:\n%s", got, tt.want, buf.String())
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Converted 2 files")

	out := buf.String()
	if !strings.Contains(out, "Converted 2 files (") || !strings.Contains(out, "s)") {
		t.Errorf("progress line = %q, want message with elapsed time", out)
	}
}

func TestCodecWarningsReachCLILogger(t *testing.T) {
	cfgPath := setupWorkspace(t)
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.configPath = cfgPath
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	codec, err := c.loadCodec(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	in := `<vfx version="TPP"><nodes><node class="FxEmitterNode"/></nodes></vfx>`
	doc, err := codec.ReadTree(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	vals, _ := doc.Nodes[0].Get("count")
	if vals[0] != vfx.UInt32Value(0) {
		t.Errorf("count = %v, want 0", vals[0])
	}
	if !strings.Contains(buf.String(), "property=count") {
		t.Errorf("missing property warning not logged:\n%s", buf.String())
	}
}
