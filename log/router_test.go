package log

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/debuglog/format"
	"github.com/ardnew/debuglog/pkg"
)

// countingSink records writes and counts flushes.
type countingSink struct {
	bytes.Buffer
	flushes int
}

func (s *countingSink) Flush() error {
	s.flushes++

	return nil
}

func newTestRouter(opts ...Option) (*Router, *bytes.Buffer, *countingSink) {
	var primary bytes.Buffer

	file := &countingSink{}

	r := New(append([]Option{
		WithPrimary(WriterSink(&primary)),
		WithFile(file, true),
		WithHalt(func() { panic(errHalted) }),
	}, opts...)...)

	return r, &primary, file
}

func TestRouter_Log_ThresholdAdmission(t *testing.T) {
	levels := []Level{
		LevelNone, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace,
	}

	for _, threshold := range levels {
		for _, level := range levels {
			name := threshold.String() + "/" + level.String()

			t.Run(name, func(t *testing.T) {
				r, primary, file := newTestRouter(
					WithLevel(threshold),
					WithFileLevel(threshold),
				)

				r.Log(level, "message")

				want := level != LevelNone && level <= threshold
				if got := primary.Len() > 0; got != want {
					t.Errorf("primary emitted=%v, want %v", got, want)
				}
				if got := file.Len() > 0; got != want {
					t.Errorf("file emitted=%v, want %v", got, want)
				}
			})
		}
	}
}

func TestRouter_Log_LineLayout(t *testing.T) {
	tests := []struct {
		name  string
		delim string
		log   func(*Router)
		want  string
	}{
		{
			name:  "header and arguments",
			delim: " ",
			log:   func(r *Router) { r.Info("temp", 21.5, "C") },
			want:  "[INFO] temp 21.50 C\n",
		},
		{
			name:  "no trailing delimiter",
			delim: ",",
			log:   func(r *Router) { r.Warn("a", "b", "c") },
			want:  "[WARN] a,b,c\n",
		},
		{
			name:  "empty delimiter",
			delim: "",
			log:   func(r *Router) { r.Error("a", 1) },
			want:  "[ERROR] a1\n",
		},
		{
			name:  "no arguments",
			delim: " ",
			log:   func(r *Router) { r.Debug() },
			want:  "[DEBUG] \n",
		},
		{
			name:  "containers",
			delim: " ",
			log: func(r *Router) {
				r.Trace("regs", format.Hex, []int{1, 2, 255}, format.KV("a", 1))
			},
			want: "[TRACE] regs [1, 2, ff] {a:1}\n",
		},
		{
			name:  "formatted",
			delim: " ",
			log:   func(r *Router) { r.Logf(LevelInfo, "%s=%d", "n", 7) },
			want:  "[INFO] n=7\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, primary, _ := newTestRouter(
				WithLevel(LevelTrace),
				WithDelimiter(tt.delim),
			)

			tt.log(r)

			if got := primary.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_Log_SinksAreIndependent(t *testing.T) {
	r, primary, file := newTestRouter(
		WithLevel(LevelTrace),
		WithFileLevel(LevelError),
		WithColor(true),
	)

	r.Debug("only primary")

	if file.Len() != 0 {
		t.Errorf("file sink received %q", file.String())
	}

	primary.Reset()
	r.Error("both", format.Precision(1), 2.26)

	if got, want := primary.String(), colorRed+"[ERROR] both 2.3"+colorReset+"\n"; got != want {
		t.Errorf("primary got %q, want %q", got, want)
	}

	if got, want := file.String(), "[ERROR] both 2.3\n"; got != want {
		t.Errorf("file got %q, want %q", got, want)
	}

	if file.flushes != 1 {
		t.Errorf("expected 1 flush, got %d", file.flushes)
	}
}

func TestRouter_Log_PrimaryOnlyWhenFileThresholdNone(t *testing.T) {
	r, primary, file := newTestRouter(WithFileLevel(LevelNone))

	r.Error("x")

	if primary.String() != "[ERROR] x\n" {
		t.Errorf("unexpected primary output %q", primary.String())
	}

	if file.Len() != 0 || file.flushes != 0 {
		t.Errorf("file sink was written: %q (%d flushes)", file.String(), file.flushes)
	}
}

func TestRouter_Log_Color(t *testing.T) {
	r, primary, _ := newTestRouter(WithColor(true))

	r.Warn("x")

	want := "\033[33m[WARN] x\033[0m\n"
	if got := primary.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	primary.Reset()
	r.SetColorTag(LevelInfo, "<i>")
	r.Config(WithClearTag("</i>"))
	r.SetHeader(LevelInfo, "")
	r.Info("y")

	if got := primary.String(); got != "<i>y</i>\n" {
		t.Errorf("got %q, want %q", got, "<i>y</i>\n")
	}
}

func TestRouter_BaseReset(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		r, primary, _ := newTestRouter()

		r.Info(format.Hex, 255)
		r.Info(255, 0.5)

		want := "[INFO] ff\n[INFO] 255 0.50\n"
		if got := primary.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}

		if r.State() != format.DefaultState() {
			t.Errorf("state not reset: %+v", r.State())
		}
	})

	t.Run("disabled", func(t *testing.T) {
		r, primary, _ := newTestRouter(WithBaseReset(false))

		r.Info(format.Hex, format.Precision(1), 255)
		r.Info(255, 0.5)

		want := "[INFO] ff\n[INFO] ff 0.5\n"
		if got := primary.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}

		r.SetBaseReset(true)
		r.Info(255)

		if !strings.HasSuffix(primary.String(), "[INFO] ff\n") {
			t.Errorf("expected pinned base for the last call, got %q", primary.String())
		}

		if r.State() != format.DefaultState() {
			t.Errorf("state not reset after re-enabling: %+v", r.State())
		}
	})

	t.Run("suppressed call keeps state", func(t *testing.T) {
		r, _, _ := newTestRouter(WithBaseReset(false), WithLevel(LevelError))

		r.Debug(format.Oct)

		if r.State().Base != format.Dec {
			t.Errorf("suppressed call changed base to %v", r.State().Base)
		}
	})
}

func TestRouter_ResetState(t *testing.T) {
	r, primary, _ := newTestRouter(WithBaseReset(false))

	r.Info(format.Bin, format.Precision(0), 5)
	r.ResetState()
	r.Info(5, 1.5)

	if got, want := primary.String(), "[INFO] 101\n[INFO] 5 1.50\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRouter_Print_BypassesThreshold(t *testing.T) {
	r, primary, file := newTestRouter(
		WithLevel(LevelNone),
		WithFileLevel(LevelNone),
		WithColor(true),
	)

	r.Print("a", format.Hex, 10)
	r.Println("", "b")

	if got, want := primary.String(), "a a b\n"; got != want {
		t.Errorf("primary got %q, want %q", got, want)
	}

	if file.Len() != 0 {
		t.Errorf("file sink written by Print: %q", file.String())
	}

	r.PrintFile("c", 1)
	r.PrintlnFile("d")

	if got, want := file.String(), "c 1d\n"; got != want {
		t.Errorf("file got %q, want %q", got, want)
	}

	if file.flushes != 2 {
		t.Errorf("expected 2 flushes, got %d", file.flushes)
	}
}

func TestRouter_PrintFile_NoFileIsNoop(t *testing.T) {
	r, primary, _ := newTestRouter(WithFile(nil, false), WithBaseReset(false))

	r.PrintFile(format.Hex, 1)
	r.PrintlnFile("x")

	if primary.Len() != 0 {
		t.Errorf("primary written: %q", primary.String())
	}

	if r.State().Base != format.Dec {
		t.Errorf("no-op call changed base to %v", r.State().Base)
	}
}

func TestRouter_FileSinkWithoutAutoFlush(t *testing.T) {
	file := &countingSink{}
	r := New(WithPrimary(Discard()), WithFile(file, false))

	r.Error("x")
	r.PrintlnFile("y")

	if file.flushes != 0 {
		t.Errorf("expected no flushes, got %d", file.flushes)
	}

	if err := r.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if file.flushes != 1 {
		t.Errorf("expected 1 flush, got %d", file.flushes)
	}
}

func TestRouter_Attachment(t *testing.T) {
	r, primary, file := newTestRouter()

	if !r.HasFile() {
		t.Fatal("expected file sink attached")
	}

	if got := r.DetachFile(); got != Sink(file) {
		t.Errorf("DetachFile returned %v", got)
	}

	if r.HasFile() {
		t.Error("file sink still attached")
	}

	r.Error("x")

	if file.Len() != 0 {
		t.Errorf("detached sink written: %q", file.String())
	}

	r.AttachPrimary(nil)
	r.Error("dropped")

	if primary.String() != "[ERROR] x\n" {
		t.Errorf("unexpected primary output %q", primary.String())
	}

	var other bytes.Buffer

	r.AttachFile(WriterSink(&other), true)
	r.Error("y")

	if other.String() != "[ERROR] y\n" {
		t.Errorf("unexpected file output %q", other.String())
	}
}

func TestRouter_Accessors(t *testing.T) {
	r := New()

	if r.Level() != DefaultLevel || r.FileLevel() != DefaultFileLevel {
		t.Errorf("unexpected default levels %v/%v", r.Level(), r.FileLevel())
	}

	if r.Delimiter() != DefaultDelimiter || !r.BaseReset() || r.Color() {
		t.Error("unexpected defaults")
	}

	r.SetLevel(LevelTrace)
	r.SetFileLevel(LevelWarn)
	r.SetDelimiter("|")
	r.SetColor(true)

	if r.Level() != LevelTrace || r.FileLevel() != LevelWarn ||
		r.Delimiter() != "|" || !r.Color() {
		t.Error("setters not applied")
	}

	if r.Header(LevelError) != "[ERROR] " || r.ColorTag(LevelInfo) != colorBlue {
		t.Error("unexpected default header or color tag")
	}

	if r.Header(Level(42)) != "" || r.ColorTag(Level(-1)) != "" {
		t.Error("expected empty lookups for unknown levels")
	}
}

func TestRouter_Wrap_CopiesConfiguration(t *testing.T) {
	r, primary, _ := newTestRouter()

	w := r.Wrap(WithLevel(LevelTrace), WithDelimiter("-"))

	w.Trace("a", "b")
	r.Trace("hidden")

	if got := primary.String(); got != "[TRACE] a-b\n" {
		t.Errorf("got %q", got)
	}

	if r.Level() != DefaultLevel || r.Delimiter() != DefaultDelimiter {
		t.Error("wrapped options leaked into the original router")
	}
}

func TestRouter_Enabled(t *testing.T) {
	r, _, _ := newTestRouter(WithLevel(LevelWarn), WithFileLevel(LevelDebug))

	if !r.Enabled(LevelDebug) {
		t.Error("expected debug enabled through the file sink")
	}

	r.DetachFile()

	if r.Enabled(LevelDebug) {
		t.Error("expected debug disabled without file sink")
	}

	if r.Enabled(LevelNone) {
		t.Error("none must never be enabled")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	if err := os.WriteFile(path, []byte("old\n"), FileMode); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	r := New(WithPrimary(Discard()), WithFile(f, true))
	r.Error("new", 1)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "old\n[ERROR] new 1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if f.Name() != path {
		t.Errorf("Name() = %q, want %q", f.Name(), path)
	}

	if err := f.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOpenFile_MissingDirectory(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing", "debug.log"))
	if err == nil {
		t.Fatal("expected error")
	}

	if !errors.Is(err, pkg.ErrOpenSink) {
		t.Errorf("expected ErrOpenSink, got %v", err)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestWriterSink_Flush(t *testing.T) {
	var flushed bool

	s := WriterSink(flushFunc(func() { flushed = true }))

	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	if !flushed {
		t.Error("expected Flush() to be forwarded")
	}

	counting := &countingSink{}
	if WriterSink(counting) != Sink(counting) {
		t.Error("expected a Sink to be returned unchanged")
	}

	if err := WriterSink(nil).Flush(); err != nil {
		t.Error(err)
	}
}

type flushFunc func()

func (flushFunc) Write(p []byte) (int, error) { return len(p), nil }

func (f flushFunc) Flush() { f() }
