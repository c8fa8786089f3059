package log

import (
	"bytes"
	"testing"

	"github.com/ardnew/debuglog/format"
)

// useDefault points the default router at fresh buffers for the duration of
// the test.
func useDefault(t *testing.T, opts ...Option) (*bytes.Buffer, *countingSink) {
	t.Helper()

	saved := Default().config
	t.Cleanup(func() { Default().config = saved })

	var primary bytes.Buffer

	file := &countingSink{}

	Config(append([]Option{
		WithDefaults(),
		WithPrimary(WriterSink(&primary)),
		WithFile(file, true),
		WithHalt(func() { panic(errHalted) }),
	}, opts...)...)

	return &primary, file
}

func TestPackage_LogFunctions_UseDefaultRouter(t *testing.T) {
	tests := []struct {
		name string
		fn   func(...any)
		want string
	}{
		{"Error", Error, "[ERROR] message 1\n"},
		{"Warn", Warn, "[WARN] message 1\n"},
		{"Info", Info, "[INFO] message 1\n"},
		{"Debug", Debug, "[DEBUG] message 1\n"},
		{"Trace", Trace, "[TRACE] message 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, _ := useDefault(t, WithLevel(LevelTrace))

			tt.fn("message", 1)

			if got := primary.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPackage_Settings(t *testing.T) {
	primary, file := useDefault(t)

	SetLevel(LevelDebug)
	SetFileLevel(LevelWarn)
	SetDelimiter(";")
	SetBaseReset(false)

	if GetLevel() != LevelDebug || GetFileLevel() != LevelWarn {
		t.Fatalf("unexpected levels %v/%v", GetLevel(), GetFileLevel())
	}

	Log(LevelDebug, format.Hex, 10, 11)
	Logf(LevelWarn, "%d%%", 50)
	Debug(12)

	if got, want := primary.String(), "[DEBUG] a;b\n[WARN] 50%\n[DEBUG] c\n"; got != want {
		t.Errorf("primary got %q, want %q", got, want)
	}

	if got, want := file.String(), "[WARN] 50%\n"; got != want {
		t.Errorf("file got %q, want %q", got, want)
	}
}

func TestPackage_Print(t *testing.T) {
	primary, file := useDefault(t, WithLevel(LevelNone))

	Print("a")
	Println("b", 2)
	PrintFile("c")
	PrintlnFile("d", 4)

	if got, want := primary.String(), "ab 2\n"; got != want {
		t.Errorf("primary got %q, want %q", got, want)
	}

	if got, want := file.String(), "cd 4\n"; got != want {
		t.Errorf("file got %q, want %q", got, want)
	}
}

func TestPackage_Attachment(t *testing.T) {
	primary, file := useDefault(t)

	if got := DetachFile(); got != Sink(file) {
		t.Errorf("DetachFile returned %v", got)
	}

	Error("x")

	if file.Len() != 0 {
		t.Errorf("detached sink written: %q", file.String())
	}

	var other bytes.Buffer

	AttachPrimary(WriterSink(&other))
	AttachFile(file, false)
	Error("y")

	if primary.String() != "[ERROR] x\n" || other.String() != "[ERROR] y\n" {
		t.Errorf("unexpected output %q / %q", primary.String(), other.String())
	}

	if file.String() != "[ERROR] y\n" || file.flushes != 0 {
		t.Errorf("unexpected file output %q (%d flushes)", file.String(), file.flushes)
	}
}

func TestPackage_Assert(t *testing.T) {
	primary, file := useDefault(t)

	Assert(true, "fine")

	expectHalt(t, func() { Assert(1 > 2, "1 > 2", "math") })

	if primary.String() == "" || primary.String() != file.String() {
		t.Errorf("unexpected output %q / %q", primary.String(), file.String())
	}

	if file.flushes == 0 {
		t.Error("file sink was not flushed")
	}
}
