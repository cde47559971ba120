package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger is a JSON logger writing into Buffer at trace level.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger returns a capturing logger. The global level is lowered to
// trace until t finishes.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &logger, Buffer: buf}
}

// AssertContains fails t unless the captured output contains substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if out := tl.Buffer.String(); !strings.Contains(out, substr) {
		t.Errorf("log output does not contain %q\n%s", substr, out)
	}
}
