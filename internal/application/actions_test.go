package application

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"radiantwavetech.com/noisewave/internal/logger"
)

func TestReportLogsActionErrors(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	calls := 0
	report("next preset", func() error {
		calls++
		return errors.New(`unknown preset "gone"`)
	})()
	if calls != 1 {
		t.Fatalf("action ran %d times", calls)
	}
	out := buf.String()
	if !strings.Contains(out, "WARNING") || !strings.Contains(out, `next preset: unknown preset "gone"`) {
		t.Errorf("log output = %q", out)
	}

	buf.Reset()
	report("toggle stipple", func() error { return nil })()
	if buf.Len() != 0 {
		t.Errorf("successful action logged %q", buf.String())
	}
}
