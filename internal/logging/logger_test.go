package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func TestErrorWritesFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Error("save failed", errors.New("disk full"), Fields{"count": 3})

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if line["level"] != "error" || line["message"] != "save failed" || line["error"] != "disk full" {
		t.Fatalf("unexpected line: %v", line)
	}
	if line["count"] != float64(3) {
		t.Fatalf("count field = %v", line["count"])
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	if err := SetLevel("info"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		_ = SetLevel("debug")
	})

	Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("debug line leaked at info level: %q", buf.String())
	}
	Info("shown", nil)
	if buf.Len() == 0 {
		t.Fatalf("info line missing")
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("bad level must error")
	}
}
