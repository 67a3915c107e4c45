package stack

import (
	"strings"
	"testing"
)

// Test_Stack_CaptureSelf tests that the caller's frame is recorded.
func Test_Stack_CaptureSelf(t *testing.T) {
	pcs := Capture(0)
	if len(pcs) == 0 {
		t.Fatal("Expected at least one frame")
	}
	out := string(Append(nil, pcs))
	if !strings.Contains(out, "Test_Stack_CaptureSelf") {
		t.Fatalf("Capture missing the calling frame:\n%s", out)
	}
	if !strings.Contains(out, "stack_test.go:") {
		t.Fatalf("Frame missing file:line rendering:\n%s", out)
	}
}

// Test_Stack_Skip tests that skip drops the immediate caller.
func Test_Stack_Skip(t *testing.T) {
	var pcs []uintptr
	capture := func() {
		pcs = Capture(1) // skip the closure itself
	}
	capture()
	out := string(Append(nil, pcs))
	if !strings.Contains(out, "Test_Stack_Skip") {
		t.Fatalf("Expected the test frame after skipping the closure:\n%s", out)
	}
	if strings.Contains(out, "Test_Stack_Skip.func1") {
		t.Fatalf("Closure frame should have been skipped:\n%s", out)
	}
}

// Test_Stack_AppendEmpty tests that an empty capture renders nothing.
func Test_Stack_AppendEmpty(t *testing.T) {
	if got := Append(nil, nil); len(got) != 0 {
		t.Fatalf("Expected empty rendering, got %q", got)
	}
	prefix := []byte("keep")
	if got := Append(prefix, nil); string(got) != "keep" {
		t.Fatalf("Expected prefix untouched, got %q", got)
	}
}

// Test_Stack_FrameFormat tests one frame renders as "func\n\tfile:line\n".
func Test_Stack_FrameFormat(t *testing.T) {
	out := string(Append(nil, Capture(0)))
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("Expected at least one full frame, got %q", out)
	}
	if strings.HasPrefix(lines[0], "\t") {
		t.Fatalf("First line should be a function name, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "\t") {
		t.Fatalf("Second line should be an indented location, got %q", lines[1])
	}
	if !strings.Contains(lines[1], ":") {
		t.Fatalf("Location missing line number: %q", lines[1])
	}
}
