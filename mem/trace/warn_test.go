//go:build allocwarn

package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/joshuapare/memtrace/mem"
	"github.com/joshuapare/memtrace/mem/guard"
)

// Test_Warn_OversizedAllocation tests the warning fires above the threshold
// even with logging off, and the operation is otherwise untouched.
func Test_Warn_OversizedAllocation(t *testing.T) {
	rec := newRecorder(0x1000)
	var out bytes.Buffer
	a := New(rec, &Options{Output: &out})

	addr, err := a.Allocate(mem.Layout{Size: warnThreshold + 1, Align: 8})
	if err != nil || addr != 0x1000 {
		t.Fatalf("Warning path altered the result: %#x/%v", addr, err)
	}

	got := out.String()
	if !strings.Contains(got, "large allocation at:\n") {
		t.Fatalf("Expected a large allocation warning, got:\n%s", got)
	}
	if !strings.Contains(got, "Test_Warn_OversizedAllocation") {
		t.Fatalf("Warning missing the calling frame:\n%s", got)
	}
	if countEvents(got, "alloc") != 0 {
		t.Fatalf("Logging is off; no alloc event expected:\n%s", got)
	}
	if rec.callCount() != 1 {
		t.Fatalf("Expected 1 delegate call, got %d", rec.callCount())
	}
}

// Test_Warn_ThresholdIsStrict tests that exactly the threshold stays quiet.
func Test_Warn_ThresholdIsStrict(t *testing.T) {
	var out bytes.Buffer
	a := New(newRecorder(0x1000), &Options{Output: &out})

	_, _ = a.Allocate(mem.Layout{Size: warnThreshold, Align: 8})
	if out.Len() != 0 {
		t.Fatalf("Expected no warning at the threshold, got:\n%s", out.String())
	}
}

// Test_Warn_OversizedReallocation tests the reallocation variant.
func Test_Warn_OversizedReallocation(t *testing.T) {
	var out bytes.Buffer
	a := New(newRecorder(0x1000), &Options{Output: &out})

	addr, _ := a.Allocate(mem.Layout{Size: 16, Align: 8})
	_, _ = a.Reallocate(addr, mem.Layout{Size: 16, Align: 8}, warnThreshold+1)

	got := out.String()
	if !strings.Contains(got, "large reallocation at:\n") {
		t.Fatalf("Expected a large reallocation warning, got:\n%s", got)
	}
	if strings.Contains(got, "large allocation at:\n") {
		t.Fatalf("The small initial alloc must not warn:\n%s", got)
	}
}

// Test_Warn_ZeroedDoesNotWarn tests that AllocateZeroed is exempt.
func Test_Warn_ZeroedDoesNotWarn(t *testing.T) {
	var out bytes.Buffer
	a := New(newRecorder(0x1000), &Options{Output: &out})

	_, _ = a.AllocateZeroed(mem.Layout{Size: warnThreshold * 2, Align: 8})
	if strings.Contains(out.String(), "large") {
		t.Fatalf("AllocateZeroed must not warn, got:\n%s", out.String())
	}
}

// Test_Warn_SuppressedUnderLatch tests that a warning triggered while the
// goroutine already holds the latch is dropped, not recursed.
func Test_Warn_SuppressedUnderLatch(t *testing.T) {
	rec := newRecorder(0x1000)
	var out bytes.Buffer
	a := New(rec, &Options{Output: &out})

	guard.Run(func() {
		_, _ = a.Allocate(mem.Layout{Size: warnThreshold + 1, Align: 8})
	})

	if out.Len() != 0 {
		t.Fatalf("Expected the latched warning to be dropped, got:\n%s", out.String())
	}
	if rec.callCount() != 1 {
		t.Fatalf("Suppression must not skip the delegate; got %d calls", rec.callCount())
	}
}

// Test_Warn_IndependentOfLoggingSwitch tests warnings alongside enabled
// event logging: both lines appear for one oversized request.
func Test_Warn_IndependentOfLoggingSwitch(t *testing.T) {
	var out bytes.Buffer
	a := New(newRecorder(0x1000), &Options{Output: &out, Logging: true})

	_, _ = a.Allocate(mem.Layout{Size: warnThreshold + 1, Align: 8})

	got := out.String()
	if !strings.Contains(got, "large allocation at:\n") {
		t.Fatalf("Expected the warning, got:\n%s", got)
	}
	if countEvents(got, "alloc") != 1 {
		t.Fatalf("Expected the alloc event as well, got:\n%s", got)
	}
}
