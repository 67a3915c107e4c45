package acceptance

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memtrace/mem"
	"github.com/joshuapare/memtrace/mem/trace"
	"github.com/joshuapare/memtrace/pkg/memtrace"
)

// TestLifecycleNarration walks a block through its whole life - allocate,
// fill, grow, clone, release - and checks the emitted narration matches the
// exact operations and addresses the workload saw.
func TestLifecycleNarration(t *testing.T) {
	sys := mem.NewSys()
	defer func() { _ = sys.Close() }()

	var out bytes.Buffer
	a := trace.New(sys, &trace.Options{Output: &out, Logging: true})

	layout := mem.Layout{Size: 32, Align: 8}
	addr, err := a.Allocate(layout)
	require.NoError(t, err, "Failed to allocate the initial block")
	require.NotZero(t, addr)

	b := bytesAt(addr, layout.Size)
	for i := range b {
		b[i] = byte(i)
	}
	want := append([]byte(nil), b...)

	grown, err := a.Reallocate(addr, layout, 128)
	require.NoError(t, err, "Failed to grow the block")
	require.Equal(t, want, bytesAt(grown, 32), "Contents lost across the grow")

	clone, err := a.Allocate(mem.Layout{Size: 128, Align: 8})
	require.NoError(t, err, "Failed to allocate the clone")
	copy(bytesAt(clone, 128), bytesAt(grown, 128))

	a.Deallocate(grown, mem.Layout{Size: 128, Align: 8})
	a.Deallocate(clone, mem.Layout{Size: 128, Align: 8})

	got := out.String()
	require.Equal(t,
		[]string{"alloc", "realloc", "alloc", "dealloc", "dealloc"},
		eventVerbs(got), "Unexpected event sequence:\n%s", got)

	// Addresses thread through the narration exactly as returned.
	require.Contains(t, got,
		fmt.Sprintf("alloc [address=0x%x, size=32, align=8] at:", addr))
	require.Contains(t, got,
		fmt.Sprintf("realloc [address=0x%x, size=32, align=8] to [address=0x%x, size=128, align=8] at:", addr, grown))
	require.Contains(t, got,
		fmt.Sprintf("dealloc [address=0x%x, size=128, align=8] at:", grown))
	require.Contains(t, got,
		fmt.Sprintf("dealloc [address=0x%x, size=128, align=8] at:", clone))
}

// TestTracingDoesNotPerturbWorkload runs the same workload with and without
// a tracer in front of the delegate and requires identical results.
func TestTracingDoesNotPerturbWorkload(t *testing.T) {
	workload := func(t *testing.T, a mem.Allocator) byte {
		t.Helper()
		layout := mem.Layout{Size: 40, Align: 8}
		addr, err := a.Allocate(layout)
		require.NoError(t, err)
		b := bytesAt(addr, layout.Size)
		for i := range b {
			b[i] = byte(i * 3)
		}

		grown, err := a.Reallocate(addr, layout, 80)
		require.NoError(t, err)

		var sum byte
		for _, v := range bytesAt(grown, 40) {
			sum += v
		}
		a.Deallocate(grown, mem.Layout{Size: 80, Align: 8})
		return sum
	}

	direct := mem.NewGo()
	traced := mem.NewGo()
	var out bytes.Buffer

	wantSum := workload(t, direct)
	gotSum := workload(t, trace.New(traced, &trace.Options{Output: &out, Logging: true}))

	require.Equal(t, wantSum, gotSum, "Tracing changed what the workload computed")
	require.Zero(t, direct.Live(), "Direct run leaked blocks")
	require.Zero(t, traced.Live(), "Traced run leaked blocks")
	require.NotEmpty(t, out.String(), "Traced run should have narrated")
}

// TestQuietPhaseMarkers interleaves unlogged phase markers with traced work
// and requires the combined stream to keep the program's order.
func TestQuietPhaseMarkers(t *testing.T) {
	var out bytes.Buffer
	memtrace.Install(mem.NewGo(), &trace.Options{Output: &out, Logging: true})
	t.Cleanup(func() {
		memtrace.Install(mem.NewGo(), &trace.Options{Output: io.Discard})
	})

	mark := func(s string) {
		memtrace.RunUnlogged(func() {
			out.WriteString(s + "\n")
		})
	}

	layout := mem.Layout{Size: 16, Align: 8}
	mark("phase: allocate")
	addr, err := memtrace.Allocate(layout)
	require.NoError(t, err)
	mark("phase: release")
	memtrace.Deallocate(addr, layout)
	mark("phase: done")

	got := out.String()
	last := -1
	for _, want := range []string{
		"phase: allocate",
		"alloc [",
		"phase: release",
		"dealloc [",
		"phase: done",
	} {
		idx := strings.Index(got, want)
		require.Greater(t, idx, last, "%q out of order in:\n%s", want, got)
		last = idx
	}
}

// TestToggleWindowNarration walks one logging window end to end: narrated
// work, a silent stretch while logging is off, and narration resuming with a
// reallocation once the switch is back on.
func TestToggleWindowNarration(t *testing.T) {
	heap := mem.NewGo()
	var out bytes.Buffer
	a := trace.New(heap, &trace.Options{Output: &out, Logging: true})

	small := mem.Layout{Size: 16, Align: 8}
	first, err := a.Allocate(small)
	require.NoError(t, err)
	a.Deallocate(first, small)

	got := out.String()
	require.Equal(t, []string{"alloc", "dealloc"}, eventVerbs(got))
	require.Contains(t, got,
		fmt.Sprintf("alloc [address=0x%x, size=16, align=8] at:", first))
	require.Contains(t, got,
		fmt.Sprintf("dealloc [address=0x%x, size=16, align=8] at:", first))
	require.Contains(t, got, "TestToggleWindowNarration",
		"Events should carry the caller's backtrace")

	a.DisableLogging()
	quiet := out.Len()
	mid, err := a.Allocate(mem.Layout{Size: 32, Align: 8})
	require.NoError(t, err)
	keep, err := a.Allocate(small)
	require.NoError(t, err)
	require.Equal(t, quiet, out.Len(), "Operations while disabled must stay silent")

	a.EnableLogging()
	grown, err := a.Reallocate(keep, small, 64)
	require.NoError(t, err)
	require.Equal(t, []string{"alloc", "dealloc", "realloc"}, eventVerbs(out.String()))
	require.Contains(t, out.String(), fmt.Sprintf(
		"realloc [address=0x%x, size=16, align=8] to [address=0x%x, size=64, align=8] at:",
		keep, grown))

	a.Deallocate(mid, mem.Layout{Size: 32, Align: 8})
	a.Deallocate(grown, mem.Layout{Size: 64, Align: 8})
	require.Zero(t, heap.Live(), "Scenario leaked blocks")
}

// TestDisabledRunStaysSilent requires a full workload to emit nothing while
// logging is off, with the delegate still doing all the work.
func TestDisabledRunStaysSilent(t *testing.T) {
	heap := mem.NewGo()
	var out bytes.Buffer
	a := trace.New(heap, &trace.Options{Output: &out})

	layout := mem.Layout{Size: 64, Align: 16}
	addr, err := a.AllocateZeroed(layout)
	require.NoError(t, err)
	require.Equal(t, 1, heap.Live(), "Delegate skipped while logging off")

	grown, err := a.Reallocate(addr, layout, 256)
	require.NoError(t, err)
	a.Deallocate(grown, mem.Layout{Size: 256, Align: 16})

	require.Zero(t, out.Len(), "Disabled tracer produced output:\n%s", out.String())
	require.Zero(t, heap.Live())
}

// TestDelegateRefusalSurfaces requires a delegate error to reach the caller
// unchanged and be narrated with address zero.
func TestDelegateRefusalSurfaces(t *testing.T) {
	sys := mem.NewSys()
	defer func() { _ = sys.Close() }()

	var out bytes.Buffer
	a := trace.New(sys, &trace.Options{Output: &out, Logging: true})

	addr, err := a.Allocate(mem.Layout{Size: 64, Align: 64})
	require.ErrorIs(t, err, mem.ErrAlignTooLarge)
	require.Zero(t, addr)
	require.Contains(t, out.String(), "alloc [address=0x0, size=64, align=64] at:")
}

// TestBacktracesNameTheWorkload requires event stacks to point at the code
// that allocated, not at the tracing machinery.
func TestBacktracesNameTheWorkload(t *testing.T) {
	heap := mem.NewGo()
	var out bytes.Buffer
	a := trace.New(heap, &trace.Options{Output: &out, Logging: true})

	addr, err := a.Allocate(mem.Layout{Size: 8, Align: 8})
	require.NoError(t, err)
	a.Deallocate(addr, mem.Layout{Size: 8, Align: 8})

	got := out.String()
	require.Contains(t, got, "TestBacktracesNameTheWorkload",
		"Stack should show the allocating test:\n%s", got)
	require.NotContains(t, got, "guard.Run",
		"Stack leaked tracer internals:\n%s", got)
}
