package main

import (
	"fmt"
	"io"
	"math/rand"
	"unsafe"

	"github.com/joshuapare/memtrace/mem"
	"github.com/joshuapare/memtrace/mem/trace"
)

// workloadConfig drives the synthetic allocation churn.
type workloadConfig struct {
	Events  int
	MaxSize int
	Seed    int64
	Logging bool
	Sink    io.Writer
}

// workloadResult summarizes one churn run.
type workloadResult struct {
	Allocs     int
	Reallocs   int
	Frees      int
	BytesAsked int64
	PeakLive   int
}

// newDelegate builds the requested backing allocator and its cleanup.
func newDelegate(kind string) (mem.Allocator, func() error, error) {
	switch kind {
	case "sys":
		s := mem.NewSys()
		return s, s.Close, nil
	case "heap":
		return mem.NewGo(), func() error { return nil }, nil
	case "map":
		return mem.NewMap(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown delegate %q (want sys, heap, or map)", kind)
	}
}

// blockView sees the n bytes at addr. Valid only while the block is live.
func blockView(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

// runWorkload churns randomized allocate/reallocate/release traffic through
// a tracer over the delegate. Every live block is written and released
// before returning, so a clean delegate ends the run clean.
func runWorkload(delegate mem.Allocator, cfg workloadConfig) (workloadResult, error) {
	a := trace.New(delegate, &trace.Options{Output: cfg.Sink, Logging: cfg.Logging})
	rng := rand.New(rand.NewSource(cfg.Seed))

	type block struct {
		addr   uintptr
		layout mem.Layout
	}
	var live []block
	var res workloadResult

	for i := 0; i < cfg.Events; i++ {
		switch {
		case len(live) > 0 && rng.Intn(4) == 0:
			j := rng.Intn(len(live))
			b := live[j]
			a.Deallocate(b.addr, b.layout)
			live = append(live[:j], live[j+1:]...)
			res.Frees++

		case len(live) > 0 && rng.Intn(4) == 0:
			j := rng.Intn(len(live))
			b := live[j]
			newSize := 1 + rng.Intn(cfg.MaxSize)
			addr, err := a.Reallocate(b.addr, b.layout, newSize)
			if err != nil {
				return res, fmt.Errorf("reallocate %d bytes: %w", newSize, err)
			}
			live[j] = block{addr: addr, layout: mem.Layout{Size: newSize, Align: b.layout.Align}}
			res.Reallocs++
			res.BytesAsked += int64(newSize)

		default:
			layout := mem.Layout{Size: 1 + rng.Intn(cfg.MaxSize), Align: 8}
			addr, err := a.Allocate(layout)
			if err != nil {
				return res, fmt.Errorf("allocate %d bytes: %w", layout.Size, err)
			}
			// Touch the block so the run exercises real memory, not
			// just bookkeeping.
			blockView(addr, layout.Size)[0] = byte(i)
			live = append(live, block{addr: addr, layout: layout})
			res.Allocs++
			res.BytesAsked += int64(layout.Size)
		}
		if len(live) > res.PeakLive {
			res.PeakLive = len(live)
		}
	}

	for _, b := range live {
		a.Deallocate(b.addr, b.layout)
		res.Frees++
	}
	return res, nil
}
