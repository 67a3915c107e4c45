package main

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Event verbs as they appear at the start of a trace line.
const (
	verbAlloc       = "alloc"
	verbAllocZeroed = "alloc_zeroed"
	verbRealloc     = "realloc"
	verbDealloc     = "dealloc"
	verbWarn        = "warning"
)

// Frame is one captured stack frame attached to an event.
type Frame struct {
	Func string
	File string
	Line int
}

// Event is one parsed entry of a trace stream.
type Event struct {
	Seq  int    // 1-based position in the stream
	Verb string // alloc, alloc_zeroed, realloc, dealloc, or warning
	Note string // warning text ("large allocation" / "large reallocation")

	Addr  uint64
	Size  int
	Align int

	// Old side of a reallocation; zero otherwise.
	OldAddr  uint64
	OldSize  int
	OldAlign int

	Stack []Frame
}

// blockRe matches a block descriptor at the start of a string.
var blockRe = regexp.MustCompile(`^\[address=0x([0-9a-fA-F]+), size=(\d+), align=(\d+)\]`)

// verbs ordered longest-prefix-first so "alloc_zeroed" wins over "alloc".
var verbs = []string{verbAllocZeroed, verbRealloc, verbDealloc, verbAlloc}

// ParseStream reads a trace event stream, attaching captured stack frames to
// the event that opened them. Lines that neither open an event nor belong to
// a stack (phase markers, stray program output) are skipped.
func ParseStream(r io.Reader) []Event {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []Event
	var cur *Event
	pendingFunc := ""

	flush := func() {
		if cur != nil {
			events = append(events, *cur)
			cur = nil
		}
		pendingFunc = ""
	}

	for sc.Scan() {
		line := sc.Text()
		if ev, withStack, ok := parseHead(line); ok {
			flush()
			ev.Seq = len(events) + 1
			cur = &ev
			if !withStack {
				flush()
			}
			continue
		}
		if cur == nil {
			continue
		}
		// Stack frames come as a function-name line followed by an
		// indented file:line location.
		if strings.HasPrefix(line, "\t") {
			if pendingFunc != "" {
				cur.Stack = append(cur.Stack, parseFrame(pendingFunc, line))
				pendingFunc = ""
			}
			continue
		}
		pendingFunc = line
	}
	flush()
	return events
}

// parseHead parses one event-opening line. withStack reports whether the
// following lines carry the event's captured stack.
func parseHead(line string) (ev Event, withStack, ok bool) {
	switch line {
	case "large allocation at:":
		return Event{Verb: verbWarn, Note: "large allocation"}, true, true
	case "large reallocation at:":
		return Event{Verb: verbWarn, Note: "large reallocation"}, true, true
	}

	for _, v := range verbs {
		if !strings.HasPrefix(line, v+" [") {
			continue
		}
		addr, size, align, rest, found := parseBlock(line[len(v)+1:])
		if !found {
			return Event{}, false, false
		}
		ev = Event{Verb: v, Addr: addr, Size: size, Align: align}
		if v == verbRealloc {
			afterTo, hasTo := strings.CutPrefix(rest, " to ")
			if !hasTo {
				return Event{}, false, false
			}
			newAddr, newSize, newAlign, tail, found2 := parseBlock(afterTo)
			if !found2 {
				return Event{}, false, false
			}
			ev.OldAddr, ev.OldSize, ev.OldAlign = ev.Addr, ev.Size, ev.Align
			ev.Addr, ev.Size, ev.Align = newAddr, newSize, newAlign
			rest = tail
		}
		if rest != "" && rest != " at:" {
			return Event{}, false, false
		}
		return ev, rest == " at:", true
	}
	return Event{}, false, false
}

// parseBlock parses a leading block descriptor and returns the remainder of
// the string after it.
func parseBlock(s string) (addr uint64, size, align int, rest string, ok bool) {
	m := blockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, s, false
	}
	addr, _ = strconv.ParseUint(m[1], 16, 64)
	size, _ = strconv.Atoi(m[2])
	align, _ = strconv.Atoi(m[3])
	return addr, size, align, s[len(m[0]):], true
}

// parseFrame builds a Frame from a function-name line and its indented
// file:line location.
func parseFrame(fn, loc string) Frame {
	loc = strings.TrimPrefix(loc, "\t")
	f := Frame{Func: fn, File: loc}
	if i := strings.LastIndex(loc, ":"); i >= 0 {
		if n, err := strconv.Atoi(loc[i+1:]); err == nil {
			f.File = loc[:i]
			f.Line = n
		}
	}
	return f
}
