package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	follow := false
	demo := false

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "--follow", "-f":
			follow = true
		case "--demo":
			demo = true
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}

	if len(filteredArgs) > 0 {
		switch filteredArgs[0] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("memwatch %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		}
	}

	tracePath := ""
	if !demo {
		if len(filteredArgs) < 1 {
			printUsage()
			os.Exit(1)
		}
		tracePath = filteredArgs[0]
		if _, err := os.Stat(tracePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: trace file not found: %s\n", tracePath)
			os.Exit(1)
		}
	}

	m := NewModel(tracePath, follow)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: memwatch [options] <trace-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'memwatch --help' for more information.\n")
}

func printHelp() {
	fmt.Println("memwatch - Interactive TUI for Allocation Trace Streams")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  memwatch [options] <trace-file>")
	fmt.Println("  memwatch --demo")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI for browsing allocation event")
	fmt.Println("  streams captured from a tracing allocator, e.g. with")
	fmt.Println("  'memctl demo --out trace.log'.")
	fmt.Println()
	fmt.Println("  Features:")
	fmt.Println("    - Color-coded alloc/alloc_zeroed/realloc/dealloc events")
	fmt.Println("    - Captured backtraces, toggleable per session (s)")
	fmt.Println("    - Event filtering by operation kind (f)")
	fmt.Println("    - Follow mode that tails a growing trace file (F)")
	fmt.Println("    - Oversized-request warnings highlighted")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Scroll up/down")
	fmt.Println("    pgup/pgdn   Page up/down")
	fmt.Println("    g/G         Jump to top/bottom")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -f, --follow   Start in follow mode (tail the file)")
	fmt.Println("      --demo     View a built-in demo workload instead of a file")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  memctl demo --events 500 --out trace.log && memwatch trace.log")
	fmt.Println("  memwatch --follow live.log")
	fmt.Println()
	fmt.Println("For capturing trace files, use the 'memctl' command.")
}
