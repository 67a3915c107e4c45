package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	BlockSize   string
	Impl        string // "gomem" or "cmalloc"
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult represents a comparison between the Go and C allocators.
type ComparisonResult struct {
	Operation     string
	BlockSize     string
	GomemNs       float64
	CmallocNs     float64
	Speedup       float64
	GomemMem      int64
	CmallocMem    int64
	GomemAllocs   int64
	CmallocAllocs int64
	GomemOnly     bool
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	// Read benchmark output
	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	// Parse benchmarks
	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	// Generate comparisons
	comparisons := generateComparisons(results)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	// Generate markdown report
	report := generateMarkdownReport(comparisons)

	// Write output
	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	// Close input file if opened
	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	// Regex to parse benchmark output lines
	// BenchmarkAllocate/gomem/small-8    10000    123.4 ns/op    0 B/op    0 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
	)

	for scanner.Scan() {
		line := scanner.Text()

		// Try to parse as JSON (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		// Parse benchmark line
		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp int64
		var allocsPerOp int64

		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		// Parse name to extract operation, impl, and block size
		// Comparison format: Benchmark<Operation>/<impl>/<size>-<procs>
		// Go-only format:    Benchmark<Operation>_Gomem/<size>-<procs>
		parts := strings.Split(name, "/")
		if len(parts) < 2 {
			continue
		}

		operation := strings.TrimPrefix(parts[0], "Benchmark")

		var impl string
		if trimmed, ok := strings.CutSuffix(operation, "_Gomem"); ok {
			operation = trimmed
			impl = "gomem"
		} else {
			if len(parts) < 3 {
				continue
			}
			impl = parts[1]
		}

		// Extract block size from last part (remove -N suffix)
		lastPart := parts[len(parts)-1]
		blockSize := lastPart
		if dashIdx := strings.LastIndex(lastPart, "-"); dashIdx > 0 {
			blockSize = lastPart[:dashIdx]
		}

		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			BlockSize:   blockSize,
			Impl:        impl,
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

// sizeRank orders the block size classes smallest first in reports.
var sizeRank = map[string]int{
	"tiny":   0,
	"small":  1,
	"medium": 2,
	"large":  3,
}

func blockSizeLess(a, b string) bool {
	ra, aok := sizeRank[a]
	rb, bok := sizeRank[b]
	if aok && bok {
		return ra < rb
	}
	if aok != bok {
		return aok
	}
	return a < b
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	// Group results by operation and block size
	type key struct {
		operation string
		blockSize string
	}

	grouped := make(map[key]map[string]BenchmarkResult)

	for _, result := range results {
		k := key{result.Operation, result.BlockSize}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][result.Impl] = result
	}

	// Generate comparisons
	var comparisons []ComparisonResult

	for k, impls := range grouped {
		gomem, hasGomem := impls["gomem"]
		cmalloc, hasCmalloc := impls["cmalloc"]

		if hasGomem && hasCmalloc {
			// Both allocators ran - compare them
			speedup := cmalloc.NsPerOp / gomem.NsPerOp

			comparisons = append(comparisons, ComparisonResult{
				Operation:     k.operation,
				BlockSize:     k.blockSize,
				GomemNs:       gomem.NsPerOp,
				CmallocNs:     cmalloc.NsPerOp,
				Speedup:       speedup,
				GomemMem:      gomem.BytesPerOp,
				CmallocMem:    cmalloc.BytesPerOp,
				GomemAllocs:   gomem.AllocsPerOp,
				CmallocAllocs: cmalloc.AllocsPerOp,
				GomemOnly:     false,
			})
		} else if hasGomem {
			// Only the Go side ran (a Go-only benchmark, or cgo disabled)
			comparisons = append(comparisons, ComparisonResult{
				Operation:   k.operation,
				BlockSize:   k.blockSize,
				GomemNs:     gomem.NsPerOp,
				GomemMem:    gomem.BytesPerOp,
				GomemAllocs: gomem.AllocsPerOp,
				GomemOnly:   true,
			})
		}
	}

	// Sort by operation then block size
	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return blockSizeLess(comparisons[i].BlockSize, comparisons[j].BlockSize)
	})

	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Allocator Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	// Summary statistics
	gomemFaster := 0
	cmallocFaster := 0
	gomemOnly := 0
	totalSpeedup := 0.0

	for _, comp := range comparisons {
		if comp.GomemOnly {
			gomemOnly++
		} else {
			if comp.Speedup > 1.0 {
				gomemFaster++
			} else if comp.Speedup < 1.0 {
				cmallocFaster++
			}
			totalSpeedup += comp.Speedup
		}
	}

	comparableCount := len(comparisons) - gomemOnly

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(comparisons)))
	sb.WriteString(fmt.Sprintf("- **Comparable** (both allocators): %d\n", comparableCount))
	if comparableCount > 0 {
		sb.WriteString(
			fmt.Sprintf(
				"  - gomem faster: %d (%.1f%%)\n",
				gomemFaster,
				float64(gomemFaster)/float64(comparableCount)*100,
			),
		)
		sb.WriteString(
			fmt.Sprintf(
				"  - cmalloc faster: %d (%.1f%%)\n",
				cmallocFaster,
				float64(cmallocFaster)/float64(comparableCount)*100,
			),
		)
		sb.WriteString(
			fmt.Sprintf("  - Average speedup: **%.2fx**\n", totalSpeedup/float64(comparableCount)),
		)
	}
	sb.WriteString(fmt.Sprintf("- **Go-only benchmarks**: %d\n", gomemOnly))
	sb.WriteString("\n")

	// Detailed results table
	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString(
		"| Operation | Block | gomem (ns/op) | cmalloc (ns/op) | Speedup | Memory (B/op) | Allocs |\n",
	)
	sb.WriteString(
		"|-----------|-------|---------------|-----------------|---------|---------------|--------|\n",
	)

	for _, comp := range comparisons {
		if comp.GomemOnly {
			// Go-only benchmark
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | *N/A* | *gomem only* | %s | %s |\n",
				comp.Operation,
				comp.BlockSize,
				formatNumber(comp.GomemNs),
				formatBytes(comp.GomemMem),
				formatNumber(float64(comp.GomemAllocs)),
			))
		} else {
			// Comparison benchmark
			indicator := "✓"
			speedupStyle := "**"
			if comp.Speedup < 1.0 {
				indicator = "✗"
				speedupStyle = ""
			}

			memIndicator := ""
			if comp.GomemMem < comp.CmallocMem {
				memIndicator = " ✓"
			} else if comp.GomemMem > comp.CmallocMem {
				memIndicator = " ✗"
			}

			allocIndicator := ""
			if comp.GomemAllocs < comp.CmallocAllocs {
				allocIndicator = " ✓"
			} else if comp.GomemAllocs > comp.CmallocAllocs {
				allocIndicator = " ✗"
			}

			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s%.2fx%s %s | %s vs %s%s | %s vs %s%s |\n",
				comp.Operation,
				comp.BlockSize,
				formatNumber(comp.GomemNs),
				formatNumber(comp.CmallocNs),
				speedupStyle,
				comp.Speedup,
				speedupStyle,
				indicator,
				formatBytes(comp.GomemMem),
				formatBytes(comp.CmallocMem),
				memIndicator,
				formatNumber(float64(comp.GomemAllocs)),
				formatNumber(float64(comp.CmallocAllocs)),
				allocIndicator,
			))
		}
	}

	sb.WriteString("\n")

	// Category summaries
	sb.WriteString("## Performance by Category\n\n")

	categories := categorizeOperations(comparisons)
	for _, category := range categoryOrder {
		comps := categories[category]
		if len(comps) == 0 {
			continue
		}

		avgSpeed := 0.0
		count := 0
		for _, comp := range comps {
			if !comp.GomemOnly {
				avgSpeed += comp.Speedup
				count++
			}
		}

		if count > 0 {
			avgSpeed /= float64(count)
			status := "✓"
			if avgSpeed < 1.0 {
				status = "✗"
			}
			sb.WriteString(fmt.Sprintf("- %s **%s**: %.2fx average speedup %s\n",
				status, category, avgSpeed, status))
		} else {
			sb.WriteString(fmt.Sprintf("- **%s**: Go-only benchmarks\n", category))
		}
	}

	sb.WriteString("\n")

	// Notes
	sb.WriteString("## Notes\n\n")
	sb.WriteString("- **Speedup > 1.0**: gomem is faster ✓\n")
	sb.WriteString("- **Speedup < 1.0**: cmalloc is faster ✗\n")
	sb.WriteString("- **B/op and allocs/op**: Go heap traffic only; the blocks themselves live outside the Go heap\n")
	sb.WriteString("- **gomem only**: tracing-overhead benchmarks with no C counterpart\n")

	return sb.String()
}

// categoryOrder fixes the report ordering of benchmark categories.
var categoryOrder = []string{
	"Allocation",
	"Reallocation",
	"Deallocation",
	"Tracing Overhead",
	"Other",
}

func categorizeOperations(comparisons []ComparisonResult) map[string][]ComparisonResult {
	categories := make(map[string][]ComparisonResult)

	for _, comp := range comparisons {
		op := strings.ToLower(comp.Operation)

		var category string
		switch {
		case comp.GomemOnly || strings.Contains(op, "trace"):
			category = "Tracing Overhead"
		case strings.Contains(op, "realloc"):
			category = "Reallocation"
		case strings.Contains(op, "dealloc") || strings.Contains(op, "free"):
			category = "Deallocation"
		case strings.Contains(op, "alloc"):
			category = "Allocation"
		default:
			category = "Other"
		}

		categories[category] = append(categories[category], comp)
	}

	return categories
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
