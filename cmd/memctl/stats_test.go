package main

import (
	"testing"
)

func resetStatsFlags() {
	quiet = false
	verbose = false
	jsonOut = false
	statsDelegate = "sys"
	statsEvents = 500
	statsMaxSize = 1024
	statsSeed = 1
}

func TestStatsCommand(t *testing.T) {
	tests := []struct {
		name        string
		delegate    string
		wantJSON    bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:     "sys delegate",
			delegate: "sys",
			wantContain: []string{
				"Workload (sys delegate):",
				"Go Heap Movement:",
				"HeapAlloc:",
			},
		},
		{
			name:     "heap delegate",
			delegate: "heap",
			wantContain: []string{
				"Workload (heap delegate):",
				"Go Heap Movement:",
			},
		},
		{
			name:        "json output",
			delegate:    "sys",
			wantJSON:    true,
			wantContain: []string{"\"HeapAllocBefore\"", "\"Workload\""},
		},
		{
			name:     "unknown delegate",
			delegate: "slab",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			resetStatsFlags()
			statsDelegate = tt.delegate
			jsonOut = tt.wantJSON

			output, err := captureOutput(t, runStatsCmd)

			if (err != nil) != tt.wantErr {
				t.Errorf("runStatsCmd() error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
				return
			}

			if tt.wantJSON && !tt.wantErr {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}
