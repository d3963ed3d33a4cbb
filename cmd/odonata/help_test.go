package main

import (
	"strings"
	"testing"
)

func TestPrintHelpOverview(t *testing.T) {
	var sb strings.Builder
	if !printHelp(&sb, "") {
		t.Fatal("overview not found")
	}
	for _, cmd := range []string{".board", ".fen", ".go", ".eval", ".moves", ".raw", ".quit"} {
		if !strings.Contains(sb.String(), cmd) {
			t.Errorf("overview missing %s", cmd)
		}
	}
}

func TestPrintHelpTopics(t *testing.T) {
	tests := []struct {
		topic    string
		contains string
	}{
		{"go", "movetime <ms>"},
		{".go", "movetime <ms>"},
		{"GO", "movetime <ms>"},
		{"g", "movetime <ms>"},
		{"fen", "replace the position"},
		{"exit", ".quit"},
	}
	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			var sb strings.Builder
			if !printHelp(&sb, tc.topic) {
				t.Fatalf("no help for %q", tc.topic)
			}
			if !strings.Contains(sb.String(), tc.contains) {
				t.Errorf("help %q = %q, want it to contain %q", tc.topic, sb.String(), tc.contains)
			}
		})
	}
}

func TestPrintHelpUnknown(t *testing.T) {
	var sb strings.Builder
	if printHelp(&sb, "castle") {
		t.Error("unknown topic reported as found")
	}
	if sb.Len() != 0 {
		t.Errorf("wrote %q for unknown topic", sb.String())
	}
}

// Every command in the overview has a detailed entry.
func TestHelpCoversOverview(t *testing.T) {
	for _, line := range strings.Split(helpOverview, "\n") {
		field := strings.Fields(line)
		if len(field) == 0 || !strings.HasPrefix(field[0], ".") {
			continue
		}
		key := strings.TrimPrefix(field[0], ".")
		if _, ok := commandHelp[key]; !ok {
			t.Errorf("no detailed help for %s", field[0])
		}
	}
}
