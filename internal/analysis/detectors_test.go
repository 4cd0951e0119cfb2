package analysis

import (
	"strings"
	"testing"
)

func TestHeadingDetector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"numbered heading", "1.2 Fuel System\nbody text follows here", 1.0},
		{"all caps heading", "MAINTENANCE SCHEDULE\nroutine items below", 1.0},
		{"colon heading only", "Overview:\nsome prose", 0.5},
		{"plain prose", "just a sentence that keeps going without structure", 0},
		{"long line not heading", strings.Repeat("A", 100), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (HeadingDetector{}).Detect(tt.text); got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTableDetector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"three pipe rows", "| a | b |\n| c | d |\n| e | f |", 1.0},
		{"box art", "+-----+-----+\n| a | b |", 1.0},
		{"one pipe row", "| a | b |\nprose\nprose", 1.0 / 3.0},
		{"no table", "nothing here\nat all", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (TableDetector{}).Detect(tt.text); got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListDetector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"two bullets", "- one\n- two", 1.0},
		{"numbered items", "1. one\n2. two", 1.0},
		{"single item", "- lone", 0.5},
		{"no list", "prose only", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (ListDetector{}).Detect(tt.text); got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTechnicalManualDetector(t *testing.T) {
	manual := strings.Join([]string{
		"3.1 Hydraulic System",
		"3.1.1 Pressure Check",
		"WARNING: relieve pressure before disconnecting lines.",
		"Step 1: close the supply valve.",
		"Step 2: open the bleed port.",
	}, "\n")

	score := (TechnicalManualDetector{}).Detect(manual)
	if score < DefaultThreshold {
		t.Errorf("manual text scored %v, want >= %v", score, DefaultThreshold)
	}

	prose := "A short story about a walk in the park on a sunny day."
	if got := (TechnicalManualDetector{}).Detect(prose); got != 0 {
		t.Errorf("prose scored %v, want 0", got)
	}
}

func TestIsAllCapsLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"MAINTENANCE", true},
		{"SECTION 4", true},
		{"Mixed Case", false},
		{"AB", false},
		{"1234", false},
	}
	for _, tt := range tests {
		if got := isAllCapsLine(tt.line); got != tt.want {
			t.Errorf("isAllCapsLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
