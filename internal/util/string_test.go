package util

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in       string
		maxRunes int
		want     string
	}{
		{"Galaxy A17 5G", 80, "Galaxy A17 5G"},
		{"Galaxy A17 5G", 13, "Galaxy A17 5G"},
		{"Galaxy A17 5G", 6, "Galaxy..."},
		{"স্যামসাং গ্যালাক্সি", 8, "স্যামসাং..."},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.maxRunes); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.maxRunes, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Galaxy A17 5G", "Galaxy A17 5G"},
		{`a\b/c*d?e:f"g<h>i|j`, "abcdefghij"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollapseLines(t *testing.T) {
	if got := CollapseLines("  GSM\nHSPA\nLTE  "); got != "GSM HSPA LTE" {
		t.Errorf("CollapseLines = %q", got)
	}
}

func TestTrimTrailingColon(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Announced:", "Announced"},
		{"Announced", "Announced"},
		{"Wi-Fi::", "Wi-Fi:"},
		{"  Status: ", "Status"},
	}
	for _, tt := range tests {
		if got := TrimTrailingColon(tt.in); got != tt.want {
			t.Errorf("TrimTrailingColon(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
