package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rkarim/mobiledokan-scraper-go/internal/domain"
	"go.uber.org/zap"
)

func TestArtifactBaseName(t *testing.T) {
	writer := NewArtifactWriter(t.TempDir(), zap.NewNop())

	tests := []struct {
		title string
		want  string
	}{
		{"Galaxy A17 5G", "Galaxy A17 5G"},
		{`Phone: "Pro" <Max>/Ultra?*|`, "Phone Pro MaxUltra"},
		{"N/A", "NA"},
		{"", "unknown_product"},
		{`\/*?:"<>|`, "unknown_product"},
	}

	for _, tt := range tests {
		record := &domain.CanonicalRecord{Title: tt.title}
		if got := writer.BaseName(record); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestArtifactWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writer := NewArtifactWriter(dir, zap.NewNop())

	record := Normalize(&domain.RawRecord{
		Title:       "Galaxy A17 5G",
		Brand:       "Samsung",
		PriceAmount: "BDT 24,999",
		Groups: map[string]map[string]string{
			"Display": {"Size": "6.5 inches"},
		},
	})

	path, err := writer.Write(record, writer.BaseName(record))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "Galaxy A17 5G.json" {
		t.Errorf("artifact path = %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var decoded domain.CanonicalRecord
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if decoded.Price.Amount != 24999 {
		t.Errorf("price amount = %d, want 24999", decoded.Price.Amount)
	}
	if decoded.Display["Size:"] != "6.5 inches" {
		t.Errorf("display group = %v", decoded.Display)
	}

	content := string(raw)
	if !strings.Contains(content, "  \"title\"") {
		t.Errorf("artifact not indented with two spaces:\n%s", content)
	}
	// stable top-level key order: scalars before price before groups
	if strings.Index(content, `"title"`) > strings.Index(content, `"price"`) ||
		strings.Index(content, `"price"`) > strings.Index(content, `"Camera"`) {
		t.Errorf("unexpected key order:\n%s", content)
	}
}

func TestArtifactOverwriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writer := NewArtifactWriter(dir, zap.NewNop())
	record := &domain.CanonicalRecord{Title: "Galaxy A17 5G"}

	if _, err := writer.Write(record, writer.BaseName(record)); err != nil {
		t.Fatalf("first write: %v", err)
	}
	first, _ := os.ReadFile(filepath.Join(dir, "Galaxy A17 5G.json"))

	if _, err := writer.Write(record, writer.BaseName(record)); err != nil {
		t.Fatalf("second write: %v", err)
	}
	second, _ := os.ReadFile(filepath.Join(dir, "Galaxy A17 5G.json"))

	if string(first) != string(second) {
		t.Errorf("reprocessing produced a different artifact")
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("artifact count = %d, want 1 (deterministic filename overwritten)", len(files))
	}
}
