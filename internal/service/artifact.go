package service

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rkarim/mobiledokan-scraper-go/internal/domain"
	"github.com/rkarim/mobiledokan-scraper-go/internal/util"
	"github.com/rkarim/mobiledokan-scraper-go/pkg/errors"
	"go.uber.org/zap"
)

const fallbackBaseName = "unknown_product"

// ArtifactWriter persists one canonical JSON file per product, named from
// the sanitized product title. Filenames are deterministic, so reprocessing
// an item overwrites its previous artifact instead of duplicating it.
type ArtifactWriter struct {
	dir    string
	logger *zap.Logger
}

func NewArtifactWriter(dir string, logger *zap.Logger) *ArtifactWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArtifactWriter{dir: dir, logger: logger}
}

// BaseName derives the artifact file stem for a record.
func (w *ArtifactWriter) BaseName(record *domain.CanonicalRecord) string {
	name := util.SanitizeFilename(record.Title)
	if name == "" {
		return fallbackBaseName
	}
	return name
}

// Write serializes the record with stable key order and two-space indent and
// returns the path it was written to.
func (w *ArtifactWriter) Write(record *domain.CanonicalRecord, baseName string) (string, error) {
	path := filepath.Join(w.dir, baseName+".json")

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", errors.NewArtifactError("failed to serialize record", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.NewArtifactError("failed to write artifact", path, err)
	}

	w.logger.Debug("Artifact written",
		zap.String("path", path),
		zap.Int("bytes", len(data)))
	return path, nil
}
