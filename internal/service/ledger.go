package service

import (
	"encoding/csv"
	"os"

	"github.com/rkarim/mobiledokan-scraper-go/internal/domain"
	"github.com/rkarim/mobiledokan-scraper-go/pkg/errors"
	"go.uber.org/zap"
)

var ledgerHeader = []string{"mobile_name", "processed_url"}

// Ledger is the durable set of already-processed product links, backed by an
// append-only CSV file. Entries are never mutated or deleted; the file is
// read fully once per run and appended once per successfully processed item.
type Ledger struct {
	path   string
	logger *zap.Logger
}

func NewLedger(path string, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{path: path, logger: logger}
}

// Load reads every processed URL recorded by previous runs. A missing file
// is the first-run state and yields an empty set.
func (l *Ledger) Load() (map[string]struct{}, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, errors.NewLedgerError("failed to open ledger", "load", l.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewLedgerError("failed to read ledger", "load", l.path, err)
	}

	processed := make(map[string]struct{})
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) > 1 && row[1] != "" {
			processed[row[1]] = struct{}{}
		}
	}

	l.logger.Debug("Ledger loaded",
		zap.String("path", l.path),
		zap.Int("entries", len(processed)))
	return processed, nil
}

// Append durably records one processed item. The header is written the
// first time the file is created. The write is flushed and synced before
// return so a crash after Append never forgets the entry.
func (l *Ledger) Append(entry domain.LedgerEntry) error {
	_, statErr := os.Stat(l.path)
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.NewLedgerError("failed to open ledger", "append", l.path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(ledgerHeader); err != nil {
			return errors.NewLedgerError("failed to write ledger header", "append", l.path, err)
		}
	}
	if err := writer.Write([]string{entry.DisplayName, entry.URL}); err != nil {
		return errors.NewLedgerError("failed to write ledger row", "append", l.path, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewLedgerError("failed to flush ledger", "append", l.path, err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewLedgerError("failed to sync ledger", "append", l.path, err)
	}
	return nil
}
