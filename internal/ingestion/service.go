// Package ingestion bulk-imports contracts from CSV or JSON files.
package ingestion

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saascontratos/contratos/internal/domain"
	"github.com/saascontratos/contratos/internal/logger"
	"github.com/saascontratos/contratos/internal/repository"
)

var (
	// ErrUnsupportedFormat is returned for formats other than csv and json.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrParse wraps every failure to read the uploaded file itself.
	ErrParse = errors.New("malformed import file")
)

// RowError reports why one row of an import was rejected.
type RowError struct {
	Line     int      `json:"line"`
	Messages []string `json:"messages"`
}

// ImportResult is returned from a successful import.
type ImportResult struct {
	BatchID         string     `json:"batch_id,omitempty"`
	AlreadyImported bool       `json:"already_imported"`
	RecordsImported int        `json:"records_imported"`
	RowsRejected    int        `json:"rows_rejected"`
	Errors          []RowError `json:"errors,omitempty"`
}

// Service handles bulk imports of contracts.
type Service struct {
	importRepo *repository.ImportRepo
	now        func() time.Time
}

// NewService creates a new ingestion service.
func NewService(importRepo *repository.ImportRepo) *Service {
	return &Service{
		importRepo: importRepo,
		now:        time.Now,
	}
}

// Import parses the file and stores every valid row as a contract owned by
// userID. Invalid rows are reported, not stored. Importing the same bytes a
// second time is a no-op.
func (s *Service) Import(ctx context.Context, userID int64, data []byte, format domain.ImportFormat) (*ImportResult, error) {
	// Idempotency check via file hash.
	hash := fmt.Sprintf("%x", sha256.Sum256(data))
	exists, err := s.importRepo.ExistsByHash(ctx, userID, hash)
	if err != nil {
		return nil, fmt.Errorf("check hash: %w", err)
	}
	if exists {
		return &ImportResult{AlreadyImported: true}, nil
	}

	var rows []Row
	switch format {
	case domain.ImportCSV:
		rows, err = ParseCSV(data)
	case domain.ImportJSON:
		rows, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %w", ErrParse, format, err)
	}

	result := &ImportResult{}
	var valid []domain.Contract
	for _, row := range rows {
		c, err := row.Input.Validate(userID)
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			result.Errors = append(result.Errors, RowError{Line: row.Line, Messages: verr.Messages})
			continue
		case err != nil:
			return nil, fmt.Errorf("line %d: %w", row.Line, err)
		}
		valid = append(valid, *c)
	}
	result.RowsRejected = len(result.Errors)

	if len(valid) == 0 {
		return result, nil
	}

	batch := &domain.ImportBatch{
		ID:         "IMP-" + uuid.NewString(),
		UserID:     userID,
		Format:     format,
		FileHash:   hash,
		ImportedAt: s.now().UTC(),
	}
	inserted, err := s.importRepo.InsertWithContracts(ctx, batch, valid)
	if errors.Is(err, repository.ErrAlreadyImported) {
		return &ImportResult{AlreadyImported: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert contracts: %w", err)
	}

	logger.WithContext(ctx).Info("[ingestion] imported contracts",
		"batch_id", batch.ID, "format", format,
		"imported", inserted, "rejected", result.RowsRejected)

	result.BatchID = batch.ID
	result.RecordsImported = inserted
	return result, nil
}
