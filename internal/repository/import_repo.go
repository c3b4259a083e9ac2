package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saascontratos/contratos/internal/domain"
)

type ImportRepo struct {
	db *sql.DB
}

func NewImportRepo(db *sql.DB) *ImportRepo {
	return &ImportRepo{db: db}
}

// ExistsByHash checks whether the user already imported a file with the given
// hash (idempotency check).
func (r *ImportRepo) ExistsByHash(ctx context.Context, userID int64, hash string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM import_batches WHERE user_id = ? AND file_hash = ?",
		userID, hash,
	).Scan(&count)
	return count > 0, err
}

// InsertWithContracts records the batch and stores its contracts in a single
// transaction, so a file is either fully imported and recorded or not at
// all. ErrAlreadyImported is returned when the batch hash is taken.
func (r *ImportRepo) InsertWithContracts(ctx context.Context, b *domain.ImportBatch, contracts []domain.Contract) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// The batch row goes first so a concurrent import of the same file
	// fails on the unique hash before writing any contract.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_batches
		(id, user_id, format, file_hash, record_count, imported_at)
		VALUES (?,?,?,?,?,?)`,
		b.ID, b.UserID, string(b.Format), b.FileHash, len(contracts),
		b.ImportedAt.Format(timeLayout),
	)
	if isUniqueViolation(err) {
		return 0, ErrAlreadyImported
	}
	if err != nil {
		return 0, fmt.Errorf("insert import batch: %w", err)
	}

	inserted, err := insertContracts(ctx, tx, contracts)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	b.RecordCount = inserted
	return inserted, nil
}
