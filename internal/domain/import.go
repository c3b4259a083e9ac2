package domain

import (
	"path/filepath"
	"strings"
	"time"
)

type ImportFormat string

const (
	ImportCSV  ImportFormat = "csv"
	ImportJSON ImportFormat = "json"
)

// ImportBatch records one bulk import file so the same file is never
// imported twice for the same user.
type ImportBatch struct {
	ID          string       `json:"id"`
	UserID      int64        `json:"user_id"`
	Format      ImportFormat `json:"format"`
	FileHash    string       `json:"file_hash"`
	RecordCount int          `json:"record_count"`
	ImportedAt  time.Time    `json:"imported_at"`
}

// FormatFromFilename infers the import format from a file extension. The
// result is empty when the extension is not recognised.
func FormatFromFilename(name string) ImportFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ImportCSV
	case ".json":
		return ImportJSON
	default:
		return ""
	}
}
