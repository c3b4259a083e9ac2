package ingestion

import (
	"encoding/json"
	"fmt"

	"github.com/saascontratos/contratos/internal/contracts"
)

// contractsFile represents the top-level JSON import structure.
type contractsFile struct {
	Contracts []contracts.Input `json:"contracts"`
}

// ParseJSON parses {"contracts": [...]}. Row numbers are 1-based positions in
// the array.
func ParseJSON(data []byte) ([]Row, error) {
	var file contractsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	rows := make([]Row, 0, len(file.Contracts))
	for i, in := range file.Contracts {
		rows = append(rows, Row{Line: i + 1, Input: in})
	}
	return rows, nil
}
