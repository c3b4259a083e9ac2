package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want ImportFormat
	}{
		{"contratos.csv", ImportCSV},
		{"CONTRATOS.CSV", ImportCSV},
		{"testdata/contracts.json", ImportJSON},
		{"contratos.xlsx", ""},
		{"sem-extensao", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromFilename(tt.name))
		})
	}
}
