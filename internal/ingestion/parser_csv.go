package ingestion

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/saascontratos/contratos/internal/contracts"
)

// Row is one parsed record together with its position in the source file.
type Row struct {
	Line  int
	Input contracts.Input
}

var requiredColumns = []string{
	"title", "provider_name", "client_name", "service_description",
	"value", "payment_terms", "city",
}

// ParseCSV parses a contract spreadsheet export. Columns are matched by
// header name, so their order is free.
//
// Expected header (status and due_date are optional):
//
//	title,provider_name,client_name,service_description,value,payment_terms,city,status,due_date
func ParseCSV(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var rows []Row

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}
		// Blank lines are skipped by the reader, so ask it for the real line.
		lineNum, _ := reader.FieldPos(0)

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rows = append(rows, Row{
			Line: lineNum,
			Input: contracts.Input{
				Title:              get("title"),
				ProviderName:       get("provider_name"),
				ClientName:         get("client_name"),
				ServiceDescription: get("service_description"),
				Value:              get("value"),
				PaymentTerms:       get("payment_terms"),
				City:               get("city"),
				Status:             get("status"),
				DueDate:            get("due_date"),
			},
		})
	}

	return rows, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
