package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusDraft is the status given to contracts saved without one.
const StatusDraft = "rascunho"

type Contract struct {
	ID                 int64           `json:"id"`
	UserID             int64           `json:"user_id"`
	Title              string          `json:"title"`
	ProviderName       string          `json:"provider_name"`
	ClientName         string          `json:"client_name"`
	ServiceDescription string          `json:"service_description"`
	Value              decimal.Decimal `json:"value"`
	PaymentTerms       string          `json:"payment_terms"`
	City               string          `json:"city"`
	Status             string          `json:"status"`
	DueDate            *time.Time      `json:"due_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
