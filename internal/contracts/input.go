package contracts

import (
	"strings"

	"github.com/saascontratos/contratos/internal/currency"
	"github.com/saascontratos/contratos/internal/domain"
	"github.com/saascontratos/contratos/internal/extenso"
)

// Input is a contract form as submitted by the user: every field is raw text.
type Input struct {
	Title              string `json:"title"`
	ProviderName       string `json:"provider_name"`
	ClientName         string `json:"client_name"`
	ServiceDescription string `json:"service_description"`
	Value              string `json:"value"`
	PaymentTerms       string `json:"payment_terms"`
	City               string `json:"city"`
	Status             string `json:"status"`
	DueDate            string `json:"due_date"` // YYYY-MM-DD
}

// InputFrom converts a stored contract back into form values.
func InputFrom(c *domain.Contract) Input {
	return Input{
		Title:              c.Title,
		ProviderName:       c.ProviderName,
		ClientName:         c.ClientName,
		ServiceDescription: c.ServiceDescription,
		Value:              c.Value.StringFixed(2),
		PaymentTerms:       c.PaymentTerms,
		City:               c.City,
		Status:             c.Status,
		DueDate:            currency.FormatInputDate(c.DueDate),
	}
}

// Validate trims the input and turns it into a contract owned by userID.
// All problems are reported together in a *domain.ValidationError.
func (in Input) Validate(userID int64) (*domain.Contract, error) {
	c := &domain.Contract{
		UserID:             userID,
		Title:              strings.TrimSpace(in.Title),
		ProviderName:       strings.TrimSpace(in.ProviderName),
		ClientName:         strings.TrimSpace(in.ClientName),
		ServiceDescription: strings.TrimSpace(in.ServiceDescription),
		PaymentTerms:       strings.TrimSpace(in.PaymentTerms),
		City:               strings.TrimSpace(in.City),
		Status:             strings.TrimSpace(in.Status),
	}
	if c.Status == "" {
		c.Status = domain.StatusDraft
	}

	var msgs []string
	required := func(v, msg string) {
		if v == "" {
			msgs = append(msgs, msg)
		}
	}

	required(c.Title, "Título é obrigatório.")
	required(c.ProviderName, "Contratado é obrigatório.")
	required(c.ClientName, "Contratante é obrigatório.")
	required(c.ServiceDescription, "Serviço é obrigatório.")

	value, ok := currency.ParseAmount(in.Value)
	switch {
	case !ok:
		msgs = append(msgs, "Valor é obrigatório.")
	case value.IsNegative():
		msgs = append(msgs, "Valor não pode ser negativo.")
	case currency.Quantize(value).GreaterThanOrEqual(extenso.Limit):
		msgs = append(msgs, "Valor deve ser menor que um trilhão.")
	default:
		c.Value = currency.Quantize(value)
	}

	required(c.PaymentTerms, "Forma de pagamento é obrigatória.")
	required(c.City, "Cidade é obrigatória.")

	due, err := currency.ParseDate(in.DueDate)
	if err != nil {
		msgs = append(msgs, "Data inválida. Use o formato AAAA-MM-DD.")
	}
	c.DueDate = due

	if len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}
	return c, nil
}
