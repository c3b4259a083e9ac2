// Package document lays out a service contract as an ordered list of
// sections and renders them to PDF.
package document

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saascontratos/contratos/internal/currency"
	"github.com/saascontratos/contratos/internal/domain"
	"github.com/saascontratos/contratos/internal/extenso"
)

// Title heads every contract document.
const Title = "CONTRATO DE PRESTAÇÃO DE SERVIÇOS"

// SectionCount is the number of sections Compose always returns.
const SectionCount = 1 + len(Clauses) + 3

const blankDate = "___/___/____"

type SectionKind string

const (
	KindSummary     SectionKind = "summary"
	KindClause      SectionKind = "clause"
	KindDeclaration SectionKind = "declaration"
	KindFooter      SectionKind = "footer"
	KindSignature   SectionKind = "signature"
)

// Section is one render instruction. Heading is printed bold when present;
// Body lines are separated by "\n".
type Section struct {
	Kind    SectionKind `json:"kind"`
	Heading string      `json:"heading,omitempty"`
	Body    string      `json:"body"`
}

// Fields carries the display strings of one contract.
type Fields struct {
	Title        string `json:"title"`
	Provider     string `json:"provider"`
	Client       string `json:"client"`
	Service      string `json:"service"`
	Value        string `json:"value"`
	ValueInWords string `json:"value_in_words"`
	PaymentTerms string `json:"payment_terms"`
	City         string `json:"city"`
	DueDate      string `json:"due_date"` // DD/MM/YYYY, empty when absent
	Status       string `json:"status"`
}

// Compose returns the contract sections in print order: summary, the ten
// clauses, declaration, city/date footer and signatures.
func Compose(f Fields) []Section {
	sections := make([]Section, 0, SectionCount)

	due := f.DueDate
	if due == "" {
		due = currency.DatePlaceholder
	}
	sections = append(sections, Section{
		Kind: KindSummary,
		Body: strings.Join([]string{
			"Título: " + f.Title,
			"Contratante: " + f.Client,
			"Contratado: " + f.Provider,
			"Cidade: " + f.City,
			"Valor: " + f.Value + " (" + f.ValueInWords + ")",
			"Pagamento: " + f.PaymentTerms,
			"Vencimento: " + due,
			"Serviço: " + f.Service,
		}, "\n"),
	})

	for _, c := range Clauses {
		sections = append(sections, Section{Kind: KindClause, Heading: c.Heading, Body: c.Body})
	}

	sections = append(sections, Section{
		Kind:    KindDeclaration,
		Heading: declarationHeading,
		Body:    declarationBody,
	})

	date := f.DueDate
	if date == "" {
		date = blankDate
	}
	sections = append(sections, Section{
		Kind: KindFooter,
		Body: "Cidade: " + f.City + "\nData: " + date,
	})

	sections = append(sections, Section{
		Kind: KindSignature,
		Body: "Contratante: " + f.Client + "\nContratado: " + f.Provider,
	})

	return sections
}

// FieldsFor formats a stored contract for Compose. A missing value is treated
// as zero.
func FieldsFor(c *domain.Contract) (Fields, error) {
	value := currency.Quantize(c.Value)
	if value.IsNegative() {
		value = decimal.Zero
	}
	words, err := extenso.Spell(value)
	if err != nil {
		return Fields{}, err
	}

	var due string
	if c.DueDate != nil {
		due = currency.FormatDate(c.DueDate)
	}

	return Fields{
		Title:        c.Title,
		Provider:     c.ProviderName,
		Client:       c.ClientName,
		Service:      c.ServiceDescription,
		Value:        currency.FormatBRL(value),
		ValueInWords: words,
		PaymentTerms: c.PaymentTerms,
		City:         c.City,
		DueDate:      due,
		Status:       c.Status,
	}, nil
}
