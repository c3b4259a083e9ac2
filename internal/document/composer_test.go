package document

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saascontratos/contratos/internal/domain"
)

func fullFields() Fields {
	return Fields{
		Title:        "Site institucional",
		Provider:     "Ana Souza ME",
		Client:       "Padaria Central Ltda",
		Service:      "Desenvolvimento de site",
		Value:        "R$ 1.234,56",
		ValueInWords: "mil e duzentos e trinta e quatro reais e cinquenta e seis centavos",
		PaymentTerms: "Pix",
		City:         "Curitiba",
		DueDate:      "30/06/2025",
		Status:       "rascunho",
	}
}

func TestComposeOrder(t *testing.T) {
	sections := Compose(fullFields())
	require.Len(t, sections, SectionCount)
	assert.Equal(t, 14, SectionCount)

	assert.Equal(t, KindSummary, sections[0].Kind)
	for i, c := range Clauses {
		s := sections[1+i]
		assert.Equal(t, KindClause, s.Kind)
		assert.Equal(t, c.Heading, s.Heading)
		assert.Equal(t, c.Body, s.Body)
	}
	assert.Equal(t, KindDeclaration, sections[11].Kind)
	assert.Equal(t, "Declaração e Assinaturas", sections[11].Heading)
	assert.Equal(t, KindFooter, sections[12].Kind)
	assert.Equal(t, KindSignature, sections[13].Kind)
}

func TestComposeSummary(t *testing.T) {
	sections := Compose(fullFields())

	want := strings.Join([]string{
		"Título: Site institucional",
		"Contratante: Padaria Central Ltda",
		"Contratado: Ana Souza ME",
		"Cidade: Curitiba",
		"Valor: R$ 1.234,56 (mil e duzentos e trinta e quatro reais e cinquenta e seis centavos)",
		"Pagamento: Pix",
		"Vencimento: 30/06/2025",
		"Serviço: Desenvolvimento de site",
	}, "\n")
	assert.Equal(t, want, sections[0].Body)
	assert.Equal(t, "Cidade: Curitiba\nData: 30/06/2025", sections[12].Body)
	assert.Equal(t, "Contratante: Padaria Central Ltda\nContratado: Ana Souza ME", sections[13].Body)
}

func TestComposeMissingDueDate(t *testing.T) {
	f := fullFields()
	f.DueDate = ""
	sections := Compose(f)

	require.Len(t, sections, SectionCount)
	assert.Contains(t, sections[0].Body, "Vencimento: —")
	assert.Equal(t, "Cidade: Curitiba\nData: ___/___/____", sections[12].Body)
}

func TestComposeEmptyFields(t *testing.T) {
	sections := Compose(Fields{})
	require.Len(t, sections, SectionCount)
	assert.Contains(t, sections[0].Body, "Vencimento: —")
}

func TestComposeDoesNotMutateClauses(t *testing.T) {
	before := Clauses
	sections := Compose(fullFields())
	sections[1].Body = "alterado"
	assert.Equal(t, before, Clauses)
}

func TestFieldsFor(t *testing.T) {
	due := time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC)
	c := &domain.Contract{
		Title:              "Consultoria",
		ProviderName:       "João",
		ClientName:         "ACME",
		ServiceDescription: "Consultoria tributária",
		Value:              decimal.RequireFromString("2000000.50"),
		PaymentTerms:       "Boleto",
		City:               "Recife",
		Status:             "assinado",
		DueDate:            &due,
	}

	f, err := FieldsFor(c)
	require.NoError(t, err)
	assert.Equal(t, "R$ 2.000.000,50", f.Value)
	assert.Equal(t, "dois milhões reais e cinquenta centavos", f.ValueInWords)
	assert.Equal(t, "09/01/2025", f.DueDate)
	assert.Equal(t, "ACME", f.Client)
	assert.Equal(t, "João", f.Provider)

	c.DueDate = nil
	c.Value = decimal.Zero
	f, err = FieldsFor(c)
	require.NoError(t, err)
	assert.Equal(t, "", f.DueDate)
	assert.Equal(t, "R$ 0,00", f.Value)
	assert.Equal(t, "zero reais", f.ValueInWords)
}

func TestFieldsForClampsNegative(t *testing.T) {
	f, err := FieldsFor(&domain.Contract{Value: decimal.RequireFromString("-10")})
	require.NoError(t, err)
	assert.Equal(t, "zero reais", f.ValueInWords)
}

func TestFieldsForOutOfRange(t *testing.T) {
	_, err := FieldsFor(&domain.Contract{Value: decimal.New(1, 12)})
	assert.Error(t, err)
}

func TestPDFRenderer(t *testing.T) {
	r := &PDFRenderer{
		Author: "contratos",
		Now:    func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	assert.Equal(t, "application/pdf", r.ContentType())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Compose(fullFields())))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestPDFRendererUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	err := NewPDFRenderer("").Render(&buf, []Section{{Kind: "bogus"}})
	assert.Error(t, err)
}
