package contracts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saascontratos/contratos/internal/document"
	"github.com/saascontratos/contratos/internal/domain"
	"github.com/saascontratos/contratos/internal/repository"
)

type stubRenderer struct {
	err      error
	sections []document.Section
}

func (r *stubRenderer) Render(w io.Writer, sections []document.Section) error {
	r.sections = sections
	if r.err != nil {
		return r.err
	}
	_, err := io.WriteString(w, "rendered")
	return err
}

func (r *stubRenderer) ContentType() string { return "text/plain" }

type fixture struct {
	svc      *Service
	renderer *stubRenderer
	owner    int64
	other    int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repository.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := repository.NewUserRepo(db)
	owner := &domain.User{Name: "Dona", Email: "dona@example.com", PasswordHash: "x"}
	other := &domain.User{Name: "Outro", Email: "outro@example.com", PasswordHash: "x"}
	require.NoError(t, users.Insert(context.Background(), owner))
	require.NoError(t, users.Insert(context.Background(), other))

	r := &stubRenderer{}
	return &fixture{
		svc:      NewService(repository.NewContractRepo(db), r),
		renderer: r,
		owner:    owner.ID,
		other:    other.ID,
	}
}

func validInput() Input {
	return Input{
		Title:              " Site institucional ",
		ProviderName:       "Ana Souza ME",
		ClientName:         "Padaria Central Ltda",
		ServiceDescription: "Desenvolvimento de site",
		Value:              "1500,50",
		PaymentTerms:       "Pix",
		City:               "Curitiba",
		DueDate:            "2025-06-30",
	}
}

func TestValidateDefaults(t *testing.T) {
	c, err := validInput().Validate(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.UserID)
	assert.Equal(t, "Site institucional", c.Title)
	assert.Equal(t, domain.StatusDraft, c.Status)
	assert.Equal(t, "1500.50", c.Value.StringFixed(2))
	require.NotNil(t, c.DueDate)

	in := validInput()
	in.DueDate = ""
	in.Status = "assinado"
	c, err = in.Validate(3)
	require.NoError(t, err)
	assert.Nil(t, c.DueDate)
	assert.Equal(t, "assinado", c.Status)
}

func TestValidateMessages(t *testing.T) {
	_, err := Input{DueDate: "30/06/2025"}.Validate(1)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"Título é obrigatório.",
		"Contratado é obrigatório.",
		"Contratante é obrigatório.",
		"Serviço é obrigatório.",
		"Valor é obrigatório.",
		"Forma de pagamento é obrigatória.",
		"Cidade é obrigatória.",
		"Data inválida. Use o formato AAAA-MM-DD.",
	}, verr.Messages)
}

func TestValidateValueBounds(t *testing.T) {
	in := validInput()
	in.Value = "-1"
	_, err := in.Validate(1)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Valor não pode ser negativo."}, verr.Messages)

	in.Value = "1000000000000"
	_, err = in.Validate(1)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Valor deve ser menor que um trilhão."}, verr.Messages)
}

func TestInputFromRoundTrip(t *testing.T) {
	c, err := validInput().Validate(1)
	require.NoError(t, err)

	again, err := InputFrom(c).Validate(1)
	require.NoError(t, err)
	assert.Equal(t, InputFrom(c), InputFrom(again))
	assert.Equal(t, "1500.50", InputFrom(c).Value)
	assert.Equal(t, "2025-06-30", InputFrom(c).DueDate)
}

func TestCreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.Create(ctx, f.owner, validInput())
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, f.owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site institucional", got.Title)

	_, err = f.svc.Get(ctx, f.other, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	in := validInput()
	in.Title = "Site v2"
	in.Value = "2000"
	updated, err := f.svc.Update(ctx, f.owner, c.ID, in)
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, "Site v2", updated.Title)

	_, err = f.svc.Update(ctx, f.other, c.ID, in)
	assert.ErrorIs(t, err, ErrNotFound)

	in.City = ""
	_, err = f.svc.Update(ctx, f.owner, c.ID, in)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.other, c.ID), ErrNotFound)
	require.NoError(t, f.svc.Delete(ctx, f.owner, c.ID))
	_, err = f.svc.Get(ctx, f.owner, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvalid(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.owner, Input{})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 7; i++ {
		_, err := f.svc.Create(ctx, f.owner, validInput())
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, f.other, validInput())
	require.NoError(t, err)

	d, err := f.svc.Dashboard(ctx, f.owner)
	require.NoError(t, err)
	assert.Equal(t, 7, d.Stats.Total)
	assert.Len(t, d.Recent, recentLimit)
	assert.Equal(t, "10503.50", d.Stats.TotalValue.StringFixed(2))

	list, total, err := f.svc.List(ctx, repository.ContractFilter{UserID: f.other})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}

func TestDocumentAndRender(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.Create(ctx, f.owner, validInput())
	require.NoError(t, err)

	sections, err := f.svc.Document(ctx, f.owner, c.ID)
	require.NoError(t, err)
	require.Len(t, sections, document.SectionCount)
	assert.Contains(t, sections[0].Body,
		"Valor: R$ 1.500,50 (mil e quinhentos reais e cinquenta centavos)")
	assert.Contains(t, sections[0].Body, "Vencimento: 30/06/2025")

	var buf bytes.Buffer
	require.NoError(t, f.svc.Render(ctx, f.owner, c.ID, &buf))
	assert.Equal(t, "rendered", buf.String())
	assert.Len(t, f.renderer.sections, document.SectionCount)
	assert.Equal(t, "text/plain", f.svc.ContentType())

	buf.Reset()
	assert.ErrorIs(t, f.svc.Render(ctx, f.other, c.ID, &buf), ErrNotFound)
	assert.Zero(t, buf.Len())

	f.renderer.err = errors.New("boom")
	buf.Reset()
	assert.Error(t, f.svc.Render(ctx, f.owner, c.ID, &buf))
	assert.Zero(t, buf.Len())
}
