// Package contracts implements the contract workflows: validated CRUD scoped
// to the owning user, the dashboard summary and document generation.
package contracts

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/saascontratos/contratos/internal/document"
	"github.com/saascontratos/contratos/internal/domain"
	"github.com/saascontratos/contratos/internal/logger"
	"github.com/saascontratos/contratos/internal/repository"
)

// ErrNotFound is returned when the contract does not exist or belongs to
// another user.
var ErrNotFound = repository.ErrNotFound

const recentLimit = 5

// Dashboard is the landing-page summary for one user.
type Dashboard struct {
	Stats  *repository.Stats `json:"stats"`
	Recent []domain.Contract `json:"recent"`
}

// Service performs contract operations on behalf of a user.
type Service struct {
	repo     *repository.ContractRepo
	renderer document.Renderer
}

// NewService creates a new contract service.
func NewService(repo *repository.ContractRepo, renderer document.Renderer) *Service {
	return &Service{repo: repo, renderer: renderer}
}

func (s *Service) Create(ctx context.Context, userID int64, in Input) (*domain.Contract, error) {
	c, err := in.Validate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("create contract: %w", err)
	}
	logger.WithContext(ctx).Info("[contracts] created", "contract_id", c.ID)
	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, in Input) (*domain.Contract, error) {
	existing, err := s.repo.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	c, err := in.Validate(userID)
	if err != nil {
		return nil, err
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update contract %d: %w", id, err)
	}
	logger.WithContext(ctx).Info("[contracts] updated", "contract_id", c.ID)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	logger.WithContext(ctx).Info("[contracts] deleted", "contract_id", id)
	return nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*domain.Contract, error) {
	return s.repo.GetForUser(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, f repository.ContractFilter) ([]domain.Contract, int, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	recent, _, err := s.repo.List(ctx, repository.ContractFilter{UserID: userID, Limit: recentLimit})
	if err != nil {
		return nil, fmt.Errorf("recent contracts: %w", err)
	}
	return &Dashboard{Stats: stats, Recent: recent}, nil
}

// Document composes the printable sections of the user's contract.
func (s *Service) Document(ctx context.Context, userID, id int64) ([]document.Section, error) {
	c, err := s.repo.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	fields, err := document.FieldsFor(c)
	if err != nil {
		return nil, fmt.Errorf("contract %d fields: %w", id, err)
	}
	return document.Compose(fields), nil
}

// Render writes the rendered contract to w. Nothing is written if rendering
// fails.
func (s *Service) Render(ctx context.Context, userID, id int64, w io.Writer) error {
	sections, err := s.Document(ctx, userID, id)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, sections); err != nil {
		return fmt.Errorf("render contract %d: %w", id, err)
	}
	n, err := buf.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write contract %d: %w", id, err)
	}
	logger.WithContext(ctx).Debug("[contracts] rendered", "contract_id", id, "bytes", n)
	return nil
}

// ContentType is the media type of Render's output.
func (s *Service) ContentType() string {
	return s.renderer.ContentType()
}
