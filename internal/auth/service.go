// Package auth manages user accounts and the signed session tokens that
// identify them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/saascontratos/contratos/internal/domain"
	"github.com/saascontratos/contratos/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// Service registers and authenticates users.
type Service struct {
	users *repository.UserRepo
	cost  int
}

// NewService creates an auth service hashing passwords with the given bcrypt
// cost (0 means bcrypt.DefaultCost).
func NewService(users *repository.UserRepo, cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: users, cost: cost}
}

// Register creates an account. Missing fields yield a *domain.ValidationError
// and a duplicate email yields ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	var msgs []string
	if name == "" {
		msgs = append(msgs, "Nome é obrigatório.")
	}
	if email == "" {
		msgs = append(msgs, "Email é obrigatório.")
	}
	switch {
	case password == "":
		msgs = append(msgs, "Senha é obrigatória.")
	case len(password) > maxPasswordBytes:
		msgs = append(msgs, "Senha deve ter no máximo 72 bytes.")
	}
	if len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	slog.Info("[auth] registered user", "user_id", u.ID)
	return u, nil
}

// Login checks the credentials and returns the matching user.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)

	var msgs []string
	if email == "" {
		msgs = append(msgs, "Email é obrigatório.")
	}
	if password == "" {
		msgs = append(msgs, "Senha é obrigatória.")
	}
	if len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// User returns the account with the given id.
func (s *Service) User(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
