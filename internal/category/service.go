// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

var ErrNameExists = errors.New("category name already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, actor *auth.Identity) ([]Category, error) {
	if err := actor.Require(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return s.repo.List(ctx)
}

func (s *Service) Get(
	ctx context.Context,
	actor *auth.Identity,
	id string,
) (*Category, error) {
	if err := actor.Require(); err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	actor *auth.Identity,
	req CategoryRequest,
) (*Category, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	c := &Category{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNameExists
		}
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor *auth.Identity,
	id string,
	req CategoryRequest,
) (*Category, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	c.Name = name
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNameExists
		}
		return nil, err
	}

	return c, nil
}

// Delete refuses while any product still belongs to the category and
// reports how many do.
func (s *Service) Delete(
	ctx context.Context,
	actor *auth.Identity,
	id string,
) error {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &core.DependentsError{Dependent: "products", Count: count}
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureNameFree(ctx context.Context, name, excludeID string) error {
	taken, err := s.repo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameExists
	}
	return nil
}
