// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

var ErrCategoryNotFound = errors.New("category not found")

// ImageRemover deletes a stored upload by its public URL.
type ImageRemover interface {
	Remove(url string) error
}

type Service struct {
	repo   Repository
	images ImageRemover
}

func NewService(repo Repository, images ImageRemover) *Service {
	return &Service{
		repo:   repo,
		images: images,
	}
}

func (s *Service) List(
	ctx context.Context,
	actor *auth.Identity,
	spec query.Spec,
) ([]Product, int, error) {
	if err := actor.Require(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return s.repo.List(ctx, spec)
}

func (s *Service) Get(
	ctx context.Context,
	actor *auth.Identity,
	id string,
) (*Product, error) {
	if err := actor.Require(); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	actor *auth.Identity,
	req ProductRequest,
) (*Product, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	p := &Product{ID: uuid.New().String()}
	apply(p, req)

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, p.ID)
}

func (s *Service) Update(
	ctx context.Context,
	actor *auth.Identity,
	id string,
	req ProductRequest,
) (*Product, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	apply(p, req)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, p.ID)
}

// Delete refuses once a product appears on any transaction. The stored image
// is removed after the row; a failure there is only logged.
func (s *Service) Delete(
	ctx context.Context,
	actor *auth.Identity,
	id string,
) error {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountTransactionItems(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &core.DependentsError{Dependent: "transaction items", Count: count}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if p.Image != nil && s.images != nil {
		if err := s.images.Remove(*p.Image); err != nil {
			slog.WarnContext(ctx, "remove product image",
				"product_id", id,
				"image", *p.Image,
				"error", err,
			)
		}
	}

	return nil
}

func (s *Service) ensureCategory(ctx context.Context, categoryID string) error {
	exists, err := s.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCategoryNotFound
	}
	return nil
}

func apply(p *Product, req ProductRequest) {
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price.Round(2)
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	p.CategoryID = req.CategoryID
	p.Image = req.Image
}
