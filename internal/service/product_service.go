// internal/service/product_service.go
package service

import (
	"context"
	"errors"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"
	"proposito24h/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *model.PostProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, req *model.PatchProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

type productService struct {
	db             *gorm.DB
	productRepo    repository.ProductRepository
	experienceRepo repository.ExperienceRepository
}

func NewProductService(db *gorm.DB, productRepo repository.ProductRepository, experienceRepo repository.ExperienceRepository) ProductService {
	return &productService{
		db:             db,
		productRepo:    productRepo,
		experienceRepo: experienceRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *model.PostProductRequest) (*model.Product, error) {
	logger := middleware.GetLogger(ctx)
	var created *model.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// a experiência precisa existir antes do invólucro comercial
		if _, err := s.experienceRepo.FindByID(ctx, tx, req.ExperienceID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("EXPERIENCE_NOT_FOUND", "Experiência não encontrada.", "experience_id", model.ErrInvalidInput)
			}
			return model.ErrInternalServer
		}

		// checagem de slug duplicado
		if _, err := s.productRepo.FindBySlug(ctx, tx, req.Slug); err == nil {
			return model.NewAppError("DUPLICATE_SLUG", "Já existe um produto com esse slug.", "slug", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.ErrInternalServer
		}

		product := &model.Product{
			ProductID:    uuid.New(),
			ExperienceID: req.ExperienceID,
			Slug:         req.Slug,
			Name:         req.Name,
			Description:  req.Description,
			PriceCents:   req.PriceCents,
			Active:       true,
		}
		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_SLUG", "Já existe um produto com esse slug.", "slug", model.ErrConflict)
			}
			return model.ErrInternalServer
		}
		created = product
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrInternalServer) {
			return nil, err
		}
		logger.Error("Transaction failed for CreateProduct", "error", err)
		return nil, model.ErrInternalServer
	}
	return created, nil
}

func (s *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return product, nil
}

func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	products, err := s.productRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID uuid.UUID, req *model.PatchProductRequest) (*model.Product, error) {
	logger := middleware.GetLogger(ctx)

	updates := map[string]interface{}{}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PriceCents != nil {
		updates["price_cents"] = *req.PriceCents
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return s.GetProduct(ctx, productID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Slug != nil {
			existing, err := s.productRepo.FindBySlug(ctx, tx, *req.Slug)
			if err == nil && existing.ProductID != productID {
				return model.NewAppError("DUPLICATE_SLUG", "Já existe um produto com esse slug.", "slug", model.ErrConflict)
			}
			if err != nil && !errors.Is(err, model.ErrNotFound) {
				return model.ErrInternalServer
			}
		}
		return s.productRepo.Update(ctx, tx, productID, updates)
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInternalServer) {
			return nil, err
		}
		logger.Error("Transaction failed for UpdateProduct", "error", err)
		return nil, model.ErrInternalServer
	}
	return s.GetProduct(ctx, productID)
}

func (s *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.productRepo.Delete(ctx, tx, productID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}
	return nil
}
