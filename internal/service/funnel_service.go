// internal/service/funnel_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"
	"proposito24h/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FunnelService interface {
	CreateFunnel(ctx context.Context, req *model.PutFunnelRequest) (*model.Funnel, error)
	GetFunnelBySlug(ctx context.Context, slug string) (*model.Funnel, error)
	ListFunnels(ctx context.Context) ([]*model.Funnel, error)
	ReplaceFunnel(ctx context.Context, funnelID uuid.UUID, req *model.PutFunnelRequest) (*model.Funnel, error)
	DeleteFunnel(ctx context.Context, funnelID uuid.UUID) error
}

type funnelService struct {
	db          *gorm.DB
	funnelRepo  repository.FunnelRepository
	productRepo repository.ProductRepository
}

func NewFunnelService(db *gorm.DB, funnelRepo repository.FunnelRepository, productRepo repository.ProductRepository) FunnelService {
	return &funnelService{db: db, funnelRepo: funnelRepo, productRepo: productRepo}
}

// validateSteps garante que todos os passos do funil apontam para produtos
// existentes. Um funil com passo quebrado enviaria o comprador para um 404.
func (s *funnelService) validateSteps(ctx context.Context, tx *gorm.DB, steps []model.FunnelStep) error {
	for _, step := range steps {
		if _, err := s.productRepo.FindBySlug(ctx, tx, step.ProductSlug); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("UNKNOWN_PRODUCT", "Passo do funil aponta para produto inexistente: "+step.ProductSlug, "steps", model.ErrInvalidInput)
			}
			return model.ErrInternalServer
		}
	}
	return nil
}

func (s *funnelService) CreateFunnel(ctx context.Context, req *model.PutFunnelRequest) (*model.Funnel, error) {
	logger := middleware.GetLogger(ctx)

	steps, err := json.Marshal(req.Steps)
	if err != nil {
		logger.Error("Failed to marshal funnel steps", "error", err)
		return nil, model.ErrInternalServer
	}

	funnel := &model.Funnel{
		FunnelID: uuid.New(),
		Slug:     req.Slug,
		Name:     req.Name,
		Steps:    steps,
		Active:   true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validateSteps(ctx, tx, req.Steps); err != nil {
			return err
		}
		if _, err := s.funnelRepo.FindBySlug(ctx, tx, req.Slug); err == nil {
			return model.NewAppError("DUPLICATE_SLUG", "Já existe um funil com esse slug.", "slug", model.ErrConflict)
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.ErrInternalServer
		}
		return s.funnelRepo.Create(ctx, tx, funnel)
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrInternalServer) {
			return nil, err
		}
		logger.Error("Transaction failed for CreateFunnel", "error", err)
		return nil, model.ErrInternalServer
	}
	return funnel, nil
}

func (s *funnelService) GetFunnelBySlug(ctx context.Context, slug string) (*model.Funnel, error) {
	funnel, err := s.funnelRepo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return funnel, nil
}

func (s *funnelService) ListFunnels(ctx context.Context) ([]*model.Funnel, error) {
	funnels, err := s.funnelRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	return funnels, nil
}

// ReplaceFunnel substitui o funil inteiro de uma vez, do jeito que a
// superfície de admin edita.
func (s *funnelService) ReplaceFunnel(ctx context.Context, funnelID uuid.UUID, req *model.PutFunnelRequest) (*model.Funnel, error) {
	logger := middleware.GetLogger(ctx)

	steps, err := json.Marshal(req.Steps)
	if err != nil {
		logger.Error("Failed to marshal funnel steps", "error", err)
		return nil, model.ErrInternalServer
	}

	var updated *model.Funnel
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		funnel, err := s.funnelRepo.FindByID(ctx, tx, funnelID)
		if err != nil {
			return err
		}
		if err := s.validateSteps(ctx, tx, req.Steps); err != nil {
			return err
		}

		funnel.Slug = req.Slug
		funnel.Name = req.Name
		funnel.Steps = steps
		if err := s.funnelRepo.Save(ctx, tx, funnel); err != nil {
			return model.ErrInternalServer
		}
		updated = funnel
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInternalServer) {
			return nil, err
		}
		logger.Error("Transaction failed for ReplaceFunnel", "error", err)
		return nil, model.ErrInternalServer
	}
	return updated, nil
}

func (s *funnelService) DeleteFunnel(ctx context.Context, funnelID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.funnelRepo.Delete(ctx, tx, funnelID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}
	return nil
}
