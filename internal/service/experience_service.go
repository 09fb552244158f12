// internal/service/experience_service.go
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

// ExperienceService é o CRUD de autoria. O conteúdo é gravado exatamente como
// veio da superfície de autoria; os apelidos de campo e os fallbacks ficam
// todos do lado da leitura do membro.
type ExperienceService interface {
	CreateExperience(ctx context.Context, req *model.PostExperienceRequest) (*model.Experience, error)
	GetExperience(ctx context.Context, experienceID uuid.UUID) (*model.Experience, error)
	ListExperiences(ctx context.Context) ([]*model.Experience, error)
	UpdateExperience(ctx context.Context, experienceID uuid.UUID, req *model.PatchExperienceRequest) (*model.Experience, error)
	DeleteExperience(ctx context.Context, experienceID uuid.UUID) error
}

type experienceService struct {
	db             *gorm.DB
	experienceRepo repository.ExperienceRepository
}

func NewExperienceService(db *gorm.DB, experienceRepo repository.ExperienceRepository) ExperienceService {
	return &experienceService{db: db, experienceRepo: experienceRepo}
}

func (s *experienceService) CreateExperience(ctx context.Context, req *model.PostExperienceRequest) (*model.Experience, error) {
	logger := middleware.GetLogger(ctx)

	experience := &model.Experience{
		ExperienceID: uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.experienceRepo.Create(ctx, tx, experience)
	})
	if err != nil {
		logger.Error("Failed to create experience", "error", err)
		return nil, model.ErrInternalServer
	}
	return experience, nil
}

func (s *experienceService) GetExperience(ctx context.Context, experienceID uuid.UUID) (*model.Experience, error) {
	experience, err := s.experienceRepo.FindByID(ctx, s.db, experienceID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return experience, nil
}

func (s *experienceService) ListExperiences(ctx context.Context) ([]*model.Experience, error) {
	experiences, err := s.experienceRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	return experiences, nil
}

func (s *experienceService) UpdateExperience(ctx context.Context, experienceID uuid.UUID, req *model.PatchExperienceRequest) (*model.Experience, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if len(updates) == 0 {
		return s.GetExperience(ctx, experienceID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.experienceRepo.Update(ctx, tx, experienceID, updates)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}
	return s.GetExperience(ctx, experienceID)
}

func (s *experienceService) DeleteExperience(ctx context.Context, experienceID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.experienceRepo.Delete(ctx, tx, experienceID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}
	return nil
}
