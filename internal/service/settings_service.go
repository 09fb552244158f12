// internal/service/settings_service.go
package service

import (
	"context"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"
	"proposito24h/internal/repository"

	"gorm.io/gorm"
)

// SettingsService guarda a configuração global do admin (pixels, links,
// textos) como linhas achatadas (categoria, chave, valor) e reconstrói o mapa
// na leitura.
type SettingsService interface {
	GetSettings(ctx context.Context, category string) (map[string]string, error)
	PutSettings(ctx context.Context, category string, req *model.PutSettingsRequest) (map[string]string, error)
}

type settingsService struct {
	db           *gorm.DB
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(db *gorm.DB, settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{db: db, settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context, category string) (map[string]string, error) {
	rows, err := s.settingsRepo.FindByCategory(ctx, s.db, category)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

func (s *settingsService) PutSettings(ctx context.Context, category string, req *model.PutSettingsRequest) (map[string]string, error) {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range req.Values {
			setting := &model.Setting{
				Category: category,
				Key:      key,
				Value:    value,
			}
			if err := s.settingsRepo.Upsert(ctx, tx, setting); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Transaction failed for PutSettings", "error", err, "category", category)
		return nil, model.ErrInternalServer
	}

	return s.GetSettings(ctx, category)
}
