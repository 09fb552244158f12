// internal/service/progress_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"
	"proposito24h/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService é o motor de progresso do app do membro. Todas as
// estatísticas (dia atual, sequência, percentuais, conquistas) são derivadas
// na leitura a partir das linhas de user_progress; nada disso é persistido.
type ProgressService interface {
	GetToday(ctx context.Context, userID uuid.UUID) (*model.TodayResponse, error)
	GetGrowth(ctx context.Context, userID uuid.UUID) (*model.GrowthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error)
	MarkDayComplete(ctx context.Context, userID uuid.UUID, req *model.CompleteDayRequest) (*model.DerivedStats, error)
}

type progressService struct {
	db           *gorm.DB // para transações
	purchaseRepo repository.PurchaseRepository
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
}

func NewProgressService(db *gorm.DB, purchaseRepo repository.PurchaseRepository, progressRepo repository.ProgressRepository, userRepo repository.UserRepository) ProgressService {
	return &progressService{
		db:           db,
		purchaseRepo: purchaseRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

// activeExperience agrupa o que o motor precisa de uma compra ativa.
type activeExperience struct {
	Purchase *model.Purchase
	Content  model.ExperienceContent
}

// resolveActiveExperience determina o produto ativo do usuário: a compra
// completada mais recente. Sem compra completada não existe experiência ativa.
func (s *progressService) resolveActiveExperience(ctx context.Context, userID uuid.UUID) (*activeExperience, error) {
	purchase, err := s.purchaseRepo.FindLatestCompletedByUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNoActiveExperience
		}
		return nil, model.ErrInternalServer
	}
	if purchase.Product == nil || purchase.Product.Experience == nil {
		// compra órfã (produto removido depois da venda)
		middleware.GetLogger(ctx).Error("Completed purchase without product/experience",
			"purchase_id", purchase.PurchaseID.String(),
		)
		return nil, model.ErrContentMissing
	}

	content := model.ParseExperienceContent(purchase.Product.Experience.Content)
	return &activeExperience{Purchase: purchase, Content: content}, nil
}

func (s *progressService) GetToday(ctx context.Context, userID uuid.UUID) (*model.TodayResponse, error) {
	active, err := s.resolveActiveExperience(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDays := active.Content.TotalDays()
	if totalDays == 0 {
		return nil, model.ErrContentMissing
	}

	records, err := s.progressRepo.FindByUserAndProduct(ctx, s.db, userID, active.Purchase.ProductID)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	stats := deriveStats(records, totalDays)
	day := active.Content.DayFor(stats.CurrentDay)

	return &model.TodayResponse{
		ProductID:      active.Purchase.ProductID,
		Experience:     active.Purchase.Product.Experience.Title,
		Day:            day,
		CompletedToday: isDayCompleted(records, stats.CurrentDay),
		Stats:          stats,
	}, nil
}

func (s *progressService) GetGrowth(ctx context.Context, userID uuid.UUID) (*model.GrowthResponse, error) {
	active, err := s.resolveActiveExperience(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDays := active.Content.TotalDays()
	if totalDays == 0 {
		return nil, model.ErrContentMissing
	}

	records, err := s.progressRepo.FindByUserAndProduct(ctx, s.db, userID, active.Purchase.ProductID)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	stats := deriveStats(records, totalDays)
	return &model.GrowthResponse{
		Stats:        stats,
		Weeks:        computeWeeklyBreakdown(records, totalDays),
		Achievements: deriveAchievements(records, stats),
	}, nil
}

func (s *progressService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}

	active, err := s.resolveActiveExperience(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDays := active.Content.TotalDays()
	if totalDays == 0 {
		return nil, model.ErrContentMissing
	}

	records, err := s.progressRepo.FindByUserAndProduct(ctx, s.db, userID, active.Purchase.ProductID)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	return &model.ProfileResponse{
		User: model.UserResponse{
			UserID:    user.UserID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
		Experience:  active.Purchase.Product.Experience.Title,
		Stats:       deriveStats(records, totalDays),
		Reflections: countReflections(records),
		MemberSince: user.CreatedAt,
	}, nil
}

// MarkDayComplete grava a conclusão de um dia. A escrita é um upsert na tripla
// (usuário, produto, dia): repetir a chamada nunca gera linha duplicada, só
// atualiza as reflexões. Dias à frente do dia atual são rejeitados; reescrever
// um dia já concluído é permitido (idempotência).
func (s *progressService) MarkDayComplete(ctx context.Context, userID uuid.UUID, req *model.CompleteDayRequest) (*model.DerivedStats, error) {
	logger := middleware.GetLogger(ctx)

	active, err := s.resolveActiveExperience(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDays := active.Content.TotalDays()
	if totalDays == 0 {
		return nil, model.ErrContentMissing
	}
	if req.DayNumber < 1 || req.DayNumber > totalDays {
		return nil, model.NewAppError("VALIDATION_ERROR", "Dia fora do intervalo do programa", "day_number", model.ErrInvalidInput)
	}

	productID := active.Purchase.ProductID

	var stats model.DerivedStats
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records, err := s.progressRepo.FindByUserAndProduct(ctx, tx, userID, productID)
		if err != nil {
			return model.ErrInternalServer
		}

		// o cliente só pode concluir o dia corrente; o que já passou pode ser
		// regravado, o que ainda não chegou não
		current := computeCurrentDay(records, totalDays)
		if req.DayNumber > current {
			return model.NewAppError("VALIDATION_ERROR", "Esse dia ainda não está liberado", "day_number", model.ErrInvalidInput)
		}

		data, err := json.Marshal(req.Reflections)
		if err != nil {
			logger.Error("Error marshalling reflection data", "error", err)
			return model.ErrInternalServer
		}

		existing, err := s.progressRepo.FindByKey(ctx, tx, userID, productID, req.DayNumber)
		switch {
		case err == nil:
			existing.Completed = true
			if existing.CompletedAt == nil {
				now := time.Now()
				existing.CompletedAt = &now
			}
			existing.Data = data
			if err := s.progressRepo.Update(ctx, tx, existing); err != nil {
				return model.ErrInternalServer
			}
		case errors.Is(err, model.ErrNotFound):
			now := time.Now()
			record := &model.ProgressRecord{
				ProgressID:  uuid.New(),
				UserID:      userID,
				ProductID:   productID,
				DayNumber:   req.DayNumber,
				Completed:   true,
				CompletedAt: &now,
				Data:        data,
			}
			if err := s.progressRepo.Create(ctx, tx, record); err != nil {
				return model.ErrInternalServer
			}
		default:
			return model.ErrInternalServer
		}

		// estatísticas frescas para a resposta
		records, err = s.progressRepo.FindByUserAndProduct(ctx, tx, userID, productID)
		if err != nil {
			return model.ErrInternalServer
		}
		stats = deriveStats(records, totalDays)
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrInternalServer) {
			return nil, err
		}
		logger.Error("Transaction failed for MarkDayComplete", "error", err)
		return nil, model.ErrInternalServer
	}

	return &stats, nil
}

// --- derivações puras ---

func deriveStats(records []*model.ProgressRecord, totalDays int) model.DerivedStats {
	return model.DerivedStats{
		CurrentDay:     computeCurrentDay(records, totalDays),
		TotalDays:      totalDays,
		Streak:         computeStreak(records),
		CompletionRate: computeCompletionRate(records, totalDays),
		CompletedDays:  countCompleted(records),
	}
}

// computeCurrentDay devolve min(último dia concluído + 1, totalDays), sempre
// dentro de [1, totalDays]. O dia atual avança com o maior dia concluído,
// mesmo que haja buracos antes dele.
func computeCurrentDay(records []*model.ProgressRecord, totalDays int) int {
	last := 0
	for _, r := range records {
		if r.Completed && r.DayNumber > last {
			last = r.DayNumber
		}
	}
	current := last + 1
	if current > totalDays {
		current = totalDays
	}
	if current < 1 {
		current = 1
	}
	return current
}

// computeStreak conta o prefixo contíguo concluído a partir do dia 1:
// {1,2,3,5} tem sequência 3, ainda que o dia atual seja 6. Pular um dia
// zera a contagem a partir do buraco, de propósito.
func computeStreak(records []*model.ProgressRecord) int {
	completed := make(map[int]bool, len(records))
	for _, r := range records {
		if r.Completed {
			completed[r.DayNumber] = true
		}
	}
	streak := 0
	for day := 1; completed[day]; day++ {
		streak++
	}
	return streak
}

// computeCompletionRate devolve o percentual bruto (sem arredondar) de dias
// concluídos. Denominador zero devolve 0 em vez de NaN.
func computeCompletionRate(records []*model.ProgressRecord, totalDays int) float64 {
	if totalDays == 0 {
		return 0
	}
	return float64(countCompleted(records)) / float64(totalDays) * 100
}

// computeWeeklyBreakdown fatia o programa em grupos consecutivos de 7 dias.
// A última semana pode ser mais curta quando totalDays não é múltiplo de 7.
func computeWeeklyBreakdown(records []*model.ProgressRecord, totalDays int) []model.WeekBreakdown {
	completed := make(map[int]bool, len(records))
	for _, r := range records {
		if r.Completed {
			completed[r.DayNumber] = true
		}
	}

	var weeks []model.WeekBreakdown
	for start := 1; start <= totalDays; start += 7 {
		end := start + 6
		if end > totalDays {
			end = totalDays
		}
		done := 0
		for day := start; day <= end; day++ {
			if completed[day] {
				done++
			}
		}
		total := end - start + 1
		weeks = append(weeks, model.WeekBreakdown{
			WeekIndex:  len(weeks) + 1,
			Completed:  done,
			Total:      total,
			Percentage: float64(done) / float64(total) * 100,
		})
	}
	return weeks
}

// Limiares fixos das quatro conquistas do app.
const (
	achievementStreakDays        = 7
	achievementReflectionCount   = 10
	achievementMeditationMinutes = 100
)

// deriveAchievements rederiva as quatro conquistas a partir dos contadores
// brutos. Não há estado "desbloqueado" persistido: a mesma entrada produz
// sempre a mesma saída, então a conquista pode "regredir" se os dados mudarem.
func deriveAchievements(records []*model.ProgressRecord, stats model.DerivedStats) []model.Achievement {
	reflections := countReflections(records)
	minutes := 0
	for _, r := range records {
		var data model.ReflectionData
		if len(r.Data) > 0 && json.Unmarshal(r.Data, &data) == nil {
			minutes += data.MeditationMinutes
		}
	}

	return []model.Achievement{
		buildAchievement("streak_7", "7 dias seguidos", stats.Streak, achievementStreakDays),
		buildAchievement("reflections_10", "10 reflexões", reflections, achievementReflectionCount),
		buildAchievement("meditation_100", "100 minutos de meditação", minutes, achievementMeditationMinutes),
		buildAchievement("full_completion", "Jornada completa", stats.CompletedDays, stats.TotalDays),
	}
}

func buildAchievement(id, title string, value, threshold int) model.Achievement {
	if threshold <= 0 {
		return model.Achievement{ID: id, Title: title}
	}
	percent := float64(value) / float64(threshold) * 100
	if percent > 100 {
		percent = 100
	}
	return model.Achievement{
		ID:              id,
		Title:           title,
		Completed:       value >= threshold,
		ProgressPercent: percent,
	}
}

func countCompleted(records []*model.ProgressRecord) int {
	n := 0
	for _, r := range records {
		if r.Completed {
			n++
		}
	}
	return n
}

func countReflections(records []*model.ProgressRecord) int {
	n := 0
	for _, r := range records {
		var data model.ReflectionData
		if len(r.Data) > 0 && json.Unmarshal(r.Data, &data) == nil && data.Reflections != "" {
			n++
		}
	}
	return n
}

func isDayCompleted(records []*model.ProgressRecord, day int) bool {
	for _, r := range records {
		if r.DayNumber == day && r.Completed {
			return true
		}
	}
	return false
}
