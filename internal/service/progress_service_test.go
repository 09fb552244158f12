// internal/service/progress_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"proposito24h/internal/model"
	"proposito24h/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- helpers ---

func setupTestDBProgress() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

// registrosConcluidos monta registros de progresso para os dias dados.
func registrosConcluidos(userID, productID uuid.UUID, dias ...int) []*model.ProgressRecord {
	now := time.Now()
	records := make([]*model.ProgressRecord, 0, len(dias))
	for _, dia := range dias {
		records = append(records, &model.ProgressRecord{
			ProgressID:  uuid.New(),
			UserID:      userID,
			ProductID:   productID,
			DayNumber:   dia,
			Completed:   true,
			CompletedAt: &now,
		})
	}
	return records
}

func compraCompletada(userID uuid.UUID, content string) *model.Purchase {
	productID := uuid.New()
	return &model.Purchase{
		PurchaseID:  uuid.New(),
		UserID:      userID,
		ProductID:   productID,
		SessionID:   "sess_" + uuid.NewString(),
		AmountCents: 4700,
		Status:      model.PurchaseStatusCompleted,
		Product: &model.Product{
			ProductID: productID,
			Slug:      "desafio-21-dias",
			Name:      "Desafio 21 Dias",
			Experience: &model.Experience{
				ExperienceID: uuid.New(),
				Title:        "Desafio 21 Dias de Propósito",
				Content:      datatypes.JSON(content),
			},
		},
	}
}

// conteudo21Dias gera um JSON com 21 dias numerados.
func conteudo21Dias() string {
	parts := make([]string, 0, 21)
	for i := 1; i <= 21; i++ {
		parts = append(parts, fmt.Sprintf(`{"day":%d,"titulo":"Dia %d"}`, i, i))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// --- derivações puras ---

func Test_computeCurrentDay(t *testing.T) {
	userID, productID := uuid.New(), uuid.New()

	tests := []struct {
		name string
		dias []int
		want int
	}{
		{name: "sem progresso: dia 1", dias: nil, want: 1},
		{name: "dias 1 a 7: dia atual 8", dias: []int{1, 2, 3, 4, 5, 6, 7}, want: 8},
		{name: "buraco no meio: avança pelo maior dia", dias: []int{1, 2, 3, 5}, want: 6},
		{name: "último dia concluído: trava em totalDays", dias: []int{21}, want: 21},
		{name: "todos os dias: trava em totalDays", dias: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}, want: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := registrosConcluidos(userID, productID, tt.dias...)
			assert.Equal(t, tt.want, computeCurrentDay(records, 21))
		})
	}
}

func Test_computeStreak(t *testing.T) {
	userID, productID := uuid.New(), uuid.New()

	tests := []struct {
		name string
		dias []int
		want int
	}{
		{name: "sem progresso: sequência 0", dias: nil, want: 0},
		{name: "prefixo contíguo completo", dias: []int{1, 2, 3, 4, 5, 6, 7}, want: 7},
		// a sequência é o prefixo a partir do dia 1, não a corrida mais
		// recente: {1,2,3,5} vale 3 mesmo com o dia atual em 6
		{name: "buraco corta a sequência", dias: []int{1, 2, 3, 5}, want: 3},
		{name: "só o último dia: sequência 0", dias: []int{21}, want: 0},
		{name: "começa depois do dia 1: sequência 0", dias: []int{2, 3, 4}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := registrosConcluidos(userID, productID, tt.dias...)
			assert.Equal(t, tt.want, computeStreak(records))
		})
	}
}

func Test_computeCompletionRate(t *testing.T) {
	userID, productID := uuid.New(), uuid.New()

	t.Run("sem progresso: 0", func(t *testing.T) {
		assert.Equal(t, 0.0, computeCompletionRate(nil, 21))
	})

	t.Run("7 de 21: percentual bruto, sem arredondar", func(t *testing.T) {
		records := registrosConcluidos(userID, productID, 1, 2, 3, 4, 5, 6, 7)
		assert.InDelta(t, 100.0/3.0, computeCompletionRate(records, 21), 1e-9)
	})

	t.Run("todos os dias: 100", func(t *testing.T) {
		dias := make([]int, 21)
		for i := range dias {
			dias[i] = i + 1
		}
		records := registrosConcluidos(userID, productID, dias...)
		assert.Equal(t, 100.0, computeCompletionRate(records, 21))
	})

	t.Run("denominador zero: 0, nunca NaN", func(t *testing.T) {
		records := registrosConcluidos(userID, productID, 1)
		assert.Equal(t, 0.0, computeCompletionRate(records, 0))
	})
}

func Test_computeWeeklyBreakdown(t *testing.T) {
	userID, productID := uuid.New(), uuid.New()

	t.Run("21 dias: três semanas de 7", func(t *testing.T) {
		records := registrosConcluidos(userID, productID, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
		weeks := computeWeeklyBreakdown(records, 21)

		require.Len(t, weeks, 3)
		assert.Equal(t, 1, weeks[0].WeekIndex)
		assert.Equal(t, 7, weeks[0].Completed)
		assert.Equal(t, 7, weeks[0].Total)
		assert.Equal(t, 100.0, weeks[0].Percentage)

		assert.Equal(t, 3, weeks[1].Completed)
		assert.InDelta(t, 300.0/7.0, weeks[1].Percentage, 1e-9)

		assert.Equal(t, 0, weeks[2].Completed)
		assert.Equal(t, 0.0, weeks[2].Percentage)
	})

	t.Run("total não múltiplo de 7: última semana mais curta", func(t *testing.T) {
		weeks := computeWeeklyBreakdown(nil, 10)
		require.Len(t, weeks, 2)
		assert.Equal(t, 7, weeks[0].Total)
		assert.Equal(t, 3, weeks[1].Total)
	})
}

func Test_deriveAchievements(t *testing.T) {
	userID, productID := uuid.New(), uuid.New()

	t.Run("contadores zerados: tudo em 0%", func(t *testing.T) {
		stats := deriveStats(nil, 21)
		achievements := deriveAchievements(nil, stats)

		require.Len(t, achievements, 4)
		for _, a := range achievements {
			assert.False(t, a.Completed, a.ID)
			assert.Equal(t, 0.0, a.ProgressPercent, a.ID)
		}
	})

	t.Run("sequência de 7 dias desbloqueada, percentual trava em 100", func(t *testing.T) {
		records := registrosConcluidos(userID, productID, 1, 2, 3, 4, 5, 6, 7, 8, 9)
		stats := deriveStats(records, 21)
		achievements := deriveAchievements(records, stats)

		assert.Equal(t, "streak_7", achievements[0].ID)
		assert.True(t, achievements[0].Completed)
		// 9/7 passaria de 100; o percentual trava
		assert.Equal(t, 100.0, achievements[0].ProgressPercent)
	})

	t.Run("reflexões e minutos de meditação somados do Data", func(t *testing.T) {
		records := registrosConcluidos(userID, productID, 1, 2, 3)
		records[0].Data = datatypes.JSON(`{"reflections":"gratidão","meditation_minutes":30}`)
		records[1].Data = datatypes.JSON(`{"reflections":"paz","meditation_minutes":20}`)
		// registro sem reflexão não conta
		records[2].Data = datatypes.JSON(`{"meditation_minutes":10}`)

		stats := deriveStats(records, 21)
		achievements := deriveAchievements(records, stats)

		assert.Equal(t, "reflections_10", achievements[1].ID)
		assert.False(t, achievements[1].Completed)
		assert.Equal(t, 20.0, achievements[1].ProgressPercent) // 2 de 10

		assert.Equal(t, "meditation_100", achievements[2].ID)
		assert.Equal(t, 60.0, achievements[2].ProgressPercent) // 60 de 100
	})

	t.Run("idempotente: mesma entrada, mesma saída", func(t *testing.T) {
		records := registrosConcluidos(userID, productID, 1, 2, 3, 4, 5)
		stats := deriveStats(records, 21)
		a1 := deriveAchievements(records, stats)
		a2 := deriveAchievements(records, stats)
		assert.Equal(t, a1, a2)
	})

	t.Run("jornada completa depende do total de dias", func(t *testing.T) {
		dias := make([]int, 21)
		for i := range dias {
			dias[i] = i + 1
		}
		records := registrosConcluidos(userID, productID, dias...)
		stats := deriveStats(records, 21)
		achievements := deriveAchievements(records, stats)

		assert.Equal(t, "full_completion", achievements[3].ID)
		assert.True(t, achievements[3].Completed)
		assert.Equal(t, 100.0, achievements[3].ProgressPercent)
	})
}

// --- GetToday ---

func Test_progressService_GetToday(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()
	userID := uuid.New()

	t.Run("sucesso: conteúdo do dia corrente e estatísticas", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchase := compraCompletada(userID, conteudo21Dias())
		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(purchase, nil).Once()
		progressRepo.On("FindByUserAndProduct", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID).
			Return(registrosConcluidos(userID, purchase.ProductID, 1, 2, 3), nil).Once()

		resp, err := svc.GetToday(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, "Desafio 21 Dias de Propósito", resp.Experience)
		assert.Equal(t, 4, resp.Stats.CurrentDay)
		assert.Equal(t, 21, resp.Stats.TotalDays)
		assert.Equal(t, 3, resp.Stats.Streak)
		assert.Equal(t, "Dia 4", resp.Day.Title)
		assert.False(t, resp.CompletedToday)
		purchaseRepo.AssertExpectations(t)
		progressRepo.AssertExpectations(t)
	})

	t.Run("erro: sem compra completada", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.GetToday(ctx, userID)

		assert.ErrorIs(t, err, model.ErrNoActiveExperience)
		purchaseRepo.AssertExpectations(t)
	})

	t.Run("erro: daily_content explicitamente vazio", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchase := compraCompletada(userID, `{"daily_content":[]}`)
		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(purchase, nil).Once()

		_, err := svc.GetToday(ctx, userID)

		assert.ErrorIs(t, err, model.ErrContentMissing)
		purchaseRepo.AssertExpectations(t)
	})

	t.Run("sucesso: conteúdo legado sem dias usa o fallback de 21", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchase := compraCompletada(userID, `{"titulo":"Conteúdo antigo"}`)
		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(purchase, nil).Once()
		progressRepo.On("FindByUserAndProduct", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID).
			Return(nil, nil).Once()

		resp, err := svc.GetToday(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, 21, resp.Stats.TotalDays)
		assert.Equal(t, 1, resp.Stats.CurrentDay)
		// dia sem entrada no JSON ainda é exibível
		assert.Equal(t, "Dia 1", resp.Day.Title)
		assert.Equal(t, model.FallbackDevotional, resp.Day.Devotional)
	})
}

// --- MarkDayComplete ---

func Test_progressService_MarkDayComplete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()
	userID := uuid.New()

	t.Run("sucesso: cria o registro do dia corrente", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchase := compraCompletada(userID, conteudo21Dias())
		existentes := registrosConcluidos(userID, purchase.ProductID, 1, 2)

		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(purchase, nil).Once()
		// primeira leitura dentro da transação: estado atual
		progressRepo.On("FindByUserAndProduct", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID).
			Return(existentes, nil).Once()
		progressRepo.On("FindByKey", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID, 3).
			Return(nil, model.ErrNotFound).Once()
		progressRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressRecord")).
			Run(func(args mock.Arguments) {
				record := args.Get(2).(*model.ProgressRecord)
				assert.Equal(t, 3, record.DayNumber)
				assert.True(t, record.Completed)
				assert.NotNil(t, record.CompletedAt)
				assert.NotEqual(t, uuid.Nil, record.ProgressID)
			}).Return(nil).Once()
		// releitura para as estatísticas da resposta
		progressRepo.On("FindByUserAndProduct", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID).
			Return(registrosConcluidos(userID, purchase.ProductID, 1, 2, 3), nil).Once()

		stats, err := svc.MarkDayComplete(ctx, userID, &model.CompleteDayRequest{
			DayNumber:   3,
			Reflections: model.ReflectionData{Reflections: "gratidão", MeditationMinutes: 15},
		})

		require.NoError(t, err)
		assert.Equal(t, 4, stats.CurrentDay)
		assert.Equal(t, 3, stats.Streak)
		assert.Equal(t, 3, stats.CompletedDays)
		progressRepo.AssertExpectations(t)
	})

	t.Run("sucesso: regravar dia já concluído atualiza em vez de duplicar", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchase := compraCompletada(userID, conteudo21Dias())
		existentes := registrosConcluidos(userID, purchase.ProductID, 1, 2, 3)

		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(purchase, nil).Once()
		progressRepo.On("FindByUserAndProduct", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID).
			Return(existentes, nil).Once()
		progressRepo.On("FindByKey", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID, 2).
			Return(existentes[1], nil).Once()
		progressRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), existentes[1]).
			Return(nil).Once()
		progressRepo.On("FindByUserAndProduct", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID).
			Return(existentes, nil).Once()

		stats, err := svc.MarkDayComplete(ctx, userID, &model.CompleteDayRequest{
			DayNumber:   2,
			Reflections: model.ReflectionData{Reflections: "revisado"},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, stats.CompletedDays)
		// nenhum Create aconteceu
		progressRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		progressRepo.AssertExpectations(t)
	})

	t.Run("erro: dia à frente do corrente é rejeitado", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchase := compraCompletada(userID, conteudo21Dias())
		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(purchase, nil).Once()
		progressRepo.On("FindByUserAndProduct", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID).
			Return(registrosConcluidos(userID, purchase.ProductID, 1, 2), nil).Once()

		_, err := svc.MarkDayComplete(ctx, userID, &model.CompleteDayRequest{DayNumber: 10})

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		progressRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("erro: dia fora do intervalo do programa", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchase := compraCompletada(userID, conteudo21Dias())
		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(purchase, nil).Twice()

		_, err := svc.MarkDayComplete(ctx, userID, &model.CompleteDayRequest{DayNumber: 0})
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		_, err = svc.MarkDayComplete(ctx, userID, &model.CompleteDayRequest{DayNumber: 22})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("erro: sem compra completada", func(t *testing.T) {
		purchaseRepo := new(mocks.PurchaseRepository)
		progressRepo := new(mocks.ProgressRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

		purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.MarkDayComplete(ctx, userID, &model.CompleteDayRequest{DayNumber: 1})
		assert.ErrorIs(t, err, model.ErrNoActiveExperience)
	})
}

// --- GetGrowth ---

func Test_progressService_GetGrowth(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()
	userID := uuid.New()

	purchaseRepo := new(mocks.PurchaseRepository)
	progressRepo := new(mocks.ProgressRepository)
	userRepo := new(mocks.UserRepository)
	svc := NewProgressService(db, purchaseRepo, progressRepo, userRepo)

	purchase := compraCompletada(userID, conteudo21Dias())
	records := registrosConcluidos(userID, purchase.ProductID, 1, 2, 3, 4, 5, 6, 7)
	records[0].Data = datatypes.JSON(`{"reflections":"obrigado","meditation_minutes":120}`)

	purchaseRepo.On("FindLatestCompletedByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
		Return(purchase, nil).Once()
	progressRepo.On("FindByUserAndProduct", ctx, mock.AnythingOfType("*gorm.DB"), userID, purchase.ProductID).
		Return(records, nil).Once()

	resp, err := svc.GetGrowth(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 7, resp.Stats.Streak)
	assert.Equal(t, 8, resp.Stats.CurrentDay)
	assert.InDelta(t, 100.0/3.0, resp.Stats.CompletionRate, 1e-9)
	require.Len(t, resp.Weeks, 3)
	require.Len(t, resp.Achievements, 4)
	assert.True(t, resp.Achievements[0].Completed)  // 7 dias seguidos
	assert.True(t, resp.Achievements[2].Completed)  // 120 minutos de meditação
	assert.False(t, resp.Achievements[3].Completed) // jornada incompleta
	purchaseRepo.AssertExpectations(t)
	progressRepo.AssertExpectations(t)
}
