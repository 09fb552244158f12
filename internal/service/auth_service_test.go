// internal/service/auth_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"proposito24h/internal/config"
	"proposito24h/internal/model"
	"proposito24h/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "chave-de-teste-nao-usar-em-producao",
			ExpiryHours: 72,
		},
	}
}

func Test_authService_Register(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()
	cfg := authTestConfig()

	t.Run("sucesso: conta criada sempre como member", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "novo@example.com").
			Return(nil, model.ErrNotFound).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
			Return(nil).Once()
		svc := NewAuthService(db, userRepo, &LogMailer{}, cfg)

		user, err := svc.Register(ctx, &model.RegisterRequest{
			Name:     "Novo Membro",
			Email:    "novo@example.com",
			Password: "senha-secreta",
		})

		require.NoError(t, err)
		assert.Equal(t, model.RoleMember, user.Role)
		assert.NotEqual(t, uuid.Nil, user.UserID)
		// a senha nunca fica em texto puro
		assert.NotEqual(t, "senha-secreta", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-secreta")))
		userRepo.AssertExpectations(t)
	})

	t.Run("erro: email já cadastrado", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "existente@example.com").
			Return(&model.User{UserID: uuid.New(), Email: "existente@example.com"}, nil).Once()
		svc := NewAuthService(db, userRepo, &LogMailer{}, cfg)

		_, err := svc.Register(ctx, &model.RegisterRequest{
			Name:     "Repetido",
			Email:    "existente@example.com",
			Password: "senha",
		})

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "DUPLICATE_EMAIL", appErr.Detail.Code)
		assert.ErrorIs(t, err, model.ErrConflict)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("erro: corrida entre a checagem e o insert vira DUPLICATE_EMAIL", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "corrida@example.com").
			Return(nil, model.ErrNotFound).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
			Return(model.ErrConflict).Once()
		svc := NewAuthService(db, userRepo, &LogMailer{}, cfg)

		_, err := svc.Register(ctx, &model.RegisterRequest{
			Name:     "Corrida",
			Email:    "corrida@example.com",
			Password: "senha",
		})

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "DUPLICATE_EMAIL", appErr.Detail.Code)
	})
}

func Test_authService_Login(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()
	cfg := authTestConfig()

	hashed, err := bcrypt.GenerateFromPassword([]byte("senha-correta"), bcrypt.DefaultCost)
	require.NoError(t, err)

	membro := &model.User{
		UserID:       uuid.New(),
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: string(hashed),
		Role:         model.RoleMember,
	}

	t.Run("sucesso: token carrega o papel e o sujeito", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "maria@example.com").
			Return(membro, nil).Once()
		svc := NewAuthService(db, userRepo, &LogMailer{}, cfg)

		resp, err := svc.Login(ctx, &model.LoginRequest{
			Email:    "maria@example.com",
			Password: "senha-correta",
		})

		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		claims := &model.JWTCustomClaims{}
		_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.SecretKey), nil
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleMember, claims.Role)
		assert.Equal(t, membro.UserID.String(), claims.Subject)
		assert.Equal(t, "proposito24h", claims.Issuer)
	})

	t.Run("erro: senha incorreta", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "maria@example.com").
			Return(membro, nil).Once()
		svc := NewAuthService(db, userRepo, &LogMailer{}, cfg)

		_, err := svc.Login(ctx, &model.LoginRequest{
			Email:    "maria@example.com",
			Password: "senha-errada",
		})

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "AUTHENTICATION_FAILED", appErr.Detail.Code)
	})

	t.Run("erro: email desconhecido devolve a mesma mensagem", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "ninguem@example.com").
			Return(nil, model.ErrNotFound).Once()
		svc := NewAuthService(db, userRepo, &LogMailer{}, cfg)

		_, err := svc.Login(ctx, &model.LoginRequest{
			Email:    "ninguem@example.com",
			Password: "tanto-faz",
		})

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "AUTHENTICATION_FAILED", appErr.Detail.Code)
		// resposta idêntica à de senha errada, sem vazar a existência da conta
		assert.Equal(t, "Email ou senha incorretos.", appErr.Detail.Message)
	})
}
