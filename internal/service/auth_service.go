package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"globetrotter/internal/apperr"
	"globetrotter/internal/auth"
	"globetrotter/internal/model"
	"globetrotter/internal/repository"

	"github.com/sirupsen/logrus"
)

// Одно сообщение и для неизвестного email, и для неверного пароля.
const invalidCredentials = "Invalid credentials"

type authUserStore interface {
	Create(ctx context.Context, user *model.User) (int, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int, hash string) error
}

// AuthService отвечает за регистрацию и вход пользователей.
type AuthService struct {
	userRepo    authUserStore
	tokens      *auth.TokenManager
	allowLegacy bool
	log         logrus.FieldLogger
}

// NewAuthService создает новый сервис аутентификации.
// allowLegacy включает устаревшее сравнение паролей, сохраненных открытым текстом.
func NewAuthService(userRepo authUserStore, tokens *auth.TokenManager, allowLegacy bool, log logrus.FieldLogger) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, allowLegacy: allowLegacy, log: log}
}

// RegisterInput - данные формы регистрации.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult - результат успешного входа.
type LoginResult struct {
	Token string
	User  *model.User
}

// Register создает активного пользователя с ролью "user" и возвращает его ID.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (int, error) {
	if blank(in.Name) || blank(in.Email) || blank(in.Password) {
		return 0, apperr.NewValidation("All fields are required")
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return 0, apperr.NewValidation(fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes))
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return 0, apperr.NewInternal("Failed to register user", err)
	}
	id, err := s.userRepo.Create(ctx, &model.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Status:   model.StatusActive,
		Role:     model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, apperr.NewConflict("Email already exists.")
		}
		return 0, apperr.NewInternal("Failed to register user", err)
	}
	return id, nil
}

// Login проверяет email и пароль и выпускает токен сессии.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if blank(email) || blank(password) {
		return nil, apperr.NewValidation("Email and password are required")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NewUnauthorized(invalidCredentials)
		}
		return nil, apperr.NewInternal("Failed to login", err)
	}
	if !s.passwordMatches(ctx, user, password) {
		return nil, apperr.NewUnauthorized(invalidCredentials)
	}
	if user.Status == model.StatusSuspended {
		return nil, apperr.NewForbidden("Account is suspended")
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperr.NewInternal("Failed to login", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) passwordMatches(ctx context.Context, user *model.User, password string) bool {
	if auth.IsHashed(user.Password) {
		return auth.CheckPassword(user.Password, password)
	}
	if !s.allowLegacy || user.Password != password {
		return false
	}

	// Устаревший путь: пароль хранился открытым текстом. После успешного входа заменяем его хешем.
	entry := s.log.WithField("user_id", user.ID)
	entry.Warn("вход по паролю в открытом виде (устарело)")
	hash, err := auth.HashPassword(password)
	if err != nil {
		entry.WithError(err).Error("не удалось захешировать пароль")
		return true
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		entry.WithError(err).Error("не удалось сохранить хеш пароля")
		return true
	}
	user.Password = hash
	return true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
