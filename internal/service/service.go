// Package service реализует бизнес-логику системы учёта животных-спасателей.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmeshcher/rescue-animals-system/internal/model"
	"github.com/mmeshcher/rescue-animals-system/internal/repository"
	"github.com/mmeshcher/rescue-animals-system/internal/validation"
)

// BootstrapAdminUsername — имя учётной записи администратора,
// создаваемой на пустом хранилище.
const BootstrapAdminUsername = "admin"

const minPasswordLength = 6

// Service содержит бизнес-логику работы с записями животных и учётными записями.
type Service struct {
	animals repository.AnimalRepository
	users   repository.UserRepository
	logger  *zap.Logger
}

// NewService создаёт сервис поверх переданных хранилищ.
func NewService(animals repository.AnimalRepository, users repository.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		animals: animals,
		users:   users,
		logger:  logger,
	}
}

// Authenticate проверяет имя пользователя и пароль. При успехе возвращает
// учётную запись и признак первого входа; при любой неудаче — (nil, false)
// без уточнения, какая часть учётных данных неверна.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, bool) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("authenticate: user lookup failed", zap.Error(err), zap.String("username", username))
		}
		return nil, false
	}

	// Сравнение внутри bcrypt выполняется за константное время.
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, false
	}

	return user, user.IsFirstLogin
}

// CreateUser создаёт учётную запись. Пароль хешируется bcrypt с
// индивидуальной солью, исходное значение не сохраняется и не логируется.
func (s *Service) CreateUser(ctx context.Context, username, password string, role model.Role, firstLogin bool) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return validation.NewFieldError("username", "cannot be empty")
	}
	if password == "" {
		return validation.NewFieldError("password", "cannot be empty")
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return validation.NewFieldError("role", "must be 'user' or 'admin'")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.users.CreateUser(ctx, model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsFirstLogin: firstLogin,
	})
	if err != nil {
		return err
	}

	s.logger.Info("user created", zap.String("username", username), zap.String("role", string(role)))
	return nil
}

// ChangePassword заменяет пароль пользователя и снимает признак первого
// входа — это единственная операция, которая его сбрасывает.
func (s *Service) ChangePassword(ctx context.Context, username, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return validation.NewFieldError("password", "must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, username, hash, false); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("username", username))
	return nil
}

// IsAdmin сообщает, является ли пользователь администратором.
func (s *Service) IsAdmin(user *model.User) bool {
	return user != nil && user.Role == model.RoleAdmin
}

// Bootstrap создаёт администратора по умолчанию на пустом хранилище
// пользователей. Пароль помечается как подлежащий немедленной смене.
func (s *Service) Bootstrap(ctx context.Context, defaultAdminPassword string) error {
	n, err := s.users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	s.logger.Info("no users found, creating default admin")
	return s.CreateUser(ctx, BootstrapAdminUsername, defaultAdminPassword, model.RoleAdmin, true)
}

// OpStatus описывает исход CRUD-операции над записью животного.
type OpStatus string

const (
	OpOK         OpStatus = "ok"
	OpNotFound   OpStatus = "not_found"
	OpNoChange   OpStatus = "no_change"
	OpStoreError OpStatus = "store_error"
)

// OpResult описывает результат CRUD-операции. Отказы хранилища
// возвращаются результатом, а не ошибкой: вызывающий показывает
// сообщение и продолжает работу.
type OpResult struct {
	Status OpStatus
	ID     string
}

// OK сообщает, завершилась ли операция изменением данных.
func (r OpResult) OK() bool {
	return r.Status == OpOK
}

// CreateAnimal сохраняет запись животного и возвращает результат
// с присвоенным хранилищем идентификатором.
func (s *Service) CreateAnimal(ctx context.Context, animal model.Animal) OpResult {
	id, err := s.animals.InsertAnimal(ctx, animal.Record())
	if err != nil {
		s.logger.Error("create animal failed", zap.Error(err), zap.String("name", animal.Name))
		return OpResult{Status: OpStoreError}
	}

	s.logger.Info("animal created",
		zap.String("id", id),
		zap.String("name", animal.Name),
		zap.String("type", string(animal.Type)))
	return OpResult{Status: OpOK, ID: id}
}

// ReadAnimals возвращает записи по фильтру равенства; nil — полная
// выборка. При отказе хранилища возвращается пустой список.
func (s *Service) ReadAnimals(ctx context.Context, filter model.Record) []model.Record {
	recs, err := s.animals.FindAnimals(ctx, filter)
	if err != nil {
		s.logger.Error("read animals failed", zap.Error(err))
		return []model.Record{}
	}
	return recs
}

// UpdateAnimal выполняет частичное обновление записи по идентификатору.
// Статус различает "не найдено", "найдено, но не изменено" и отказ хранилища.
func (s *Service) UpdateAnimal(ctx context.Context, id string, fields model.Record) OpResult {
	err := s.animals.UpdateAnimal(ctx, id, fields)
	switch {
	case err == nil:
		s.logger.Info("animal updated", zap.String("id", id))
		return OpResult{Status: OpOK, ID: id}
	case errors.Is(err, repository.ErrAnimalNotFound):
		return OpResult{Status: OpNotFound, ID: id}
	case errors.Is(err, repository.ErrNoChange):
		return OpResult{Status: OpNoChange, ID: id}
	default:
		s.logger.Error("update animal failed", zap.Error(err), zap.String("id", id))
		return OpResult{Status: OpStoreError, ID: id}
	}
}

// DeleteAnimal удаляет запись по идентификатору.
func (s *Service) DeleteAnimal(ctx context.Context, id string) OpResult {
	err := s.animals.DeleteAnimal(ctx, id)
	switch {
	case err == nil:
		s.logger.Info("animal deleted", zap.String("id", id))
		return OpResult{Status: OpOK, ID: id}
	case errors.Is(err, repository.ErrAnimalNotFound):
		return OpResult{Status: OpNotFound, ID: id}
	default:
		s.logger.Error("delete animal failed", zap.Error(err), zap.String("id", id))
		return OpResult{Status: OpStoreError, ID: id}
	}
}
