package repository

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mmeshcher/rescue-animals-system/internal/model"
)

// MemoryStorage реализует оба контракта хранилища в памяти процесса.
// Используется тестами вместо реального хранилища (как mongomock) и
// пригоден для офлайн-запуска. Идентификаторы генерируются через uuid.
type MemoryStorage struct {
	mu      sync.RWMutex
	animals map[string]model.Record
	order   []string
	users   map[string]model.User
}

// NewMemoryStorage создаёт пустое хранилище в памяти.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		animals: make(map[string]model.Record),
		users:   make(map[string]model.User),
	}
}

// CreateUser сохраняет учётную запись; повторное имя пользователя
// отклоняется так же, как уникальным индексом реального хранилища.
func (s *MemoryStorage) CreateUser(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return fmt.Errorf("%w: %s", ErrUserExists, user.Username)
	}
	user.ID = uuid.NewString()
	s.users[user.Username] = user
	return nil
}

// GetUserByUsername возвращает учётную запись по имени пользователя.
func (s *MemoryStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdatePassword заменяет хеш пароля и признак первого входа.
func (s *MemoryStorage) UpdatePassword(ctx context.Context, username string, passwordHash []byte, firstLogin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.IsFirstLogin = firstLogin
	s.users[username] = user
	return nil
}

// CountUsers возвращает количество учётных записей.
func (s *MemoryStorage) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.users)), nil
}

// InsertAnimal сохраняет запись животного под сгенерированным идентификатором.
func (s *MemoryStorage) InsertAnimal(ctx context.Context, rec model.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.animals[id] = maps.Clone(rec)
	s.order = append(s.order, id)
	return id, nil
}

// FindAnimals возвращает записи, удовлетворяющие фильтру равенства,
// в порядке вставки. Пустой фильтр означает полную выборку.
func (s *MemoryStorage) FindAnimals(ctx context.Context, filter model.Record) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Record, 0)
	for _, id := range s.order {
		rec := s.animals[id]
		if !matches(id, rec, filter) {
			continue
		}
		withID := maps.Clone(rec)
		withID["_id"] = id
		out = append(out, withID)
	}
	return out, nil
}

// UpdateAnimal выполняет частичное обновление. Семантика ошибок
// совпадает с MongoStorage: не найдено и "найдено, но не изменено"
// различаются.
func (s *MemoryStorage) UpdateAnimal(ctx context.Context, id string, fields model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.animals[id]
	if !ok {
		return ErrAnimalNotFound
	}

	changed := false
	for k, v := range fields {
		if !reflect.DeepEqual(rec[k], v) {
			rec[k] = v
			changed = true
		}
	}
	if !changed {
		return ErrNoChange
	}
	return nil
}

// DeleteAnimal удаляет запись по идентификатору.
func (s *MemoryStorage) DeleteAnimal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.animals[id]; !ok {
		return ErrAnimalNotFound
	}
	delete(s.animals, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

func matches(id string, rec model.Record, filter model.Record) bool {
	for k, v := range filter {
		if k == "_id" {
			if v != id {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(rec[k], v) {
			return false
		}
	}
	return true
}
