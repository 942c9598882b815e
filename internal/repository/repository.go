// Package repository содержит реализации доступа к хранилищу записей.
package repository

import (
	"context"
	"errors"

	"github.com/mmeshcher/rescue-animals-system/internal/model"
)

// ErrUserExists возвращается при попытке создать пользователя с уже существующим именем.
var (
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrAnimalNotFound возвращается, если запись животного не найдена по идентификатору.
	ErrAnimalNotFound = errors.New("animal not found")
	// ErrNoChange возвращается, если обновление нашло документ, но не изменило ни одного поля.
	ErrNoChange = errors.New("no fields changed")
)

// UserRepository описывает контракт хранилища учётных записей.
type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, username string, passwordHash []byte, firstLogin bool) error
	CountUsers(ctx context.Context) (int64, error)
}

// AnimalRepository описывает контракт хранилища записей животных.
// Идентификаторы генерируются хранилищем и передаются в строковой форме.
type AnimalRepository interface {
	InsertAnimal(ctx context.Context, rec model.Record) (string, error)
	FindAnimals(ctx context.Context, filter model.Record) ([]model.Record, error)
	UpdateAnimal(ctx context.Context, id string, fields model.Record) error
	DeleteAnimal(ctx context.Context, id string) error
}
