// Package model содержит доменные сущности системы учёта животных-спасателей.
package model

import (
	"strings"

	"github.com/mmeshcher/rescue-animals-system/internal/validation"
)

// Record представляет документное отображение сущности, пригодное для
// записи в хранилище и восстановления из него.
type Record map[string]any

// Role описывает роль учётной записи.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole разбирает строковое значение роли.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", validation.NewFieldError("role", "must be 'user' or 'admin'")
	}
}

// User представляет учётную запись системы.
// PasswordHash хранит солёный bcrypt-хеш, исходный пароль не сохраняется.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Role         Role
	IsFirstLogin bool
}
