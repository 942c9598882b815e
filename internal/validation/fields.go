// Package validation содержит функции валидации полей доменных сущностей.
package validation

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError описывает ошибку валидации конкретного поля записи.
type FieldError struct {
	Field  string
	Reason string
}

// NewFieldError создаёт ошибку валидации для поля field с причиной reason.
func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NonEmpty проверяет, что строка не пуста (и не состоит из одних пробелов),
// и нормализует её: обрезает пробелы и приводит к Title Case.
func NonEmpty(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewFieldError(field, "cannot be empty")
	}
	return cases.Title(language.Und).String(trimmed), nil
}

// NonNegativeInt проверяет, что значение является неотрицательным целым числом.
func NonNegativeInt(value int, field string) (int, error) {
	if value < 0 {
		return 0, NewFieldError(field, "must be non-negative integer")
	}
	return value, nil
}

// PositiveFinite проверяет, что значение является положительным конечным числом.
func PositiveFinite(value float64, field string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, NewFieldError(field, "must be a positive, finite number")
	}
	return value, nil
}

// OptionalPositiveFinite валидирует необязательное числовое поле:
// nil допустим, заданное значение должно быть положительным конечным числом.
func OptionalPositiveFinite(value *float64, field string) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	v, err := PositiveFinite(*value, field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// IntValue приводит значение документа к int. Документные хранилища
// возвращают числа как int32/int64/float64 в зависимости от драйвера.
func IntValue(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, NewFieldError(field, "must be an integer")
		}
		return int(v), nil
	default:
		return 0, NewFieldError(field, "must be numeric")
	}
}

// FloatValue приводит значение документа к float64.
func FloatValue(value any, field string) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, NewFieldError(field, "must be numeric")
	}
}

// BoolValue проверяет, что значение документа является настоящим булевым
// значением (строковые "Yes"/"No" не принимаются).
func BoolValue(value any, field string) (bool, error) {
	v, ok := value.(bool)
	if !ok {
		return false, NewFieldError(field, "must be a boolean")
	}
	return v, nil
}
