package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mmeshcher/rescue-animals-system/internal/model"
)

// LoadSampleData загружает демонстрационные записи животных из JSON-файла.
// Каждая запись проходит полную валидацию; некорректные записи
// пропускаются с предупреждением. Если коллекция уже содержит записи,
// загрузка не выполняется. Возвращает количество вставленных записей.
func (s *Service) LoadSampleData(ctx context.Context, path string) (int, error) {
	existing, err := s.animals.FindAnimals(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("check existing animals: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("sample data skipped, animals already present", zap.Int("count", len(existing)))
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read sample data: %w", err)
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse sample data: %w", err)
	}

	inserted := 0
	for _, rec := range records {
		animal, err := model.AnimalFromRecord(rec)
		if err != nil {
			s.logger.Warn("sample record skipped", zap.Error(err))
			continue
		}
		if res := s.CreateAnimal(ctx, animal); res.OK() {
			inserted++
		}
	}

	s.logger.Info("sample data loaded", zap.Int("inserted", inserted))
	return inserted, nil
}
