// Package settings exposes the key-value site configuration as one
// flattened object, with key-scoped upsert semantics for writes.
package settings

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

// All returns every setting flattened into a key→value object.
func (s *Service) All() (map[string]string, error) {
	var rows []models.SettingModel
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

func (s *Service) Get(key string) (*models.SettingModel, error) {
	var row models.SettingModel
	if err := s.db.First(&row, "`key` = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Set upserts a single key.
func (s *Service) Set(key, value string, actor activity.Actor) (*models.SettingModel, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperr.Validationf("setting key must not be empty")
	}
	row := models.SettingModel{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "update", "setting", 0, fmt.Sprintf("set %q", key))
	return &row, nil
}

// BulkSet applies one upsert per entry inside a single transaction; the
// whole batch succeeds or none of it does. Keys absent from the mapping
// are left untouched.
func (s *Service) BulkSet(values map[string]string, actor activity.Actor) error {
	if len(values) == 0 {
		return apperr.Validationf("no settings in payload")
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		k = strings.TrimSpace(k)
		if k == "" {
			return apperr.Validationf("setting key must not be empty")
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			row := models.SettingModel{Key: k, Value: values[k]}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recorder.Record(actor, "update", "setting", 0, fmt.Sprintf("bulk updated %d keys", len(keys)))
	return nil
}
